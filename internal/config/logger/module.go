package logger

import (
	"go.uber.org/fx"
)

// Module provides the fx dependency injection options for the logger package.
// The output writer is supplied by the caller so the console can keep its screen clean.
var Module = fx.Options(
	fx.Provide(NewLoggerWithOutput),
)
