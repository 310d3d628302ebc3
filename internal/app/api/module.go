package api

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the api package
var Module = fx.Options(
	fx.Provide(NewClient),
)
