package ui

import (
	"go.uber.org/fx"

	"siemctl/internal/app/ui/navigation"
)

// Module provides the fx dependency injection options for the ui package
var Module = fx.Options(
	navigation.Module,
)
