package auth

import "go.uber.org/fx"

// Module provides the fx dependency injection options for the auth package
var Module = fx.Options(
	fx.Provide(
		NewStore,
		NewAuth,
	),
)
