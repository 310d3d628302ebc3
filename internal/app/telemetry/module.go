package telemetry

import "go.uber.org/fx"

// Module provides the Telemetry reporter
var Module = fx.Options(
	fx.Provide(NewTelemetry),
)
