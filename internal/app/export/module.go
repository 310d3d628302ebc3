package export

import "go.uber.org/fx"

// Module provides the event Exporter
var Module = fx.Options(
	fx.Provide(NewExporter),
)
