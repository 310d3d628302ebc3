package watcher

import "go.uber.org/fx"

// Module provides the session watcher
var Module = fx.Options(
	fx.Provide(NewWatcher),
)
