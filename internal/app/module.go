package app

import (
	"go.uber.org/fx"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/cli"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/app/ui/wire"
	"siemctl/internal/app/watcher"
	"siemctl/internal/config/logger"
)

var Module = fx.Options(
	logger.Module,
	telemetry.Module,
	api.Module,
	auth.Module,
	watcher.Module,
	monitor.Module,
	export.Module,
	wire.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
