//go:generate mockgen -source=telemetry.go -destination=telemetry_mock.go -package=telemetry
package telemetry

import (
	"time"

	"github.com/getsentry/sentry-go"

	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// Telemetry reports failures to Sentry when a DSN is configured
type Telemetry interface {
	CaptureError(err error, component string)
	Flush()
	Enabled() bool
}

type telemetry struct {
	hub     *sentry.Hub
	timeout time.Duration
	log     logger.Logger
}

// NewTelemetry creates a Sentry-backed Telemetry; with an empty DSN every call is a no-op
func NewTelemetry(cfg *config.Config, log logger.Logger) Telemetry {
	log = log.WithComponent("TELEMETRY")

	t := &telemetry{timeout: config.SentryFlushTimeout, log: log}

	if cfg.Telemetry.SentryDSN == "" {
		return t
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              cfg.Telemetry.SentryDSN,
		Release:          config.AppName + "@" + config.Version,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialise Sentry, telemetry disabled")
		return t
	}

	t.hub = sentry.NewHub(client, sentry.NewScope())
	log.Debug().Msg("Sentry telemetry enabled")

	return t
}

// Enabled reports whether events are actually sent
func (t *telemetry) Enabled() bool {
	return t.hub != nil
}

// CaptureError sends err tagged with the reporting component
func (t *telemetry) CaptureError(err error, component string) {
	if t.hub == nil || err == nil {
		return
	}

	t.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)

		if id := t.hub.CaptureException(err); id != nil {
			t.log.Debug().Str("event_id", string(*id)).Str("component", component).Msg("Captured error")
		}
	})
}

// Flush waits for queued events to be delivered
func (t *telemetry) Flush() {
	if t.hub == nil {
		return
	}

	if !t.hub.Flush(t.timeout) {
		t.log.Warn().Msg("Timed out flushing telemetry")
	}
}
