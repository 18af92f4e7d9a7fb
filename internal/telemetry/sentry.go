// Package telemetry reports server-side failures to Sentry.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"piiguard/internal/config"
)

const flushTimeout = 2 * time.Second

// Init configures the global Sentry client and returns a flush function to
// call on shutdown. With an empty DSN reporting stays disabled and CaptureError
// is a no-op.
func Init(cfg *config.SentryConfig) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return func() {}, fmt.Errorf("initializing sentry: %w", err)
	}
	return func() { sentry.Flush(flushTimeout) }, nil
}

// CaptureError reports err tagged with the request ID.
func CaptureError(requestID string, err error) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		hub.CaptureException(err)
	})
}
