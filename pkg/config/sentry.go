package config

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting when a DSN is configured. The returned
// func flushes buffered events and is safe to call either way.
func InitSentry(c *AppConfig) (func(), error) {
	if c.SentryDSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.SentryDSN,
		Environment:      c.Environment,
		Release:          c.ServiceName + "@" + c.ServiceVersion,
		TracesSampleRate: 0,
	})
	if err != nil {
		return func() {}, err
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
