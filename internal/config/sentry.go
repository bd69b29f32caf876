package config

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// InitSentry enables error reporting when SENTRY_DSN is set and reports
// whether it did.
func InitSentry(s *Settings) bool {
	if s.SentryDSN == "" {
		return false
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.SentryDSN,
		Environment: s.AppEnv,
	}); err != nil {
		Logger.Error("Sentry initialization failed", zap.Error(err))
		return false
	}
	Logger.Info("Sentry initialized")
	return true
}
