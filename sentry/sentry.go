package sentry

import (
	"time"

	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"geniusmcp/config"
)

// Init configures the global Sentry client. An empty DSN leaves Sentry
// disabled; the SDK then drops events without network traffic.
func Init(cfg config.SentryConfig) error {
	if cfg.DSN == "" {
		log.Debug("SENTRY_DSN not set, error reporting disabled")
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Release:          cfg.Release,
		TracesSampleRate: 1.0,
	})
}

// Flush waits for buffered events before the process exits.
func Flush() {
	sentry.Flush(2 * time.Second)
}

func GetSentryGin() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true})
}

func ReportError(err error) {
	sentry.CaptureException(err)
}

func ReportMessage(message string) {
	sentry.CaptureMessage(message)
}
