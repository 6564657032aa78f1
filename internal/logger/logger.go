package logger

import (
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init initializes the default logger based on environment.
// Development: text format with Debug level
// Production: JSON format with Info level
// Optionally fans errors out to Sentry.
func Init(isDev bool, sentryDSN string) {
	var handlers []slog.Handler

	// Base handler for stdout (always enabled)
	if isDev {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	// Optional Sentry handler (errors only)
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn: sentryDSN,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		} else {
			slog.Warn("sentry init failed, continuing without it", "error", err)
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	slog.SetDefault(slog.New(handler))
}
