package sentry

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

// ZerologHook forwards error-level log events to Sentry as messages and
// lower levels as breadcrumbs.
type ZerologHook struct {
	client   *Client
	minLevel zerolog.Level
}

// NewZerologHook creates a hook sending events at or above minLevel.
func NewZerologHook(client *Client, minLevel zerolog.Level) *ZerologHook {
	return &ZerologHook{client: client, minLevel: minLevel}
}

// Run implements zerolog.Hook.
func (h *ZerologHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if h.client == nil || !h.client.IsEnabled() || level == zerolog.NoLevel {
		return
	}

	if level < h.minLevel {
		if level >= zerolog.InfoLevel {
			h.client.AddBreadcrumb("log", msg, map[string]interface{}{"level": level.String()})
		}
		return
	}

	switch level {
	case zerolog.WarnLevel:
		h.client.CaptureMessage(msg, sentry.LevelWarning, "log")
	case zerolog.ErrorLevel:
		h.client.CaptureMessage(msg, sentry.LevelError, "log")
	case zerolog.FatalLevel, zerolog.PanicLevel:
		h.client.CaptureError(errors.New(msg), "log", level.String(), nil)
	}
}

// Hook returns a hook bound to the global client, or nil when Sentry is off.
func Hook(minLevel zerolog.Level) zerolog.Hook {
	c := current()
	if c == nil || !c.IsEnabled() {
		return nil
	}
	return NewZerologHook(c, minLevel)
}
