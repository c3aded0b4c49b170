package sentry

import (
	"fmt"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/logger"
)

// Client wraps a Sentry hub with the picker's tagging and scrubbing rules.
type Client struct {
	hub         *sentry.Hub
	config      config.SentryConfig
	logger      *logger.Logger
	initialized bool
	version     string
}

// NewClient creates a client. A disabled config or an empty DSN yields a
// valid client that drops everything.
func NewClient(cfg *config.Config, version string) (*Client, error) {
	client := &Client{
		logger:  logger.GetLogger().WithComponent("sentry"),
		version: version,
	}
	if cfg != nil {
		client.config = cfg.Sentry
	}

	if err := client.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize Sentry client: %w", err)
	}
	return client, nil
}

func (c *Client) initialize() error {
	if !c.config.Enabled {
		c.logger.Debug().Msg("Sentry monitoring disabled")
		return nil
	}
	if c.config.DSN == "" {
		c.logger.Warn().Msg("Sentry DSN not configured, monitoring disabled")
		return nil
	}

	release := c.version
	if c.config.Release != "" {
		release = c.config.Release
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              c.config.DSN,
		Environment:      c.config.Environment,
		Release:          release,
		SampleRate:       c.config.SampleRate,
		Debug:            c.config.Debug,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			return sanitizeEvent(event)
		},
		BeforeBreadcrumb: func(breadcrumb *sentry.Breadcrumb, hint *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			return sanitizeBreadcrumb(breadcrumb)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry SDK: %w", err)
	}

	c.hub = sentry.CurrentHub().Clone()
	c.hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("app.name", "pickline")
		scope.SetTag("app.version", c.version)
		scope.SetTag("run_id", logger.GetLogger().RunID())
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
	})

	c.initialized = true
	c.logger.Info().
		Str("environment", c.config.Environment).
		Str("release", release).
		Msg("Sentry monitoring initialized")
	return nil
}

// CaptureError reports err. Tag values are scrubbed before sending.
func (c *Client) CaptureError(err error, component, operation string, tags map[string]string) {
	if !c.initialized || err == nil {
		return
	}

	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)
		scope.SetTag("operation", operation)
		for key, value := range tags {
			scope.SetTag(key, sanitizeValue(value))
		}
		c.hub.CaptureException(err)
	})

	c.logger.Debug().
		Str("operation", operation).
		Err(err).
		Msg("Error captured by Sentry")
}

// CaptureMessage reports a message at the given level.
func (c *Client) CaptureMessage(message string, level sentry.Level, component string) {
	if !c.initialized {
		return
	}
	c.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)
		scope.SetLevel(level)
		c.hub.CaptureMessage(sanitizeValue(message))
	})
}

// AddBreadcrumb records a step leading up to a later error.
func (c *Client) AddBreadcrumb(category, message string, data map[string]interface{}) {
	if !c.initialized {
		return
	}
	c.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category:  category,
		Message:   message,
		Level:     sentry.LevelInfo,
		Data:      data,
		Timestamp: time.Now(),
	}, nil)
}

// Flush waits for queued events.
func (c *Client) Flush(timeout time.Duration) bool {
	if !c.initialized {
		return true
	}
	return c.hub.Flush(timeout)
}

// Close flushes and disables the client.
func (c *Client) Close() {
	if c.initialized {
		c.Flush(2 * time.Second)
		c.initialized = false
	}
}

// IsEnabled returns whether events are sent.
func (c *Client) IsEnabled() bool {
	return c.initialized
}
