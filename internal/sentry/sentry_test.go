package sentry

import (
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeverVane/pickline/internal/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		config     *config.Config
		expectInit bool
	}{
		{
			name: "enabled with dsn",
			config: &config.Config{Sentry: config.SentryConfig{
				Enabled:     true,
				DSN:         "https://test@example.com/1",
				Environment: "test",
				SampleRate:  1.0,
			}},
			expectInit: true,
		},
		{
			name:       "disabled",
			config:     &config.Config{Sentry: config.SentryConfig{Enabled: false}},
			expectInit: false,
		},
		{
			name:       "empty dsn",
			config:     &config.Config{Sentry: config.SentryConfig{Enabled: true}},
			expectInit: false,
		},
		{
			name:       "nil config",
			config:     nil,
			expectInit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config, "1.0.0")
			require.NoError(t, err)
			assert.Equal(t, tt.expectInit, client.IsEnabled())

			client.Close()
			assert.False(t, client.IsEnabled())
		})
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(config.DefaultConfig(), "dev")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		client.CaptureError(errors.New("boom"), "tui", "run", nil)
		client.CaptureMessage("hello", sentry.LevelInfo, "tui")
		client.AddBreadcrumb("tui", "key", nil)
	})
	assert.True(t, client.Flush(time.Millisecond))
}

func TestGlobalLifecycle(t *testing.T) {
	Close()
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		CaptureError(errors.New("before init"), "main", "run")
		CapturePanic("bad", "main")
	})
	assert.Nil(t, Hook(zerolog.ErrorLevel))

	require.NoError(t, Initialize(config.DefaultConfig(), "dev"))
	assert.False(t, IsEnabled(), "disabled by default")
	assert.True(t, Flush(time.Millisecond))
	Close()
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"home dir", "open /home/alice/.local/share/pickline/history", "open /[USER_HOME]/.local/share/pickline/history"},
		{"mac home", "/Users/bob/x", "/[USER_HOME]/x"},
		{"email", "contact alice@example.com", "contact [EMAIL_REDACTED]"},
		{"secret", "token=abc123 rest", "token: [REDACTED] rest"},
		{"plain", "failed to read input", "failed to read input"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeValue(tt.input))
		})
	}
}

func TestSanitizeMap(t *testing.T) {
	out := sanitizeMap(map[string]interface{}{
		"selected_text": "rm -rf /",
		"query":         "secret stuff",
		"hits":          12,
		"log_path":      "/home/carol/log",
	})

	assert.Equal(t, "[REDACTED]", out["selected_text"])
	assert.Equal(t, "[REDACTED]", out["query"])
	assert.Equal(t, 12, out["hits"])
	assert.Equal(t, "/[USER_HOME]/log", out["log_path"])
	assert.Nil(t, sanitizeMap(nil))
}

func TestSanitizeEvent(t *testing.T) {
	event := &sentry.Event{
		Message: "failed for /home/dave/hist",
		Tags:    map[string]string{"component": "history", "history_entry": "ssh prod"},
		Extra:   map[string]interface{}{"item": "password123"},
		User:    sentry.User{ID: "42", Email: "dave@example.com"},
		Request: &sentry.Request{URL: "https://example.com"},
		Exception: []sentry.Exception{
			{Value: "open /home/dave/hist: permission denied"},
		},
	}

	got := sanitizeEvent(event)
	assert.Equal(t, "failed for /[USER_HOME]/hist", got.Message)
	assert.Equal(t, "history", got.Tags["component"])
	assert.Equal(t, "[REDACTED]", got.Tags["history_entry"])
	assert.Equal(t, "[REDACTED]", got.Extra["item"])
	assert.Equal(t, sentry.User{}, got.User)
	assert.Nil(t, got.Request)
	assert.Equal(t, "open /[USER_HOME]/hist: permission denied", got.Exception[0].Value)

	assert.Nil(t, sanitizeEvent(nil))
}

func TestSanitizeBreadcrumb(t *testing.T) {
	b := sanitizeBreadcrumb(&sentry.Breadcrumb{
		Message: "loaded /home/erin/hist",
		Data:    map[string]interface{}{"text": "abc", "count": 3},
	})
	assert.Equal(t, "loaded /[USER_HOME]/hist", b.Message)
	assert.Equal(t, "[REDACTED]", b.Data["text"])
	assert.Equal(t, 3, b.Data["count"])
}

func BenchmarkSanitizeValue(b *testing.B) {
	value := "failed to open /home/user/.local/share/pickline/history for user@example.com"
	for i := 0; i < b.N; i++ {
		sanitizeValue(value)
	}
}
