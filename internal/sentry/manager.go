package sentry

import (
	"fmt"
	"sync"
	"time"

	"github.com/NeverVane/pickline/internal/config"
)

var (
	globalMu     sync.RWMutex
	globalClient *Client
)

// Initialize sets up the process-wide client. Calling it again replaces
// the previous client.
func Initialize(cfg *config.Config, version string) error {
	client, err := NewClient(cfg, version)
	if err != nil {
		return err
	}

	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return nil
}

func current() *Client {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalClient
}

// IsEnabled reports whether the global client sends events.
func IsEnabled() bool {
	c := current()
	return c != nil && c.IsEnabled()
}

// CaptureError reports err through the global client.
func CaptureError(err error, component, operation string, tags ...map[string]string) {
	c := current()
	if c == nil {
		return
	}
	merged := make(map[string]string)
	for _, m := range tags {
		for k, v := range m {
			merged[k] = v
		}
	}
	c.CaptureError(err, component, operation, merged)
}

// CapturePanic reports a recovered panic value.
func CapturePanic(recovered interface{}, component string) {
	if recovered == nil {
		return
	}
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	}
	CaptureError(err, component, "panic", map[string]string{"panic": "true"})
}

// AddBreadcrumb records a breadcrumb on the global client.
func AddBreadcrumb(category, message string, data map[string]interface{}) {
	if c := current(); c != nil {
		c.AddBreadcrumb(category, message, data)
	}
}

// Flush waits for queued events on the global client.
func Flush(timeout time.Duration) bool {
	if c := current(); c != nil {
		return c.Flush(timeout)
	}
	return true
}

// Close shuts down the global client.
func Close() {
	globalMu.Lock()
	c := globalClient
	globalClient = nil
	globalMu.Unlock()
	if c != nil {
		c.Close()
	}
}
