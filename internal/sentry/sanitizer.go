package sentry

import (
	"regexp"
	"strings"

	"github.com/getsentry/sentry-go"
)

var (
	homeDirPattern = regexp.MustCompile(`(/home/[^/\s]+|/Users/[^/\s]+|[A-Za-z]:\\Users\\[^\\\s]+)`)
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	secretPattern  = regexp.MustCompile(`(?i)(token|secret|password|passwd|key)[:=]\s*['"]?([^'"\s]+)['"]?`)
)

// sensitiveFields are keys whose values may carry candidate or query text.
var sensitiveFields = []string{
	"item", "text", "query", "selection", "input", "history", "entry",
	"password", "secret", "token", "key",
}

func sanitizeValue(value string) string {
	if value == "" {
		return value
	}
	value = homeDirPattern.ReplaceAllString(value, "/[USER_HOME]")
	value = emailPattern.ReplaceAllString(value, "[EMAIL_REDACTED]")
	value = secretPattern.ReplaceAllString(value, "${1}: [REDACTED]")
	return value
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(key, field) {
			return true
		}
	}
	return false
}

func sanitizeMap(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		switch {
		case isSensitiveKey(key):
			out[key] = "[REDACTED]"
		default:
			if s, ok := value.(string); ok {
				out[key] = sanitizeValue(s)
			} else {
				out[key] = value
			}
		}
	}
	return out
}

func sanitizeEvent(event *sentry.Event) *sentry.Event {
	if event == nil {
		return nil
	}

	event.Message = sanitizeValue(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = sanitizeValue(event.Exception[i].Value)
	}
	for key, value := range event.Tags {
		if isSensitiveKey(key) {
			event.Tags[key] = "[REDACTED]"
		} else {
			event.Tags[key] = sanitizeValue(value)
		}
	}
	event.Extra = sanitizeMap(event.Extra)
	event.User = sentry.User{}
	event.Request = nil
	return event
}

func sanitizeBreadcrumb(breadcrumb *sentry.Breadcrumb) *sentry.Breadcrumb {
	if breadcrumb == nil {
		return nil
	}
	breadcrumb.Message = sanitizeValue(breadcrumb.Message)
	breadcrumb.Data = sanitizeMap(breadcrumb.Data)
	return breadcrumb
}
