package logging

import (
	"strings"

	"go.uber.org/zap"
)

// Filtered replaces the value of every sensitive field.
const Filtered = "***FILTERED***"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"secret":        {},
	"secret_key":    {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
	"api_key":       {},
	"authorization": {},
	"cookie":        {},
	"session_id":    {},
	"private_key":   {},
}

// IsSensitiveKey reports whether the field name denotes a credential or
// other secret that must never be logged.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// Redact replaces the values of sensitive zap fields with Filtered.
// Non-sensitive fields pass through untouched.
func Redact(fields ...zap.Field) []zap.Field {
	redacted := make([]zap.Field, len(fields))
	for i, field := range fields {
		if IsSensitiveKey(field.Key) {
			redacted[i] = zap.String(field.Key, Filtered)
			continue
		}
		redacted[i] = field
	}
	return redacted
}

// Sanitize returns a deep copy of data with sensitive keys replaced by
// Filtered, recursing into nested maps. Use it before logging request or
// response payloads.
func Sanitize(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	sanitized := make(map[string]any, len(data))
	for key, value := range data {
		if IsSensitiveKey(key) {
			sanitized[key] = Filtered
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			sanitized[key] = Sanitize(nested)
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}
