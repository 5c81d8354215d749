package service

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// denySubstrings redact any detail key that looks credential-bearing.
var denySubstrings = []string{
	"apikey",
	"token",
	"password",
	"passwd",
	"secret",
	"credential",
	"authorization",
	"bearer",
	"privatekey",
}

// denyExact redact keys that carry message bodies: the audit trail records
// that something happened, never what the user wrote.
var denyExact = map[string]bool{
	"message":  true,
	"text":     true,
	"content":  true,
	"body":     true,
	"prompt":   true,
	"rawtext":  true,
	"response": true,
}

// SanitizeDetails returns a deep copy of details with every denied key's
// value replaced by a redaction marker. Applied before hashing and storage so
// the audit trail cannot itself become a PII leak. Nested maps and slices are
// walked recursively.
func SanitizeDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if deniedKey(k) {
			out[k] = redactedValue
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return SanitizeDetails(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

// deniedKey normalizes the key (lowercase, separators stripped) and checks it
// against the deny lists.
func deniedKey(key string) bool {
	normalized := strings.ToLower(key)
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)

	if denyExact[normalized] {
		return true
	}
	for _, deny := range denySubstrings {
		if strings.Contains(normalized, deny) {
			return true
		}
	}
	return false
}
