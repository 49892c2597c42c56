// Package fault holds the shared error vocabulary: sentinel errors services
// return across package boundaries, and a single normalization helper that
// turns arbitrary failure values into a readable message. The original
// codebase re-implemented the stringify-anything dance at every call site;
// here it lives in one place.
package fault

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated = errors.New("User not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("service temporarily unavailable")
)

// Message renders any failure value as a non-empty string. Preference order:
// native error message, a message/error/details field on a map, JSON
// serialization, plain formatting. It never returns "" and never the Go
// equivalent of "[object Object]" (a bare map/struct dump with no content).
func Message(v any) string {
	switch x := v.(type) {
	case nil:
		return "unknown error"
	case error:
		if msg := x.Error(); msg != "" {
			return msg
		}
		return "unknown error"
	case string:
		if x != "" {
			return x
		}
		return "unknown error"
	case map[string]any:
		for _, key := range []string{"message", "error", "details"} {
			if field, ok := x[key]; ok {
				if msg, ok := field.(string); ok && msg != "" {
					return msg
				}
			}
		}
		if b, err := json.Marshal(x); err == nil && len(b) > 2 {
			return string(b)
		}
		return "unknown error"
	default:
		if b, err := json.Marshal(v); err == nil && string(b) != "{}" && string(b) != "null" {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}
