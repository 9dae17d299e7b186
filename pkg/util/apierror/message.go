// Package apierror extracts human readable messages from backend error bodies.
package apierror

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Shape is the error body the backend emits.
type Shape struct {
	Message    json.RawMessage `json:"message,omitempty"`
	Error      json.RawMessage `json:"error,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}

// Message returns the best-effort message of a JSON error body: a non-blank
// "message" string, a "message" array joined by ", ", a non-blank "error"
// string, in that order. ok is false when none applies.
func Message(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	var shape Shape
	if err := json.Unmarshal(body, &shape); err != nil {
		return "", false
	}

	if len(shape.Message) > 0 {
		var list []any
		if json.Unmarshal(shape.Message, &list) == nil {
			return joinList(list, ", "), true
		}
		var msg string
		if json.Unmarshal(shape.Message, &msg) == nil && strings.TrimSpace(msg) != "" {
			return msg, true
		}
	}

	if len(shape.Error) > 0 {
		var msg string
		if json.Unmarshal(shape.Error, &msg) == nil && strings.TrimSpace(msg) != "" {
			return msg, true
		}
	}
	return "", false
}

// joinList renders list the way the web client's Array.join does:
// null becomes empty and nested arrays are comma joined.
func joinList(list []any, sep string) string {
	parts := make([]string, 0, len(list))
	for _, v := range list {
		parts = append(parts, listItem(v))
	}
	return strings.Join(parts, sep)
}

func listItem(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		return joinList(v, ",")
	}
	return "[object Object]"
}

// MessageOr returns Message or fallback.
func MessageOr(body []byte, fallback string) string {
	if msg, ok := Message(body); ok {
		return msg
	}
	return fallback
}

// StatusFallback is the message used when a body carries nothing usable.
func StatusFallback(status int) string {
	return fmt.Sprintf("Error %d", status)
}
