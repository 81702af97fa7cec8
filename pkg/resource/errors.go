package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetchFailed covers transport failures, undecodable bodies and 5xx
	// responses.
	ErrFetchFailed = errors.New("resource: fetch failed")
	// ErrRejected covers 4xx responses, where the server refused the request
	// (for example a full cell).
	ErrRejected = errors.New("resource: rejected")
)

// Error describes a failed call against one resource.
type Error struct {
	Op       string
	Resource string
	Status   int
	Message  string
	Kind     error
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "resource: %s %s", e.Op, e.Resource)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the classification sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	out := []error{e.Kind}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Reason returns the server supplied message if there is one, else the error
// text. Suitable for a notification description.
func Reason(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// serverMessage extracts a human message from an error body. Spring style
// JSON bodies carry it in "message" (or "error"); plain text bodies are used
// as is.
func serverMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
