package atssdk

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the expected failure modes. Everything here is a
// result the UI layer renders, not a crash: NotFound becomes empty-state
// messaging, AuthRequired a sign-in prompt. A missing tenant is not an
// error at all; reads resolve to StatusNoTenant with an empty result.
var (
	// ErrNotFound marks a terminal miss: the resource does not exist. Never
	// retried.
	ErrNotFound = errors.New("atssdk: not found")

	// ErrAuthRequired marks the in-band sign-in sentinel. Never retried.
	ErrAuthRequired = errors.New("atssdk: authentication required")

	// ErrDemoReadOnly rejects writes against the demo fixture dataset.
	ErrDemoReadOnly = errors.New("atssdk: demo data is read-only")
)

// NetworkError is a transient transport or server failure. It is the only
// error class the facade retries.
type NetworkError struct {
	Op  string // e.g. "list clients"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("atssdk: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError carries per-field messages from a rejected mutation
// payload. Surfaced verbatim so forms can render inline errors.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "atssdk: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("atssdk: validation failed:")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Fields[k])
	}
	return b.String()
}
