package bridge

import (
	"fmt"
	"time"
)

// The bridge keeps its error taxonomy typed until the callback boundary so
// the rendered strings stay specific: a refused connection, an exceeded
// budget and a malformed body all read differently to the host.

// ConnectionError reports that Ollama could not be reached at all
// (DNS failure, refused connection, reset).
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return "cannot reach Ollama: " + e.Cause.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// TimeoutError reports that the configured request budget elapsed before a
// response arrived. The in-flight call is cancelled; the host still receives
// exactly one callback carrying this error.
type TimeoutError struct {
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.Budget)
}

// RemoteError reports a non-2xx HTTP status from Ollama. Message carries the
// structured error body when Ollama sent one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Ollama returned HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Ollama returned HTTP %d", e.Status)
}

// DecodeError reports a response body that does not match the expected shape
// for an endpoint: malformed JSON, a wrong type, or a missing required
// field. Required fields are never default-filled; the whole call fails.
type DecodeError struct {
	Endpoint string
	Detail   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response shape for %s: %s", e.Endpoint, e.Detail)
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Detail
}
