package api

import (
	"errors"
	"fmt"
)

// ErrSummaryNotFound marks a 404 from the summary endpoint so callers can
// show a distinguished message instead of generic failure text.
var ErrSummaryNotFound = errors.New("summary not found")

// RateLimitError is the 429 rejection of the refresh endpoint. Detail is the
// server's human-readable message, RetryAfterSeconds its machine-readable
// wait hint (0 when the body carried none).
type RateLimitError struct {
	Detail            string
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = "rate limited"
	}
	return fmt.Sprintf("%s (retry after %ds)", msg, e.CooldownSeconds())
}

// CooldownSeconds is the wait the client must honor: the server hint with a
// floor of one second. The hint is otherwise trusted as-is, with no maximum
// and no client-side backoff on top.
func (e *RateLimitError) CooldownSeconds() int {
	if e.RetryAfterSeconds < 1 {
		return 1
	}
	return e.RetryAfterSeconds
}

// AsRateLimit unwraps err into a RateLimitError if there is one.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}

// StatusError covers every other non-2xx response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status=%d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("request failed (status=%d)", e.StatusCode)
}
