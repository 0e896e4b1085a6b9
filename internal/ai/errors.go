package ai

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// defaultRetryAfter is how long a provider's circuit stays open when the
// 429 response carries no usable Retry-After.
const defaultRetryAfter = 60 * time.Second

// RateLimitError reports that an AI provider throttled a completion request.
// FallbackClient opens the provider's circuit for RetryAfter.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s throttled completion (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError builds a RateLimitError for provider. A non-positive
// retryAfterSecs falls back to defaultRetryAfter.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := defaultRetryAfter
	if retryAfterSecs > 0 {
		retryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return &RateLimitError{Err: err, RetryAfter: retryAfter, Provider: provider}
}

// ParseRetryAfterHeader reads a Retry-After value in either of its two HTTP
// forms, delay-seconds or an HTTP date, and returns whole seconds to wait.
// Anything unparseable or already in the past yields 0.
func ParseRetryAfterHeader(val string) int {
	return parseRetryAfter(val, time.Now())
}

func parseRetryAfter(val string, now time.Time) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return max(secs, 0)
	}
	at, err := http.ParseTime(val)
	if err != nil {
		return 0
	}
	return max(int(at.Sub(now).Seconds()), 0)
}
