package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"upkeep/internal/domain"
	"upkeep/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackClient tries providers in order, skipping unavailable ones and those
// with open circuits. It implements port.AIClient.
type FallbackClient struct {
	clients  []port.AIClient
	circuits []*circuitState
	names    []string
}

// NewFallbackClient creates a FallbackClient from an ordered list of clients and their names.
func NewFallbackClient(clients []port.AIClient, names []string) *FallbackClient {
	circuits := make([]*circuitState, len(clients))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackClient{
		clients:  clients,
		circuits: circuits,
		names:    names,
	}
}

// IsAvailable reports whether at least one provider has credentials.
func (f *FallbackClient) IsAvailable() bool {
	for _, c := range f.clients {
		if c.IsAvailable() {
			return true
		}
	}
	return false
}

func (f *FallbackClient) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	if !f.IsAvailable() {
		return nil, domain.ErrAIUnavailable
	}

	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, c := range f.clients {
		if !c.IsAvailable() {
			continue
		}
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("ai.FallbackClient: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		resp, err := c.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		log.Printf("ai.FallbackClient: %s failed: %v", f.names[i], err)
		lastErr = err

		if ctx.Err() != nil {
			return nil, err
		}

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		// Every available provider was skipped or rate limited.
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}
