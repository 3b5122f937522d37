package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/SscSPs/ledger/internal/apperrors"
)

// RetryConfig parameterizes commitWithRetry (spec §5: "Commit may be
// retried internally on transient errors with exponential backoff").
type RetryConfig struct {
	Attempts    int
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryConfig matches the spec §6 defaults.
var DefaultRetryConfig = RetryConfig{
	Attempts:   3,
	Backoff:    50 * time.Millisecond,
	MaxBackoff: 1000 * time.Millisecond,
}

// commitWithRetry calls commit, retrying with exponential backoff and
// jitter while the error is apperrors.ErrTransient, up to cfg.Attempts
// total attempts. Non-transient errors propagate immediately without
// retry, per spec §7's propagation policy.
func commitWithRetry(ctx context.Context, cfg RetryConfig, commit func(ctx context.Context) error) error {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.Backoff

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = commit(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, apperrors.ErrTransient) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}
		wait := backoff
		if wait > cfg.MaxBackoff {
			wait = cfg.MaxBackoff
		}
		jittered := wait/2 + time.Duration(rand.Int63n(int64(wait/2+1)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jittered):
		}
		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
	return lastErr
}
