package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a tokens-per-minute budget for AI API calls. Requests
// block until the sliding one-minute window has room for the requested amount.
type TokenLimiter struct {
	mu        sync.Mutex
	maxTokens int
	used      int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter with the given per-minute token budget.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokens: maxTokensPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// Wait blocks until tokens can be consumed or the context is done.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if now.After(l.windowEnd) {
			l.used = 0
			l.windowEnd = now.Add(time.Minute)
		}
		if l.used+tokens <= l.maxTokens || tokens > l.maxTokens {
			// Oversized requests are admitted alone rather than blocking forever.
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Now().After(l.windowEnd) {
		return l.maxTokens
	}
	remaining := l.maxTokens - l.used
	if remaining < 0 {
		return 0
	}
	return remaining
}
