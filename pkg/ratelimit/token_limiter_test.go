package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiterWithinBudget(t *testing.T) {
	l := NewTokenLimiter(100)

	require.NoError(t, l.Wait(context.Background(), 40))
	require.NoError(t, l.Wait(context.Background(), 40))
	assert.Equal(t, 20, l.GetRemaining())
}

func TestTokenLimiterOversizedRequestAdmitted(t *testing.T) {
	l := NewTokenLimiter(10)

	// A request above the whole budget must not deadlock.
	require.NoError(t, l.Wait(context.Background(), 50))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiterBlocksUntilContextCancel(t *testing.T) {
	l := NewTokenLimiter(10)
	require.NoError(t, l.Wait(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
