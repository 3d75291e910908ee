package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "receipt:1:42", []byte("%PDF"), time.Minute))
	val, ok := c.Get(ctx, "receipt:1:42")
	require.True(t, ok)
	assert.Equal(t, []byte("%PDF"), val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(10)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Bounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Hour))
	}
	assert.LessOrEqual(t, c.Len(), 3)

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "k9", []byte("w"), time.Hour))
	val, ok := c.Get(ctx, "k9")
	require.True(t, ok)
	assert.Equal(t, []byte("w"), val)
}
