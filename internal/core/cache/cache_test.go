package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanspot/internal/core/cache"
)

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("caches within ttl", func(t *testing.T) {
		c := cache.New()
		var calls int32
		load := func(ctx context.Context) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return []byte("v"), nil
		}

		got, err := c.GetOrLoad(ctx, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)

		_, err = c.GetOrLoad(ctx, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("expired entry reloads", func(t *testing.T) {
		c := cache.New()
		var calls int32
		load := func(ctx context.Context) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return []byte("v"), nil
		}

		_, err := c.GetOrLoad(ctx, "k", -time.Second, load)
		require.NoError(t, err)
		_, err = c.GetOrLoad(ctx, "k", -time.Second, load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("load errors are not cached", func(t *testing.T) {
		c := cache.New()
		boom := errors.New("boom")
		_, err := c.GetOrLoad(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)

		got, err := c.GetOrLoad(ctx, "k", time.Minute, func(ctx context.Context) ([]byte, error) {
			return []byte("ok"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), got)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		c := cache.New()
		var calls int32
		load := func(ctx context.Context) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return []byte("v"), nil
		}

		_, err := c.GetOrLoad(ctx, "k", time.Minute, load)
		require.NoError(t, err)
		c.Invalidate("k")
		_, err = c.GetOrLoad(ctx, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		c := cache.New()
		var calls int32
		gate := make(chan struct{})
		load := func(ctx context.Context) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			<-gate
			return []byte("v"), nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := c.GetOrLoad(ctx, "k", time.Minute, load)
				assert.NoError(t, err)
				assert.Equal(t, []byte("v"), got)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(gate)
		wg.Wait()
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
