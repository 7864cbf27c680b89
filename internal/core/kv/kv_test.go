package kv_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanspot/internal/core/kv"
)

// Both backends must behave identically for the document store above them.
func TestBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) kv.Store{
		"memory": func(t *testing.T) kv.Store {
			return kv.NewMemory()
		},
		"redis": func(t *testing.T) kv.Store {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			return kv.NewRedisWithClient(client)
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := open(t)

			t.Run("missing key", func(t *testing.T) {
				_, err := st.Get(ctx, "absent")
				assert.ErrorIs(t, err, kv.ErrNotFound)
			})

			t.Run("set get roundtrip", func(t *testing.T) {
				require.NoError(t, st.Set(ctx, "k", []byte(`{"a":1}`)))
				got, err := st.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"a":1}`), got)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, st.Set(ctx, "k", []byte("v1")))
				require.NoError(t, st.Set(ctx, "k", []byte("v2")))
				got, err := st.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte("v2"), got)
			})

			t.Run("delete", func(t *testing.T) {
				require.NoError(t, st.Set(ctx, "gone", []byte("x")))
				require.NoError(t, st.Del(ctx, "gone"))
				_, err := st.Get(ctx, "gone")
				assert.ErrorIs(t, err, kv.ErrNotFound)
			})

			t.Run("delete absent is fine", func(t *testing.T) {
				assert.NoError(t, st.Del(ctx, "never-there"))
			})
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	val := []byte("original")
	require.NoError(t, m.Set(ctx, "k", val))
	val[0] = 'X'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
