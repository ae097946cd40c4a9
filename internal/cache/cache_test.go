package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresConfigOrder(t *testing.T) {
	a := Key("tree", map[string]string{"iterations": "3", "angle": "30"}, 7, false)
	b := Key("tree", map[string]string{"angle": "30", "iterations": "3"}, 7, false)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Key("tree", map[string]string{"angle": "30", "iterations": "3"}, 8, false))
	assert.NotEqual(t, a, Key("tree", map[string]string{"angle": "30", "iterations": "3"}, 7, true))
	assert.NotEqual(t, a, Key("highway", map[string]string{"angle": "30", "iterations": "3"}, 7, false))
	assert.Contains(t, a, "tree:")
}

// runStoreContract exercises the behavior every Store shares.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemory(4))
}

func TestMemoryEvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	require.NoError(t, m.Set(ctx, "c", []byte("3")))
	assert.Equal(t, 2, m.Len())
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	m := NewMemory(4, WithMemoryTTL(time.Minute))
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	now = now.Add(59 * time.Second)
	_, err := m.Get(ctx, "k")
	assert.NoError(t, err)
	now = now.Add(time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(1)
	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v))
	v[0] = 'x'
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore(t *testing.T) {
	_, client := newMiniredis(t)
	runStoreContract(t, NewRedisFromClient(client))
}

func TestRedisPrefixAndTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	r := NewRedisFromClient(client, WithPrefix("test:"), WithTTL(30*time.Second))
	ctx := context.Background()
	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.Set(ctx, "k", []byte("v")))

	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, 30*time.Second, mr.TTL("test:k"))

	mr.FastForward(31 * time.Second)
	_, err := r.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisUnavailable(t *testing.T) {
	mr, client := newMiniredis(t)
	r := NewRedisFromClient(client)
	mr.Close()
	_, err := r.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
