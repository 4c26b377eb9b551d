package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLocal(t *testing.T, size int) (*Local, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l, err := NewLocal(size)
	require.NoError(t, err)
	return l.WithClock(clk.now), clk
}

func TestLocal_ExpiryIsLazy(t *testing.T) {
	l, clk := newTestLocal(t, 4)
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "a", []byte("1"), 10*time.Second))

	clk.t = clk.t.Add(9 * time.Second)
	v, ok, err := l.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)

	clk.t = clk.t.Add(time.Second)
	require.Equal(t, 1, l.Len(), "expired entry stays until read")

	_, ok, err = l.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, l.Len(), "read purges the expired entry")
}

func TestLocal_ZeroTTLNeverExpires(t *testing.T) {
	l, clk := newTestLocal(t, 4)
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "a", []byte("1"), 0))
	clk.t = clk.t.Add(24 * 365 * time.Hour)

	_, ok, err := l.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLocal_SetNX(t *testing.T) {
	l, clk := newTestLocal(t, 4)
	ctx := context.Background()

	ok, err := l.SetNX(ctx, "k", []byte("first"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.SetNX(ctx, "k", []byte("second"), time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	v, _, _ := l.Get(ctx, "k")
	require.Equal(t, []byte("first"), v)

	clk.t = clk.t.Add(time.Minute)
	ok, err = l.SetNX(ctx, "k", []byte("third"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "an expired entry does not block a claim")
}

func TestLocal_EvictsLeastRecentlyUsed(t *testing.T) {
	l, _ := newTestLocal(t, 2)
	ctx := context.Background()

	require.NoError(t, l.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, l.Set(ctx, "b", []byte("2"), time.Minute))
	_, _, _ = l.Get(ctx, "a")
	require.NoError(t, l.Set(ctx, "c", []byte("3"), time.Minute))

	_, ok, _ := l.Get(ctx, "b")
	require.False(t, ok)
	_, ok, _ = l.Get(ctx, "a")
	require.True(t, ok)
}

func TestLocal_StoresCopy(t *testing.T) {
	l, _ := newTestLocal(t, 2)
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, l.Set(ctx, "a", buf, time.Minute))
	buf[0] = 'x'

	v, _, _ := l.Get(ctx, "a")
	require.Equal(t, []byte("abc"), v)
}

func TestNewLocal_InvalidSize(t *testing.T) {
	_, err := NewLocal(0)
	require.Error(t, err)
}
