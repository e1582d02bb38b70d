package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}

func TestNewKey(t *testing.T) {
	assert.Equal(t, Key("listing:0x0000000000000000000000000000000000000000000000000000000000000011"), NewKey(Listing, "0x11"))
	assert.Equal(t, Key("listings"), NewKey(Listings))
	assert.Equal(t, NewKey(MyAssets, "0x0000000000000000000000000000000000000000000000000000000000000b0b"), NewKey(MyAssets, "0xB0B"))
	assert.Equal(t, Key("provider:not-an-id"), NewKey(Provider, "not-an-id"))
}

func TestLoadCachesUntilInvalidated(t *testing.T) {
	c := New(NewMemoryStore(), time.Minute)
	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (item, error) {
		calls++
		return item{Name: "boat", Price: uint64(calls)}, nil
	}

	v, err := Load(ctx, c, NewKey(Listing, "0x11"), fetch)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Price)

	v, err = Load(ctx, c, NewKey(Listing, "0x11"), fetch)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Price)
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Invalidate(ctx, NewKey(Listing, "0x11")))
	v, err = Load(ctx, c, NewKey(Listing, "0x11"), fetch)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Price)
}

func TestLoadDoesNotCacheErrors(t *testing.T) {
	s := NewMemoryStore()
	c := New(s, time.Minute)
	_, err := Load(context.Background(), c, NewKey(Auctions), func(context.Context) ([]item, error) {
		return nil, errors.New("node down")
	})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Unix(100, 0)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Second))
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}
