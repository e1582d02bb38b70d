// Package cache is the per-query read cache. Entries live until their TTL
// expires or an action invalidates them; nothing polls.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/logger"
)

// Key identifies one query, e.g. "listing:0x00..11".
type Key string

// NewKey joins parts with ":". Address and object id parts are normalized to
// 64 hex digits so "0xB0B" and "0x0...0b0b" name the same entry.
func NewKey(parts ...string) Key {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p
		if n, err := codec.NormalizeAddress(p); err == nil {
			out[i] = n
		}
	}
	return Key(strings.Join(out, ":"))
}

// Query names shared by the services and the invalidation sets.
const (
	Listings               = "listings"
	Listing                = "listing"
	Auctions               = "auctions"
	Auction                = "auction"
	NFT                    = "nft"
	OwnedNFTs              = "owned-nfts"
	MyAssets               = "my-assets"
	ProviderProfile        = "provider-profile"
	Provider               = "provider"
	ProviderReviews        = "provider-reviews"
	ProviderActiveListings = "provider-active-listings"
	ActiveListings         = "active-listings"
	StakingPool            = "staking-pool"
	StakeReceipts          = "stake-receipts"
	TKTBalance             = "tkt-balance"
	SUIBalance             = "sui-balance"
	DAOProposals           = "dao-proposals"
	Proposal               = "proposal"
	VIPRegistry            = "vip-registry"
)

type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...Key) error
}

// Cache wraps a Store with a default TTL.
type Cache struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Load returns the cached value for key, or runs fetch and caches its result.
// Store failures degrade to a direct fetch.
func Load[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var v T
	if b, ok, err := c.store.Get(ctx, key); err != nil {
		logger.Warnf(ctx, "load: cache get %s failed: %+v", key, err)
	} else if ok {
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
		logger.Warnf(ctx, "load: discarding unreadable cache entry %s", key)
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, fmt.Errorf("load: %s: %w", key, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		logger.Warnf(ctx, "load: cache set %s failed: %+v", key, err)
	}
	return v, nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate: %w", err)
	}
	logger.Debugf(ctx, "invalidate: %v", keys)
	return nil
}
