// Package reader turns chain objects into typed view models. A missing,
// deleted or malformed object is reported as Absent (ok == false), never as
// an error; errors are transport failures.
package reader

import (
	"context"
	"fmt"
	"strconv"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/sui"
)

const ownedPageSize = 50

type Reader struct {
	client  sui.Client
	decoder *Decoder
}

func New(client sui.Client, decoder *Decoder) *Reader {
	return &Reader{client: client, decoder: decoder}
}

func (r *Reader) Decoder() *Decoder {
	return r.decoder
}

func (r *Reader) Object(ctx context.Context, id string) (model.Entity, bool, error) {
	if !codec.IsAddress(id) {
		return nil, false, nil
	}
	resp, err := r.client.GetObject(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("object: %w", err)
	}
	raw, ok := resp.Raw()
	if !ok {
		logger.Debugf(ctx, "object: %s is absent", id)
		return nil, false, nil
	}
	e, ok := r.decoder.Decode(raw)
	if !ok {
		logger.Warnf(ctx, "object: could not decode %s of type %s", id, raw.Type)
	}
	return e, ok, nil
}

func typed[T model.Entity](e model.Entity, ok bool, err error) (T, bool, error) {
	var zero T
	if err != nil || !ok {
		return zero, false, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, false, nil
	}
	return t, true, nil
}

func (r *Reader) NFT(ctx context.Context, id string) (*model.ExperienceNFT, bool, error) {
	return typed[*model.ExperienceNFT](r.Object(ctx, id))
}

func (r *Reader) Listing(ctx context.Context, id string) (*model.Listing, bool, error) {
	return typed[*model.Listing](r.Object(ctx, id))
}

func (r *Reader) Auction(ctx context.Context, id string) (*model.Auction, bool, error) {
	return typed[*model.Auction](r.Object(ctx, id))
}

func (r *Reader) ProviderProfile(ctx context.Context, id string) (*model.ProviderProfile, bool, error) {
	return typed[*model.ProviderProfile](r.Object(ctx, id))
}

func (r *Reader) PurchaseReceipt(ctx context.Context, id string) (*model.PurchaseReceipt, bool, error) {
	return typed[*model.PurchaseReceipt](r.Object(ctx, id))
}

func (r *Reader) StakeReceipt(ctx context.Context, id string) (*model.StakeReceipt, bool, error) {
	return typed[*model.StakeReceipt](r.Object(ctx, id))
}

func (r *Reader) StakingPool(ctx context.Context, id string) (*model.StakingPool, bool, error) {
	return typed[*model.StakingPool](r.Object(ctx, id))
}

func (r *Reader) Proposal(ctx context.Context, id string) (*model.Proposal, bool, error) {
	return typed[*model.Proposal](r.Object(ctx, id))
}

// Many resolves ids in one batch, keeping input order and dropping Absent.
func (r *Reader) Many(ctx context.Context, ids []string) ([]model.Entity, error) {
	var valid []string
	for _, id := range ids {
		if codec.IsAddress(id) {
			valid = append(valid, id)
		}
	}
	resps, err := r.client.MultiGetObjects(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("many: %w", err)
	}
	return r.decodeAll(resps), nil
}

// OwnedBy lists every object of kind owned by owner.
func (r *Reader) OwnedBy(ctx context.Context, owner string, kind model.Kind) ([]model.Entity, error) {
	if !codec.IsAddress(owner) {
		return nil, apperr.Invalid("owner", "malformed address %q", owner)
	}
	structType := r.decoder.StructType(kind)
	var out []model.Entity
	var cursor *string
	for {
		page, err := r.client.GetOwnedObjects(ctx, owner, structType, cursor, ownedPageSize)
		if err != nil {
			return nil, fmt.Errorf("ownedBy: %w", err)
		}
		out = append(out, r.decodeAll(page.Data)...)
		if !page.HasNextPage || page.NextCursor == nil {
			return out, nil
		}
		cursor = page.NextCursor
	}
}

// ByType lists every object of kind known to the indexer.
func (r *Reader) ByType(ctx context.Context, kind model.Kind) ([]model.Entity, error) {
	raws, err := r.client.ObjectsByType(ctx, r.decoder.StructType(kind))
	if err != nil {
		return nil, fmt.Errorf("byType: %w", err)
	}
	var out []model.Entity
	for _, raw := range raws {
		if e, ok := r.decoder.Decode(raw); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Reader) decodeAll(resps []sui.ObjectResponse) []model.Entity {
	var out []model.Entity
	for _, resp := range resps {
		raw, ok := resp.Raw()
		if !ok {
			continue
		}
		if e, ok := r.decoder.Decode(raw); ok {
			out = append(out, e)
		}
	}
	return out
}

// Coins snapshots the owner's coin inventory of coinType.
func (r *Reader) Coins(ctx context.Context, owner, coinType string) ([]model.Coin, error) {
	raw, err := sui.AllCoins(ctx, r.client, owner, coinType)
	if err != nil {
		return nil, fmt.Errorf("coins: %w", err)
	}
	coins := make([]model.Coin, 0, len(raw))
	for _, c := range raw {
		b, err := strconv.ParseUint(c.Balance, 10, 64)
		if err != nil {
			logger.Warnf(ctx, "coins: skipping coin %s with balance %q", c.CoinObjectID, c.Balance)
			continue
		}
		coins = append(coins, model.Coin{CoinObjectID: c.CoinObjectID, CoinType: c.CoinType, Balance: b, Version: c.Version, Digest: c.Digest})
	}
	return coins, nil
}

func (r *Reader) Balance(ctx context.Context, owner, coinType string) (*model.Balance, error) {
	b, err := r.client.GetBalance(ctx, owner, coinType)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	total, err := strconv.ParseUint(b.TotalBalance, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("balance: malformed total %q: %w", b.TotalBalance, err)
	}
	return &model.Balance{CoinType: b.CoinType, CoinObjectCount: b.CoinObjectCount, TotalBalance: total}, nil
}

// Of keeps the entities of type T.
func Of[T model.Entity](es []model.Entity) []T {
	var out []T
	for _, e := range es {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
