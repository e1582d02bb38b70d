package auction

import (
	"context"
	"fmt"
	"time"

	"tokentrip-marketplace/amount"
	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

// BidRequest is the body of a place-bid call. Amount is in whole SUI.
type BidRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type Auctions struct {
	reader  *reader.Reader
	cache   *cache.Cache
	builder *txbuilder.Builder
	submit  *submit.Controller
	now     func() time.Time
}

func NewAuctions(r *reader.Reader, ch *cache.Cache, b *txbuilder.Builder, s *submit.Controller) *Auctions {
	return &Auctions{reader: r, cache: ch, builder: b, submit: s, now: time.Now}
}

// List returns the auctions not yet settled, ended ones included so they can
// be settled.
func (a *Auctions) List(ctx context.Context) ([]*model.Auction, error) {
	return cache.Load(ctx, a.cache, cache.NewKey(cache.Auctions), func(ctx context.Context) ([]*model.Auction, error) {
		es, err := a.reader.ByType(ctx, model.KindAuction)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		out := []*model.Auction{}
		for _, au := range reader.Of[*model.Auction](es) {
			if !au.IsSettled {
				out = append(out, au)
			}
		}
		return out, nil
	})
}

func (a *Auctions) Get(ctx context.Context, id string) (*model.Auction, error) {
	return cache.Load(ctx, a.cache, cache.NewKey(cache.Auction, id), func(ctx context.Context) (*model.Auction, error) {
		return a.fresh(ctx, id)
	})
}

func (a *Auctions) fresh(ctx context.Context, id string) (*model.Auction, error) {
	au, ok, err := a.reader.Auction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("auction: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("auction", id)
	}
	return au, nil
}

func (a *Auctions) Create(ctx context.Context, wallet string, in txbuilder.CreateAuction) (*submit.Outcome, error) {
	tx, err := a.builder.CreateAuction(wallet, in)
	if err != nil {
		return nil, err
	}
	return a.submit.Submit(ctx, submit.CreateAuction(wallet, in.NFTID, tx))
}

// Bid checks the bid against the auction as it is on chain now, not against
// the cached copy. A malformed bid is rejected before the auction is read.
func (a *Auctions) Bid(ctx context.Context, wallet, id, bid string) (*submit.Outcome, error) {
	v, err := amount.ToSmallestUnit("bid", bid)
	if err != nil {
		return nil, err
	}
	au, err := a.fresh(ctx, id)
	if err != nil {
		return nil, err
	}
	tx, err := a.builder.PlaceBid(wallet, au, v, a.now())
	if err != nil {
		return nil, err
	}
	return a.submit.Submit(ctx, submit.PlaceBid(wallet, au.ID, tx))
}

func (a *Auctions) Settle(ctx context.Context, wallet, id string) (*submit.Outcome, error) {
	au, err := a.fresh(ctx, id)
	if err != nil {
		return nil, err
	}
	tx, err := a.builder.SettleAuction(wallet, au, a.now())
	if err != nil {
		return nil, err
	}
	return a.submit.Submit(ctx, submit.SettleAuction(wallet, au.ID, au.HighestBidder, tx))
}
