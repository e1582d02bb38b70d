// Package market serves listings, owned assets and the sale-side actions.
package market

import (
	"context"
	"fmt"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

type Market struct {
	reader  *reader.Reader
	cache   *cache.Cache
	builder *txbuilder.Builder
	submit  *submit.Controller
}

func NewMarket(r *reader.Reader, ch *cache.Cache, b *txbuilder.Builder, s *submit.Controller) *Market {
	return &Market{reader: r, cache: ch, builder: b, submit: s}
}

// Listings returns every listing still available for purchase.
func (m *Market) Listings(ctx context.Context) ([]*model.Listing, error) {
	return cache.Load(ctx, m.cache, cache.NewKey(cache.Listings), func(ctx context.Context) ([]*model.Listing, error) {
		es, err := m.reader.ByType(ctx, model.KindListing)
		if err != nil {
			return nil, fmt.Errorf("listings: %w", err)
		}
		out := []*model.Listing{}
		for _, l := range reader.Of[*model.Listing](es) {
			if l.IsAvailable {
				out = append(out, l)
			}
		}
		return out, nil
	})
}

func (m *Market) Listing(ctx context.Context, id string) (*model.Listing, error) {
	return cache.Load(ctx, m.cache, cache.NewKey(cache.Listing, id), func(ctx context.Context) (*model.Listing, error) {
		return m.freshListing(ctx, id)
	})
}

func (m *Market) freshListing(ctx context.Context, id string) (*model.Listing, error) {
	l, ok, err := m.reader.Listing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("listing", id)
	}
	return l, nil
}

func (m *Market) NFT(ctx context.Context, id string) (*model.ExperienceNFT, error) {
	return cache.Load(ctx, m.cache, cache.NewKey(cache.NFT, id), func(ctx context.Context) (*model.ExperienceNFT, error) {
		n, ok, err := m.reader.NFT(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("nft: %w", err)
		}
		if !ok {
			return nil, apperr.NotFound("nft", id)
		}
		return n, nil
	})
}

// OwnedNFTs lists the experiences held by owner.
func (m *Market) OwnedNFTs(ctx context.Context, owner string) ([]*model.ExperienceNFT, error) {
	return cache.Load(ctx, m.cache, cache.NewKey(cache.OwnedNFTs, owner), func(ctx context.Context) ([]*model.ExperienceNFT, error) {
		es, err := m.reader.OwnedBy(ctx, owner, model.KindExperienceNFT)
		if err != nil {
			return nil, fmt.Errorf("ownedNFTs: %w", err)
		}
		return nonNil(reader.Of[*model.ExperienceNFT](es)), nil
	})
}

// MyAssets lists owned experiences and purchase receipts.
func (m *Market) MyAssets(ctx context.Context, owner string) (*model.MyAssets, error) {
	return cache.Load(ctx, m.cache, cache.NewKey(cache.MyAssets, owner), func(ctx context.Context) (*model.MyAssets, error) {
		nfts, err := m.reader.OwnedBy(ctx, owner, model.KindExperienceNFT)
		if err != nil {
			return nil, fmt.Errorf("myAssets: %w", err)
		}
		receipts, err := m.reader.OwnedBy(ctx, owner, model.KindPurchaseReceipt)
		if err != nil {
			return nil, fmt.Errorf("myAssets: %w", err)
		}
		return &model.MyAssets{
			NFTs:     nonNil(reader.Of[*model.ExperienceNFT](nfts)),
			Receipts: nonNil(reader.Of[*model.PurchaseReceipt](receipts)),
		}, nil
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (m *Market) ListForSale(ctx context.Context, wallet string, in txbuilder.ListForSale) (*submit.Outcome, error) {
	tx, err := m.builder.ListForSale(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.ListForSale(wallet, in.ProviderProfileID, in.NFTID, tx))
}

func (m *Market) ListForResale(ctx context.Context, wallet string, in txbuilder.ListForResale) (*submit.Outcome, error) {
	tx, err := m.builder.ListForResale(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.ListForResale(wallet, in.NFTID, tx))
}

func (m *Market) UpdateDescription(ctx context.Context, wallet string, in txbuilder.UpdateDescription) (*submit.Outcome, error) {
	tx, err := m.builder.UpdateDescription(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.UpdateDescription(wallet, in.NFTID, tx))
}

// Purchase re-reads the listing from chain before paying for it.
func (m *Market) Purchase(ctx context.Context, wallet, listingID string) (*submit.Outcome, error) {
	l, err := m.freshListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	var coins []model.Coin
	if l.IsTKTListing {
		coins, err = m.reader.Coins(ctx, wallet, m.builder.TKTType())
		if err != nil {
			return nil, fmt.Errorf("purchase: %w", err)
		}
	}
	tx, err := m.builder.Purchase(wallet, l, coins)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.Purchase(wallet, l.ID, l.ProviderID, l.Seller, tx))
}

func (m *Market) Fractionalize(ctx context.Context, wallet string, in txbuilder.Fractionalize) (*submit.Outcome, error) {
	tx, err := m.builder.Fractionalize(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.Fractionalize(wallet, in.NFTID, tx))
}

func (m *Market) TransferNFT(ctx context.Context, wallet string, in txbuilder.TransferNFT) (*submit.Outcome, error) {
	tx, err := m.builder.TransferNFT(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.TransferNFT(wallet, in.NFTID, in.Recipient, tx))
}

// Mint creates a new experience; the wallet must hold the admin capability.
func (m *Market) Mint(ctx context.Context, wallet string, in txbuilder.MintExperience) (*submit.Outcome, error) {
	tx, err := m.builder.Mint(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.Mint(wallet, in.Recipient, tx))
}

func (m *Market) MintTKT(ctx context.Context, wallet string, in txbuilder.MintTKT) (*submit.Outcome, error) {
	tx, err := m.builder.MintTKT(wallet, in)
	if err != nil {
		return nil, err
	}
	return m.submit.Submit(ctx, submit.MintTKT(wallet, in.Recipient, tx))
}
