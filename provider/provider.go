// Package provider serves provider profiles, their listings and reviews, and
// the provider-side actions.
package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/scanner"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type VIPRequest struct {
	ProviderAddress string `json:"provider_address" validate:"required,sui_addr"`
	Remove          bool   `json:"remove"`
}

type Provider struct {
	reader  *reader.Reader
	scanner *scanner.Scanner
	cache   *cache.Cache
	builder *txbuilder.Builder
	submit  *submit.Controller
}

func NewProvider(r *reader.Reader, s *scanner.Scanner, ch *cache.Cache, b *txbuilder.Builder, ctl *submit.Controller) *Provider {
	return &Provider{reader: r, scanner: s, cache: ch, builder: b, submit: ctl}
}

func (p *Provider) Profile(ctx context.Context, id string) (*model.ProviderProfile, error) {
	return cache.Load(ctx, p.cache, cache.NewKey(cache.Provider, id), func(ctx context.Context) (*model.ProviderProfile, error) {
		pp, ok, err := p.reader.ProviderProfile(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		if !ok {
			return nil, apperr.NotFound("provider", id)
		}
		return pp, nil
	})
}

func (p *Provider) listings(ctx context.Context, key cache.Key, profile *model.ProviderProfile) ([]*model.Listing, error) {
	return cache.Load(ctx, p.cache, key, func(ctx context.Context) ([]*model.Listing, error) {
		es, err := p.reader.Many(ctx, profile.ActiveListings)
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

func (p *Provider) Reviews(ctx context.Context, id string) ([]model.Review, error) {
	return cache.Load(ctx, p.cache, cache.NewKey(cache.ProviderReviews, id), func(ctx context.Context) ([]model.Review, error) {
		rs, err := scanner.Reviews(ctx, p.scanner, p.reader.Decoder().EventType("experience_nft", "ReviewAdded"), id)
		if err != nil {
			return nil, err
		}
		if rs == nil {
			rs = []model.Review{}
		}
		return rs, nil
	})
}

// Page loads the profile with its active listings while the review log is
// scanned concurrently.
func (p *Provider) Page(ctx context.Context, id string) (*model.ProviderPage, error) {
	var (
		page = &model.ProviderPage{}
		g, gctx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		pp, err := p.Profile(gctx, id)
		if err != nil {
			return err
		}
		ls, err := p.listings(gctx, cache.NewKey(cache.ProviderActiveListings, id), pp)
		if err != nil {
			return err
		}
		page.Profile, page.AverageRating, page.Listings = pp, pp.AverageRating(), ls
		return nil
	})
	g.Go(func() error {
		rs, err := p.Reviews(gctx, id)
		if err != nil {
			return err
		}
		page.Reviews = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	return page, nil
}

// ProfileOf returns the profile owned by wallet, or nil if it has none.
func (p *Provider) ProfileOf(ctx context.Context, wallet string) (*model.ProviderProfile, error) {
	pp, err := cache.Load(ctx, p.cache, cache.NewKey(cache.ProviderProfile, wallet), func(ctx context.Context) (*model.ProviderProfile, error) {
		es, err := p.reader.OwnedBy(ctx, wallet, model.KindProviderProfile)
		if err != nil {
			return nil, fmt.Errorf("profileOf: %w", err)
		}
		if ps := reader.Of[*model.ProviderProfile](es); len(ps) > 0 {
			return ps[0], nil
		}
		return nil, apperr.NotFound("provider profile of", wallet)
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return pp, err
}

func (p *Provider) Dashboard(ctx context.Context, wallet string) (*model.Dashboard, error) {
	d := &model.Dashboard{ActiveListings: []*model.Listing{}}
	pp, err := p.ProfileOf(ctx, wallet)
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	if pp != nil {
		d.Profile = pp
		g.Go(func() error {
			ls, err := p.listings(gctx, cache.NewKey(cache.ActiveListings, pp.ID), pp)
			if err != nil {
				return err
			}
			d.ActiveListings = ls
			return nil
		})
	}
	g.Go(func() error {
		nfts, err := cache.Load(gctx, p.cache, cache.NewKey(cache.OwnedNFTs, wallet), func(ctx context.Context) ([]*model.ExperienceNFT, error) {
			es, err := p.reader.OwnedBy(ctx, wallet, model.KindExperienceNFT)
			if err != nil {
				return nil, err
			}
			out := reader.Of[*model.ExperienceNFT](es)
			if out == nil {
				out = []*model.ExperienceNFT{}
			}
			return out, nil
		})
		if err != nil {
			return err
		}
		d.ListableNFTs = nfts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return d, nil
}

func (p *Provider) Register(ctx context.Context, wallet string, in txbuilder.RegisterProvider) (*submit.Outcome, error) {
	tx, err := p.builder.RegisterProvider(wallet, in)
	if err != nil {
		return nil, err
	}
	return p.submit.Submit(ctx, submit.RegisterProvider(wallet, tx))
}

// Review re-reads the purchase receipt so a consumed receipt is reported
// before anything is signed.
func (p *Provider) Review(ctx context.Context, wallet, receiptID string, in ReviewRequest) (*submit.Outcome, error) {
	rc, ok, err := p.reader.PurchaseReceipt(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("purchase receipt", receiptID)
	}
	tx, err := p.builder.AddReview(wallet, rc, in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}
	return p.submit.Submit(ctx, submit.AddReview(wallet, rc.ProviderID, rc.ID, tx))
}

func (p *Provider) VIP(ctx context.Context, wallet string, in VIPRequest) (*submit.Outcome, error) {
	tx, err := p.builder.VIP(wallet, in.ProviderAddress, in.Remove)
	if err != nil {
		return nil, err
	}
	return p.submit.Submit(ctx, submit.VIP(wallet, in.ProviderAddress, in.Remove, tx))
}
