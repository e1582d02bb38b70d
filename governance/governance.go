// Package governance lists DAO proposals and submits votes, new proposals
// and executions.
package governance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/scanner"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

type VoteRequest struct {
	Support bool `json:"support"`
}

type Governance struct {
	reader  *reader.Reader
	scanner *scanner.Scanner
	cache   *cache.Cache
	builder *txbuilder.Builder
	submit  *submit.Controller
	now     func() time.Time
}

func NewGovernance(r *reader.Reader, s *scanner.Scanner, ch *cache.Cache, b *txbuilder.Builder, ctl *submit.Controller) *Governance {
	return &Governance{reader: r, scanner: s, cache: ch, builder: b, submit: ctl, now: time.Now}
}

// Proposals resolves every ProposalCreated event to its proposal object,
// newest proposal first.
func (g *Governance) Proposals(ctx context.Context) ([]*model.Proposal, error) {
	return cache.Load(ctx, g.cache, cache.NewKey(cache.DAOProposals), func(ctx context.Context) ([]*model.Proposal, error) {
		ps, err := scanner.Resolve[*model.Proposal](ctx, g.scanner, g.reader,
			g.reader.Decoder().EventType("dao", "ProposalCreated"), scanner.Field("proposal_id"))
		if err != nil {
			return nil, fmt.Errorf("proposals: %w", err)
		}
		if ps == nil {
			ps = []*model.Proposal{}
		}
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].NewerThan(ps[j]) })
		return ps, nil
	})
}

func (g *Governance) Proposal(ctx context.Context, id string) (*model.Proposal, error) {
	return cache.Load(ctx, g.cache, cache.NewKey(cache.Proposal, id), func(ctx context.Context) (*model.Proposal, error) {
		return g.fresh(ctx, id)
	})
}

func (g *Governance) fresh(ctx context.Context, id string) (*model.Proposal, error) {
	p, ok, err := g.reader.Proposal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("proposal: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("proposal", id)
	}
	return p, nil
}

// Vote casts the wallet's whole TKT balance as the ballot.
func (g *Governance) Vote(ctx context.Context, wallet, id string, support bool) (*submit.Outcome, error) {
	p, err := g.fresh(ctx, id)
	if err != nil {
		return nil, err
	}
	coins, err := g.reader.Coins(ctx, wallet, g.builder.TKTType())
	if err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	tx, err := g.builder.Vote(wallet, p, support, coins, g.now())
	if err != nil {
		return nil, err
	}
	return g.submit.Submit(ctx, submit.Vote(wallet, p.ID, tx))
}

func (g *Governance) Create(ctx context.Context, wallet string, in txbuilder.CreateProposal) (*submit.Outcome, error) {
	tx, err := g.builder.CreateProposal(wallet, in)
	if err != nil {
		return nil, err
	}
	return g.submit.Submit(ctx, submit.CreateProposal(wallet, tx))
}

func (g *Governance) Execute(ctx context.Context, wallet, id string) (*submit.Outcome, error) {
	p, err := g.fresh(ctx, id)
	if err != nil {
		return nil, err
	}
	tx, err := g.builder.ExecuteProposal(wallet, p, g.now())
	if err != nil {
		return nil, err
	}
	return g.submit.Submit(ctx, submit.ExecuteProposal(wallet, p.ID, tx))
}
