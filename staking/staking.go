package staking

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"tokentrip-marketplace/amount"
	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

const SUIType = "0x2::sui::SUI"

// APY is the advertised annual yield of the pool.
var APY = decimal.RequireFromString("0.08")

type StakeRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type Staking struct {
	reader  *reader.Reader
	cache   *cache.Cache
	builder *txbuilder.Builder
	submit  *submit.Controller
}

func NewStaking(r *reader.Reader, ch *cache.Cache, b *txbuilder.Builder, s *submit.Controller) *Staking {
	return &Staking{reader: r, cache: ch, builder: b, submit: s}
}

func (s *Staking) Pool(ctx context.Context) (*model.StakingPool, error) {
	return cache.Load(ctx, s.cache, cache.NewKey(cache.StakingPool), func(ctx context.Context) (*model.StakingPool, error) {
		id := s.builder.Config().StakingPoolID
		p, ok, err := s.reader.StakingPool(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("pool: %w", err)
		}
		if !ok {
			return nil, apperr.NotFound("staking pool", id)
		}
		return p, nil
	})
}

func (s *Staking) Receipts(ctx context.Context, wallet string) ([]*model.StakeReceipt, error) {
	return cache.Load(ctx, s.cache, cache.NewKey(cache.StakeReceipts, wallet), func(ctx context.Context) ([]*model.StakeReceipt, error) {
		es, err := s.reader.OwnedBy(ctx, wallet, model.KindStakeReceipt)
		if err != nil {
			return nil, fmt.Errorf("receipts: %w", err)
		}
		out := reader.Of[*model.StakeReceipt](es)
		if out == nil {
			out = []*model.StakeReceipt{}
		}
		return out, nil
	})
}

func (s *Staking) balance(ctx context.Context, key cache.Key, wallet, coinType string) (*model.Balance, error) {
	return cache.Load(ctx, s.cache, key, func(ctx context.Context) (*model.Balance, error) {
		return s.reader.Balance(ctx, wallet, coinType)
	})
}

func (s *Staking) TKTBalance(ctx context.Context, wallet string) (*model.Balance, error) {
	return s.balance(ctx, cache.NewKey(cache.TKTBalance, wallet), wallet, s.builder.TKTType())
}

func (s *Staking) SUIBalance(ctx context.Context, wallet string) (*model.Balance, error) {
	return s.balance(ctx, cache.NewKey(cache.SUIBalance, wallet), wallet, SUIType)
}

// EstimatedReturns is the yearly yield of staking stake whole TKT.
func EstimatedReturns(stake string) (float64, error) {
	if stake == "" {
		return 0, nil
	}
	v, err := amount.ToSmallestUnit("amount", stake)
	if err != nil {
		return 0, err
	}
	f, _ := amount.FromSmallestUnit(v).Mul(APY).Float64()
	return f, nil
}

// Overview assembles the staking page for wallet. stake, when set, is the
// amount the wallet is considering and drives EstimatedReturns.
func (s *Staking) Overview(ctx context.Context, wallet, stake string) (*model.StakingOverview, error) {
	est, err := EstimatedReturns(stake)
	if err != nil {
		return nil, err
	}
	pool, err := s.Pool(ctx)
	if err != nil {
		return nil, err
	}
	o := &model.StakingOverview{
		Pool:             pool,
		TotalStaked:      pool.TotalStakedDisplay(),
		EstimatedReturns: est,
	}
	o.APY, _ = APY.Float64()
	if wallet == "" {
		o.Receipts = []*model.StakeReceipt{}
		return o, nil
	}
	if o.Receipts, err = s.Receipts(ctx, wallet); err != nil {
		return nil, err
	}
	b, err := s.TKTBalance(ctx, wallet)
	if err != nil {
		return nil, err
	}
	o.WalletBalance = amount.Display(b.TotalBalance)
	return o, nil
}

// Stake parses amt before the coin inventory is fetched.
func (s *Staking) Stake(ctx context.Context, wallet, amt string) (*submit.Outcome, error) {
	v, err := amount.ToSmallestUnit("amount", amt)
	if err != nil {
		return nil, err
	}
	coins, err := s.reader.Coins(ctx, wallet, s.builder.TKTType())
	if err != nil {
		return nil, fmt.Errorf("stake: %w", err)
	}
	tx, err := s.builder.Stake(wallet, v, coins)
	if err != nil {
		return nil, err
	}
	return s.submit.Submit(ctx, submit.Stake(wallet, tx))
}

func (s *Staking) Claim(ctx context.Context, wallet, receiptID string) (*submit.Outcome, error) {
	tx, err := s.builder.ClaimRewards(wallet, receiptID)
	if err != nil {
		return nil, err
	}
	return s.submit.Submit(ctx, submit.ClaimRewards(wallet, receiptID, tx))
}
