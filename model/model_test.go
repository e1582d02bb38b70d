package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.UnixMilli(1_700_000_000_000)

func TestProposalExecution(t *testing.T) {
	ended := uint64(now.Add(-time.Second).UnixMilli())
	open := uint64(now.Add(time.Hour).UnixMilli())

	tests := []struct {
		name     string
		p        Proposal
		active   bool
		execute  bool
		approved bool
	}{
		{"passed", Proposal{ForVotes: 120, AgainstVotes: 80, EndTimestampMs: ended}, false, true, true},
		{"rejected", Proposal{ForVotes: 80, AgainstVotes: 120, EndTimestampMs: ended}, false, false, false},
		{"tie", Proposal{ForVotes: 100, AgainstVotes: 100, EndTimestampMs: ended}, false, false, false},
		{"still voting", Proposal{ForVotes: 120, AgainstVotes: 80, EndTimestampMs: open}, true, false, true},
		{"executed", Proposal{ForVotes: 120, AgainstVotes: 80, EndTimestampMs: ended, IsExecuted: true}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.p.IsVotingActive(now))
			assert.Equal(t, tt.execute, tt.p.CanBeExecuted(now))
			assert.Equal(t, tt.approved, tt.p.Approved())
		})
	}
}

func TestProposalPercentages(t *testing.T) {
	p := Proposal{ForVotes: 120, AgainstVotes: 80}
	assert.InDelta(t, 60.0, p.ForPercentage(), 1e-9)
	assert.InDelta(t, 40.0, p.AgainstPercentage(), 1e-9)

	var none Proposal
	assert.Zero(t, none.ForPercentage())
	assert.Zero(t, none.AgainstPercentage())
}

func TestProposalNewerThan(t *testing.T) {
	p := func(id string) *Proposal { return &Proposal{ProposalID: id} }
	assert.True(t, p("10").NewerThan(p("9")))
	assert.False(t, p("9").NewerThan(p("10")))
	assert.True(t, p("0xb2").NewerThan(p("0xa1")))
}

func TestAuctionBids(t *testing.T) {
	a := Auction{HighestBid: 5_000_000_000, EndTimestampMs: uint64(now.Add(time.Minute).UnixMilli())}
	assert.False(t, a.AcceptsBid(5_000_000_000, now))
	assert.True(t, a.AcceptsBid(5_000_000_001, now))
	assert.False(t, a.CanBeSettled(now))

	later := now.Add(time.Minute)
	assert.True(t, a.HasEnded(later))
	assert.False(t, a.AcceptsBid(9_000_000_000, later))
	assert.True(t, a.CanBeSettled(later))

	a.IsSettled = true
	assert.False(t, a.CanBeSettled(later))
}

func TestListingCurrency(t *testing.T) {
	l := Listing{Price: 2_500_000_000}
	assert.Equal(t, CurrencySUI, l.Currency())
	assert.Equal(t, 2.5, l.DisplayPrice())
	l.IsTKTListing = true
	assert.Equal(t, CurrencyTKT, l.Currency())
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, (&ProviderProfile{}).AverageRating())
	assert.Equal(t, 4.5, (&ProviderProfile{TotalReviews: 2, TotalRatingPoints: 9}).AverageRating())
}

func TestStakingDisplay(t *testing.T) {
	assert.Equal(t, 5.0, (&StakingPool{TotalStaked: 5_000_000_000}).TotalStakedDisplay())
}
