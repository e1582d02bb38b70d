package txbuilder

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/model"
)

const sender = "0xb0b"

var testConfig = Config{
	PackageID:        "0xa1",
	TreasuryID:       "0xa2",
	StakingPoolID:    "0xa3",
	AdminCapID:       "0xa4",
	VIPRegistryID:    "0xa5",
	TKTPackageID:     "0xa6",
	TKTTreasuryCapID: "0xa7",
	DAOPackageID:     "0xd1",
	DAOID:            "0xd2",
	DAOTreasuryID:    "0xd3",
	MaxMergeCoins:    255,
}

func newBuilder() *Builder {
	return New(testConfig)
}

func input(t *Transaction, a Argument) CallArg {
	return t.Inputs[a.Index]
}

func lastCall(t *Transaction) Command {
	return t.Commands[len(t.Commands)-1]
}

func coins(balances ...uint64) []model.Coin {
	out := make([]model.Coin, len(balances))
	for i, b := range balances {
		out[i] = model.Coin{CoinObjectID: fmt.Sprintf("0xc%d", i+1), Balance: b}
	}
	return out
}

func TestListForSaleRejectsBadPrices(t *testing.T) {
	b := newBuilder()
	for _, price := range []string{"0", "-1", "abc", ""} {
		_, err := b.ListForSale(sender, ListForSale{ProviderProfileID: "0x31", NFTID: "0x21", Price: price})
		require.Error(t, err, price)
		assert.True(t, apperr.IsValidation(err), price)
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount, price)
	}
}

func TestListForSaleArguments(t *testing.T) {
	b := newBuilder()
	tx, err := b.ListForSale(sender, ListForSale{ProviderProfileID: "0x31", NFTID: "0x21", Price: "5", TKT: true})
	require.NoError(t, err)
	require.Len(t, tx.Commands, 1)
	c := tx.Commands[0]
	assert.Equal(t, "0xa1::experience_nft::list_for_sale_with_tkt", c.Target)
	require.Len(t, c.Arguments, 3)
	assert.Equal(t, "0x31", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, "0x21", input(tx, c.Arguments[1]).ObjectID)
	assert.Equal(t, codec.U64(5000000000), input(tx, c.Arguments[2]).Bytes)
}

func TestFractionalizeValidation(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name   string
		shares []Share
	}{
		{"over 100", []Share{{Recipient: "0x1", Percentage: "60"}, {Recipient: "0x2", Percentage: "50"}}},
		{"zero share", []Share{{Recipient: "0x1", Percentage: "0"}}},
		{"fractional share", []Share{{Recipient: "0x1", Percentage: "1.5"}}},
		{"bad recipient", []Share{{Recipient: "bob", Percentage: "10"}}},
		{"missing recipient", []Share{{Percentage: "10"}}},
		{"nothing", []Share{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Fractionalize(sender, Fractionalize{NFTID: "0x21", Shares: tt.shares})
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestFractionalizeArguments(t *testing.T) {
	b := newBuilder()
	tx, err := b.Fractionalize(sender, Fractionalize{NFTID: "0x21", Shares: []Share{
		{Recipient: "0x1", Percentage: "40"},
		{},
		{Recipient: "0x2", Percentage: "60"},
	}})
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0xa1::experience_nft::fractionize", c.Target)
	assert.Equal(t, "0x21", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, codec.VectorU64([]uint64{40, 60}), input(tx, c.Arguments[1]).Bytes)
	addrs, _ := codec.VectorAddress([]string{"0x1", "0x2"})
	assert.Equal(t, addrs, input(tx, c.Arguments[2]).Bytes)
}

func TestPurchaseWithGas(t *testing.T) {
	b := newBuilder()
	l := &model.Listing{ID: "0x11", Price: 5000000000, IsAvailable: true}
	tx, err := b.Purchase(sender, l, nil)
	require.NoError(t, err)
	require.Len(t, tx.Commands, 2)

	split := tx.Commands[0]
	assert.Equal(t, CmdSplitCoins, split.Kind)
	assert.Equal(t, GasCoin(), split.Arguments[0])
	assert.Equal(t, codec.U64(5000000000), input(tx, split.Arguments[1]).Bytes)

	c := tx.Commands[1]
	assert.Equal(t, "0xa1::experience_nft::purchase", c.Target)
	require.Len(t, c.Arguments, 5)
	assert.Equal(t, "0x11", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, "0xa2", input(tx, c.Arguments[1]).ObjectID)
	assert.Equal(t, "0xa5", input(tx, c.Arguments[2]).ObjectID)
	assert.Equal(t, "0xa3", input(tx, c.Arguments[3]).ObjectID)
	assert.Equal(t, Argument{Kind: ArgNestedResult, Index: 0}, c.Arguments[4])
}

func TestPurchaseWithTKTMergesThenSplits(t *testing.T) {
	b := newBuilder()
	l := &model.Listing{ID: "0x11", Price: 5, IsAvailable: true, IsTKTListing: true}
	tx, err := b.Purchase(sender, l, coins(2, 2, 2))
	require.NoError(t, err)
	require.Len(t, tx.Commands, 3)

	merge := tx.Commands[0]
	assert.Equal(t, CmdMergeCoins, merge.Kind)
	assert.Equal(t, "0xc1", input(tx, merge.Arguments[0]).ObjectID)
	require.Len(t, merge.Arguments, 3, "primary plus N-1 sources")

	split := tx.Commands[1]
	assert.Equal(t, CmdSplitCoins, split.Kind)
	assert.Equal(t, merge.Arguments[0], split.Arguments[0])
	assert.Equal(t, codec.U64(5), input(tx, split.Arguments[1]).Bytes)

	c := tx.Commands[2]
	assert.Equal(t, "0xa1::experience_nft::purchase_with_tkt", c.Target)
	assert.Equal(t, "0x11", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, Argument{Kind: ArgNestedResult, Index: 1}, c.Arguments[1])
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	b := newBuilder()
	l := &model.Listing{ID: "0x11", Price: 10, IsAvailable: true, IsTKTListing: true}

	_, err := b.Purchase(sender, l, nil)
	assert.True(t, apperr.IsInsufficientFunds(err))

	_, err = b.Purchase(sender, l, coins(3, 3))
	var funds *apperr.InsufficientFunds
	require.True(t, errors.As(err, &funds))
	assert.Equal(t, uint64(6), funds.Available)
	assert.Equal(t, "0xa6::tkt::TKT", funds.CoinType)
}

func TestPurchaseUnavailableListing(t *testing.T) {
	_, err := newBuilder().Purchase(sender, &model.Listing{ID: "0x11", Price: 1}, nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestSelectCoinsCap(t *testing.T) {
	chosen, err := SelectCoins(coins(1, 9, 5, 7), 20, 2, "TKT")
	require.NoError(t, err)
	require.Len(t, chosen, 3)
	assert.Equal(t, uint64(9), chosen[0].Balance)
	assert.Equal(t, uint64(7), chosen[1].Balance)
	assert.Equal(t, uint64(5), chosen[2].Balance)

	_, err = SelectCoins(coins(1, 9, 5, 7), 22, 2, "TKT")
	assert.True(t, apperr.IsInsufficientFunds(err))
}

func TestPlaceBid(t *testing.T) {
	b := newBuilder()
	now := time.UnixMilli(1000)
	a := &model.Auction{ID: "0x12", HighestBid: 2000000000, EndTimestampMs: 5000}

	for _, bid := range []uint64{0, 1000000000, 2000000000} {
		_, err := b.PlaceBid(sender, a, bid, now)
		assert.True(t, apperr.IsValidation(err), bid)
	}

	_, err := b.PlaceBid(sender, a, 3000000000, time.UnixMilli(5000))
	assert.True(t, apperr.IsValidation(err), "ended auction")

	tx, err := b.PlaceBid(sender, a, 2500000000, now)
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0xa1::experience_nft::place_bid", c.Target)
	assert.Equal(t, "0x12", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, ArgNestedResult, c.Arguments[1].Kind)
	assert.Equal(t, ClockObjectID, input(tx, c.Arguments[2]).ObjectID)
	assert.Equal(t, codec.U64(2500000000), input(tx, tx.Commands[0].Arguments[1]).Bytes)
}

func TestSettleAuction(t *testing.T) {
	b := newBuilder()
	a := &model.Auction{ID: "0x12", EndTimestampMs: 5000}
	_, err := b.SettleAuction(sender, a, time.UnixMilli(1000))
	assert.True(t, apperr.IsValidation(err))

	tx, err := b.SettleAuction(sender, a, time.UnixMilli(6000))
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0xa2", input(tx, c.Arguments[1]).ObjectID)
	assert.Equal(t, ClockObjectID, input(tx, c.Arguments[2]).ObjectID)
}

func TestAddReview(t *testing.T) {
	b := newBuilder()
	r := &model.PurchaseReceipt{ID: "0x51", ProviderID: "0x31"}
	for _, rating := range []int{0, 6} {
		_, err := b.AddReview(sender, r, rating, "nice")
		assert.True(t, apperr.IsValidation(err))
	}
	_, err := b.AddReview(sender, r, 4, "  <b></b> ")
	assert.True(t, apperr.IsValidation(err), "empty after sanitizing")

	tx, err := b.AddReview(sender, r, 4, "Great <script>alert(1)</script>guide & boat")
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0x31", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, "0x51", input(tx, c.Arguments[1]).ObjectID)
	assert.Equal(t, codec.U8(4), input(tx, c.Arguments[2]).Bytes)
	assert.Equal(t, codec.String("Great guide & boat"), input(tx, c.Arguments[3]).Bytes)
}

func TestStake(t *testing.T) {
	b := newBuilder()
	tx, err := b.Stake(sender, 1500000000, coins(1000000000, 1000000000))
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0xa1::experience_nft::stake", c.Target)
	assert.Equal(t, []string{"0xa6::tkt::TKT"}, c.TypeArguments)
	assert.Equal(t, "0xa3", input(tx, c.Arguments[0]).ObjectID)

	_, err = b.Stake(sender, 3000000000, coins(1000000000, 1000000000))
	assert.True(t, apperr.IsInsufficientFunds(err))

	_, err = b.Stake(sender, 0, coins(1000000000))
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
}

func TestVoteUsesMergedCoinWithoutSplit(t *testing.T) {
	b := newBuilder()
	p := &model.Proposal{ID: "0x61", EndTimestampMs: 5000}
	tx, err := b.Vote(sender, p, true, coins(4, 6), time.UnixMilli(1000))
	require.NoError(t, err)
	require.Len(t, tx.Commands, 2)
	assert.Equal(t, CmdMergeCoins, tx.Commands[0].Kind)
	c := tx.Commands[1]
	assert.Equal(t, "0xd1::dao::vote", c.Target)
	assert.Equal(t, "0x61", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, "0xc1", input(tx, c.Arguments[1]).ObjectID)
	assert.Equal(t, codec.Bool(true), input(tx, c.Arguments[2]).Bytes)
	assert.Equal(t, ClockObjectID, input(tx, c.Arguments[3]).ObjectID)

	_, err = b.Vote(sender, p, true, coins(4), time.UnixMilli(6000))
	assert.True(t, apperr.IsValidation(err))
}

func TestExecuteProposal(t *testing.T) {
	b := newBuilder()
	after := time.UnixMilli(6000)

	_, err := b.ExecuteProposal(sender, &model.Proposal{ID: "0x61", ForVotes: 80, AgainstVotes: 120, EndTimestampMs: 5000}, after)
	assert.True(t, apperr.IsValidation(err))

	tx, err := b.ExecuteProposal(sender, &model.Proposal{ID: "0x61", ForVotes: 120, AgainstVotes: 80, EndTimestampMs: 5000}, after)
	require.NoError(t, err)
	c := lastCall(tx)
	assert.Equal(t, "0xd1::dao::execute_proposal", c.Target)
	assert.Equal(t, "0xd3", input(tx, c.Arguments[1]).ObjectID)
}

func TestCreateProposalArguments(t *testing.T) {
	tx, err := newBuilder().CreateProposal(sender, CreateProposal{Title: "Fund", Description: "A festival", Recipient: "0xfe", Amount: "10"})
	require.NoError(t, err)
	c := lastCall(tx)
	require.Len(t, c.Arguments, 6)
	assert.Equal(t, "0xd2", input(tx, c.Arguments[0]).ObjectID)
	assert.Equal(t, codec.String("Fund"), input(tx, c.Arguments[1]).Bytes)
	addr, _ := codec.Address("0xfe")
	assert.Equal(t, addr, input(tx, c.Arguments[3]).Bytes)
	assert.Equal(t, codec.U64(10000000000), input(tx, c.Arguments[4]).Bytes)
}

func TestMint(t *testing.T) {
	b := newBuilder()
	in := MintExperience{
		Recipient:        "0xb0b",
		Name:             "Sunset sail",
		ImageURL:         "https://img/1.png",
		Serial:           7,
		RoyaltyRecipient: "0xbeef",
		RoyaltyBps:       500,
		Attributes:       []model.Attribute{{Key: "seat", Value: "A1"}},
	}
	tx, err := b.Mint(sender, in)
	require.NoError(t, err)

	kinds := make([]string, len(tx.Commands))
	for i, c := range tx.Commands {
		kinds[i] = c.Kind
	}
	assert.Equal(t, []string{CmdMoveCall, CmdMakeMoveVec, CmdMoveCall, CmdTransferObjects}, kinds)
	assert.Equal(t, "0xa1::experience_nft::new_attribute", tx.Commands[0].Target)
	assert.Equal(t, "0xa1::experience_nft::Attribute", tx.Commands[1].ElementType)

	mint := tx.Commands[2]
	require.Len(t, mint.Arguments, 14)
	assert.Equal(t, "0xa4", input(tx, mint.Arguments[0]).ObjectID)
	assert.Equal(t, codec.U64(7), input(tx, mint.Arguments[9]).Bytes)
	assert.Equal(t, codec.U16(500), input(tx, mint.Arguments[12]).Bytes)
	assert.Equal(t, Argument{Kind: ArgResult, Index: 1}, mint.Arguments[13])

	in.RoyaltyBps = 10001
	_, err = b.Mint(sender, in)
	assert.True(t, apperr.IsValidation(err))
}

func TestSenderRequired(t *testing.T) {
	_, err := newBuilder().RegisterProvider("", RegisterProvider{Name: "a", ImageURL: "https://x"})
	assert.True(t, apperr.IsValidation(err))
}

func TestObjectInputsAreShared(t *testing.T) {
	tx := NewTransaction(sender)
	a := tx.Object("0x6")
	b := tx.Object("0x6")
	assert.Equal(t, a, b)
	assert.Len(t, tx.Inputs, 1)
}

func TestNestedResultKeepsIndexZero(t *testing.T) {
	tx := NewTransaction(sender)
	split := tx.SplitCoins(GasCoin(), tx.U64(5))[0]

	b, err := json.Marshal(split)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"NestedResult","index":0,"resultIndex":0}`, string(b))

	b, err = json.Marshal(tx.Object("0x11"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Input","index":1}`, string(b))

	var back Argument
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"NestedResult","index":2,"resultIndex":1}`), &back))
	assert.Equal(t, Argument{Kind: ArgNestedResult, Index: 2, ResultIndex: 1}, back)
}
