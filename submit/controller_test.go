package submit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/journal"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/signer"
	"tokentrip-marketplace/sui/suitest"
	"tokentrip-marketplace/txbuilder"
)

const wallet = "0xb0b"

type fakeSigner struct {
	calls    int
	err      error
	release  chan struct{}
	onExec   func()
	panics   bool
	noResult bool
}

func (f *fakeSigner) SignAndExecute(ctx context.Context, tx *txbuilder.Transaction) (*signer.Result, error) {
	f.calls++
	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("bridge exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.noResult {
		return nil, nil
	}
	if f.onExec != nil {
		f.onExec()
	}
	return &signer.Result{Digest: "D1"}, nil
}

type memJournal struct {
	entries []journal.Entry
}

func (m *memJournal) Record(ctx context.Context, e journal.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memJournal) Recent(ctx context.Context, wallet string, limit int) ([]journal.Entry, error) {
	return m.entries, nil
}

func listingFields(available bool) map[string]interface{} {
	return map[string]interface{}{
		"id": map[string]interface{}{"id": "0x11"},
		"nft": map[string]interface{}{
			"id":        "0x21",
			"name":      "Boat trip",
			"image_url": map[string]interface{}{"url": "https://img/1.png"},
		},
		"price":          "5000000000",
		"is_available":   available,
		"is_tkt_listing": false,
		"seller":         "0xbeef",
		"provider_id":    "0x31",
	}
}

func TestPurchaseInvalidatesListing(t *testing.T) {
	ctx := context.Background()
	f := suitest.NewFake()
	d := reader.NewDecoder("0xa1", "0xd1")
	r := reader.New(f, d)
	ch := cache.New(cache.NewMemoryStore(), time.Hour)
	f.Put("0x11", d.StructType(model.KindListing), listingFields(true))

	load := func() (*model.Listing, error) {
		return cache.Load(ctx, ch, cache.NewKey(cache.Listing, "0x11"), func(ctx context.Context) (*model.Listing, error) {
			l, ok, err := r.Listing(ctx, "0x11")
			if err != nil || !ok {
				return nil, err
			}
			return l, nil
		})
	}

	l, err := load()
	require.NoError(t, err)
	require.True(t, l.IsAvailable)

	s := &fakeSigner{onExec: func() {
		f.Put("0x11", d.StructType(model.KindListing), listingFields(false))
	}}
	j := &memJournal{}
	ct := NewController(s, ch, j)

	tx, err := txbuilder.New(txbuilder.Config{PackageID: "0xa1"}).Purchase(wallet, l, nil)
	require.NoError(t, err)
	out, err := ct.Submit(ctx, Purchase(wallet, l.ID, l.ProviderID, l.Seller, tx))
	require.NoError(t, err)
	assert.Equal(t, "D1", out.Digest)
	assert.Equal(t, RedirectListings, out.Redirect)
	assert.Equal(t, Success, ct.State("purchase:0x11"))

	l, err = load()
	require.NoError(t, err)
	assert.False(t, l.IsAvailable)

	require.Len(t, j.entries, 1)
	assert.Equal(t, journal.StatusSuccess, j.entries[0].Status)
	assert.Equal(t, "purchase", j.entries[0].Action)
}

func TestSubmitRejectsWhilePending(t *testing.T) {
	s := &fakeSigner{release: make(chan struct{})}
	ct := NewController(s, cache.New(cache.NewMemoryStore(), time.Minute), nil)
	a := PlaceBid(wallet, "0x12", txbuilder.NewTransaction(wallet))

	done := make(chan error, 1)
	go func() {
		_, err := ct.Submit(context.Background(), a)
		done <- err
	}()

	require.Eventually(t, func() bool { return ct.State(a.Control) == Pending }, time.Second, time.Millisecond)
	_, err := ct.Submit(context.Background(), a)
	assert.ErrorIs(t, err, apperr.ErrPending)

	close(s.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, Success, ct.State(a.Control))
}

func TestSubmitFailureIsVerbatimAndNotRetried(t *testing.T) {
	s := &fakeSigner{err: &apperr.SubmissionError{Message: "MoveAbort: bid too low"}}
	store := cache.NewMemoryStore()
	ch := cache.New(store, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, cache.NewKey(cache.Auctions), []byte("[]"), time.Minute))
	j := &memJournal{}
	ct := NewController(s, ch, j)

	_, err := ct.Submit(ctx, PlaceBid(wallet, "0x12", txbuilder.NewTransaction(wallet)))
	require.True(t, apperr.IsSubmission(err))
	assert.Equal(t, "MoveAbort: bid too low", err.Error())
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, Failed, ct.State("bid:0x12"))

	_, ok, _ := store.Get(ctx, cache.NewKey(cache.Auctions))
	assert.True(t, ok, "failed submissions leave the cache alone")
	require.Len(t, j.entries, 1)
	assert.Equal(t, journal.StatusFailed, j.entries[0].Status)

	s.err = errors.New("connection reset")
	_, err = ct.Submit(ctx, PlaceBid(wallet, "0x12", txbuilder.NewTransaction(wallet)))
	assert.True(t, apperr.IsSubmission(err), "a failed control can be submitted again")
}

func TestInvalidationSets(t *testing.T) {
	tx := txbuilder.NewTransaction(wallet)
	k := cache.NewKey
	tests := []struct {
		name     string
		action   Action
		keys     []cache.Key
		redirect string
	}{
		{"list", ListForSale(wallet, "0x31", "0x21", tx), []cache.Key{
			k(cache.ProviderProfile, wallet), k(cache.Listings),
			k(cache.Provider, "0x31"), k(cache.ProviderActiveListings, "0x31"), k(cache.ActiveListings, "0x31"),
			k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet),
		}, ""},
		{"resale", ListForResale(wallet, "0x21", tx), []cache.Key{
			k(cache.Listings), k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet),
		}, ""},
		{"purchase", Purchase(wallet, "0x11", "0x31", "0xbeef", tx), []cache.Key{
			k(cache.Listings), k(cache.Listing, "0x11"), k(cache.ProviderProfile, "0xbeef"),
			k(cache.Provider, "0x31"), k(cache.ProviderActiveListings, "0x31"), k(cache.ActiveListings, "0x31"),
			k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet),
		}, RedirectListings},
		{"create auction", CreateAuction(wallet, "0x21", tx), []cache.Key{
			k(cache.Auctions), k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet),
		}, ""},
		{"settle", SettleAuction(wallet, "0x12", "0xcafe", tx), []cache.Key{
			k(cache.Auction, "0x12"), k(cache.Auctions), k(cache.OwnedNFTs, "0xcafe"), k(cache.MyAssets, "0xcafe"),
		}, RedirectAuctions},
		{"fractionalize", Fractionalize(wallet, "0x21", tx), []cache.Key{
			k(cache.NFT, "0x21"), k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet),
		}, RedirectHome},
		{"transfer", TransferNFT(wallet, "0x21", "0xcafe", tx), []cache.Key{
			k(cache.NFT, "0x21"), k(cache.OwnedNFTs, wallet), k(cache.MyAssets, wallet), k(cache.OwnedNFTs, "0xcafe"),
		}, ""},
		{"review", AddReview(wallet, "0x31", "0x51", tx), []cache.Key{
			k(cache.ProviderReviews, "0x31"), k(cache.Provider, "0x31"), k(cache.MyAssets, wallet),
		}, RedirectHome},
		{"stake", Stake(wallet, tx), []cache.Key{k(cache.StakingPool), k(cache.StakeReceipts, wallet), k(cache.TKTBalance, wallet)}, ""},
		{"claim", ClaimRewards(wallet, "0x41", tx), []cache.Key{k(cache.StakingPool), k(cache.StakeReceipts, wallet), k(cache.SUIBalance, wallet)}, ""},
		{"vote", Vote(wallet, "0x61", tx), []cache.Key{k(cache.Proposal, "0x61"), k(cache.DAOProposals)}, ""},
		{"execute", ExecuteProposal(wallet, "0x61", tx), []cache.Key{k(cache.Proposal, "0x61"), k(cache.DAOProposals)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Subset(t, tt.action.Invalidates, tt.keys)
			assert.Equal(t, tt.redirect, tt.action.Redirect)
		})
	}
}

func TestSubmitSignerPanicReleasesControl(t *testing.T) {
	s := &fakeSigner{panics: true}
	ct := NewController(s, cache.New(cache.NewMemoryStore(), time.Minute), nil)
	a := PlaceBid(wallet, "0x12", txbuilder.NewTransaction(wallet))

	assert.Panics(t, func() { _, _ = ct.Submit(context.Background(), a) })
	assert.Equal(t, Failed, ct.State(a.Control))

	s.panics = false
	_, err := ct.Submit(context.Background(), a)
	require.NoError(t, err, "control is not stuck pending")
}

func TestSubmitSignerWithoutResult(t *testing.T) {
	s := &fakeSigner{noResult: true}
	j := &memJournal{}
	ct := NewController(s, cache.New(cache.NewMemoryStore(), time.Minute), j)
	a := PlaceBid(wallet, "0x12", txbuilder.NewTransaction(wallet))

	_, err := ct.Submit(context.Background(), a)
	assert.True(t, apperr.IsSubmission(err))
	assert.Equal(t, Failed, ct.State(a.Control))
	require.Len(t, j.entries, 1)
	assert.Equal(t, journal.StatusFailed, j.entries[0].Status)
}
