package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/provider"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/scanner"
	"tokentrip-marketplace/txbuilder"
)

const seller = "0xbeef"

func (fx *fixture) providerService() *provider.Provider {
	return provider.NewProvider(reader.New(fx.fake, fx.dec), scanner.New(fx.fake, 2), fx.cache, fx.builder, fx.submit)
}

func (fx *fixture) putProfile(active ...string) {
	ids := make([]interface{}, len(active))
	for i, id := range active {
		ids[i] = id
	}
	fx.fake.Put("0x31", fx.dec.StructType(model.KindProviderProfile), map[string]interface{}{
		"id":              map[string]interface{}{"id": "0x31"},
		"name":            "Blue Lagoon Tours",
		"active_listings": ids,
	})
}

func TestListForSaleRefreshesProviderViews(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	p := fx.providerService()
	typ := fx.dec.StructType(model.KindListing)
	fx.putProfile("0x11")
	fx.fake.Put("0x11", typ, listing("0x11", "1000000000", true, false))
	fx.fake.Own(wallet, "0x31")

	page, err := p.Page(ctx, "0x31")
	require.NoError(t, err)
	require.Len(t, page.Listings, 1)
	d, err := p.Dashboard(ctx, wallet)
	require.NoError(t, err)
	require.Len(t, d.ActiveListings, 1)

	fx.signer.OnExec = func(*txbuilder.Transaction) {
		fx.fake.Put("0x13", typ, listing("0x13", "2000000000", true, false))
		fx.putProfile("0x11", "0x13")
	}
	_, err = fx.market.ListForSale(ctx, wallet, txbuilder.ListForSale{ProviderProfileID: "0x31", NFTID: "0x23", Price: "2"})
	require.NoError(t, err)

	page, err = p.Page(ctx, "0x31")
	require.NoError(t, err)
	assert.Len(t, page.Listings, 2)
	d, err = p.Dashboard(ctx, wallet)
	require.NoError(t, err)
	assert.Len(t, d.ActiveListings, 2)
}

func TestPurchaseRefreshesSellerViews(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	p := fx.providerService()
	typ := fx.dec.StructType(model.KindListing)
	fx.putProfile("0x11", "0x13")
	fx.fake.Put("0x11", typ, listing("0x11", "1000000000", true, false))
	fx.fake.Put("0x13", typ, listing("0x13", "1000000000", true, false))
	fx.fake.Own(seller, "0x31")

	d, err := p.Dashboard(ctx, seller)
	require.NoError(t, err)
	require.Len(t, d.ActiveListings, 2)
	page, err := p.Page(ctx, "0x31")
	require.NoError(t, err)
	require.Len(t, page.Listings, 2)

	fx.signer.OnExec = func(*txbuilder.Transaction) {
		fx.fake.Put("0x11", typ, listing("0x11", "1000000000", false, false))
		fx.putProfile("0x13")
	}
	_, err = fx.market.Purchase(ctx, wallet, "0x11")
	require.NoError(t, err)

	d, err = p.Dashboard(ctx, seller)
	require.NoError(t, err)
	require.Len(t, d.ActiveListings, 1)
	assert.Equal(t, "0x13", d.ActiveListings[0].ID)

	page, err = p.Page(ctx, "0x31")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x13"}, page.Profile.ActiveListings)
	assert.Len(t, page.Listings, 1)
}

func TestTransferRefreshesAssetsOfShortAddress(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.fake.Put("0x21", fx.dec.StructType(model.KindExperienceNFT), map[string]interface{}{
		"id": map[string]interface{}{"id": "0x21"}, "name": "Boat trip", "image_url": "https://img/1.png",
	})
	fx.fake.Own(wallet, "0x21")

	a, err := fx.market.MyAssets(ctx, wallet)
	require.NoError(t, err)
	require.Len(t, a.NFTs, 1)

	normalized, err := codec.NormalizeAddress(wallet)
	require.NoError(t, err)
	fx.signer.OnExec = func(*txbuilder.Transaction) { fx.fake.Delete("0x21") }
	_, err = fx.market.TransferNFT(ctx, normalized, txbuilder.TransferNFT{NFTID: "0x21", Recipient: "0xcafe"})
	require.NoError(t, err)

	a, err = fx.market.MyAssets(ctx, wallet)
	require.NoError(t, err)
	assert.Empty(t, a.NFTs)
}
