package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"tokentrip-marketplace/config"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/txbuilder"
)

const walletAddr = "0x0000000000000000000000000000000000000000000000000000000000000b0b"

func TestSuiAddressRule(t *testing.T) {
	ok := txbuilder.TransferNFT{NFTID: "0x21", Recipient: "0xbeef"}
	assert.NoError(t, validate.Struct(ok))

	bad := txbuilder.TransferNFT{NFTID: "0x21", Recipient: "beef"}
	assert.Error(t, validate.Struct(bad))
}

func TestDecodeRejectsInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nft_id":"0x21","recipient":"0xzz"}`))
	w := httptest.NewRecorder()
	var req txbuilder.TransferNFT
	assert.False(t, decode(r.Context(), w, r, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGate(t *testing.T) {
	ctx := c.SetContextWithValue(context.Background(), c.ContextKeyWallet, walletAddr)

	viper.Set(config.AdminAddress, "")
	_, ok := admin(ctx, httptest.NewRecorder())
	assert.True(t, ok)

	viper.Set(config.AdminAddress, "0xb0b")
	addr, ok := admin(ctx, httptest.NewRecorder())
	assert.True(t, ok)
	assert.Equal(t, walletAddr, addr)

	viper.Set(config.AdminAddress, "0xcafe")
	w := httptest.NewRecorder()
	_, ok = admin(ctx, w)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	viper.Set(config.AdminAddress, "")

	w = httptest.NewRecorder()
	_, ok = admin(context.Background(), w)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
