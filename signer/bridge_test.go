package signer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/txbuilder"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func bridgeServer(t *testing.T, reply func(req rpcRequest) string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,` + reply(req) + `}`))
	}))
}

func TestBridgeSuccess(t *testing.T) {
	srv := bridgeServer(t, func(req rpcRequest) string {
		assert.Equal(t, signMethod, req.Method)
		return `"result":{"digest":"D1","objectChanges":[{"type":"created","objectId":"0x9","objectType":"0xa1::experience_nft::Listing"}],"effects":{"status":{"status":"success"}}}`
	})
	defer srv.Close()

	b, err := NewBridge(context.Background(), srv.URL, "secret")
	require.NoError(t, err)
	defer b.Close()

	res, err := b.SignAndExecute(context.Background(), txbuilder.NewTransaction("0xb0b"))
	require.NoError(t, err)
	assert.Equal(t, "D1", res.Digest)
	id, ok := res.Created("::Listing")
	assert.True(t, ok)
	assert.Equal(t, "0x9", id)
}

func TestBridgeErrorIsVerbatim(t *testing.T) {
	srv := bridgeServer(t, func(rpcRequest) string {
		return `"error":{"code":-32000,"message":"User rejected the request"}`
	})
	defer srv.Close()

	b, err := NewBridge(context.Background(), srv.URL, "secret")
	require.NoError(t, err)
	defer b.Close()

	_, err = b.SignAndExecute(context.Background(), txbuilder.NewTransaction("0xb0b"))
	var se *apperr.SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "User rejected the request", se.Message)
}

func TestBridgeAbortedExecution(t *testing.T) {
	srv := bridgeServer(t, func(rpcRequest) string {
		return `"result":{"digest":"D2","effects":{"status":{"status":"failure","error":"MoveAbort(place_bid, 3)"}}}`
	})
	defer srv.Close()

	b, err := NewBridge(context.Background(), srv.URL, "secret")
	require.NoError(t, err)
	defer b.Close()

	_, err = b.SignAndExecute(context.Background(), txbuilder.NewTransaction("0xb0b"))
	require.True(t, apperr.IsSubmission(err))
	assert.Equal(t, "MoveAbort(place_bid, 3)", err.Error())
}
