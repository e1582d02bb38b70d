package signer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/txbuilder"
)

const signMethod = "wallet_signAndExecuteTransaction"

type executeOptions struct {
	ShowObjectChanges bool `json:"showObjectChanges"`
	ShowEffects       bool `json:"showEffects"`
}

type executeResponse struct {
	Digest        string         `json:"digest"`
	ObjectChanges []ObjectChange `json:"objectChanges"`
	Effects       *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
	} `json:"effects"`
}

// Bridge speaks JSON-RPC to a wallet bridge holding the keys.
type Bridge struct {
	rpc *rpc.Client
}

func NewBridge(ctx context.Context, url, token string) (*Bridge, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("newBridge: error connecting to wallet bridge: %w", err)
	}
	if token != "" {
		c.SetHeader("Authorization", "Bearer "+token)
	}
	return &Bridge{rpc: c}, nil
}

// SignAndExecute submits tx once. Every failure, including an aborted
// execution, comes back as a SubmissionError with the bridge's message.
func (b *Bridge) SignAndExecute(ctx context.Context, tx *txbuilder.Transaction) (*Result, error) {
	var resp executeResponse
	err := b.rpc.CallContext(ctx, &resp, signMethod, tx, executeOptions{ShowObjectChanges: true, ShowEffects: true})
	if err != nil {
		logger.Errorf(ctx, "signAndExecute: bridge call failed: %+v", err)
		return nil, &apperr.SubmissionError{Message: err.Error()}
	}
	if resp.Effects != nil && resp.Effects.Status.Status == "failure" {
		msg := resp.Effects.Status.Error
		if msg == "" {
			msg = "transaction execution failed"
		}
		return nil, &apperr.SubmissionError{Message: msg}
	}
	return &Result{Digest: resp.Digest, ObjectChanges: resp.ObjectChanges}, nil
}

func (b *Bridge) Close() {
	b.rpc.Close()
}
