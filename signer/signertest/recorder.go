// Package signertest provides a recording signer.Signer for tests.
package signertest

import (
	"context"
	"sync"

	"tokentrip-marketplace/signer"
	"tokentrip-marketplace/txbuilder"
)

type Recorder struct {
	mu     sync.Mutex
	Txs    []*txbuilder.Transaction
	Err    error
	Digest string
	OnExec func(tx *txbuilder.Transaction)
}

func (r *Recorder) SignAndExecute(ctx context.Context, tx *txbuilder.Transaction) (*signer.Result, error) {
	r.mu.Lock()
	r.Txs = append(r.Txs, tx)
	err, hook := r.Err, r.OnExec
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if hook != nil {
		hook(tx)
	}
	d := r.Digest
	if d == "" {
		d = "digest"
	}
	return &signer.Result{Digest: d}, nil
}

// Last returns the most recently submitted transaction.
func (r *Recorder) Last() *txbuilder.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Txs) == 0 {
		return nil
	}
	return r.Txs[len(r.Txs)-1]
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Txs)
}
