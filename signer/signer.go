// Package signer hands call descriptions to the external wallet capability
// that signs and executes them.
package signer

import (
	"context"
	"strings"

	"tokentrip-marketplace/txbuilder"
)

type ObjectChange struct {
	Type       string `json:"type"`
	ObjectID   string `json:"objectId"`
	ObjectType string `json:"objectType,omitempty"`
	Sender     string `json:"sender,omitempty"`
}

type Result struct {
	Digest        string         `json:"digest"`
	ObjectChanges []ObjectChange `json:"objectChanges,omitempty"`
}

// Created returns the id of the first object created with a type ending in
// suffix, e.g. "::experience_nft::ExperienceNFT".
func (r *Result) Created(suffix string) (string, bool) {
	for _, c := range r.ObjectChanges {
		if c.Type == "created" && strings.HasSuffix(c.ObjectType, suffix) {
			return c.ObjectID, true
		}
	}
	return "", false
}

type Signer interface {
	SignAndExecute(ctx context.Context, tx *txbuilder.Transaction) (*Result, error)
}
