package signer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreated(t *testing.T) {
	r := &Result{ObjectChanges: []ObjectChange{
		{Type: "mutated", ObjectID: "0x1", ObjectType: "0xa1::experience_nft::ExperienceNFT"},
		{Type: "created", ObjectID: "0x2", ObjectType: "0x2::coin::Coin<0x2::sui::SUI>"},
		{Type: "created", ObjectID: "0x3", ObjectType: "0xa1::experience_nft::ExperienceNFT"},
	}}
	id, ok := r.Created("::experience_nft::ExperienceNFT")
	assert.True(t, ok)
	assert.Equal(t, "0x3", id)

	_, ok = r.Created("::experience_nft::Listing")
	assert.False(t, ok)
}
