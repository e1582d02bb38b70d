package reader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/model"
	"tokentrip-marketplace/sui"
)

// StructTag identifies a Move struct by package, module and name.
type StructTag struct {
	Address string
	Module  string
	Name    string
}

func (t StructTag) String() string {
	return t.Address + "::" + t.Module + "::" + t.Name
}

// ParseStructTag splits "0x..::module::Name<T>" and drops type parameters.
func ParseStructTag(s string) (StructTag, bool) {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return StructTag{}, false
	}
	addr, err := codec.NormalizeAddress(parts[0])
	if err != nil {
		return StructTag{}, false
	}
	return StructTag{Address: addr, Module: parts[1], Name: parts[2]}, true
}

// unwrapHook flattens the JSON-RPC content encoding so both it and the flat
// GraphQL encoding decode into the same shapes: {type, fields} wrappers,
// UID {id: {id}} and Url {url} structs.
func unwrapHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}
	if f, ok := m["fields"].(map[string]interface{}); ok {
		if _, typed := m["type"]; typed {
			m = f
			data = f
		}
	}
	if to.Kind() != reflect.String {
		return data, nil
	}
	return scalar(m), nil
}

func scalar(m map[string]interface{}) interface{} {
	for _, k := range []string{"id", "url", "bytes"} {
		switch v := m[k].(type) {
		case string:
			return v
		case map[string]interface{}:
			return scalar(v)
		}
	}
	return m
}

func decodeInto(fields map[string]interface{}, out interface{}, required []string) error {
	var md mapstructure.Metadata
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       unwrapHook,
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("decodeInto: error creating decoder: %w", err)
	}
	if err := d.Decode(fields); err != nil {
		return fmt.Errorf("decodeInto: %w", err)
	}
	for _, r := range required {
		if missing(md.Unset, r) {
			return fmt.Errorf("decodeInto: missing field %s", r)
		}
	}
	return nil
}

func missing(unset []string, field string) bool {
	for _, u := range unset {
		if u == field {
			return true
		}
	}
	return false
}

// Decoder maps raw objects onto the closed set of view models.
type Decoder struct {
	packageID    string
	daoPackageID string
}

func NewDecoder(packageID, daoPackageID string) *Decoder {
	d := &Decoder{}
	if p, err := codec.NormalizeAddress(packageID); err == nil {
		d.packageID = p
	}
	if p, err := codec.NormalizeAddress(daoPackageID); err == nil {
		d.daoPackageID = p
	}
	return d
}

// StructType returns the fully qualified struct type stored on chain for k.
func (d *Decoder) StructType(k model.Kind) string {
	switch k {
	case model.KindProposal:
		return d.daoPackageID + "::dao::Proposal"
	case model.KindUnknown:
		return ""
	default:
		return d.packageID + "::experience_nft::" + k.String()
	}
}

// EventType returns the fully qualified type of a contract event.
func (d *Decoder) EventType(module, name string) string {
	if module == "dao" {
		return d.daoPackageID + "::dao::" + name
	}
	return d.packageID + "::" + module + "::" + name
}

func (d *Decoder) kindOf(t StructTag) model.Kind {
	switch {
	case t.Address == d.daoPackageID && t.Module == "dao" && t.Name == "Proposal":
		return model.KindProposal
	case t.Address != d.packageID || t.Module != "experience_nft":
		return model.KindUnknown
	}
	switch t.Name {
	case "ExperienceNFT":
		return model.KindExperienceNFT
	case "Listing":
		return model.KindListing
	case "Auction":
		return model.KindAuction
	case "ProviderProfile":
		return model.KindProviderProfile
	case "PurchaseReceipt":
		return model.KindPurchaseReceipt
	case "StakeReceipt":
		return model.KindStakeReceipt
	case "StakingPool":
		return model.KindStakingPool
	}
	return model.KindUnknown
}

// Decode returns false for unknown types and malformed shapes; it never
// panics on chain data.
func (d *Decoder) Decode(raw sui.RawObject) (e model.Entity, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e, ok = nil, false
		}
	}()

	tag, ok := ParseStructTag(raw.Type)
	if !ok || raw.Fields == nil {
		return nil, false
	}

	var err error
	switch d.kindOf(tag) {
	case model.KindExperienceNFT:
		var s nftShape
		if err = decodeInto(raw.Fields, &s, nftRequired); err == nil {
			n := s.model()
			n.ID = pick(n.ID, raw.ObjectID)
			e = &n
		}
	case model.KindListing:
		var s listingShape
		if err = decodeInto(raw.Fields, &s, listingRequired); err == nil {
			e = &model.Listing{
				ID:           pick(s.ID, raw.ObjectID),
				NFT:          s.NFT.model(),
				Price:        s.Price,
				IsAvailable:  s.IsAvailable,
				IsTKTListing: s.IsTKTListing,
				Seller:       s.Seller,
				ProviderID:   s.ProviderID,
			}
		}
	case model.KindAuction:
		var s auctionShape
		if err = decodeInto(raw.Fields, &s, auctionRequired); err == nil {
			e = &model.Auction{
				ID:             pick(s.ID, raw.ObjectID),
				NFT:            s.NFT.model(),
				HighestBid:     s.HighestBid,
				HighestBidder:  s.HighestBidder,
				EndTimestampMs: s.EndTimestampMs,
				IsSettled:      s.IsSettled,
			}
		}
	case model.KindProviderProfile:
		var s providerShape
		if err = decodeInto(raw.Fields, &s, providerRequired); err == nil {
			e = &model.ProviderProfile{
				ID:                pick(s.ID, raw.ObjectID),
				Owner:             s.Owner,
				Name:              s.Name,
				Bio:               s.Bio,
				ImageURL:          s.ImageURL,
				ActiveListings:    s.ActiveListings,
				TotalReviews:      s.TotalReviews,
				TotalRatingPoints: s.TotalRatingPoints,
			}
		}
	case model.KindPurchaseReceipt:
		var s purchaseReceiptShape
		if err = decodeInto(raw.Fields, &s, purchaseReceiptRequired); err == nil {
			e = &model.PurchaseReceipt{
				ID:          pick(s.ID, raw.ObjectID),
				ListingID:   s.ListingID,
				ProviderID:  s.ProviderID,
				NFTName:     s.NFTName,
				NFTImageURL: s.NFTImageURL,
			}
		}
	case model.KindStakeReceipt:
		var s stakeReceiptShape
		if err = decodeInto(raw.Fields, &s, stakeReceiptRequired); err == nil {
			e = &model.StakeReceipt{ID: pick(s.ID, raw.ObjectID), AmountStaked: s.AmountStaked}
		}
	case model.KindStakingPool:
		var s stakingPoolShape
		if err = decodeInto(raw.Fields, &s, stakingPoolRequired); err == nil {
			e = &model.StakingPool{ID: pick(s.ID, raw.ObjectID), TotalStaked: s.TotalStaked}
		}
	case model.KindProposal:
		var s proposalShape
		if err = decodeInto(raw.Fields, &s, proposalRequired); err == nil {
			e = &model.Proposal{
				ID:             pick(s.ID, raw.ObjectID),
				ProposalID:     s.ProposalID,
				Creator:        s.Creator,
				Title:          s.Title,
				Description:    s.Description,
				ForVotes:       s.ForVotes,
				AgainstVotes:   s.AgainstVotes,
				EndTimestampMs: s.EndTimestampMs,
				IsExecuted:     s.IsExecuted,
			}
		}
	default:
		return nil, false
	}
	if err != nil || e == nil {
		return nil, false
	}
	return e, true
}

// DecodeReview reads a ReviewAdded event payload.
func DecodeReview(payload map[string]interface{}) (model.Review, bool) {
	var s reviewShape
	if err := decodeInto(payload, &s, reviewRequired); err != nil {
		return model.Review{}, false
	}
	return model.Review{ProviderID: s.ProviderID, Reviewer: s.Reviewer, Rating: s.Rating, Comment: s.Comment}, true
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
