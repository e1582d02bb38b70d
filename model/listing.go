package model

import "tokentrip-marketplace/amount"

type Currency string

const (
	CurrencySUI Currency = "SUI"
	CurrencyTKT Currency = "TKT"
)

type Listing struct {
	ID           string        `json:"listing_id"`
	NFT          ExperienceNFT `json:"nft"`
	Price        uint64        `json:"price"`
	IsAvailable  bool          `json:"is_available"`
	IsTKTListing bool          `json:"is_tkt_listing"`
	Seller       string        `json:"seller"`
	ProviderID   string        `json:"provider_id"`
}

func (l *Listing) Kind() Kind       { return KindListing }
func (l *Listing) ObjectID() string { return l.ID }

func (l *Listing) Currency() Currency {
	if l.IsTKTListing {
		return CurrencyTKT
	}
	return CurrencySUI
}

func (l *Listing) DisplayPrice() float64 {
	return amount.Display(l.Price)
}
