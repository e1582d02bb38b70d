package model

type ProviderProfile struct {
	ID                string   `json:"id"`
	Owner             string   `json:"owner,omitempty"`
	Name              string   `json:"name"`
	Bio               string   `json:"bio"`
	ImageURL          string   `json:"image_url"`
	ActiveListings    []string `json:"active_listings"`
	TotalReviews      uint64   `json:"total_reviews"`
	TotalRatingPoints uint64   `json:"total_rating_points"`
}

func (p *ProviderProfile) Kind() Kind       { return KindProviderProfile }
func (p *ProviderProfile) ObjectID() string { return p.ID }

func (p *ProviderProfile) AverageRating() float64 {
	if p.TotalReviews == 0 {
		return 0
	}
	return float64(p.TotalRatingPoints) / float64(p.TotalReviews)
}

// Review is the payload of a ReviewAdded event.
type Review struct {
	ProviderID string `json:"provider_id"`
	Reviewer   string `json:"reviewer"`
	Rating     uint8  `json:"rating"`
	Comment    string `json:"comment"`
}

// VIPEntry is one provider address in the admin-managed VIP registry. The
// registry is write-only from this service.
type VIPEntry struct {
	ProviderAddress string `json:"provider_address"`
}

// ProviderPage aggregates everything the provider page renders.
type ProviderPage struct {
	Profile       *ProviderProfile `json:"profile"`
	AverageRating float64          `json:"average_rating"`
	Listings      []*Listing       `json:"listings"`
	Reviews       []Review         `json:"reviews"`
}

// Dashboard is the provider's own view: the profile they hold, its live
// listings and the NFTs they could still list. Profile is nil for wallets
// that never registered.
type Dashboard struct {
	Profile        *ProviderProfile `json:"profile"`
	ActiveListings []*Listing       `json:"active_listings"`
	ListableNFTs   []*ExperienceNFT `json:"listable_nfts"`
}
