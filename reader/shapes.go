package reader

import (
	"tokentrip-marketplace/model"
)

// Chain-side field layouts. Field names follow the Move structs; the
// required lists name map keys that must be present.

type attributeShape struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

type nftShape struct {
	ID              string           `mapstructure:"id"`
	Name            string           `mapstructure:"name"`
	Description     string           `mapstructure:"description"`
	ImageURL        string           `mapstructure:"image_url"`
	ProviderAddress string           `mapstructure:"provider_address"`
	EventName       string           `mapstructure:"event_name"`
	EventCity       string           `mapstructure:"event_city"`
	Validity        string           `mapstructure:"validity"`
	ExperienceType  string           `mapstructure:"experience_type"`
	Tier            string           `mapstructure:"tier"`
	Serial          uint64           `mapstructure:"serial_number"`
	Collection      string           `mapstructure:"collection_name"`
	Attributes      []attributeShape `mapstructure:"attributes"`
}

var nftRequired = []string{"name", "image_url"}

func (s nftShape) model() model.ExperienceNFT {
	n := model.ExperienceNFT{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		ImageURL:        s.ImageURL,
		ProviderAddress: s.ProviderAddress,
		EventName:       s.EventName,
		EventCity:       s.EventCity,
		Validity:        s.Validity,
		ExperienceType:  s.ExperienceType,
		Tier:            s.Tier,
		Serial:          s.Serial,
		Collection:      s.Collection,
	}
	for _, a := range s.Attributes {
		n.Attributes = append(n.Attributes, model.Attribute{Key: a.Key, Value: a.Value})
	}
	return n
}

type listingShape struct {
	ID           string   `mapstructure:"id"`
	NFT          nftShape `mapstructure:"nft"`
	Price        uint64   `mapstructure:"price"`
	IsAvailable  bool     `mapstructure:"is_available"`
	IsTKTListing bool     `mapstructure:"is_tkt_listing"`
	Seller       string   `mapstructure:"seller"`
	ProviderID   string   `mapstructure:"provider_id"`
}

var listingRequired = []string{"nft", "price", "is_available", "seller"}

type auctionShape struct {
	ID             string   `mapstructure:"id"`
	NFT            nftShape `mapstructure:"nft"`
	HighestBid     uint64   `mapstructure:"highest_bid"`
	HighestBidder  string   `mapstructure:"highest_bidder"`
	EndTimestampMs uint64   `mapstructure:"end_timestamp_ms"`
	IsSettled      bool     `mapstructure:"is_settled"`
}

var auctionRequired = []string{"nft", "highest_bid", "end_timestamp_ms", "is_settled"}

type providerShape struct {
	ID                string   `mapstructure:"id"`
	Owner             string   `mapstructure:"owner"`
	Name              string   `mapstructure:"name"`
	Bio               string   `mapstructure:"bio"`
	ImageURL          string   `mapstructure:"image_url"`
	ActiveListings    []string `mapstructure:"active_listings"`
	TotalReviews      uint64   `mapstructure:"total_reviews"`
	TotalRatingPoints uint64   `mapstructure:"total_rating_points"`
}

var providerRequired = []string{"name"}

type purchaseReceiptShape struct {
	ID          string `mapstructure:"id"`
	ListingID   string `mapstructure:"listing_id"`
	ProviderID  string `mapstructure:"provider_id"`
	NFTName     string `mapstructure:"nft_name"`
	NFTImageURL string `mapstructure:"nft_image_url"`
}

var purchaseReceiptRequired = []string{"provider_id"}

type stakeReceiptShape struct {
	ID           string `mapstructure:"id"`
	AmountStaked uint64 `mapstructure:"amount_staked"`
}

var stakeReceiptRequired = []string{"amount_staked"}

type stakingPoolShape struct {
	ID          string `mapstructure:"id"`
	TotalStaked uint64 `mapstructure:"total_staked"`
}

var stakingPoolRequired = []string{"total_staked"}

type proposalShape struct {
	ID             string `mapstructure:"id"`
	ProposalID     string `mapstructure:"proposal_id"`
	Creator        string `mapstructure:"creator"`
	Title          string `mapstructure:"title"`
	Description    string `mapstructure:"description"`
	ForVotes       uint64 `mapstructure:"for_votes"`
	AgainstVotes   uint64 `mapstructure:"against_votes"`
	EndTimestampMs uint64 `mapstructure:"end_timestamp_ms"`
	IsExecuted     bool   `mapstructure:"is_executed"`
}

var proposalRequired = []string{"title", "for_votes", "against_votes", "end_timestamp_ms", "is_executed"}

type reviewShape struct {
	ProviderID string `mapstructure:"provider_id"`
	Reviewer   string `mapstructure:"reviewer"`
	Rating     uint8  `mapstructure:"rating"`
	Comment    string `mapstructure:"comment"`
}

var reviewRequired = []string{"provider_id", "rating"}
