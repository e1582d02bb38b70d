package model

// Kind is the closed set of on-chain shapes the reader understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindExperienceNFT
	KindListing
	KindAuction
	KindProviderProfile
	KindPurchaseReceipt
	KindStakeReceipt
	KindStakingPool
	KindProposal
)

func (k Kind) String() string {
	switch k {
	case KindExperienceNFT:
		return "ExperienceNFT"
	case KindListing:
		return "Listing"
	case KindAuction:
		return "Auction"
	case KindProviderProfile:
		return "ProviderProfile"
	case KindPurchaseReceipt:
		return "PurchaseReceipt"
	case KindStakeReceipt:
		return "StakeReceipt"
	case KindStakingPool:
		return "StakingPool"
	case KindProposal:
		return "Proposal"
	default:
		return "Unknown"
	}
}

// Entity is implemented by every decoded view model.
type Entity interface {
	Kind() Kind
	ObjectID() string
}
