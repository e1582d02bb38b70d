package model

import "tokentrip-marketplace/amount"

type PurchaseReceipt struct {
	ID          string `json:"id"`
	ListingID   string `json:"listing_id"`
	ProviderID  string `json:"provider_id"`
	NFTName     string `json:"nft_name"`
	NFTImageURL string `json:"nft_image_url"`
}

func (r *PurchaseReceipt) Kind() Kind       { return KindPurchaseReceipt }
func (r *PurchaseReceipt) ObjectID() string { return r.ID }

type StakeReceipt struct {
	ID           string `json:"id"`
	AmountStaked uint64 `json:"amount_staked"`
}

func (r *StakeReceipt) Kind() Kind       { return KindStakeReceipt }
func (r *StakeReceipt) ObjectID() string { return r.ID }

func (r *StakeReceipt) DisplayAmount() float64 {
	return amount.Display(r.AmountStaked)
}

type StakingPool struct {
	ID          string `json:"id"`
	TotalStaked uint64 `json:"total_staked"`
}

func (p *StakingPool) Kind() Kind       { return KindStakingPool }
func (p *StakingPool) ObjectID() string { return p.ID }

func (p *StakingPool) TotalStakedDisplay() float64 {
	return amount.Display(p.TotalStaked)
}

// StakingOverview is the staking page for one wallet.
type StakingOverview struct {
	Pool             *StakingPool    `json:"pool"`
	TotalStaked      float64         `json:"total_staked"`
	APY              float64         `json:"apy"`
	WalletBalance    float64         `json:"wallet_balance"`
	Receipts         []*StakeReceipt `json:"receipts"`
	EstimatedReturns float64         `json:"estimated_returns,omitempty"`
}

// MyAssets is everything a wallet owns that the marketplace knows about.
type MyAssets struct {
	NFTs     []*ExperienceNFT   `json:"nfts"`
	Receipts []*PurchaseReceipt `json:"receipts"`
}
