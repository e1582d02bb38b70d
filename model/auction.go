package model

import (
	"time"

	"tokentrip-marketplace/amount"
)

type Auction struct {
	ID             string        `json:"auction_id"`
	NFT            ExperienceNFT `json:"nft"`
	HighestBid     uint64        `json:"highest_bid"`
	HighestBidder  string        `json:"highest_bidder"`
	EndTimestampMs uint64        `json:"end_timestamp_ms"`
	IsSettled      bool          `json:"is_settled"`
}

func (a *Auction) Kind() Kind       { return KindAuction }
func (a *Auction) ObjectID() string { return a.ID }

func (a *Auction) EndTime() time.Time {
	return time.UnixMilli(int64(a.EndTimestampMs))
}

func (a *Auction) HasEnded(now time.Time) bool {
	return !now.Before(a.EndTime())
}

// AcceptsBid reports whether the contract would take bid at now: the auction
// is open and bid strictly exceeds the highest bid.
func (a *Auction) AcceptsBid(bid uint64, now time.Time) bool {
	return !a.IsSettled && !a.HasEnded(now) && bid > a.HighestBid
}

// CanBeSettled is true once the auction has ended and was not settled yet.
func (a *Auction) CanBeSettled(now time.Time) bool {
	return !a.IsSettled && a.HasEnded(now)
}

func (a *Auction) DisplayHighestBid() float64 {
	return amount.Display(a.HighestBid)
}
