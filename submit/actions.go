package submit

import (
	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/txbuilder"
)

const (
	RedirectHome     = "/"
	RedirectListings = "/listings"
	RedirectAuctions = "/auctions"
)

func key(parts ...string) cache.Key {
	return cache.NewKey(parts...)
}

// profileViews are every query showing a provider profile or its active
// listings: the public provider page and the seller dashboard.
func profileViews(profileID string) []cache.Key {
	return []cache.Key{
		key(cache.Provider, profileID),
		key(cache.ProviderActiveListings, profileID),
		key(cache.ActiveListings, profileID),
	}
}

// walletAssets are the queries listing what an address holds.
func walletAssets(wallet string) []cache.Key {
	return []cache.Key{key(cache.OwnedNFTs, wallet), key(cache.MyAssets, wallet)}
}

func keys(groups ...[]cache.Key) []cache.Key {
	var out []cache.Key
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func ListForSale(wallet, profileID, nftID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:    "list-for-sale",
		Control: "list:" + nftID,
		Wallet:  wallet,
		Tx:      tx,
		Invalidates: keys(
			[]cache.Key{key(cache.ProviderProfile, wallet), key(cache.Listings)},
			profileViews(profileID),
			walletAssets(wallet),
		),
		Notice: "Your experience is now listed on the marketplace.",
	}
}

func ListForResale(wallet, nftID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "list-for-resale",
		Control:     "resale:" + nftID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: keys([]cache.Key{key(cache.Listings), key(cache.NFT, nftID)}, walletAssets(wallet)),
		Notice:      "Your experience is listed for resale.",
	}
}

// Purchase also drops the seller's profile lookup; the seller dashboard reads
// its listing ids from it.
func Purchase(wallet, listingID, providerID, seller string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:    "purchase",
		Control: "purchase:" + listingID,
		Wallet:  wallet,
		Tx:      tx,
		Invalidates: keys(
			[]cache.Key{
				key(cache.Listings),
				key(cache.Listing, listingID),
				key(cache.TKTBalance, wallet),
				key(cache.SUIBalance, wallet),
				key(cache.ProviderProfile, seller),
			},
			profileViews(providerID),
			walletAssets(wallet),
		),
		Notice:   "Purchase complete. The experience is yours.",
		Redirect: RedirectListings,
	}
}

func CreateAuction(wallet, nftID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "create-auction",
		Control:     "auction-create:" + nftID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: keys([]cache.Key{key(cache.Auctions), key(cache.NFT, nftID)}, walletAssets(wallet)),
		Notice:      "Your experience is now up for auction.",
	}
}

func PlaceBid(wallet, auctionID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "place-bid",
		Control:     "bid:" + auctionID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.Auction, auctionID), key(cache.Auctions), key(cache.SUIBalance, wallet)},
		Notice:      "Bid placed.",
	}
}

// SettleAuction also drops the holdings of winner, who receives the NFT.
func SettleAuction(wallet, auctionID, winner string, tx *txbuilder.Transaction) Action {
	inv := keys([]cache.Key{key(cache.Auction, auctionID), key(cache.Auctions)}, walletAssets(wallet))
	if winner != "" && winner != wallet {
		inv = append(inv, walletAssets(winner)...)
	}
	return Action{
		Name:        "settle-auction",
		Control:     "settle:" + auctionID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: inv,
		Notice:      "Auction settled.",
		Redirect:    RedirectAuctions,
	}
}

func Fractionalize(wallet, nftID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "fractionalize",
		Control:     "fractionalize:" + nftID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: keys([]cache.Key{key(cache.NFT, nftID)}, walletAssets(wallet)),
		Notice:      "Experience fractionalized.",
		Redirect:    RedirectHome,
	}
}

func RegisterProvider(wallet string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "register-provider",
		Control:     "register:" + wallet,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.ProviderProfile, wallet)},
		Notice:      "Registration complete. You are now a TokenTrip provider.",
		Redirect:    RedirectHome,
	}
}

func AddReview(wallet, providerID, receiptID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:    "add-review",
		Control: "review:" + receiptID,
		Wallet:  wallet,
		Tx:      tx,
		Invalidates: keys(
			[]cache.Key{key(cache.ProviderReviews, providerID)},
			profileViews(providerID),
			walletAssets(wallet),
		),
		Notice:   "Thanks for your review.",
		Redirect: RedirectHome,
	}
}

func Stake(wallet string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:    "stake",
		Control: "stake:" + wallet,
		Wallet:  wallet,
		Tx:      tx,
		Invalidates: []cache.Key{
			key(cache.StakingPool),
			key(cache.StakeReceipts, wallet),
			key(cache.TKTBalance, wallet),
		},
		Notice: "Tokens staked.",
	}
}

func ClaimRewards(wallet, receiptID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:    "claim-rewards",
		Control: "claim:" + receiptID,
		Wallet:  wallet,
		Tx:      tx,
		Invalidates: []cache.Key{
			key(cache.StakingPool),
			key(cache.StakeReceipts, wallet),
			key(cache.SUIBalance, wallet),
		},
		Notice: "Rewards claimed.",
	}
}

func Vote(wallet, proposalID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "vote",
		Control:     "vote:" + proposalID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.Proposal, proposalID), key(cache.DAOProposals)},
		Notice:      "Vote cast.",
	}
}

func CreateProposal(wallet string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "create-proposal",
		Control:     "proposal-create:" + wallet,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.DAOProposals)},
		Notice:      "Proposal created.",
	}
}

func ExecuteProposal(wallet, proposalID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "execute-proposal",
		Control:     "execute:" + proposalID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.Proposal, proposalID), key(cache.DAOProposals)},
		Notice:      "Proposal executed.",
	}
}

func VIP(wallet, provider string, remove bool, tx *txbuilder.Transaction) Action {
	name, notice := "add-vip", "Provider added to the VIP list."
	if remove {
		name, notice = "remove-vip", "Provider removed from the VIP list."
	}
	return Action{
		Name:        name,
		Control:     "vip:" + provider,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.VIPRegistry)},
		Notice:      notice,
	}
}

func TransferNFT(wallet, nftID, recipient string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "transfer-nft",
		Control:     "transfer:" + nftID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: keys([]cache.Key{key(cache.NFT, nftID)}, walletAssets(wallet), walletAssets(recipient)),
		Notice:      "Experience transferred.",
	}
}

func UpdateDescription(wallet, nftID string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "update-description",
		Control:     "describe:" + nftID,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: keys([]cache.Key{key(cache.NFT, nftID)}, walletAssets(wallet)),
		Notice:      "Description updated.",
	}
}

func Mint(wallet, recipient string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "mint-experience",
		Control:     "mint:" + wallet,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: walletAssets(recipient),
		Notice:      "Experience minted.",
	}
}

func MintTKT(wallet, recipient string, tx *txbuilder.Transaction) Action {
	return Action{
		Name:        "mint-tkt",
		Control:     "mint-tkt:" + wallet,
		Wallet:      wallet,
		Tx:          tx,
		Invalidates: []cache.Key{key(cache.TKTBalance, recipient)},
		Notice:      "TKT minted.",
	}
}
