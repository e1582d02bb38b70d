package txbuilder

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"tokentrip-marketplace/amount"
	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/codec"
	"tokentrip-marketplace/model"
)

const (
	MaxRoyaltyBps = 10000
	MinRating     = 1
	MaxRating     = 5
	MaxPercentage = 100
)

// Config holds the deployed package and shared object ids.
type Config struct {
	PackageID        string
	TreasuryID       string
	StakingPoolID    string
	AdminCapID       string
	VIPRegistryID    string
	TKTPackageID     string
	TKTTreasuryCapID string
	DAOPackageID     string
	DAOID            string
	DAOTreasuryID    string
	MaxMergeCoins    int
	GasBudget        uint64
}

type Builder struct {
	cfg    Config
	policy *bluemonday.Policy
}

func New(cfg Config) *Builder {
	return &Builder{cfg: cfg, policy: bluemonday.StrictPolicy()}
}

func (b *Builder) Config() Config {
	return b.cfg
}

// TKTType is the alternate payment coin type.
func (b *Builder) TKTType() string {
	return b.cfg.TKTPackageID + "::tkt::TKT"
}

func (b *Builder) market(fn string) string {
	return b.cfg.PackageID + "::experience_nft::" + fn
}

func (b *Builder) dao(fn string) string {
	return b.cfg.DAOPackageID + "::dao::" + fn
}

func (b *Builder) newTx(sender string) (*Transaction, error) {
	if !codec.IsAddress(sender) {
		return nil, apperr.Invalid("sender", "wallet not connected or malformed address %q", sender)
	}
	t := NewTransaction(sender)
	t.GasBudget = b.cfg.GasBudget
	return t, nil
}

// text strips markup from free text and rejects it when required and empty.
func (b *Builder) text(field, s string, required bool) (string, error) {
	clean := strings.TrimSpace(html.UnescapeString(b.policy.Sanitize(s)))
	if required && clean == "" {
		return "", apperr.Invalid(field, "is required")
	}
	return clean, nil
}

func objectID(field, id string) error {
	if !codec.IsAddress(id) {
		return apperr.Invalid(field, "malformed object id %q", id)
	}
	return nil
}

func address(t *Transaction, field, s string) (Argument, error) {
	a, err := t.Address(s)
	if err != nil {
		return Argument{}, apperr.Invalid(field, "malformed address %q", s)
	}
	return a, nil
}

type MintExperience struct {
	Recipient        string            `json:"recipient" validate:"required,sui_addr"`
	Name             string            `json:"name" validate:"required"`
	Description      string            `json:"description"`
	ImageURL         string            `json:"image_url" validate:"required,url"`
	EventName        string            `json:"event_name"`
	EventCity        string            `json:"event_city"`
	Validity         string            `json:"validity"`
	ExperienceType   string            `json:"experience_type"`
	Tier             string            `json:"tier"`
	Serial           uint64            `json:"serial"`
	Collection       string            `json:"collection"`
	RoyaltyRecipient string            `json:"royalty_recipient" validate:"required,sui_addr"`
	RoyaltyBps       uint16            `json:"royalty_bps" validate:"lte=10000"`
	Attributes       []model.Attribute `json:"attributes"`
}

// Mint calls mint_experience with the admin capability and transfers the new
// NFT to the recipient. Attributes are built with new_attribute and collected
// into a vector of the Attribute struct type.
func (b *Builder) Mint(sender string, in MintExperience) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	name, err := b.text("name", in.Name, true)
	if err != nil {
		return nil, err
	}
	imageURL, err := b.text("image_url", in.ImageURL, true)
	if err != nil {
		return nil, err
	}
	if in.RoyaltyBps > MaxRoyaltyBps {
		return nil, apperr.Invalid("royalty_bps", "must be at most %d", MaxRoyaltyBps)
	}
	if !codec.IsAddress(in.Recipient) {
		return nil, apperr.Invalid("recipient", "malformed address %q", in.Recipient)
	}
	var free [7]string
	for i, s := range []string{in.Description, in.EventName, in.EventCity, in.Validity, in.ExperienceType, in.Tier, in.Collection} {
		free[i], _ = b.text("", s, false)
	}

	args := []Argument{
		t.Object(b.cfg.AdminCapID),
		t.Text(name),
		t.Text(free[0]),
		t.Text(imageURL),
		t.Text(free[1]),
		t.Text(free[2]),
		t.Text(free[3]),
		t.Text(free[4]),
		t.Text(free[5]),
		t.U64(in.Serial),
		t.Text(free[6]),
	}
	royalty, err := address(t, "royalty_recipient", in.RoyaltyRecipient)
	if err != nil {
		return nil, err
	}
	args = append(args, royalty, t.U16(in.RoyaltyBps))

	var attrs []Argument
	for _, a := range in.Attributes {
		key, err := b.text("attributes.key", a.Key, true)
		if err != nil {
			return nil, err
		}
		value, _ := b.text("attributes.value", a.Value, false)
		attrs = append(attrs, t.MoveCall(b.market("new_attribute"), nil, t.Text(key), t.Text(value)))
	}
	args = append(args, t.MakeMoveVec(b.market("Attribute"), attrs...))

	nft := t.MoveCall(b.market("mint_experience"), nil, args...)
	recipient, _ := t.Address(in.Recipient)
	t.TransferObjects([]Argument{nft}, recipient)
	return t, nil
}

type ListForSale struct {
	ProviderProfileID string `json:"provider_profile_id" validate:"required,sui_addr"`
	NFTID             string `json:"nft_id" validate:"required,sui_addr"`
	Price             string `json:"price" validate:"required"`
	TKT               bool   `json:"tkt"`
}

func (b *Builder) ListForSale(sender string, in ListForSale) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	price, err := amount.ToSmallestUnit("price", in.Price)
	if err != nil {
		return nil, err
	}
	if err := objectID("provider_profile_id", in.ProviderProfileID); err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	fn := "list_for_sale"
	if in.TKT {
		fn = "list_for_sale_with_tkt"
	}
	t.MoveCall(b.market(fn), nil, t.Object(in.ProviderProfileID), t.Object(in.NFTID), t.U64(price))
	return t, nil
}

type ListForResale struct {
	NFTID string `json:"nft_id" validate:"required,sui_addr"`
	Price string `json:"price" validate:"required"`
}

func (b *Builder) ListForResale(sender string, in ListForResale) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	price, err := amount.ToSmallestUnit("price", in.Price)
	if err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	t.MoveCall(b.market("list_for_resale"), nil, t.Object(in.NFTID), t.U64(price))
	return t, nil
}

type UpdateDescription struct {
	ProviderProfileID string `json:"provider_profile_id" validate:"required,sui_addr"`
	NFTID             string `json:"nft_id" validate:"required,sui_addr"`
	Description       string `json:"description" validate:"required"`
}

func (b *Builder) UpdateDescription(sender string, in UpdateDescription) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	desc, err := b.text("description", in.Description, true)
	if err != nil {
		return nil, err
	}
	if err := objectID("provider_profile_id", in.ProviderProfileID); err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	t.MoveCall(b.market("update_nft_description"), nil, t.Object(in.ProviderProfileID), t.Object(in.NFTID), t.Text(desc))
	return t, nil
}

// Purchase pays a listing from the gas coin, or from the TKT inventory when
// the listing is priced in TKT.
func (b *Builder) Purchase(sender string, l *model.Listing, tkt []model.Coin) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if !l.IsAvailable {
		return nil, apperr.Invalid("listing", "listing %s is no longer available", l.ID)
	}
	if l.IsTKTListing {
		payment, err := t.CoinPayment(tkt, l.Price, b.cfg.MaxMergeCoins, b.TKTType())
		if err != nil {
			return nil, err
		}
		t.MoveCall(b.market("purchase_with_tkt"), nil, t.Object(l.ID), payment)
		return t, nil
	}
	listing := t.Object(l.ID)
	treasury := t.Object(b.cfg.TreasuryID)
	registry := t.Object(b.cfg.VIPRegistryID)
	pool := t.Object(b.cfg.StakingPoolID)
	t.MoveCall(b.market("purchase"), nil, listing, treasury, registry, pool, t.GasPayment(l.Price))
	return t, nil
}

type CreateAuction struct {
	ProviderProfileID string `json:"provider_profile_id" validate:"required,sui_addr"`
	NFTID             string `json:"nft_id" validate:"required,sui_addr"`
	StartPrice        string `json:"start_price" validate:"required"`
	DurationMs        uint64 `json:"duration_ms" validate:"required,gt=0"`
}

func (b *Builder) CreateAuction(sender string, in CreateAuction) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	start, err := amount.ToSmallestUnit("start_price", in.StartPrice)
	if err != nil {
		return nil, err
	}
	if in.DurationMs == 0 {
		return nil, apperr.Invalid("duration_ms", "must be positive")
	}
	if err := objectID("provider_profile_id", in.ProviderProfileID); err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	t.MoveCall(b.market("create_auction"), nil,
		t.Object(in.ProviderProfileID), t.Object(in.NFTID), t.U64(start), t.U64(in.DurationMs), t.Clock())
	return t, nil
}

// PlaceBid requires a bid, in smallest units, strictly above the current
// highest bid on an auction that has not ended.
func (b *Builder) PlaceBid(sender string, a *model.Auction, v uint64, now time.Time) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, apperr.InvalidAmount("bid", "must be positive")
	}
	if a.IsSettled || a.HasEnded(now) {
		return nil, apperr.Invalid("auction", "auction %s has ended", a.ID)
	}
	if v <= a.HighestBid {
		return nil, apperr.Invalid("bid", "must be greater than the highest bid of %s", amount.Format(a.HighestBid, 2))
	}
	auction := t.Object(a.ID)
	t.MoveCall(b.market("place_bid"), nil, auction, t.GasPayment(v), t.Clock())
	return t, nil
}

func (b *Builder) SettleAuction(sender string, a *model.Auction, now time.Time) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if !a.CanBeSettled(now) {
		return nil, apperr.Invalid("auction", "auction %s cannot be settled yet", a.ID)
	}
	t.MoveCall(b.market("settle_auction"), nil, t.Object(a.ID), t.Object(b.cfg.TreasuryID), t.Clock())
	return t, nil
}

type Share struct {
	Recipient  string `json:"recipient"`
	Percentage string `json:"percentage"`
}

type Fractionalize struct {
	NFTID  string  `json:"nft_id" validate:"required,sui_addr"`
	Shares []Share `json:"shares"`
}

// Fractionalize skips blank rows; the remaining shares must be positive
// integers with valid recipients totalling at most 100.
func (b *Builder) Fractionalize(sender string, in Fractionalize) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	var percentages []uint64
	var recipients []string
	var total uint64
	for i, s := range in.Shares {
		pct, rcpt := strings.TrimSpace(s.Percentage), strings.TrimSpace(s.Recipient)
		if pct == "" && rcpt == "" {
			continue
		}
		p, err := strconv.ParseUint(pct, 10, 64)
		if err != nil || p == 0 {
			return nil, apperr.Invalid("shares", "share %d: percentage %q must be a positive integer", i+1, s.Percentage)
		}
		norm, err := codec.NormalizeAddress(rcpt)
		if err != nil {
			return nil, apperr.Invalid("shares", "share %d: malformed recipient %q", i+1, s.Recipient)
		}
		total += p
		if total > MaxPercentage {
			return nil, apperr.Invalid("shares", "total percentage exceeds %d", MaxPercentage)
		}
		percentages = append(percentages, p)
		recipients = append(recipients, norm)
	}
	if len(percentages) == 0 {
		return nil, apperr.Invalid("shares", "nothing to fractionalize")
	}
	addrs, err := t.Addresses(recipients)
	if err != nil {
		return nil, apperr.Invalid("shares", "%v", err)
	}
	nft := t.Object(in.NFTID)
	pcts := t.U64s(percentages)
	t.MoveCall(b.market("fractionize"), nil, nft, pcts, addrs)
	return t, nil
}

type RegisterProvider struct {
	Name     string `json:"name" validate:"required"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

func (b *Builder) RegisterProvider(sender string, in RegisterProvider) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	name, err := b.text("name", in.Name, true)
	if err != nil {
		return nil, err
	}
	bio, _ := b.text("bio", in.Bio, false)
	img, err := b.text("image_url", in.ImageURL, true)
	if err != nil {
		return nil, err
	}
	t.MoveCall(b.market("register_provider"), nil, t.Text(name), t.Text(bio), t.Text(img))
	return t, nil
}

// AddReview reviews the provider recorded on the purchase receipt.
func (b *Builder) AddReview(sender string, r *model.PurchaseReceipt, rating int, comment string) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if rating < MinRating || rating > MaxRating {
		return nil, apperr.Invalid("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	c, err := b.text("comment", comment, true)
	if err != nil {
		return nil, err
	}
	if err := objectID("provider_id", r.ProviderID); err != nil {
		return nil, err
	}
	t.MoveCall(b.market("add_review"), nil, t.Object(r.ProviderID), t.Object(r.ID), t.U8(uint8(rating)), t.Text(c))
	return t, nil
}

// Stake merges the TKT inventory, splits v smallest units and stakes them.
func (b *Builder) Stake(sender string, v uint64, tkt []model.Coin) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, apperr.InvalidAmount("amount", "must be positive")
	}
	pool := t.Object(b.cfg.StakingPoolID)
	coin, err := t.CoinPayment(tkt, v, b.cfg.MaxMergeCoins, b.TKTType())
	if err != nil {
		return nil, err
	}
	t.MoveCall(b.market("stake"), []string{b.TKTType()}, pool, coin)
	return t, nil
}

func (b *Builder) ClaimRewards(sender, receiptID string) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if err := objectID("receipt_id", receiptID); err != nil {
		return nil, err
	}
	t.MoveCall(b.market("claim_rewards"), nil, t.Object(b.cfg.StakingPoolID), t.Object(receiptID))
	return t, nil
}

// Vote uses the whole merged TKT inventory as the ballot.
func (b *Builder) Vote(sender string, p *model.Proposal, support bool, tkt []model.Coin, now time.Time) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if !p.IsVotingActive(now) {
		return nil, apperr.Invalid("proposal", "voting on proposal %s is closed", p.ID)
	}
	proposal := t.Object(p.ID)
	ballot, err := t.MergedCoin(tkt, 1, b.cfg.MaxMergeCoins, b.TKTType())
	if err != nil {
		return nil, err
	}
	t.MoveCall(b.dao("vote"), nil, proposal, ballot, t.Bool(support), t.Clock())
	return t, nil
}

type CreateProposal struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Recipient   string `json:"recipient" validate:"required,sui_addr"`
	Amount      string `json:"amount" validate:"required"`
}

func (b *Builder) CreateProposal(sender string, in CreateProposal) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	title, err := b.text("title", in.Title, true)
	if err != nil {
		return nil, err
	}
	desc, err := b.text("description", in.Description, true)
	if err != nil {
		return nil, err
	}
	v, err := amount.ToSmallestUnit("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	dao := t.Object(b.cfg.DAOID)
	titleArg, descArg := t.Text(title), t.Text(desc)
	recipient, err := address(t, "recipient", in.Recipient)
	if err != nil {
		return nil, err
	}
	t.MoveCall(b.dao("create_proposal"), nil, dao, titleArg, descArg, recipient, t.U64(v), t.Clock())
	return t, nil
}

func (b *Builder) ExecuteProposal(sender string, p *model.Proposal, now time.Time) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if !p.CanBeExecuted(now) {
		return nil, apperr.Invalid("proposal", "proposal %s cannot be executed", p.ID)
	}
	t.MoveCall(b.dao("execute_proposal"), nil, t.Object(p.ID), t.Object(b.cfg.DAOTreasuryID), t.Clock())
	return t, nil
}

func (b *Builder) VIP(sender, provider string, remove bool) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	fn := "add_vip"
	if remove {
		fn = "remove_vip"
	}
	adminCap, registry := t.Object(b.cfg.AdminCapID), t.Object(b.cfg.VIPRegistryID)
	addr, err := address(t, "provider_address", provider)
	if err != nil {
		return nil, err
	}
	t.MoveCall(b.market(fn), nil, adminCap, registry, addr)
	return t, nil
}

type TransferNFT struct {
	NFTID     string `json:"nft_id" validate:"required,sui_addr"`
	Recipient string `json:"recipient" validate:"required,sui_addr"`
}

func (b *Builder) TransferNFT(sender string, in TransferNFT) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	if err := objectID("nft_id", in.NFTID); err != nil {
		return nil, err
	}
	nft := t.Object(in.NFTID)
	recipient, err := address(t, "recipient", in.Recipient)
	if err != nil {
		return nil, err
	}
	t.TransferObjects([]Argument{nft}, recipient)
	return t, nil
}

type MintTKT struct {
	Recipient string `json:"recipient" validate:"required,sui_addr"`
	Amount    string `json:"amount" validate:"required"`
}

// MintTKT mints new TKT supply with the treasury capability.
func (b *Builder) MintTKT(sender string, in MintTKT) (*Transaction, error) {
	t, err := b.newTx(sender)
	if err != nil {
		return nil, err
	}
	v, err := amount.ToSmallestUnit("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	if !codec.IsAddress(in.Recipient) {
		return nil, apperr.Invalid("recipient", "malformed address %q", in.Recipient)
	}
	coin := t.MoveCall("0x2::coin::mint", []string{b.TKTType()}, t.Object(b.cfg.TKTTreasuryCapID), t.U64(v))
	recipient, _ := t.Address(in.Recipient)
	t.TransferObjects([]Argument{coin}, recipient)
	return t, nil
}
