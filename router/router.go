package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/viper"

	"tokentrip-marketplace/auction"
	"tokentrip-marketplace/config"
	"tokentrip-marketplace/factory"
	"tokentrip-marketplace/governance"
	"tokentrip-marketplace/handler"
	"tokentrip-marketplace/journal"
	"tokentrip-marketplace/market"
	"tokentrip-marketplace/middleware"
	"tokentrip-marketplace/provider"
	"tokentrip-marketplace/reader"
	"tokentrip-marketplace/response"
	"tokentrip-marketplace/scanner"
	"tokentrip-marketplace/staking"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

type Services struct {
	Market     *market.Market
	Auctions   *auction.Auctions
	Provider   *provider.Provider
	Governance *governance.Governance
	Staking    *staking.Staking
	Journal    journal.Journal
}

// BuilderConfig reads the contract object ids from configuration.
func BuilderConfig() txbuilder.Config {
	return txbuilder.Config{
		PackageID:        viper.GetString(config.PackageID),
		TreasuryID:       viper.GetString(config.TreasuryID),
		StakingPoolID:    viper.GetString(config.StakingPoolID),
		AdminCapID:       viper.GetString(config.AdminCapID),
		VIPRegistryID:    viper.GetString(config.VIPRegistryID),
		TKTPackageID:     viper.GetString(config.TKTPackageID),
		TKTTreasuryCapID: viper.GetString(config.TKTTreasuryCapID),
		DAOPackageID:     viper.GetString(config.DAOPackageID),
		DAOID:            viper.GetString(config.DAOID),
		DAOTreasuryID:    viper.GetString(config.DAOTreasuryID),
		MaxMergeCoins:    viper.GetInt(config.MaxMergeCoins),
		GasBudget:        viper.GetUint64(config.SignerGasBudget),
	}
}

func NewServices(ctx context.Context, f factory.Factory) Services {
	client := f.Sui(ctx)
	r := reader.New(client, reader.NewDecoder(viper.GetString(config.PackageID), viper.GetString(config.DAOPackageID)))
	s := scanner.New(client, viper.GetInt(config.EventPageSize))
	ch := f.Cache(ctx)
	b := txbuilder.New(BuilderConfig())
	j := f.Journal(ctx)
	ctl := submit.NewController(f.Signer(ctx), ch, j)

	return Services{
		Market:     market.NewMarket(r, ch, b, ctl),
		Auctions:   auction.NewAuctions(r, ch, b, ctl),
		Provider:   provider.NewProvider(r, s, ch, b, ctl),
		Governance: governance.NewGovernance(r, s, ch, b, ctl),
		Staking:    staking.NewStaking(r, ch, b, ctl),
		Journal:    j,
	}
}

// Router returns the router for all the API handler.
func Router(ctx context.Context) *mux.Router {
	return New(NewServices(ctx, factory.NewFactory()))
}

func New(s Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SetContentTypeHeader)
	r.Use(middleware.SetWallet)

	r.HandleFunc("/healthcheck", handler.Healthcheck).Methods(http.MethodGet)
	baseRouter := r.PathPrefix("/v1").Subrouter()

	listingRouter := baseRouter.PathPrefix("/listings").Subrouter()
	listingRouter.HandleFunc("", handler.Listings(s.Market)).Methods(http.MethodGet)
	listingRouter.HandleFunc("", handler.ListForSale(s.Market)).Methods(http.MethodPost)
	listingRouter.HandleFunc("/resale", handler.ListForResale(s.Market)).Methods(http.MethodPost)
	listingRouter.HandleFunc("/{id}", handler.Listing(s.Market)).Methods(http.MethodGet)
	listingRouter.HandleFunc("/{id}/purchase", handler.Purchase(s.Market)).Methods(http.MethodPost)

	nftRouter := baseRouter.PathPrefix("/nfts").Subrouter()
	nftRouter.HandleFunc("/mint", handler.MintExperience(s.Market)).Methods(http.MethodPost)
	nftRouter.HandleFunc("/transfer", handler.TransferNFT(s.Market)).Methods(http.MethodPost)
	nftRouter.HandleFunc("/description", handler.UpdateDescription(s.Market)).Methods(http.MethodPost)
	nftRouter.HandleFunc("/fractionalize", handler.Fractionalize(s.Market)).Methods(http.MethodPost)
	nftRouter.HandleFunc("/{owner}", handler.OwnedNFTs(s.Market)).Methods(http.MethodGet)
	baseRouter.HandleFunc("/experiences/{id}", handler.Experience(s.Market)).Methods(http.MethodGet)
	baseRouter.HandleFunc("/assets/{owner}", handler.MyAssets(s.Market)).Methods(http.MethodGet)
	baseRouter.HandleFunc("/tkt/mint", handler.MintTKT(s.Market)).Methods(http.MethodPost)

	auctionRouter := baseRouter.PathPrefix("/auctions").Subrouter()
	auctionRouter.HandleFunc("", handler.Auctions(s.Auctions)).Methods(http.MethodGet)
	auctionRouter.HandleFunc("", handler.CreateAuction(s.Auctions)).Methods(http.MethodPost)
	auctionRouter.HandleFunc("/{id}", handler.Auction(s.Auctions)).Methods(http.MethodGet)
	auctionRouter.HandleFunc("/{id}/bid", handler.PlaceBid(s.Auctions)).Methods(http.MethodPost)
	auctionRouter.HandleFunc("/{id}/settle", handler.SettleAuction(s.Auctions)).Methods(http.MethodPost)

	providerRouter := baseRouter.PathPrefix("/providers").Subrouter()
	providerRouter.HandleFunc("", handler.RegisterProvider(s.Provider)).Methods(http.MethodPost)
	providerRouter.HandleFunc("/vip", handler.VIP(s.Provider)).Methods(http.MethodPost)
	providerRouter.HandleFunc("/{id}", handler.ProviderPage(s.Provider)).Methods(http.MethodGet)
	baseRouter.HandleFunc("/dashboard", handler.Dashboard(s.Provider)).Methods(http.MethodGet)
	baseRouter.HandleFunc("/receipts/{id}/review", handler.AddReview(s.Provider)).Methods(http.MethodPost)

	proposalRouter := baseRouter.PathPrefix("/proposals").Subrouter()
	proposalRouter.HandleFunc("", handler.Proposals(s.Governance)).Methods(http.MethodGet)
	proposalRouter.HandleFunc("", handler.CreateProposal(s.Governance)).Methods(http.MethodPost)
	proposalRouter.HandleFunc("/{id}", handler.Proposal(s.Governance)).Methods(http.MethodGet)
	proposalRouter.HandleFunc("/{id}/vote", handler.Vote(s.Governance)).Methods(http.MethodPost)
	proposalRouter.HandleFunc("/{id}/execute", handler.ExecuteProposal(s.Governance)).Methods(http.MethodPost)

	stakingRouter := baseRouter.PathPrefix("/staking").Subrouter()
	stakingRouter.HandleFunc("/pool", handler.StakingPool(s.Staking)).Methods(http.MethodGet)
	stakingRouter.HandleFunc("/stake", handler.Stake(s.Staking)).Methods(http.MethodPost)
	stakingRouter.HandleFunc("/receipts/{id}/claim", handler.ClaimRewards(s.Staking)).Methods(http.MethodPost)
	stakingRouter.HandleFunc("/{owner}", handler.StakingOverview(s.Staking)).Methods(http.MethodGet)

	baseRouter.HandleFunc("/submissions", handler.Submissions(s.Journal)).Methods(http.MethodGet)

	return r
}
