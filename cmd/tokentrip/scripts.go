package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokentrip-marketplace/codec"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/factory"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/market"
	"tokentrip-marketplace/router"
	"tokentrip-marketplace/submit"
	"tokentrip-marketplace/txbuilder"
)

var listTKT bool

func init() {
	listNFTCmd.Flags().BoolVar(&listTKT, "tkt", false, "price the listing in TKT")
}

func marketService() (*market.Market, string, error) {
	addr, err := codec.NormalizeAddress(sender)
	if err != nil {
		return nil, "", fmt.Errorf("sender: %w", err)
	}
	return router.NewServices(ctx, factory.NewFactory()).Market, addr, nil
}

func report(out *submit.Outcome, created string) {
	logger.Infof(ctx, "transaction %s executed: %s", out.Digest, out.Notice)
	if id, ok := out.Created(created); ok {
		fmt.Println(id)
	}
}

var mintExperienceCmd = &cobra.Command{
	Use:   "mint-experience <experience.json>",
	Short: "Mint an experience NFT described by a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var in txbuilder.MintExperience
		if err := json.Unmarshal(b, &in); err != nil {
			return fmt.Errorf("mint-experience: %s: %w", args[0], err)
		}
		m, addr, err := marketService()
		if err != nil {
			return err
		}
		if in.Recipient == "" {
			in.Recipient = addr
		}
		if in.RoyaltyRecipient == "" {
			in.RoyaltyRecipient = addr
		}
		cctx, cancel := c.NewContextWithTimeOut(ctx, c.DefaultChainTimeout)
		defer cancel()
		out, err := m.Mint(cctx, addr, in)
		if err != nil {
			return err
		}
		report(out, "::experience_nft::ExperienceNFT")
		return nil
	},
}

var listNFTCmd = &cobra.Command{
	Use:   "list-nft <provider-profile-id> <nft-id> <price>",
	Short: "List an owned experience NFT for sale",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, addr, err := marketService()
		if err != nil {
			return err
		}
		cctx, cancel := c.NewContextWithTimeOut(ctx, c.DefaultChainTimeout)
		defer cancel()
		out, err := m.ListForSale(cctx, addr, txbuilder.ListForSale{
			ProviderProfileID: args[0],
			NFTID:             args[1],
			Price:             args[2],
			TKT:               listTKT,
		})
		if err != nil {
			return err
		}
		report(out, "::experience_nft::Listing")
		return nil
	},
}

var mintSupplyCmd = &cobra.Command{
	Use:   "mint-supply <recipient> <amount>",
	Short: "Mint TKT to a recipient",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, addr, err := marketService()
		if err != nil {
			return err
		}
		cctx, cancel := c.NewContextWithTimeOut(ctx, c.DefaultChainTimeout)
		defer cancel()
		out, err := m.MintTKT(cctx, addr, txbuilder.MintTKT{Recipient: args[0], Amount: args[1]})
		if err != nil {
			return err
		}
		report(out, "::tkt::TKT>")
		return nil
	},
}
