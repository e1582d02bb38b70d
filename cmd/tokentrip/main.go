package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tokentrip-marketplace/config"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/logger"
)

const defaultCorrelationID = "00000000.00000000"

var (
	cfgPath string
	sender  string
	ctx     context.Context
)

func init() {
	ctx = c.NewContext(defaultCorrelationID)

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "./config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&sender, "sender", "s", "", "wallet address the bridge signs as (defaults to sui.admin_address)")

	rootCmd.AddCommand(serveCmd, mintExperienceCmd, listNFTCmd, mintSupplyCmd)
}

var rootCmd = &cobra.Command{
	Use:   "tokentrip",
	Short: "TokenTrip marketplace gateway and operator tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viper.SetConfigFile(cfgPath)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		logger.SetLevel(viper.GetString(config.LogLevel))
		if sender == "" {
			sender = viper.GetString(config.AdminAddress)
		}
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
