package cmd

import (
	"fmt"
	"os"

	"github.com/Mohsinsiddi/nftmkt/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/nftmkt/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir     string
	cfg        *config.Config
	walletFlag string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "nftmkt",
	Short: "NFT marketplace in your terminal",
	Long: `nftmkt — mint, list, and buy NFTs from the command line.

  Browse your collection, mint tokens with creator royalties, and run the
  full marketplace listing lifecycle against the configured contracts.

Writes sign locally with a wallet from 'nftmkt wallet add' and wait for
one confirmation. Reads work without any wallet configured.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// NFTMKT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("NFTMKT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.nftmkt)")
	rootCmd.PersistentFlags().StringVar(&walletFlag, "wallet", "", "signing wallet name (default: configured default)")

	// Register all sub-commands.
	rootCmd.AddCommand(
		initCmd,
		configCmd,
		walletCmd,
		statusCmd,
		nftsCmd,
		mintCmd,
		transferCmd,
		marketCmd,
		eventsCmd,
		uploadCmd,
	)
}
