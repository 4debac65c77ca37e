package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initRPC         string
	initCollection  string
	initMarketplace string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the initial configuration",
	Long: `Create ~/.nftmkt/config.json with the RPC endpoint and contract
addresses. Run again with flags to change any of them.

Examples:
  nftmkt init
  nftmkt init --rpc https://rpc.sepolia.org
  nftmkt init --collection 0xYourCollection --marketplace 0xYourMarketplace`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.Banner())

		if initRPC != "" {
			cfg.RPCURL = initRPC
		}
		if initCollection != "" {
			cfg.Collection = initCollection
		}
		if initMarketplace != "" {
			cfg.Marketplace = initMarketplace
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"Config dir", cfg.Dir()},
			{"RPC", cfg.RPCURL},
			{"Collection", ui.Addr(cfg.Collection)},
			{"Marketplace", ui.Addr(cfg.Marketplace)},
			{"Mint fee", cfg.MintFee + " ETH"},
		}))
		fmt.Println(ui.Success("nftmkt configured! Run `nftmkt --help` to explore commands."))
		fmt.Println(ui.Hint("Add a signing wallet with: nftmkt wallet add <name> --key <private-key>"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initRPC, "rpc", "", "JSON-RPC endpoint URL")
	initCmd.Flags().StringVar(&initCollection, "collection", "", "ERC-721 collection contract address")
	initCmd.Flags().StringVar(&initMarketplace, "marketplace", "", "marketplace contract address")
}
