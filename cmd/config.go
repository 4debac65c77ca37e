package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		pinCreds := "not set"
		if cfg.PinKey != "" && cfg.PinSecret != "" {
			pinCreds = "set (from environment)"
		}
		fmt.Println(ui.KeyValueBlock("Configuration", [][2]string{
			{"Config dir", cfg.Dir()},
			{"RPC", cfg.RPCURL},
			{"Chain ID", fmt.Sprintf("%d", cfg.ChainID)},
			{"Collection", ui.Addr(cfg.Collection)},
			{"Marketplace", ui.Addr(cfg.Marketplace)},
			{"Default wallet", cfg.DefaultWallet},
			{"IPFS gateway", cfg.IPFSGateway},
			{"Pin endpoint", cfg.PinEndpoint},
			{"Pin credentials", pinCreds},
			{"Mint fee", cfg.MintFee + " ETH"},
		}))
		return nil
	},
}

var configSetFeeCmd = &cobra.Command{
	Use:   "set-mint-fee <eth>",
	Short: "Set the mint fee sent with mintWithRoyalty",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := market.ParseEther(args[0]); err != nil {
			return err
		}
		cfg.MintFee = args[0]
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Mint fee set to %s ETH.", args[0])))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <url>",
	Short: "Set the JSON-RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.RPCURL = args[0]
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success("RPC endpoint updated."))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetFeeCmd, configSetRPCCmd)
}
