package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection and connection status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		spin := ui.NewSpinner("Reading collection state...")
		spin.Start()
		enabled, mintErr := client.MintEnabled(ctx)
		supply, supplyErr := client.TotalSupply(ctx)
		spin.Stop()

		if mintErr != nil {
			return mintErr
		}
		if supplyErr != nil {
			return supplyErr
		}

		mintState := ui.Err("closed")
		if enabled {
			mintState = ui.Success("open")
		}
		account := client.Account()
		if account == "" {
			account = ui.Meta("none (read-only)")
		} else {
			account = ui.Addr(account)
		}

		fmt.Println(ui.KeyValueBlock("Status", [][2]string{
			{"Collection", ui.Addr(cfg.Collection)},
			{"Marketplace", ui.Addr(cfg.Marketplace)},
			{"Total supply", ui.Val(supply)},
			{"Public mint", mintState},
			{"Account", account},
		}))
		return nil
	},
}
