package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var transferSafe bool

var transferCmd = &cobra.Command{
	Use:   "transfer <token-id> <to-address>",
	Short: "Transfer a token to another address",
	Long: `Send a token you own to another address.

With --safe the transfer uses safeTransferFrom, which reverts when the
recipient is a contract that cannot receive NFTs.

Examples:
  nftmkt transfer 7 0xRecipient
  nftmkt transfer 7 0xRecipient --safe`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, to := args[0], args[1]
		if err := market.ValidateAddress(to); err != nil {
			return err
		}

		client, err := newMarketClient()
		if err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("Transfer", [][2]string{
			{"Token", tokenID},
			{"To", ui.Addr(to)},
			{"Mode", transferMode()},
		}))
		if !ui.ConfirmDanger("Transfers are irreversible. Continue?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		ctx := context.Background()
		spin := ui.NewSpinner("Transferring (waiting for confirmation)...")
		spin.Start()
		var outcome market.Outcome
		if transferSafe {
			outcome = market.OutcomeOf(client.SafeTransfer(ctx, to, tokenID))
		} else {
			outcome = market.OutcomeOf(client.Transfer(ctx, to, tokenID))
		}
		spin.Stop()

		if !outcome.Success {
			fmt.Println(ui.Err("Transfer failed: " + outcome.Err))
			return fmt.Errorf("transfer failed")
		}
		fmt.Println(ui.Success("Transferred! Tx: " + ui.TxLabel(outcome.TxHash)))
		return nil
	},
}

func transferMode() string {
	if transferSafe {
		return "safeTransferFrom"
	}
	return "transferFrom"
}

func init() {
	transferCmd.Flags().BoolVar(&transferSafe, "safe", false, "use safeTransferFrom")
}
