package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var (
	mintURI         string
	mintRoyalty     int64
	mintName        string
	mintDescription string
	mintImage       string
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a new token with creator royalties",
	Long: `Mint a token on the collection, paying the configured mint fee.

Either pass a ready metadata URI, or pass --name/--description/--image to
pin a metadata document first and mint with the pinned URI.

Examples:
  nftmkt mint --uri ipfs://QmYourMetadata --royalty 500
  nftmkt mint --name "Sunset #7" --description "A sunset" --image ipfs://QmImg --royalty 250`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := market.ValidateRoyalty(mintRoyalty); err != nil {
			return err
		}

		ctx := context.Background()
		uri := mintURI
		if uri == "" {
			if mintName == "" {
				return fmt.Errorf("either --uri or --name is required")
			}
			pinner := newPinner()
			doc := metadata.Document{
				Name:        mintName,
				Description: mintDescription,
				Image:       mintImage,
			}
			spin := ui.NewSpinner("Pinning metadata...")
			spin.Start()
			hash, err := pinner.PinJSON(ctx, mintName, doc)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("pinning metadata: %w", err)
			}
			uri = pinner.URI(hash)
			fmt.Println(ui.Success("Metadata pinned: " + ui.Meta(pinner.GatewayURL(hash))))
		}

		client, err := newMarketClient()
		if err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("Mint", [][2]string{
			{"URI", uri},
			{"Royalty", fmt.Sprintf("%d bps (%.2f%%)", mintRoyalty, float64(mintRoyalty)/100)},
			{"Mint fee", cfg.MintFee + " ETH"},
		}))
		if !ui.Confirm("Mint this token?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		client.OnHoldingsChanged(func(records []market.TokenRecord) {
			fmt.Println(ui.Meta(fmt.Sprintf("You now hold %d token(s).", len(records))))
		})

		spin := ui.NewSpinner("Minting (waiting for confirmation)...")
		spin.Start()
		receipt, err := client.Mint(ctx, uri, mintRoyalty)
		spin.Stop()

		outcome := market.OutcomeOf(receipt, err)
		if !outcome.Success {
			fmt.Println(ui.Err("Mint failed: " + outcome.Err))
			return fmt.Errorf("mint failed")
		}
		fmt.Println(ui.Success("Minted! Tx: " + ui.TxLabel(outcome.TxHash)))
		return nil
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintURI, "uri", "", "metadata URI to mint with")
	mintCmd.Flags().Int64Var(&mintRoyalty, "royalty", 0, "creator royalty in basis points (max 1000)")
	mintCmd.Flags().StringVar(&mintName, "name", "", "metadata name (pins a document when --uri is not given)")
	mintCmd.Flags().StringVar(&mintDescription, "description", "", "metadata description")
	mintCmd.Flags().StringVar(&mintImage, "image", "", "metadata image URI")
}
