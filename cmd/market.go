package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var marketNFTAddr string

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Marketplace listing lifecycle",
}

var marketListCmd = &cobra.Command{
	Use:   "list [token-id] <price-eth>",
	Short: "List a token for sale",
	Long: `List a collection token on the marketplace at a decimal ETH price.

Without a token id an interactive picker shows your holdings. The
marketplace is approved as an operator first when it is not already.

Examples:
  nftmkt market list 7 0.1
  nftmkt market list 0.1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var tokenID, price string
		if len(args) == 2 {
			tokenID, price = args[0], args[1]
		} else {
			price = args[0]
			tokenID, err = pickOwnedToken(ctx, client)
			if err != nil {
				return err
			}
			if tokenID == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
		}
		if err := market.ValidatePrice(price); err != nil {
			return err
		}

		fmt.Println(ui.KeyValueBlock("List", [][2]string{
			{"Token", tokenID},
			{"Price", price + " ETH"},
			{"Marketplace", ui.Addr(cfg.Marketplace)},
		}))
		if !ui.Confirm("List this token? (may require an approval transaction first)") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Listing (waiting for confirmation)...")
		spin.Start()
		outcome := market.OutcomeOf(client.List(ctx, tokenID, price))
		spin.Stop()

		if !outcome.Success {
			fmt.Println(ui.Err("Listing failed: " + outcome.Err))
			return fmt.Errorf("listing failed")
		}
		fmt.Println(ui.Success("Listed! Tx: " + ui.TxLabel(outcome.TxHash)))
		fmt.Println(ui.Hint("View: " + ui.OpenSeaURL(cfg.Collection, tokenID)))
		return nil
	},
}

var marketUpdateCmd = &cobra.Command{
	Use:   "update <token-id> <new-price-eth>",
	Short: "Change the price of a listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		spin := ui.NewSpinner("Updating listing...")
		spin.Start()
		outcome := market.OutcomeOf(client.UpdateListing(context.Background(), args[0], nftAddr(), args[1]))
		spin.Stop()

		if !outcome.Success {
			fmt.Println(ui.Err("Update failed: " + outcome.Err))
			return fmt.Errorf("update failed")
		}
		fmt.Println(ui.Success("Price updated. Tx: " + ui.TxLabel(outcome.TxHash)))
		return nil
	},
}

var marketCancelCmd = &cobra.Command{
	Use:   "cancel <token-id>",
	Short: "Take a listing off the market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		if !ui.Confirm(fmt.Sprintf("Cancel the listing for token %s?", args[0])) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		spin := ui.NewSpinner("Cancelling listing...")
		spin.Start()
		outcome := market.OutcomeOf(client.CancelListing(context.Background(), args[0], nftAddr()))
		spin.Stop()

		if !outcome.Success {
			fmt.Println(ui.Err("Cancel failed: " + outcome.Err))
			return fmt.Errorf("cancel failed")
		}
		fmt.Println(ui.Success("Listing cancelled. Tx: " + ui.TxLabel(outcome.TxHash)))
		return nil
	},
}

var marketBuyCmd = &cobra.Command{
	Use:   "buy <token-id>",
	Short: "Buy a listed token",
	Long: `Buy an active listing. The payable value is the listing price plus
the platform fee, re-fetched immediately before the purchase.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		ctx := context.Background()
		tokenID := args[0]

		listing, err := client.Listing(ctx, tokenID, nftAddr())
		if err != nil {
			return err
		}
		if listing == nil {
			return fmt.Errorf("token %s is not listed", tokenID)
		}
		fee := client.PlatformFee(ctx, tokenID, nftAddr())

		fmt.Println(ui.KeyValueBlock("Buy", [][2]string{
			{"Token", tokenID},
			{"Seller", ui.Addr(listing.Lister)},
			{"Price", market.FormatEtherString(listing.Price) + " ETH"},
			{"Platform fee", market.FormatEtherString(fee) + " ETH"},
		}))
		if !ui.Confirm("Buy this token?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Buying (waiting for confirmation)...")
		spin.Start()
		outcome := market.OutcomeOf(client.Buy(ctx, tokenID, nftAddr()))
		spin.Stop()

		if !outcome.Success {
			fmt.Println(ui.Err("Purchase failed: " + outcome.Err))
			return fmt.Errorf("purchase failed")
		}
		fmt.Println(ui.Success("Purchased! Tx: " + ui.TxLabel(outcome.TxHash)))
		return nil
	},
}

var marketListingsAll bool

var marketListingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Show marketplace listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		spin := ui.NewSpinner("Fetching listings...")
		spin.Start()
		listings, err := client.AllListings(context.Background())
		spin.Stop()
		if err != nil {
			return err
		}
		if !marketListingsAll {
			listings = market.FilterActive(listings)
		}
		renderListings("Marketplace listings", listings)
		return nil
	},
}

var marketMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your own listing history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		if client.Account() == "" {
			return fmt.Errorf("no wallet configured — your listings are looked up by caller address")
		}
		spin := ui.NewSpinner("Fetching your listings...")
		spin.Start()
		listings, err := client.MyListings(context.Background())
		spin.Stop()
		if err != nil {
			return err
		}
		renderListings("Your listings", listings)
		return nil
	},
}

var marketFeeCmd = &cobra.Command{
	Use:   "fee <token-id>",
	Short: "Show the platform fee for a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}
		fee := client.PlatformFee(context.Background(), args[0], nftAddr())
		fmt.Println(ui.KeyValueBlock("Platform fee", [][2]string{
			{"Token", args[0]},
			{"Fee", market.FormatEtherString(fee) + " ETH"},
		}))
		return nil
	},
}

// nftAddr returns the NFT contract flag value, defaulting to the configured
// collection.
func nftAddr() string {
	if marketNFTAddr != "" {
		return marketNFTAddr
	}
	return cfg.Collection
}

// pickOwnedToken shows an interactive picker over the connected account's
// holdings and returns the chosen token id ("" on cancel).
func pickOwnedToken(ctx context.Context, client *market.Client) (string, error) {
	account := client.Account()
	if account == "" {
		return "", fmt.Errorf("no wallet configured — add one with `nftmkt wallet add`")
	}

	spin := ui.NewSpinner("Enumerating your tokens...")
	spin.Start()
	records, err := client.OwnedTokens(ctx, account)
	spin.Stop()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("you hold no tokens on this collection")
	}

	items := make([]ui.PickerItem, len(records))
	for i, r := range records {
		items[i] = ui.PickerItem{
			Label:    "Token #" + r.TokenID,
			SubLabel: metadata.Summary(r.Metadata),
			Value:    r.TokenID,
		}
	}
	return ui.PickItem("List a token  ·  select one of your NFTs", items)
}

func renderListings(title string, listings []market.Listing) {
	if len(listings) == 0 {
		fmt.Println(ui.Info("No listings."))
		return
	}
	t := ui.NewTable([]ui.Column{
		{Title: "Token", Width: 8},
		{Title: "Price (ETH)", Width: 14},
		{Title: "Lister", Width: 14},
		{Title: "Status", Width: 8},
		{Title: "Listed", Width: 18},
	})
	for _, l := range listings {
		status := ui.Meta("ended")
		if l.IsActive {
			status = ui.StyleSuccess.Render("active")
		}
		t.AddRow(ui.Row{
			ui.Val(l.TokenID),
			market.FormatEtherString(l.Price),
			ui.Addr(ui.TruncateAddr(l.Lister)),
			status,
			ui.Meta(time.Unix(l.ListedTime, 0).UTC().Format("2006-01-02 15:04")),
		})
	}
	fmt.Println(ui.StyleTitle.Render(title))
	fmt.Println(t.Render())
	fmt.Println(ui.Meta(fmt.Sprintf("%d listing(s)", len(listings))))
}

func init() {
	marketCmd.PersistentFlags().StringVar(&marketNFTAddr, "nft", "", "NFT contract address (default: configured collection)")
	marketListingsCmd.Flags().BoolVar(&marketListingsAll, "all", false, "include ended listings")
	marketCmd.AddCommand(marketListCmd, marketUpdateCmd, marketCancelCmd, marketBuyCmd,
		marketListingsCmd, marketMineCmd, marketFeeCmd)
}
