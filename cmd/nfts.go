package cmd

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var nftsOwner string

var nftsCmd = &cobra.Command{
	Use:   "nfts",
	Short: "List the NFTs an address holds",
	Long: `Enumerate every token the connected account (or --owner) holds on
the collection, with metadata and royalty detail. Tokens whose detail cannot
be fetched still appear, with blanks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMarketClient()
		if err != nil {
			return err
		}

		owner := nftsOwner
		if owner == "" {
			owner = client.Account()
		}
		if owner == "" {
			return fmt.Errorf("no wallet configured — pass --owner <address> or add one with `nftmkt wallet add`")
		}

		spin := ui.NewSpinner("Enumerating tokens...")
		spin.Start()
		records, err := client.OwnedTokens(context.Background(), owner)
		spin.Stop()
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println(ui.Info(fmt.Sprintf("%s holds no tokens on this collection.", ui.TruncateAddr(owner))))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Token", Width: 8},
			{Title: "Name", Width: 24},
			{Title: "Royalty/ETH", Width: 14},
			{Title: "URI", Width: 40},
		})
		for _, r := range records {
			name := "(no metadata)"
			if r.Metadata != nil {
				name = r.Metadata.Name
			}
			t.AddRow(ui.Row{
				ui.Val(r.TokenID),
				name,
				market.FormatEtherString(r.RoyaltyAmount),
				ui.Meta(r.TokenURI),
			})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d token(s) held by %s", len(records), ui.TruncateAddr(owner))))
		return nil
	},
}

func init() {
	nftsCmd.Flags().StringVar(&nftsOwner, "owner", "", "address to enumerate (default: connected wallet)")
}
