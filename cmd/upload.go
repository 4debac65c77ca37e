package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
)

var (
	uploadName        string
	uploadDescription string
	uploadImage       string
	uploadFile        string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Pin a metadata document to IPFS",
	Long: `Pin a token metadata JSON document and print the resulting URI,
ready to pass to 'nftmkt mint --uri'.

Credentials come from NFTMKT_PIN_KEY and NFTMKT_PIN_SECRET.

Examples:
  nftmkt upload --name "Sunset #7" --description "A sunset" --image ipfs://QmImg
  nftmkt upload --file metadata.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc metadata.Document
		switch {
		case uploadFile != "":
			raw, err := os.ReadFile(uploadFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", uploadFile, err)
			}
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", uploadFile, err)
			}
		case uploadName != "":
			doc = metadata.Document{
				Name:        uploadName,
				Description: uploadDescription,
				Image:       uploadImage,
			}
		default:
			return fmt.Errorf("either --file or --name is required")
		}

		pinner := newPinner()
		spin := ui.NewSpinner("Pinning metadata...")
		spin.Start()
		hash, err := pinner.PinJSON(context.Background(), doc.Name, doc)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("pinning metadata: %w", err)
		}

		fmt.Println(ui.KeyValueBlock("Pinned", [][2]string{
			{"Hash", hash},
			{"URI", ui.Val(pinner.URI(hash))},
			{"Gateway", ui.Meta(pinner.GatewayURL(hash))},
		}))
		fmt.Println(ui.Hint("Mint with: nftmkt mint --uri " + pinner.URI(hash) + " --royalty 500"))
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "metadata name")
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "metadata description")
	uploadCmd.Flags().StringVar(&uploadImage, "image", "", "metadata image URI")
	uploadCmd.Flags().StringVar(&uploadFile, "file", "", "read the document from a JSON file instead")
}
