package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/Mohsinsiddi/nftmkt/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"
)

var (
	eventsFrom  string
	eventsTo    string
	eventsCount int
)

// Marketplace and collection event signatures for auto-decoding.
var knownEventTopics = map[string]string{
	computeEventTopic("NFTListed(address,uint256,address,uint256)"):            "NFTListed",
	computeEventTopic("NFTDelisted(address,uint256,address)"):                  "NFTDelisted",
	computeEventTopic("NFTPurchased(address,uint256,address,address,uint256)"): "NFTPurchased",
	computeEventTopic("ListingUpdated(address,uint256,address,uint256)"):       "ListingUpdated",
	computeEventTopic("Transfer(address,address,uint256)"):                     "Transfer",
	computeEventTopic("Approval(address,address,uint256)"):                     "Approval",
	computeEventTopic("ApprovalForAll(address,address,bool)"):                  "ApprovalForAll",
}

func computeEventTopic(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

var eventsCmd = &cobra.Command{
	Use:   "events [contract]",
	Short: "Query marketplace event logs",
	Long: `Fetch and decode event logs from the marketplace contract (or any
contract passed as an argument).

By default queries the last 1000 blocks. Use --from and --to to specify a
custom range. Marketplace and ERC-721 events are auto-decoded.

Examples:
  nftmkt events
  nftmkt events --count 20
  nftmkt events 0xYourCollection --from 0x100 --to latest`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractAddr := cfg.Marketplace
		if len(args) > 0 {
			contractAddr = args[0]
		}

		client := newChainClient()
		ctx := context.Background()

		// Determine block range.
		fromBlock := normalizeBlockParam(eventsFrom)
		toBlock := normalizeBlockParam(eventsTo)
		if fromBlock == "" {
			// Default: last 1000 blocks.
			latest, err := client.GetBlockNumber(ctx)
			if err != nil {
				return fmt.Errorf("getting block number: %w", err)
			}
			start := latest - 1000
			if latest < 1000 {
				start = 0
			}
			fromBlock = fmt.Sprintf("0x%x", start)
		}
		if toBlock == "" {
			toBlock = "latest"
		}

		spin := ui.NewSpinner("Fetching events...")
		spin.Start()
		logs, err := client.GetLogs(ctx, contractAddr, nil, fromBlock, toBlock)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("querying events: %w", err)
		}

		if len(logs) == 0 {
			fmt.Println(ui.Info(fmt.Sprintf("No events found for %s in the specified range", ui.TruncateAddr(contractAddr))))
			return nil
		}

		// Limit display.
		if eventsCount > 0 && len(logs) > eventsCount {
			logs = logs[len(logs)-eventsCount:]
		}

		fmt.Println(ui.KeyValueBlock("Events", [][2]string{
			{"Contract", ui.Addr(contractAddr)},
			{"Showing", fmt.Sprintf("%d events", len(logs))},
			{"Block range", fmt.Sprintf("%s → %s", fromBlock, toBlock)},
		}))
		fmt.Println()

		for i, log := range logs {
			blockNum := ""
			if bn, ok := new(big.Int).SetString(strings.TrimPrefix(log.BlockNumber, "0x"), 16); ok {
				blockNum = bn.String()
			}

			eventName := "Unknown"
			if len(log.Topics) > 0 {
				if name, ok := knownEventTopics[log.Topics[0]]; ok {
					eventName = name
				} else {
					eventName = ui.TruncateAddr(log.Topics[0])
				}
			}

			pairs := [][2]string{
				{"Event", ui.Val(eventName)},
				{"Block", blockNum},
				{"Tx", ui.Addr(log.TxHash)},
			}
			for j := 1; j < len(log.Topics); j++ {
				pairs = append(pairs, [2]string{fmt.Sprintf("Topic[%d]", j), decodeTopic(log.Topics[j])})
			}
			if log.Data != "" && log.Data != "0x" {
				pairs = append(pairs, [2]string{"Data", decodeDataWord(log.Data)})
			}

			fmt.Println(ui.KeyValueBlock(fmt.Sprintf("Event #%d", i+1), pairs))
		}
		return nil
	},
}

// decodeTopic renders an indexed topic. Small values read as token ids and
// show a decimal form; address-shaped values are unwrapped.
func decodeTopic(topic string) string {
	clean := strings.TrimPrefix(topic, "0x")
	if n, ok := new(big.Int).SetString(clean, 16); ok && n.BitLen() <= 64 {
		return fmt.Sprintf("%s (%s)", topic, n.String())
	}
	if len(clean) == 64 && strings.HasPrefix(clean, "000000000000000000000000") {
		return ui.Addr("0x" + clean[24:])
	}
	return topic
}

// decodeDataWord shows single-word data as decimal too; longer data is
// truncated.
func decodeDataWord(data string) string {
	clean := strings.TrimPrefix(data, "0x")
	if len(clean) <= 64 {
		if n, ok := new(big.Int).SetString(clean, 16); ok {
			return fmt.Sprintf("%s (%s)", data, n.String())
		}
		return data
	}
	if len(data) > 74 {
		return data[:74] + "..."
	}
	return data
}

// normalizeBlockParam converts a block number flag to an RPC-compatible value.
// Accepts hex ("0x1a"), decimal ("100"), named tags ("latest"), or empty string.
func normalizeBlockParam(s string) string {
	if s == "" || s == "latest" || s == "earliest" || s == "pending" || strings.HasPrefix(s, "0x") {
		return s
	}
	// Treat as decimal.
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s // pass through, RPC will reject if invalid
	}
	return fmt.Sprintf("0x%x", n)
}

func init() {
	eventsCmd.Flags().StringVar(&eventsFrom, "from", "", "start block (hex or decimal, default: latest-1000)")
	eventsCmd.Flags().StringVar(&eventsTo, "to", "", "end block (default: latest)")
	eventsCmd.Flags().IntVar(&eventsCount, "count", 10, "max events to display")
}
