// snapshot-listings: dumps every marketplace listing with the current owner
// of each listed token, fetched in parallel, and prints a summary table.
//
// Run from the module root:
//
//	go run ./scripts/snapshot-listings
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/config"
	"github.com/Mohsinsiddi/nftmkt/internal/contract"
	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
)

const rpcTimeout = 30 * time.Second

type row struct {
	tokenID string
	price   string
	lister  string
	owner   string
	status  string
	note    string
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	evm := chain.NewEVMClient(cfg.RPCURL)
	colABI := contract.MustParseABI(contract.CollectionABI)
	mktABI := contract.MustParseABI(contract.MarketplaceABI)
	client := market.NewClient(
		market.WithCollection(contract.NewBinding(evm, colABI, cfg.Collection)),
		market.WithMarketplace(contract.NewBinding(evm, mktABI, cfg.Marketplace)),
		market.WithMetadataFetcher(metadata.NewFetcher(metadata.WithGateway(cfg.IPFSGateway))),
	)

	listings, err := client.AllListings(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetching listings:", err)
		os.Exit(1)
	}
	if len(listings) == 0 {
		fmt.Println("no listings recorded")
		return
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		rows []row
	)
	for _, l := range listings {
		wg.Add(1)
		go func(l market.Listing) {
			defer wg.Done()

			r := row{
				tokenID: l.TokenID,
				price:   market.FormatEtherString(l.Price),
				lister:  shortAddr(l.Lister),
				status:  "ended",
			}
			if l.IsActive {
				r.status = "active"
			}

			owner, err := client.TokenOwner(ctx, l.TokenID)
			if err != nil {
				r.owner = "—"
				r.note = shortErr(err)
			} else {
				r.owner = shortAddr(owner)
			}

			mu.Lock()
			rows = append(rows, r)
			mu.Unlock()
		}(l)
	}
	wg.Wait()

	printTable(rows)
}

func printTable(rows []row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].status != rows[j].status {
			return rows[i].status < rows[j].status // active first
		}
		return rows[i].tokenID < rows[j].tokenID
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tPRICE (ETH)\tLISTER\tOWNER\tSTATUS\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 12)+"\t"+
		strings.Repeat("-", 14)+"\t"+
		strings.Repeat("-", 14)+"\t"+
		strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 12))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.tokenID, r.price, r.lister, r.owner, r.status, r.note)
	}
	w.Flush()
}

func shortAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}
