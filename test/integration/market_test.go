package integration_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/contract"
	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	collectionAddr  = "0xeD206F25fB9C73cbB61A15916E02F772B8404C14"
	marketplaceAddr = "0x59b670e9fA9D0A427751Af201D676719a970857b"
	ownerAddr       = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func word(hexVal string) string {
	return strings.Repeat("0", 64-len(hexVal)) + hexVal
}

func addressWord(addr string) string {
	return word(strings.ToLower(strings.TrimPrefix(addr, "0x")))
}

// mockRPCServer answers eth_call by calldata selector and other methods by
// name, so real ABI encoding and decoding runs end to end.
func mockRPCServer(t *testing.T, bySelector map[string]string, byMethod map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
			ID     int           `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck

		var result interface{}
		if req.Method == "eth_call" {
			call := req.Params[0].(map[string]interface{})
			data := call["data"].(string)
			selector := strings.TrimPrefix(data, "0x")[:8]
			resp, ok := bySelector[selector]
			if !ok {
				http.Error(w, "unexpected selector "+selector, http.StatusBadRequest)
				return
			}
			result = "0x" + resp
		} else {
			resp, ok := byMethod[req.Method]
			if !ok {
				http.Error(w, "method not found", http.StatusNotFound)
				return
			}
			result = resp
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func selector(abiJSON, method string) string {
	parsed := contract.MustParseABI(abiJSON)
	return hex.EncodeToString(parsed.Methods[method].ID)
}

func newClientAgainst(serverURL string) *market.Client {
	evm := chain.NewEVMClient(serverURL)
	colABI := contract.MustParseABI(contract.CollectionABI)
	mktABI := contract.MustParseABI(contract.MarketplaceABI)
	return market.NewClient(
		market.WithCollection(contract.NewBinding(evm, colABI, collectionAddr)),
		market.WithMarketplace(contract.NewBinding(evm, mktABI, marketplaceAddr)),
		market.WithAccount(ownerAddr),
		market.WithMetadataFetcher(metadata.NewFetcher(metadata.WithHTTPClient(&http.Client{
			Transport: failingTransport{},
		}))),
	)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, assert.AnError
}

func TestCollectionReadsOverRPC(t *testing.T) {
	server := mockRPCServer(t, map[string]string{
		selector(contract.CollectionABI, "isPublicMintEnabled"): word("1"),
		selector(contract.CollectionABI, "totalSupply"):         word("2a"),
	}, nil)
	defer server.Close()

	c := newClientAgainst(server.URL)
	ctx := context.Background()

	enabled, err := c.MintEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	supply, err := c.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", supply)
}

func TestListingDecodeOverRPC(t *testing.T) {
	// getListing returns a static 7-field tuple: encoded as 7 inline words.
	price, _ := new(big.Int).SetString("1000000000000000000", 10)
	encoded := word("7") +
		addressWord(ownerAddr) +
		addressWord(collectionAddr) +
		word(price.Text(16)) +
		word("1") +
		word(big.NewInt(1_700_000_000).Text(16)) +
		word("0")

	server := mockRPCServer(t, map[string]string{
		selector(contract.MarketplaceABI, "getListing"): encoded,
	}, nil)
	defer server.Close()

	c := newClientAgainst(server.URL)

	listing, err := c.Listing(context.Background(), "7", collectionAddr)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "7", listing.TokenID)
	assert.Equal(t, ownerAddr, listing.Lister)
	assert.Equal(t, collectionAddr, listing.NFTContract)
	assert.Equal(t, "1000000000000000000", listing.Price)
	assert.True(t, listing.IsActive)
	assert.Equal(t, int64(1_700_000_000), listing.ListedTime)
}

func TestInactiveListingOverRPC(t *testing.T) {
	encoded := word("7") + word("0") + word("0") + word("0") + word("0") + word("0") + word("0")
	server := mockRPCServer(t, map[string]string{
		selector(contract.MarketplaceABI, "getListing"): encoded,
	}, nil)
	defer server.Close()

	c := newClientAgainst(server.URL)
	listing, err := c.Listing(context.Background(), "7", collectionAddr)
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestOwnedTokensOverRPC(t *testing.T) {
	// One token (id 9) with a tokenURI string and a royalty pair.
	uriOffset := word("20")                  // offset to string
	uriLen := word("c")                      // "ipfs://QmXyz" = 12 bytes
	uriData := hex.EncodeToString([]byte("ipfs://QmXyz")) + strings.Repeat("0", 64-24)

	royalty := addressWord(ownerAddr) + word(new(big.Int).SetInt64(25_000_000_000_000_000).Text(16))

	server := mockRPCServer(t, map[string]string{
		selector(contract.CollectionABI, "balanceOf"):           word("1"),
		selector(contract.CollectionABI, "tokenOfOwnerByIndex"): word("9"),
		selector(contract.CollectionABI, "tokenURI"):            uriOffset + uriLen + uriData,
		selector(contract.CollectionABI, "royaltyInfo"):         royalty,
	}, nil)
	defer server.Close()

	c := newClientAgainst(server.URL)

	records, err := c.OwnedTokens(context.Background(), ownerAddr)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "9", records[0].TokenID)
	assert.Equal(t, "ipfs://QmXyz", records[0].TokenURI)
	assert.Equal(t, "25000000000000000", records[0].RoyaltyAmount)
	assert.Equal(t, ownerAddr, records[0].RoyaltyRecipient)
	assert.Nil(t, records[0].Metadata, "metadata fetch failure degrades to nil")
}

func TestRevertSurfacesOverRPC(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":3,"message":"execution reverted: not listed"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	c := newClientAgainst(server.URL)
	_, err := c.TotalSupply(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not listed")
}
