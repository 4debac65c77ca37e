package market

import (
	"context"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/ethereum/go-ethereum/common"
)

func addr(s string) common.Address {
	return common.HexToAddress(s)
}

const (
	testOwner       = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testBuyer       = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testCollection  = "0xeD206F25fB9C73cbB61A15916E02F772B8404C14"
	testMarketplace = "0x59b670e9fA9D0A427751Af201D676719a970857b"
)

// fakeCaller routes reads to a handler and records every call. Calls may
// arrive concurrently from the enumeration fan-out.
type fakeCaller struct {
	addr    string
	handler func(method string, args []interface{}) ([]interface{}, error)

	mu    sync.Mutex
	calls []recordedCall
}

type recordedCall struct {
	method string
	args   []interface{}
}

func (f *fakeCaller) Call(_ context.Context, method string, args ...interface{}) ([]interface{}, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	f.mu.Unlock()
	return f.handler(method, args)
}

func (f *fakeCaller) Address() string {
	return f.addr
}

func (f *fakeCaller) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

// fakeSender records writes and returns a canned receipt or error.
type fakeSender struct {
	from string
	err  error

	mu    sync.Mutex
	sends []recordedSend
}

type recordedSend struct {
	method string
	value  *big.Int
	args   []interface{}
}

func (f *fakeSender) Send(_ context.Context, method string, value *big.Int, args ...interface{}) (*chain.TxReceipt, error) {
	f.mu.Lock()
	f.sends = append(f.sends, recordedSend{method: method, value: value, args: args})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &chain.TxReceipt{Hash: "0xfeed", Status: 1}, nil
}

func (f *fakeSender) From() string {
	return f.from
}

// noMetadataFetcher never reaches the network; every fetch degrades to nil.
func noMetadataFetcher() *metadata.Fetcher {
	return metadata.NewFetcher(metadata.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     make(http.Header),
			}, nil
		}),
	}))
}

// docFetcher serves one canned metadata document for every URI.
func docFetcher(doc string) *metadata.Fetcher {
	return metadata.NewFetcher(metadata.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(doc)),
				Header:     make(http.Header),
			}, nil
		}),
	}))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func activeRawListing(id int64, priceWei string) rawListing {
	price, _ := new(big.Int).SetString(priceWei, 10)
	return rawListing{
		TokenId:     big.NewInt(id),
		Lister:      addr(testOwner),
		NftContract: addr(testCollection),
		Price:       price,
		IsActive:    true,
		ListedTime:  big.NewInt(1_700_000_000),
		SoldAt:      big.NewInt(0),
	}
}
