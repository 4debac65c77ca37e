package market

import (
	"context"
	"math/big"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
)

// Caller performs read-only calls against one bound contract.
type Caller interface {
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	Address() string
}

// TxSender submits write transactions against one bound contract and waits
// for confirmation.
type TxSender interface {
	Send(ctx context.Context, method string, value *big.Int, args ...interface{}) (*chain.TxReceipt, error)
	From() string
}

// Client is the marketplace façade: reads against the collection and
// marketplace contracts, writes through their senders, metadata resolution,
// and holdings change notification. Construct with NewClient and options;
// a Client without senders can still read.
type Client struct {
	collection  Caller
	marketplace Caller
	colSender   TxSender
	mktSender   TxSender

	account string
	fetcher *metadata.Fetcher
	mintFee *big.Int

	// resolveCollection binds the collection ABI at an arbitrary address,
	// for listings that reference other NFT contracts.
	resolveCollection func(addr string) Caller

	onHoldings func([]TokenRecord)
}

// Option configures a Client.
type Option func(*Client)

// WithCollection sets the reader for the ERC-721 collection contract.
func WithCollection(c Caller) Option {
	return func(cl *Client) {
		cl.collection = c
	}
}

// WithMarketplace sets the reader for the marketplace contract.
func WithMarketplace(c Caller) Option {
	return func(cl *Client) {
		cl.marketplace = c
	}
}

// WithSenders sets the write paths for the collection and marketplace
// contracts. Leave unset for a read-only client.
func WithSenders(collection, marketplace TxSender) Option {
	return func(cl *Client) {
		cl.colSender = collection
		cl.mktSender = marketplace
	}
}

// WithAccount sets the connected account address used for enumeration and
// transfer preconditions.
func WithAccount(addr string) Option {
	return func(cl *Client) {
		cl.account = addr
	}
}

// WithMetadataFetcher sets the token metadata fetcher.
func WithMetadataFetcher(f *metadata.Fetcher) Option {
	return func(cl *Client) {
		cl.fetcher = f
	}
}

// WithMintFee sets the payable value sent with mintWithRoyalty, in wei.
func WithMintFee(fee *big.Int) Option {
	return func(cl *Client) {
		cl.mintFee = fee
	}
}

// WithCollectionResolver sets the factory used to read token detail from NFT
// contracts other than the primary collection.
func WithCollectionResolver(resolve func(addr string) Caller) Option {
	return func(cl *Client) {
		cl.resolveCollection = resolve
	}
}

// NewClient builds a marketplace client.
func NewClient(opts ...Option) *Client {
	cl := &Client{
		fetcher: metadata.NewFetcher(),
		mintFee: big.NewInt(0),
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Account returns the connected account address, or empty when reading
// anonymously.
func (c *Client) Account() string {
	return c.account
}

// OnHoldingsChanged registers a callback invoked with the re-enumerated
// holdings after each confirmed mint or transfer. Only one callback is held;
// registering again replaces it.
func (c *Client) OnHoldingsChanged(fn func([]TokenRecord)) {
	c.onHoldings = fn
}

// refreshHoldings re-enumerates the connected account's tokens and notifies
// the observer. Enumeration failure after a confirmed write is not an error
// the caller can act on, so it is swallowed here.
func (c *Client) refreshHoldings(ctx context.Context) {
	if c.onHoldings == nil || c.account == "" {
		return
	}
	records, err := c.OwnedTokens(ctx, c.account)
	if err != nil {
		return
	}
	c.onHoldings(records)
}

// collectionFor returns a reader for the given NFT contract, reusing the
// primary collection binding when the address matches.
func (c *Client) collectionFor(addr string) Caller {
	if c.collection != nil && equalAddress(addr, c.collection.Address()) {
		return c.collection
	}
	if c.resolveCollection != nil {
		return c.resolveCollection(addr)
	}
	return c.collection
}
