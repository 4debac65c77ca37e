package market

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// royaltySalePrice is the 1 ETH reference sale price royaltyInfo is quoted
// against, so RoyaltyAmount reads as wei-per-ETH.
var royaltySalePrice = big.NewInt(1_000_000_000_000_000_000)

// MintEnabled reports whether public minting is open on the collection.
func (c *Client) MintEnabled(ctx context.Context) (bool, error) {
	out, err := c.collection.Call(ctx, "isPublicMintEnabled")
	if err != nil {
		return false, fmt.Errorf("checking mint status: %w", err)
	}
	return asBool(out)
}

// TotalSupply returns the collection's minted token count as a decimal
// string.
func (c *Client) TotalSupply(ctx context.Context) (string, error) {
	out, err := c.collection.Call(ctx, "totalSupply")
	if err != nil {
		return "", fmt.Errorf("reading total supply: %w", err)
	}
	n, err := asBig(out)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// TokenOwner returns the current owner of a token on the collection.
func (c *Client) TokenOwner(ctx context.Context, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	out, err := c.collection.Call(ctx, "ownerOf", id)
	if err != nil {
		return "", fmt.Errorf("reading owner of token %s: %w", tokenID, err)
	}
	addr, err := asAddress(out)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// OwnedTokens enumerates every token the owner holds on the collection, with
// URI, royalty, and metadata detail fetched concurrently per token. A failed
// enumeration is an error; a failed detail fetch degrades that one token to
// a placeholder record and leaves the rest intact.
func (c *Client) OwnedTokens(ctx context.Context, owner string) ([]TokenRecord, error) {
	if err := ValidateAddress(owner); err != nil {
		return nil, err
	}
	ownerAddr := common.HexToAddress(owner)

	out, err := c.collection.Call(ctx, "balanceOf", ownerAddr)
	if err != nil {
		return nil, fmt.Errorf("reading balance: %w", err)
	}
	balance, err := asBig(out)
	if err != nil {
		return nil, err
	}

	count := int(balance.Int64())
	ids := make([]*big.Int, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := c.collection.Call(ctx, "tokenOfOwnerByIndex", ownerAddr, big.NewInt(int64(i)))
			if err != nil {
				errs[i] = err
				return
			}
			ids[i], errs[i] = asBig(out)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("enumerating tokens: %w", err)
		}
	}

	records := make([]TokenRecord, count)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id *big.Int) {
			defer wg.Done()
			records[i] = c.tokenDetail(ctx, c.collection, id)
		}(i, id)
	}
	wg.Wait()

	return records, nil
}

// TokenDetail returns the display record for one token on the given NFT
// contract. Detail fetch failures degrade to a placeholder, matching
// OwnedTokens.
func (c *Client) TokenDetail(ctx context.Context, nftAddr, tokenID string) (TokenRecord, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return TokenRecord{}, err
	}
	col := c.collectionFor(nftAddr)
	if col == nil {
		return TokenRecord{}, fmt.Errorf("no reader for contract %s", nftAddr)
	}
	return c.tokenDetail(ctx, col, id), nil
}

// tokenDetail fetches URI and royalty concurrently, then metadata. Any
// failure yields the degraded placeholder so one bad token never poisons a
// whole view.
func (c *Client) tokenDetail(ctx context.Context, col Caller, id *big.Int) TokenRecord {
	record := TokenRecord{
		TokenID:          id.String(),
		RoyaltyAmount:    "0",
		RoyaltyRecipient: "",
		Contract:         col.Address(),
	}

	var (
		wg         sync.WaitGroup
		uri        string
		uriErr     error
		royaltyTo  common.Address
		royaltyAmt *big.Int
		royaltyErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := col.Call(ctx, "tokenURI", id)
		if err != nil {
			uriErr = err
			return
		}
		uri, uriErr = asString(out)
	}()
	go func() {
		defer wg.Done()
		out, err := col.Call(ctx, "royaltyInfo", id, royaltySalePrice)
		if err != nil {
			royaltyErr = err
			return
		}
		if len(out) < 2 {
			royaltyErr = fmt.Errorf("royaltyInfo returned %d values", len(out))
			return
		}
		var ok bool
		if royaltyTo, ok = out[0].(common.Address); !ok {
			royaltyErr = fmt.Errorf("unexpected royalty receiver type %T", out[0])
			return
		}
		if royaltyAmt, ok = out[1].(*big.Int); !ok {
			royaltyErr = fmt.Errorf("unexpected royalty amount type %T", out[1])
		}
	}()
	wg.Wait()

	if uriErr != nil || royaltyErr != nil {
		return record
	}

	record.TokenURI = uri
	record.RoyaltyAmount = royaltyAmt.String()
	record.RoyaltyRecipient = royaltyTo.Hex()
	record.Metadata = c.fetcher.Fetch(ctx, uri)
	return record
}

// Listing returns the marketplace listing for a token, or nil when the token
// has no active listing.
func (c *Client) Listing(ctx context.Context, tokenID, nftAddr string) (*Listing, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddress(nftAddr); err != nil {
		return nil, err
	}
	out, err := c.marketplace.Call(ctx, "getListing", id, common.HexToAddress(nftAddr))
	if err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	listing, err := decodeListing(out)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, nil
	}
	return &listing, nil
}

// AllListings returns every listing the marketplace has ever recorded,
// active and ended. Callers partition with FilterActive.
func (c *Client) AllListings(ctx context.Context) ([]Listing, error) {
	out, err := c.marketplace.Call(ctx, "getAllListings")
	if err != nil {
		return nil, fmt.Errorf("reading listings: %w", err)
	}
	return decodeListings(out)
}

// MyListings returns the connected account's full listing history. The
// lookup is keyed on the caller, so the marketplace reader must carry the
// account as its from address.
func (c *Client) MyListings(ctx context.Context) ([]Listing, error) {
	out, err := c.marketplace.Call(ctx, "getUserListings")
	if err != nil {
		return nil, fmt.Errorf("reading your listings: %w", err)
	}
	return decodeListings(out)
}

// PlatformFee returns the marketplace fee for a token in wei as a decimal
// string. Any failure degrades to "0"; display code must not block on fees.
func (c *Client) PlatformFee(ctx context.Context, tokenID, nftAddr string) string {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "0"
	}
	fee, err := c.platformFee(ctx, id, nftAddr)
	if err != nil {
		return "0"
	}
	return fee.String()
}

// platformFee is the strict form used by Buy, where a stale or missing fee
// must fail rather than default.
func (c *Client) platformFee(ctx context.Context, id *big.Int, nftAddr string) (*big.Int, error) {
	out, err := c.marketplace.Call(ctx, "getPlatformFee", id, common.HexToAddress(nftAddr))
	if err != nil {
		return nil, fmt.Errorf("reading platform fee: %w", err)
	}
	return asBig(out)
}

func asBig(out []interface{}) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty result")
	}
	n, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", out[0])
	}
	return n, nil
}

func asBool(out []interface{}) (bool, error) {
	if len(out) == 0 {
		return false, fmt.Errorf("empty result")
	}
	b, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected result type %T", out[0])
	}
	return b, nil
}

func asString(out []interface{}) (string, error) {
	if len(out) == 0 {
		return "", fmt.Errorf("empty result")
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected result type %T", out[0])
	}
	return s, nil
}

func asAddress(out []interface{}) (common.Address, error) {
	if len(out) == 0 {
		return common.Address{}, fmt.Errorf("empty result")
	}
	a, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected result type %T", out[0])
	}
	return a, nil
}
