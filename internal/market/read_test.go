package market

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectionOf builds a healthy collection fake holding the given token ids
// for testOwner, each with a URI and a 2.5% royalty.
func collectionOf(ids ...int64) *fakeCaller {
	return &fakeCaller{
		addr: testCollection,
		handler: func(method string, args []interface{}) ([]interface{}, error) {
			switch method {
			case "balanceOf":
				return []interface{}{big.NewInt(int64(len(ids)))}, nil
			case "tokenOfOwnerByIndex":
				idx := args[1].(*big.Int).Int64()
				return []interface{}{big.NewInt(ids[idx])}, nil
			case "tokenURI":
				id := args[0].(*big.Int)
				return []interface{}{fmt.Sprintf("ipfs://QmMeta/%s.json", id)}, nil
			case "royaltyInfo":
				return []interface{}{addr(testOwner), big.NewInt(25_000_000_000_000_000)}, nil
			case "totalSupply":
				return []interface{}{big.NewInt(99)}, nil
			case "isPublicMintEnabled":
				return []interface{}{true}, nil
			case "ownerOf":
				return []interface{}{addr(testOwner)}, nil
			}
			return nil, fmt.Errorf("unexpected call %s", method)
		},
	}
}

func newReadClient(col, mkt Caller) *Client {
	return NewClient(
		WithCollection(col),
		WithMarketplace(mkt),
		WithAccount(testOwner),
		WithMetadataFetcher(noMetadataFetcher()),
	)
}

func TestMintEnabled(t *testing.T) {
	c := newReadClient(collectionOf(), nil)
	enabled, err := c.MintEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestTotalSupply(t *testing.T) {
	c := newReadClient(collectionOf(), nil)
	supply, err := c.TotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "99", supply)
}

func TestTokenOwner(t *testing.T) {
	c := newReadClient(collectionOf(1), nil)
	owner, err := c.TokenOwner(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)

	_, err = c.TokenOwner(context.Background(), "not-a-number")
	assert.Error(t, err)
}

func TestOwnedTokensEnumeratesAll(t *testing.T) {
	col := collectionOf(7, 3, 12)
	c := newReadClient(col, nil)

	records, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Index order preserved, every id present exactly once.
	assert.Equal(t, "7", records[0].TokenID)
	assert.Equal(t, "3", records[1].TokenID)
	assert.Equal(t, "12", records[2].TokenID)

	seen := map[string]bool{}
	for _, r := range records {
		assert.False(t, seen[r.TokenID], "duplicate token %s", r.TokenID)
		seen[r.TokenID] = true
		assert.Equal(t, testCollection, r.Contract)
		assert.Equal(t, "25000000000000000", r.RoyaltyAmount)
		assert.Equal(t, testOwner, r.RoyaltyRecipient)
		assert.Equal(t, fmt.Sprintf("ipfs://QmMeta/%s.json", r.TokenID), r.TokenURI)
	}

	assert.Equal(t, 3, col.callCount("tokenOfOwnerByIndex"))
}

func TestOwnedTokensEmptyBalance(t *testing.T) {
	c := newReadClient(collectionOf(), nil)
	records, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOwnedTokensDetailDegradesPerToken(t *testing.T) {
	base := collectionOf(1, 2, 3)
	col := &fakeCaller{
		addr: testCollection,
		handler: func(method string, args []interface{}) ([]interface{}, error) {
			if method == "tokenURI" && args[0].(*big.Int).Int64() == 2 {
				return nil, errors.New("execution reverted")
			}
			return base.handler(method, args)
		},
	}
	c := newReadClient(col, nil)

	records, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Token 2 degrades to the placeholder; its neighbors are untouched.
	assert.Equal(t, TokenRecord{
		TokenID:       "2",
		RoyaltyAmount: "0",
		Contract:      testCollection,
	}, records[1])
	assert.Equal(t, "ipfs://QmMeta/1.json", records[0].TokenURI)
	assert.Equal(t, "ipfs://QmMeta/3.json", records[2].TokenURI)
}

func TestOwnedTokensRoyaltyFailureDegrades(t *testing.T) {
	base := collectionOf(5)
	col := &fakeCaller{
		addr: testCollection,
		handler: func(method string, args []interface{}) ([]interface{}, error) {
			if method == "royaltyInfo" {
				return nil, errors.New("execution reverted")
			}
			return base.handler(method, args)
		},
	}
	c := newReadClient(col, nil)

	records, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].TokenURI)
	assert.Equal(t, "0", records[0].RoyaltyAmount)
	assert.Nil(t, records[0].Metadata)
}

func TestOwnedTokensEnumerationFailureIsFatal(t *testing.T) {
	base := collectionOf(1, 2)
	col := &fakeCaller{
		addr: testCollection,
		handler: func(method string, args []interface{}) ([]interface{}, error) {
			if method == "tokenOfOwnerByIndex" && args[1].(*big.Int).Int64() == 1 {
				return nil, errors.New("rate limited")
			}
			return base.handler(method, args)
		},
	}
	c := newReadClient(col, nil)

	_, err := c.OwnedTokens(context.Background(), testOwner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enumerating tokens")
}

func TestOwnedTokensRejectsBadAddress(t *testing.T) {
	col := collectionOf(1)
	c := newReadClient(col, nil)

	_, err := c.OwnedTokens(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.Empty(t, col.calls)
}

func TestOwnedTokensRoyaltyReferencePrice(t *testing.T) {
	col := collectionOf(9)
	c := newReadClient(col, nil)

	_, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)

	for _, call := range col.calls {
		if call.method == "royaltyInfo" {
			assert.Equal(t, "1000000000000000000", call.args[1].(*big.Int).String())
			return
		}
	}
	t.Fatal("royaltyInfo never called")
}

func TestOwnedTokensFetchesMetadata(t *testing.T) {
	c := NewClient(
		WithCollection(collectionOf(4)),
		WithAccount(testOwner),
		WithMetadataFetcher(docFetcher(`{"name":"Sunset #4","image":"ipfs://QmImg"}`)),
	)

	records, err := c.OwnedTokens(context.Background(), testOwner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Metadata)
	assert.Equal(t, "Sunset #4", records[0].Metadata.Name)
}

func marketplaceOf(listings ...rawListing) *fakeCaller {
	return &fakeCaller{
		addr: testMarketplace,
		handler: func(method string, args []interface{}) ([]interface{}, error) {
			switch method {
			case "getListing":
				id := args[0].(*big.Int)
				for _, l := range listings {
					if l.TokenId.Cmp(id) == 0 {
						return []interface{}{l}, nil
					}
				}
				return []interface{}{rawListing{
					TokenId: id, Price: big.NewInt(0),
					ListedTime: big.NewInt(0), SoldAt: big.NewInt(0),
				}}, nil
			case "getAllListings", "getUserListings":
				return []interface{}{listings}, nil
			case "getPlatformFee":
				return []interface{}{big.NewInt(25_000_000_000_000_000)}, nil
			}
			return nil, fmt.Errorf("unexpected call %s", method)
		},
	}
}

func TestListingActive(t *testing.T) {
	mkt := marketplaceOf(activeRawListing(7, "1000000000000000000"))
	c := newReadClient(collectionOf(), mkt)

	listing, err := c.Listing(context.Background(), "7", testCollection)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "7", listing.TokenID)
	assert.Equal(t, "1000000000000000000", listing.Price)
	assert.Equal(t, testOwner, listing.Lister)
	assert.True(t, listing.IsActive)
}

func TestListingInactiveIsNil(t *testing.T) {
	mkt := marketplaceOf()
	c := newReadClient(collectionOf(), mkt)

	listing, err := c.Listing(context.Background(), "7", testCollection)
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestListingRejectsBadInput(t *testing.T) {
	c := newReadClient(collectionOf(), marketplaceOf())
	_, err := c.Listing(context.Background(), "x", testCollection)
	assert.Error(t, err)
	_, err = c.Listing(context.Background(), "1", "bogus")
	assert.Error(t, err)
}

func TestAllListings(t *testing.T) {
	sold := activeRawListing(2, "2000000000000000000")
	sold.IsActive = false
	sold.SoldAt = big.NewInt(1_700_000_500)
	mkt := marketplaceOf(activeRawListing(1, "1000000000000000000"), sold)
	c := newReadClient(collectionOf(), mkt)

	listings, err := c.AllListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.True(t, listings[0].IsActive)
	assert.False(t, listings[1].IsActive)
	assert.Equal(t, int64(1_700_000_500), listings[1].SoldAt)

	active := FilterActive(listings)
	require.Len(t, active, 1)
	assert.Equal(t, "1", active[0].TokenID)
}

func TestMyListings(t *testing.T) {
	mkt := marketplaceOf(activeRawListing(3, "500000000000000000"))
	c := newReadClient(collectionOf(), mkt)

	listings, err := c.MyListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, 1, mkt.callCount("getUserListings"))
	assert.Equal(t, 0, mkt.callCount("getAllListings"))
}

func TestPlatformFeeDegradesToZero(t *testing.T) {
	failing := &fakeCaller{
		addr: testMarketplace,
		handler: func(string, []interface{}) ([]interface{}, error) {
			return nil, errors.New("boom")
		},
	}
	c := newReadClient(collectionOf(), failing)
	assert.Equal(t, "0", c.PlatformFee(context.Background(), "1", testCollection))
	assert.Equal(t, "0", c.PlatformFee(context.Background(), "bad-id", testCollection))

	healthy := marketplaceOf()
	c = newReadClient(collectionOf(), healthy)
	assert.Equal(t, "25000000000000000", c.PlatformFee(context.Background(), "1", testCollection))
}

func TestTokenDetailUsesResolverForOtherContracts(t *testing.T) {
	other := "0x1111111111111111111111111111111111111111"
	resolved := collectionOf(8)
	resolved.addr = other

	c := NewClient(
		WithCollection(collectionOf(8)),
		WithMetadataFetcher(noMetadataFetcher()),
		WithCollectionResolver(func(a string) Caller {
			assert.Equal(t, other, a)
			return resolved
		}),
	)

	record, err := c.TokenDetail(context.Background(), other, "8")
	require.NoError(t, err)
	assert.Equal(t, other, record.Contract)
	assert.Equal(t, 1, resolved.callCount("tokenURI"))
}

func TestTokenDetailReusesPrimaryCollection(t *testing.T) {
	col := collectionOf(8)
	c := NewClient(
		WithCollection(col),
		WithMetadataFetcher(noMetadataFetcher()),
		WithCollectionResolver(func(string) Caller {
			t.Fatal("resolver used for the primary collection")
			return nil
		}),
	)

	// Address comparison ignores case.
	record, err := c.TokenDetail(context.Background(), strings.ToLower(testCollection), "8")
	require.NoError(t, err)
	assert.Equal(t, testCollection, record.Contract)
	assert.Equal(t, 1, col.callCount("tokenURI"))
}
