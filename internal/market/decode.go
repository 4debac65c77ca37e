package market

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// rawListing mirrors the marketplace listing tuple. Field names must match
// the ABI component names for abi.ConvertType to map them.
type rawListing struct {
	TokenId     *big.Int
	Lister      common.Address
	NftContract common.Address
	Price       *big.Int
	IsActive    bool
	ListedTime  *big.Int
	SoldAt      *big.Int
}

func (r rawListing) toListing() Listing {
	return Listing{
		TokenID:     bigString(r.TokenId),
		Lister:      r.Lister.Hex(),
		NFTContract: r.NftContract.Hex(),
		Price:       bigString(r.Price),
		IsActive:    r.IsActive,
		ListedTime:  bigInt64(r.ListedTime),
		SoldAt:      bigInt64(r.SoldAt),
	}
}

// decodeListing converts the first output of getListing into a Listing.
func decodeListing(out []interface{}) (Listing, error) {
	if len(out) == 0 {
		return Listing{}, errors.New("empty listing result")
	}
	raw := *abi.ConvertType(out[0], new(rawListing)).(*rawListing)
	return raw.toListing(), nil
}

// decodeListings converts the first output of getUserListings or
// getAllListings into a slice of Listings.
func decodeListings(out []interface{}) ([]Listing, error) {
	if len(out) == 0 {
		return nil, errors.New("empty listings result")
	}
	raws := *abi.ConvertType(out[0], new([]rawListing)).(*[]rawListing)
	listings := make([]Listing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, raw.toListing())
	}
	return listings, nil
}

func bigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

func bigInt64(n *big.Int) int64 {
	if n == nil {
		return 0
	}
	return n.Int64()
}
