package market

import (
	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
)

// TokenRecord is one owned or listed token with its display detail. Numeric
// fields are decimal strings so records survive JSON round trips without
// precision loss.
type TokenRecord struct {
	TokenID          string             `json:"tokenId"`
	TokenURI         string             `json:"tokenURI"`
	Metadata         *metadata.Document `json:"metadata"`
	RoyaltyAmount    string             `json:"royaltyAmount"`
	RoyaltyRecipient string             `json:"royaltyRecipient"`
	Contract         string             `json:"contract"`
}

// Listing is one marketplace listing, active or ended. Price is in wei.
type Listing struct {
	TokenID     string `json:"tokenId"`
	Lister      string `json:"lister"`
	NFTContract string `json:"nftContract"`
	Price       string `json:"price"`
	IsActive    bool   `json:"isActive"`
	ListedTime  int64  `json:"listedTime"`
	SoldAt      int64  `json:"soldAt"`
}

// Outcome is the uniform result shape write operations render.
type Outcome struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash,omitempty"`
	Err     string `json:"error,omitempty"`
}

// OutcomeOf folds a receipt and error into the uniform shape.
func OutcomeOf(receipt *chain.TxReceipt, err error) Outcome {
	if err != nil {
		o := Outcome{Err: err.Error()}
		if receipt != nil {
			o.TxHash = receipt.Hash
		}
		return o
	}
	return Outcome{Success: true, TxHash: receipt.Hash}
}

// FilterActive returns only the listings still open for purchase.
func FilterActive(listings []Listing) []Listing {
	var active []Listing
	for _, l := range listings {
		if l.IsActive {
			active = append(active, l)
		}
	}
	return active
}
