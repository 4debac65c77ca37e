package market

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// ErrNoAccount is returned by transfers when no account is connected.
var ErrNoAccount = errors.New("no account connected")

// ErrNotListed is returned by Buy when the token has no active listing.
var ErrNotListed = errors.New("token is not listed")

func (c *Client) requireCollectionSender() (TxSender, error) {
	if c.colSender == nil {
		return nil, wallet.ErrNotInstalled
	}
	return c.colSender, nil
}

func (c *Client) requireMarketSender() (TxSender, error) {
	if c.mktSender == nil {
		return nil, wallet.ErrNotInstalled
	}
	return c.mktSender, nil
}

// Mint mints a new token with the given metadata URI and royalty, paying the
// configured mint fee. On confirmation the holdings observer is notified with
// the re-enumerated set. The royalty cap is the caller's concern; the
// contract rejects excessive values on-chain regardless.
func (c *Client) Mint(ctx context.Context, uri string, royaltyBps int64) (*chain.TxReceipt, error) {
	sender, err := c.requireCollectionSender()
	if err != nil {
		return nil, err
	}
	receipt, err := sender.Send(ctx, "mintWithRoyalty", c.mintFee, uri, big.NewInt(royaltyBps))
	if err != nil {
		return receipt, fmt.Errorf("minting: %w", err)
	}
	c.refreshHoldings(ctx)
	return receipt, nil
}

// Transfer moves a token to another address with transferFrom.
func (c *Client) Transfer(ctx context.Context, to, tokenID string) (*chain.TxReceipt, error) {
	return c.transfer(ctx, to, tokenID, false)
}

// SafeTransfer moves a token with safeTransferFrom and empty data, so
// contract recipients must implement the receiver hook.
func (c *Client) SafeTransfer(ctx context.Context, to, tokenID string) (*chain.TxReceipt, error) {
	return c.transfer(ctx, to, tokenID, true)
}

func (c *Client) transfer(ctx context.Context, to, tokenID string, safe bool) (*chain.TxReceipt, error) {
	sender, err := c.requireCollectionSender()
	if err != nil {
		return nil, err
	}
	if c.account == "" {
		return nil, ErrNoAccount
	}
	if err := ValidateAddress(to); err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	from := common.HexToAddress(c.account)
	toAddr := common.HexToAddress(to)

	var receipt *chain.TxReceipt
	if safe {
		receipt, err = sender.Send(ctx, "safeTransferFrom", nil, from, toAddr, id, []byte{})
	} else {
		receipt, err = sender.Send(ctx, "transferFrom", nil, from, toAddr, id)
	}
	if err != nil {
		return receipt, fmt.Errorf("transferring token %s: %w", tokenID, err)
	}
	c.refreshHoldings(ctx)
	return receipt, nil
}

// List puts a collection token up for sale at a decimal ETH price. The
// marketplace must be approved to move the token first; a missing approval
// triggers setApprovalForAll and waits for its confirmation before listItem
// goes out.
func (c *Client) List(ctx context.Context, tokenID, priceEth string) (*chain.TxReceipt, error) {
	mktSender, err := c.requireMarketSender()
	if err != nil {
		return nil, err
	}
	if c.account == "" {
		return nil, ErrNoAccount
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if err := ValidatePrice(priceEth); err != nil {
		return nil, err
	}
	priceWei, err := ParseEther(priceEth)
	if err != nil {
		return nil, err
	}

	approved, err := c.marketplaceApproved(ctx, id)
	if err != nil {
		return nil, err
	}
	if !approved {
		colSender, err := c.requireCollectionSender()
		if err != nil {
			return nil, err
		}
		marketAddr := common.HexToAddress(c.marketplace.Address())
		if _, err := colSender.Send(ctx, "setApprovalForAll", nil, marketAddr, true); err != nil {
			return nil, fmt.Errorf("approving marketplace: %w", err)
		}
	}

	receipt, err := mktSender.Send(ctx, "listItem", nil, id, common.HexToAddress(c.collection.Address()), priceWei)
	if err != nil {
		return receipt, fmt.Errorf("listing token %s: %w", tokenID, err)
	}
	return receipt, nil
}

// marketplaceApproved reports whether the marketplace may move the token,
// either as an operator for the whole account or for this token alone.
func (c *Client) marketplaceApproved(ctx context.Context, id *big.Int) (bool, error) {
	owner := common.HexToAddress(c.account)
	operator := common.HexToAddress(c.marketplace.Address())

	out, err := c.collection.Call(ctx, "isApprovedForAll", owner, operator)
	if err != nil {
		return false, fmt.Errorf("checking approval: %w", err)
	}
	all, err := asBool(out)
	if err != nil {
		return false, err
	}
	if all {
		return true, nil
	}

	out, err = c.collection.Call(ctx, "getApproved", id)
	if err != nil {
		return false, fmt.Errorf("checking token approval: %w", err)
	}
	approved, err := asAddress(out)
	if err != nil {
		return false, err
	}
	return approved == operator, nil
}

// UpdateListing changes the price of an existing listing.
func (c *Client) UpdateListing(ctx context.Context, tokenID, nftAddr, newPriceEth string) (*chain.TxReceipt, error) {
	sender, err := c.requireMarketSender()
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddress(nftAddr); err != nil {
		return nil, err
	}
	if err := ValidatePrice(newPriceEth); err != nil {
		return nil, err
	}
	priceWei, err := ParseEther(newPriceEth)
	if err != nil {
		return nil, err
	}

	receipt, err := sender.Send(ctx, "updateListing", nil, id, common.HexToAddress(nftAddr), priceWei)
	if err != nil {
		return receipt, fmt.Errorf("updating listing for token %s: %w", tokenID, err)
	}
	return receipt, nil
}

// CancelListing takes a token off the market.
func (c *Client) CancelListing(ctx context.Context, tokenID, nftAddr string) (*chain.TxReceipt, error) {
	sender, err := c.requireMarketSender()
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddress(nftAddr); err != nil {
		return nil, err
	}

	receipt, err := sender.Send(ctx, "cancelListing", nil, id, common.HexToAddress(nftAddr))
	if err != nil {
		return receipt, fmt.Errorf("cancelling listing for token %s: %w", tokenID, err)
	}
	return receipt, nil
}

// Buy purchases an active listing. The platform fee is re-fetched fresh so
// the payable value is exactly price plus the fee the contract will charge;
// a missing fee fails the purchase rather than underpaying.
func (c *Client) Buy(ctx context.Context, tokenID, nftAddr string) (*chain.TxReceipt, error) {
	sender, err := c.requireMarketSender()
	if err != nil {
		return nil, err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAddress(nftAddr); err != nil {
		return nil, err
	}

	listing, err := c.Listing(ctx, tokenID, nftAddr)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotListed
	}
	price, ok := new(big.Int).SetString(listing.Price, 10)
	if !ok {
		return nil, fmt.Errorf("invalid listing price %q", listing.Price)
	}

	fee, err := c.platformFee(ctx, id, nftAddr)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Add(price, fee)

	receipt, err := sender.Send(ctx, "buyItem", total, id, common.HexToAddress(nftAddr))
	if err != nil {
		return receipt, fmt.Errorf("buying token %s: %w", tokenID, err)
	}
	c.refreshHoldings(ctx)
	return receipt, nil
}
