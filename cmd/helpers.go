package cmd

import (
	"errors"
	"math/big"

	"github.com/Mohsinsiddi/nftmkt/internal/chain"
	"github.com/Mohsinsiddi/nftmkt/internal/contract"
	"github.com/Mohsinsiddi/nftmkt/internal/market"
	"github.com/Mohsinsiddi/nftmkt/internal/metadata"
	"github.com/Mohsinsiddi/nftmkt/internal/pin"
	"github.com/Mohsinsiddi/nftmkt/internal/wallet"
)

// newWalletManager creates a Manager backed by the config-dir JSON store and
// the OS keychain.
func newWalletManager() *wallet.Manager {
	store := wallet.NewJSONStore(cfg.WalletsPath())
	return wallet.NewManager(wallet.WithStore(store))
}

func newChainClient() *chain.EVMClient {
	return chain.NewEVMClient(cfg.RPCURL)
}

func newMetadataFetcher() *metadata.Fetcher {
	return metadata.NewFetcher(metadata.WithGateway(cfg.IPFSGateway))
}

func newPinner() *pin.Pinner {
	return pin.NewPinner(cfg.PinEndpoint, cfg.PinGateway, cfg.PinKey, cfg.PinSecret)
}

// newMarketClient wires the marketplace façade from config. With a signing
// wallet available (via --wallet or the configured default) the client can
// write; without one it is read-only and write commands fail with the
// wallet-missing error before touching the network.
func newMarketClient() (*market.Client, error) {
	client := newChainClient()
	colABI := contract.MustParseABI(contract.CollectionABI)
	mktABI := contract.MustParseABI(contract.MarketplaceABI)

	name := walletFlag
	if name == "" {
		name = cfg.DefaultWallet
	}

	account := ""
	var colSender, mktSender market.TxSender

	signer, err := newWalletManager().Signer(name)
	switch {
	case err == nil:
		account = signer.Address()
		chainID := big.NewInt(cfg.ChainID)
		colSender = contract.NewSender(
			contract.NewBinding(client, colABI, cfg.Collection), client, signer, chainID)
		mktSender = contract.NewSender(
			contract.NewBinding(client, mktABI, cfg.Marketplace), client, signer, chainID)
	case errors.Is(err, wallet.ErrNotInstalled), errors.Is(err, wallet.ErrWalletNotFound):
		// Read-only client.
	default:
		return nil, err
	}

	mintFee, err := market.ParseEther(cfg.MintFee)
	if err != nil {
		return nil, err
	}

	var mktOpts []contract.BindOption
	if account != "" {
		// getUserListings is keyed on the caller.
		mktOpts = append(mktOpts, contract.WithCallerAddress(account))
	}

	opts := []market.Option{
		market.WithCollection(contract.NewBinding(client, colABI, cfg.Collection)),
		market.WithMarketplace(contract.NewBinding(client, mktABI, cfg.Marketplace, mktOpts...)),
		market.WithMetadataFetcher(newMetadataFetcher()),
		market.WithMintFee(mintFee),
		market.WithCollectionResolver(func(addr string) market.Caller {
			return contract.NewBinding(client, colABI, addr)
		}),
	}
	if account != "" {
		opts = append(opts, market.WithAccount(account))
	}
	if colSender != nil {
		opts = append(opts, market.WithSenders(colSender, mktSender))
	}
	return market.NewClient(opts...), nil
}
