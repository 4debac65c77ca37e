package config

// Config holds all nftmkt configuration. Contract addresses are injected from
// here rather than hard-coded at call sites, so tests can point the bindings at
// a mock ledger.
type Config struct {
	RPCURL        string `json:"rpc_url"`
	ChainID       int64  `json:"chain_id"`
	Collection    string `json:"collection_address"`
	Marketplace   string `json:"marketplace_address"`
	DefaultWallet string `json:"default_wallet"`
	IPFSGateway   string `json:"ipfs_gateway"`
	PinEndpoint   string `json:"pin_endpoint"`
	PinGateway    string `json:"pin_gateway"`
	MintFee       string `json:"mint_fee"` // ETH, decimal string

	// Pin credentials come from NFTMKT_PIN_KEY / NFTMKT_PIN_SECRET and are
	// never persisted.
	PinKey    string `json:"-"`
	PinSecret string `json:"-"`

	// internal: config dir path used for Save()
	configDir string
}
