package config

// Defaults for a fresh config dir. Addresses match the deployed Sepolia
// contracts; override with `nftmkt init`.
const (
	DefaultRPCURL      = "https://ethereum-sepolia-rpc.publicnode.com"
	DefaultChainID     = 11155111
	DefaultCollection  = "0xeD206F25fB9C73cbB61A15916E02F772B8404C14"
	DefaultMarketplace = "0x59b670e9fA9D0A427751Af201D676719a970857b"
	DefaultIPFSGateway = "https://ipfs.io/ipfs/"
	DefaultPinEndpoint = "https://api.pinata.cloud/pinning/pinJSONToIPFS"
	DefaultPinGateway  = "https://gateway.pinata.cloud/ipfs/"
	DefaultMintFee     = "0.0005"
)
