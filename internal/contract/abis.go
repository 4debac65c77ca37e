package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// CollectionABI covers the ERC-721 collection surface the client uses:
// enumeration, metadata, ERC-2981 royalties, approvals, transfers, and the
// payable royalty mint.
const CollectionABI = `[
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"royaltyInfo","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"},{"name":"salePrice","type":"uint256"}],"outputs":[{"name":"receiver","type":"address"},{"name":"royaltyAmount","type":"uint256"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"isPublicMintEnabled","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"isApprovedForAll","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"getApproved","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"mintWithRoyalty","stateMutability":"payable","inputs":[{"name":"uri","type":"string"},{"name":"royalty","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
  {"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]}
]`

// MarketplaceABI covers the marketplace contract: listing lifecycle, bulk and
// single-item lookups, and the per-item platform fee.
const MarketplaceABI = `[
  {"type":"function","name":"listItem","stateMutability":"nonpayable","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"},{"name":"_price","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"cancelListing","stateMutability":"nonpayable","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"}],"outputs":[]},
  {"type":"function","name":"updateListing","stateMutability":"nonpayable","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"},{"name":"_newprice","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"buyItem","stateMutability":"payable","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"}],"outputs":[]},
  {"type":"function","name":"getListing","stateMutability":"view","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"}],"outputs":[{"name":"","type":"tuple","components":[{"name":"tokenId","type":"uint256"},{"name":"lister","type":"address"},{"name":"nftContract","type":"address"},{"name":"price","type":"uint256"},{"name":"isActive","type":"bool"},{"name":"listedTime","type":"uint256"},{"name":"soldAt","type":"uint256"}]}]},
  {"type":"function","name":"getUserListings","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"tokenId","type":"uint256"},{"name":"lister","type":"address"},{"name":"nftContract","type":"address"},{"name":"price","type":"uint256"},{"name":"isActive","type":"bool"},{"name":"listedTime","type":"uint256"},{"name":"soldAt","type":"uint256"}]}]},
  {"type":"function","name":"getAllListings","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"tokenId","type":"uint256"},{"name":"lister","type":"address"},{"name":"nftContract","type":"address"},{"name":"price","type":"uint256"},{"name":"isActive","type":"bool"},{"name":"listedTime","type":"uint256"},{"name":"soldAt","type":"uint256"}]}]},
  {"type":"function","name":"getPlatformFee","stateMutability":"view","inputs":[{"name":"_tokenId","type":"uint256"},{"name":"_nftAddress","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"event","name":"NFTListed","inputs":[{"name":"nftContract","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"lister","type":"address","indexed":true},{"name":"price","type":"uint256","indexed":false}]},
  {"type":"event","name":"NFTDelisted","inputs":[{"name":"nftContract","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"lister","type":"address","indexed":true}]},
  {"type":"event","name":"NFTPurchased","inputs":[{"name":"nftContract","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"seller","type":"address","indexed":false},{"name":"buyer","type":"address","indexed":false},{"name":"price","type":"uint256","indexed":false}]},
  {"type":"event","name":"ListingUpdated","inputs":[{"name":"nftContract","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"lister","type":"address","indexed":true},{"name":"newPrice","type":"uint256","indexed":false}]}
]`

// MustParseABI parses an ABI JSON string, panicking on malformed input.
// Intended for the package-level ABI constants only.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic("contract: bad ABI: " + err.Error())
	}
	return parsed
}
