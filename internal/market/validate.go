package market

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// MaxRoyaltyBps caps creator royalties at 10%.
const MaxRoyaltyBps = 1000

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateAddress rejects anything that is not a 0x-prefixed 40-hex-digit
// address. Checksum casing is not enforced.
func ValidateAddress(addr string) error {
	if !addressPattern.MatchString(addr) {
		return fmt.Errorf("invalid address %q", addr)
	}
	return nil
}

// ValidatePrice rejects amounts that do not parse or are not positive.
func ValidatePrice(amount string) error {
	wei, err := ParseEther(amount)
	if err != nil {
		return err
	}
	if wei.Sign() <= 0 {
		return fmt.Errorf("price must be greater than zero, got %q", amount)
	}
	return nil
}

// ValidateRoyalty rejects royalties above the cap. The contract enforces the
// same cap on-chain; checking here avoids a doomed transaction.
func ValidateRoyalty(bps int64) error {
	if bps < 0 {
		return fmt.Errorf("royalty must not be negative, got %d", bps)
	}
	if bps > MaxRoyaltyBps {
		return fmt.Errorf("royalty %d exceeds maximum of %d basis points", bps, MaxRoyaltyBps)
	}
	return nil
}

func equalAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

func parseTokenID(tokenID string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q", tokenID)
	}
	return n, nil
}
