package market

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const weiDecimals = 18

// ParseEther converts a decimal ETH amount like "0.1" to wei exactly, using
// integer string arithmetic. Floats would lose precision on amounts such as
// 0.1 ETH.
func ParseEther(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, errors.New("empty amount")
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("negative amount %q", amount)
	}

	intPart, fracPart, _ := strings.Cut(amount, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > weiDecimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, weiDecimals)
	}
	fracPart += strings.Repeat("0", weiDecimals-len(fracPart))

	wei, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return wei, nil
}

// FormatEther renders a wei amount as a decimal ETH string with trailing
// zeros trimmed.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	s := wei.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= weiDecimals {
		s = strings.Repeat("0", weiDecimals-len(s)+1) + s
	}
	cut := len(s) - weiDecimals
	whole, frac := s[:cut], s[cut:]
	frac = strings.TrimRight(frac, "0")
	out := whole
	if frac != "" {
		out = whole + "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatEtherString is FormatEther for a decimal wei string, as stored on
// Listing.Price. Invalid input passes through unchanged.
func FormatEtherString(wei string) string {
	n, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return wei
	}
	return FormatEther(n)
}
