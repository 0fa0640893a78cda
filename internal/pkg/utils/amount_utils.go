package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTokenDecimals is used when a transfer does not carry a usable decimals value.
const DefaultTokenDecimals int32 = 18

// ParseDecimals parses a decimals field, falling back to DefaultTokenDecimals when the
// value is absent, unparseable or out of the uint8 range ERC-20 allows.
func ParseDecimals(raw string) int32 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTokenDecimals
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 0 || n > 255 {
		return DefaultTokenDecimals
	}
	return int32(n)
}

// NormalizeAmount converts an integer amount in the token's smallest unit into a human quantity.
// Example: raw="1234500000000000000", decimals=18 => 1.2345
func NormalizeAmount(raw string, decimals int32) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %q", raw)
	}
	f, _ := amount.Shift(-decimals).Float64()
	return f, nil
}
