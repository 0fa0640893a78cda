package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidEVMAddress reports whether addr is a 0x-prefixed, 20-byte hex address.
// common.IsHexAddress alone also accepts the unprefixed form, which the API does not.
func IsValidEVMAddress(addr string) bool {
	if len(addr) != 2+2*common.AddressLength {
		return false
	}
	if !strings.HasPrefix(addr, "0x") {
		return false
	}
	return common.IsHexAddress(addr)
}

// NormalizeAddress lower-cases an address for use as a map key or comparison operand.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// SameAddress compares two addresses case-insensitively. Empty addresses never match.
func SameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
