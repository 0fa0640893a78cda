package entity

import "strconv"

// NetworkDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID                   uint64 `json:"chainId" yaml:"chainId"`
	Name                      string `json:"name" yaml:"name"`
	Identifier                string `json:"identifier" yaml:"identifier"` // e.g. "pulsechain", "ethereum"
	NativeSymbol              string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals                  int32  `json:"decimals" yaml:"decimals"`
	BlockExplorerURL          string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	DEXScreenerChainID        string `json:"dexScreenerChainId" yaml:"dexScreenerChainId"`
	WrappedNativeTokenAddress string `json:"wrappedNativeTokenAddress,omitempty" yaml:"wrappedNativeTokenAddress,omitempty"`
}

// ChainIDHex returns the chain id in the 0x-prefixed form Moralis expects (369 => "0x171").
func (n NetworkDefinition) ChainIDHex() string {
	return "0x" + strconv.FormatUint(n.ChainID, 16)
}
