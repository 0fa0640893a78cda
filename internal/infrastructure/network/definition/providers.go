package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/domain/entity"
)

// NetworkDefinitionProvider resolves chain identifiers to network definitions.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDefinition
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	PulseChain = entity.NetworkDefinition{
		ChainID:                   369,
		Name:                      "PulseChain",
		Identifier:                "pulsechain",
		NativeSymbol:              "PLS",
		Decimals:                  18,
		BlockExplorerURL:          "https://scan.pulsechain.com",
		DEXScreenerChainID:        "pulsechain",
		WrappedNativeTokenAddress: "0xA1077a294dDE1B09bB078844df40758a5D0f9a27", // WPLS
	}
	Ethereum = entity.NetworkDefinition{
		ChainID:                   1,
		Name:                      "Ethereum Mainnet",
		Identifier:                "ethereum",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		BlockExplorerURL:          "https://etherscan.io",
		DEXScreenerChainID:        "ethereum",
		WrappedNativeTokenAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
	}
	BSC = entity.NetworkDefinition{
		ChainID:                   56,
		Name:                      "BNB Smart Chain",
		Identifier:                "bsc",
		NativeSymbol:              "BNB",
		Decimals:                  18,
		BlockExplorerURL:          "https://bscscan.com",
		DEXScreenerChainID:        "bsc",
		WrappedNativeTokenAddress: "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", // WBNB
	}
	Polygon = entity.NetworkDefinition{
		ChainID:                   137,
		Name:                      "Polygon PoS",
		Identifier:                "polygon",
		NativeSymbol:              "POL",
		Decimals:                  18,
		BlockExplorerURL:          "https://polygonscan.com",
		DEXScreenerChainID:        "polygon",
		WrappedNativeTokenAddress: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WMATIC
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:                   42161,
		Name:                      "Arbitrum One",
		Identifier:                "arbitrum",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		BlockExplorerURL:          "https://arbiscan.io",
		DEXScreenerChainID:        "arbitrum",
		WrappedNativeTokenAddress: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1",
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:                   43114,
		Name:                      "Avalanche C-Chain",
		Identifier:                "avalanche",
		NativeSymbol:              "AVAX",
		Decimals:                  18,
		BlockExplorerURL:          "https://snowtrace.io",
		DEXScreenerChainID:        "avalanche",
		WrappedNativeTokenAddress: "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", // WAVAX
	}
	Base = entity.NetworkDefinition{
		ChainID:                   8453,
		Name:                      "Base Mainnet",
		Identifier:                "base",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		BlockExplorerURL:          "https://basescan.org",
		DEXScreenerChainID:        "base",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:                   10,
		Name:                      "OP Mainnet",
		Identifier:                "optimism",
		NativeSymbol:              "ETH",
		Decimals:                  18,
		BlockExplorerURL:          "https://optimistic.etherscan.io",
		DEXScreenerChainID:        "optimism",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{
	PulseChain.Identifier: PulseChain,
	Ethereum.Identifier:   Ethereum,
	BSC.Identifier:        BSC,
	Polygon.Identifier:    Polygon,
	Arbitrum.Identifier:   Arbitrum,
	Avalanche.Identifier:  Avalanche,
	Base.Identifier:       Base,
	Optimism.Identifier:   Optimism,
}

// NewNetworkDefinitionProvider creates a provider over all known network definitions.
func NewNetworkDefinitionProvider(logger port.Logger) *NetworkDefinitionProvider {
	defs := make(map[string]entity.NetworkDefinition, len(allKnownDefinitions))
	for id, def := range allKnownDefinitions {
		defs[id] = def
	}
	p := &NetworkDefinitionProvider{logger: logger, allNetworkDefs: defs}
	p.logger.Debug("NetworkDefinitionProvider initialized", "known_networks", len(defs))
	return p
}

// GetAllNetworkDefinitions returns every known definition ordered by chain id.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allNetworkDefs))
	for _, def := range p.allNetworkDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ChainID < defs[j].ChainID })
	return defs
}

// GetNetworkDefinitionByName returns a network definition by its identifier (case-insensitive).
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.allNetworkDefs[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

// GetNetworkDefinitionByChainID returns a network definition by its chain id.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.allNetworkDefs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// Resolve returns the definition for the configured chain or an error naming the known identifiers.
func (p *NetworkDefinitionProvider) Resolve(identifier string) (entity.NetworkDefinition, error) {
	if def, ok := p.GetNetworkDefinitionByName(identifier); ok {
		return def, nil
	}
	known := make([]string, 0, len(p.allNetworkDefs))
	for id := range p.allNetworkDefs {
		known = append(known, id)
	}
	sort.Strings(known)
	p.logger.Error("Unknown chain identifier in configuration", "identifier", identifier)
	return entity.NetworkDefinition{}, fmt.Errorf("unknown chain identifier %q (known: %s)", identifier, strings.Join(known, ", "))
}
