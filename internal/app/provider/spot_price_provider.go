package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/client"
	"pnl_tracker/internal/domain/entity"
	wire "pnl_tracker/internal/entity"
)

type spotPriceProviderImpl struct {
	dexscreener client.DEXScreenerClient
	chainSlug   string
	logger      port.Logger
}

// NewSpotPriceProvider creates a SpotPriceProvider backed by DEX Screener. Pairs on chainSlug
// are preferred; when none match, the first pair returned is used.
func NewSpotPriceProvider(dexscreener client.DEXScreenerClient, chainSlug string, logger port.Logger) port.SpotPriceProvider {
	return &spotPriceProviderImpl{
		dexscreener: dexscreener,
		chainSlug:   strings.ToLower(chainSlug),
		logger:      logger,
	}
}

// GetSpotQuote implements port.SpotPriceProvider.
func (p *spotPriceProviderImpl) GetSpotQuote(ctx context.Context, tokenAddress string) (*entity.SpotQuote, error) {
	pairs, err := p.dexscreener.GetTokenPairs(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get pairs for %s: %w", tokenAddress, err)
	}
	if len(pairs) == 0 {
		p.logger.Debug("No pairs returned from DEXScreener for token", "tokenAddress", tokenAddress)
		return nil, nil
	}

	pair := p.selectPair(pairs)
	quote := &entity.SpotQuote{
		PriceUSD:    p.parsePrice(tokenAddress, "priceUsd", pair.PriceUsd),
		PriceNative: p.parsePrice(tokenAddress, "priceNative", pair.PriceNative),
		PairAddress: pair.PairAddress,
		DexID:       pair.DexID,
	}
	if pair.Info != nil {
		quote.ImageURL = pair.Info.ImageURL
	}
	return quote, nil
}

func (p *spotPriceProviderImpl) selectPair(pairs []wire.PairData) wire.PairData {
	if p.chainSlug != "" {
		for _, pair := range pairs {
			if strings.EqualFold(pair.ChainID, p.chainSlug) {
				return pair
			}
		}
	}
	return pairs[0]
}

// parsePrice treats a missing or malformed price as no price.
func (p *spotPriceProviderImpl) parsePrice(tokenAddress, field, raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		p.logger.Warn("Failed to parse token price from DEXScreener", "tokenAddress", tokenAddress, "field", field, "price_string", raw)
		return 0
	}
	return v
}
