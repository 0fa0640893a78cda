package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/client"
	"pnl_tracker/internal/domain/entity"
)

type historicalPriceProviderImpl struct {
	moralis  client.MoralisClient
	chainHex string
	logger   port.Logger
}

// NewHistoricalPriceProvider creates a HistoricalPriceProvider backed by the Moralis ERC-20 price API.
func NewHistoricalPriceProvider(moralis client.MoralisClient, chainHex string, logger port.Logger) port.HistoricalPriceProvider {
	return &historicalPriceProviderImpl{moralis: moralis, chainHex: chainHex, logger: logger}
}

// GetTokenPriceUSD implements port.HistoricalPriceProvider. Moralis answers 404 for tokens it
// cannot price; that is reported as ok=false rather than an error.
func (p *historicalPriceProviderImpl) GetTokenPriceUSD(ctx context.Context, tokenAddress string) (float64, bool, error) {
	resp, err := p.moralis.GetTokenPrice(ctx, tokenAddress, p.chainHex)
	if err != nil {
		var statusErr *entity.UpstreamStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			p.logger.Debug("Moralis has no price for token", "tokenAddress", tokenAddress)
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get Moralis price for %s: %w", tokenAddress, err)
	}

	price, ok := resp.USDPrice.Float64()
	if !ok || price <= 0 {
		return 0, false, nil
	}
	return price, true, nil
}
