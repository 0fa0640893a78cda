package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// EnrichOptions controls a single Enrich call.
type EnrichOptions struct {
	// UseHistorical enables the historical price lookup for tokens whose transfers carried no USD value.
	UseHistorical bool
	// View labels metrics.
	View string
}

// PriceEnricher resolves current and average buy prices for positions.
type PriceEnricher struct {
	spot          port.SpotPriceProvider
	historical    port.HistoricalPriceProvider
	chartBaseURL  string
	chainSlug     string
	maxConcurrent int
	dustThreshold float64
	logger        port.Logger
}

// NewPriceEnricher creates a PriceEnricher. historical may be nil.
func NewPriceEnricher(
	spot port.SpotPriceProvider,
	historical port.HistoricalPriceProvider,
	chartBaseURL string,
	chainSlug string,
	maxConcurrent int,
	dustThreshold float64,
	logger port.Logger,
) *PriceEnricher {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &PriceEnricher{
		spot:          spot,
		historical:    historical,
		chartBaseURL:  strings.TrimRight(chartBaseURL, "/"),
		chainSlug:     chainSlug,
		maxConcurrent: maxConcurrent,
		dustThreshold: dustThreshold,
		logger:        logger,
	}
}

// ChartLink returns the DEX Screener chart URL of a token.
func (e *PriceEnricher) ChartLink(tokenAddress string) string {
	return fmt.Sprintf("%s/%s/%s", e.chartBaseURL, e.chainSlug, tokenAddress)
}

// Enrich prices every position with QuantityBought above the dust threshold. Lookups run
// concurrently, at most maxConcurrent at a time. A failed lookup never aborts the batch: the token
// keeps a zero current price and is flagged PriceDegraded. The result is ordered by token address.
func (e *PriceEnricher) Enrich(ctx context.Context, positions map[string]entity.TokenPosition, opts EnrichOptions) []entity.PricedPosition {
	keys := make([]string, 0, len(positions))
	for key, pos := range positions {
		if pos.QuantityBought > e.dustThreshold {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	results := make([]entity.PricedPosition, len(keys))
	var g errgroup.Group
	g.SetLimit(e.maxConcurrent)
	for i, key := range keys {
		i := i
		pos := positions[key]
		g.Go(func() error {
			results[i] = e.enrichOne(ctx, pos, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *PriceEnricher) enrichOne(ctx context.Context, pos entity.TokenPosition, opts EnrichOptions) entity.PricedPosition {
	priced := entity.PricedPosition{
		TokenPosition: pos,
		ChartLink:     e.ChartLink(pos.TokenAddress),
	}

	quote, err := e.spot.GetSpotQuote(ctx, pos.TokenAddress)
	switch {
	case err != nil:
		priceErr := entity.NewUpstreamPriceError(pos.TokenAddress, err)
		e.logger.Warn("Spot price lookup failed, reporting zero price", "token", pos.TokenAddress, "error", priceErr)
		priced.PriceDegraded = true
		metrics.PriceDegradedTotal.WithLabelValues(opts.View).Inc()
	case quote != nil:
		priced.CurrentPrice = quote.PriceUSD
		priced.PriceNative = quote.PriceNative
		if priced.TokenLogo == "" {
			priced.TokenLogo = quote.ImageURL
		}
	default:
		e.logger.Debug("Token has no market, reporting zero price", "token", pos.TokenAddress)
	}

	priced.AvgBuyPriceUSD, priced.AvgBuyPriceSource = e.resolveAvgBuyPrice(ctx, pos, priced.CurrentPrice, opts)

	if priced.CurrentPrice > 0 && priced.PriceNative > 0 {
		priced.BuySpendNative = totalBuyUSD(pos, priced.AvgBuyPriceUSD) * priced.PriceNative / priced.CurrentPrice
	}
	return priced
}

// resolveAvgBuyPrice picks, in order: feed USD spend per unit, the historical provider price,
// the current price.
func (e *PriceEnricher) resolveAvgBuyPrice(ctx context.Context, pos entity.TokenPosition, currentPrice float64, opts EnrichOptions) (float64, entity.AvgBuyPriceSource) {
	if pos.HasBuySpendUSD && pos.QuantityBought > 0 {
		return pos.BuySpendUSD / pos.QuantityBought, entity.AvgBuyPriceFromFeedUSD
	}

	if opts.UseHistorical && e.historical != nil {
		price, ok, err := e.historical.GetTokenPriceUSD(ctx, pos.TokenAddress)
		switch {
		case err != nil:
			e.logger.Warn("Historical price lookup failed, falling back to current price",
				"token", pos.TokenAddress, "error", entity.NewUpstreamPriceError(pos.TokenAddress, err))
		case ok:
			return price, entity.AvgBuyPriceFromHistorical
		}
	}

	return currentPrice, entity.AvgBuyPriceFromSpot
}

// totalBuyUSD is the USD spent on buys: the feed value when present, otherwise bought × avg.
func totalBuyUSD(pos entity.TokenPosition, avgBuyPrice float64) float64 {
	if pos.HasBuySpendUSD {
		return pos.BuySpendUSD
	}
	return pos.QuantityBought * avgBuyPrice
}
