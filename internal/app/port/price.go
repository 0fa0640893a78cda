package port

import (
	"context"

	"pnl_tracker/internal/domain/entity"
)

// SpotPriceProvider returns the current market quote of a token.
// A token without any market yields (nil, nil).
type SpotPriceProvider interface {
	GetSpotQuote(ctx context.Context, tokenAddress string) (*entity.SpotQuote, error)
}

// HistoricalPriceProvider returns a USD price used to approximate the average buy price
// when the transfer feed carries no USD values. ok is false when the provider has no price.
type HistoricalPriceProvider interface {
	GetTokenPriceUSD(ctx context.Context, tokenAddress string) (price float64, ok bool, err error)
}
