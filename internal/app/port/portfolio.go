package port

import (
	"context"

	"pnl_tracker/internal/domain/entity"
)

// PortfolioService computes positions and PnL for a wallet.
type PortfolioService interface {
	// GetPortfolioSummary returns the all-time held portfolio, sorted by value.
	GetPortfolioSummary(ctx context.Context, walletAddress string) (*entity.PortfolioView, error)

	// GetTodayTransactions returns tokens bought since local midnight plus an aggregate summary.
	GetTodayTransactions(ctx context.Context, walletAddress string) (*entity.TodayView, error)
}
