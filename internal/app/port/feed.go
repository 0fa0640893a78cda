package port

import (
	"context"

	"pnl_tracker/internal/domain/entity"
)

// TransferFeedProvider supplies the raw token transfers of a wallet.
// Implementations must honor query.FromTimestamp as an inclusive lower bound.
// An empty result is not an error.
type TransferFeedProvider interface {
	GetTransfers(ctx context.Context, query entity.TransferQuery) ([]entity.TransferEvent, error)
}
