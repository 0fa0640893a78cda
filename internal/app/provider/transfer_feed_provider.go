package provider

import (
	"context"
	"fmt"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/client"
	"pnl_tracker/internal/domain/entity"
	wire "pnl_tracker/internal/entity"
)

type transferFeedProviderImpl struct {
	moralis   client.MoralisClient
	pageLimit int
	maxPages  int
	logger    port.Logger
}

// NewTransferFeedProvider creates a TransferFeedProvider backed by the Moralis transfers API.
// At most maxPages pages of pageLimit transfers are read per query.
func NewTransferFeedProvider(moralis client.MoralisClient, pageLimit, maxPages int, logger port.Logger) port.TransferFeedProvider {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &transferFeedProviderImpl{
		moralis:   moralis,
		pageLimit: pageLimit,
		maxPages:  maxPages,
		logger:    logger,
	}
}

// GetTransfers implements port.TransferFeedProvider.
func (p *transferFeedProviderImpl) GetTransfers(ctx context.Context, query entity.TransferQuery) ([]entity.TransferEvent, error) {
	var (
		events []entity.TransferEvent
		cursor string
	)
	for page := 0; page < p.maxPages; page++ {
		resp, err := p.moralis.GetERC20Transfers(ctx, client.TransfersPageRequest{
			WalletAddress: query.WalletAddress,
			ChainHex:      query.ChainID,
			FromDate:      query.FromTimestamp,
			Cursor:        cursor,
			Limit:         p.pageLimit,
		})
		if err != nil {
			p.logger.Error("Failed to fetch transfers page", "wallet", query.WalletAddress, "page", page, "error", err)
			return nil, fmt.Errorf("failed to fetch transfers page %d: %w", page, err)
		}
		for _, t := range resp.Result {
			events = append(events, toTransferEvent(t))
		}
		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
		if page == p.maxPages-1 {
			p.logger.Warn("Transfer feed truncated at page limit", "wallet", query.WalletAddress, "maxPages", p.maxPages)
		}
	}

	p.logger.Debug("Transfer feed loaded", "wallet", query.WalletAddress, "transfers", len(events))
	if events == nil {
		events = []entity.TransferEvent{}
	}
	return events, nil
}

func toTransferEvent(t wire.MoralisTransfer) entity.TransferEvent {
	tokenAddress := t.Address
	if tokenAddress == "" {
		tokenAddress = t.TokenAddress
	}
	decimals := t.TokenDecimals
	if !decimals.IsSet() {
		decimals = t.Decimals
	}

	ev := entity.TransferEvent{
		TokenAddress:    tokenAddress,
		TokenSymbol:     t.TokenSymbol,
		TokenLogo:       t.TokenLogo,
		Decimals:        decimals.String(),
		RawAmount:       t.Value.String(),
		FromAddress:     t.FromAddress,
		ToAddress:       t.ToAddress,
		Timestamp:       t.BlockTimestamp.UTC(),
		TransactionHash: t.TransactionHash,
	}
	if usd, ok := t.ValueUSD.Float64(); ok {
		ev.ValueUSD = &usd
	}
	return ev
}
