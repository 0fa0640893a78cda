package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"pnl_tracker/internal/client"
	"pnl_tracker/internal/domain/entity"
	wire "pnl_tracker/internal/entity"
	"pnl_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMoralis struct {
	pages    []*wire.MoralisTransfersResponse
	requests []client.TransfersPageRequest
	price    *wire.MoralisTokenPrice
	err      error
}

func (f *fakeMoralis) GetERC20Transfers(_ context.Context, req client.TransfersPageRequest) (*wire.MoralisTransfersResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.requests) - 1
	if idx >= len(f.pages) {
		return &wire.MoralisTransfersResponse{}, nil
	}
	return f.pages[idx], nil
}

func (f *fakeMoralis) GetTokenPrice(context.Context, string, string) (*wire.MoralisTokenPrice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.price, nil
}

type fakeDEX struct {
	pairs []wire.PairData
	err   error
}

func (f *fakeDEX) GetTokenPairs(context.Context, string) ([]wire.PairData, error) {
	return f.pairs, f.err
}

func TestTransferFeedProvider_ConvertsAndPaginates(t *testing.T) {
	ts := time.Date(2025, 3, 10, 1, 2, 3, 0, time.UTC)
	moralis := &fakeMoralis{pages: []*wire.MoralisTransfersResponse{
		{
			Cursor: "c1",
			Result: []wire.MoralisTransfer{{
				Address:        "0xAAA",
				TokenSymbol:    "AAA",
				TokenDecimals:  "6",
				Value:          "1000000",
				ValueUSD:       "2.5",
				FromAddress:    "0xfrom",
				ToAddress:      "0xto",
				BlockTimestamp: ts,
			}},
		},
		{
			Result: []wire.MoralisTransfer{{
				TokenAddress: "0xBBB",
				Decimals:     "9",
				Value:        "5",
			}},
		},
	}}
	from := ts.Add(-time.Hour)
	p := NewTransferFeedProvider(moralis, 100, 5, logger.Nop())

	events, err := p.GetTransfers(context.Background(), entity.TransferQuery{WalletAddress: "0xwallet", ChainID: "0x171", FromTimestamp: &from})
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Len(t, moralis.requests, 2)
	assert.Equal(t, "", moralis.requests[0].Cursor)
	assert.Equal(t, "c1", moralis.requests[1].Cursor)
	assert.Equal(t, "0x171", moralis.requests[0].ChainHex)
	assert.Equal(t, 100, moralis.requests[0].Limit)
	assert.Equal(t, &from, moralis.requests[0].FromDate)

	first := events[0]
	assert.Equal(t, "0xAAA", first.TokenAddress)
	assert.Equal(t, "6", first.Decimals)
	assert.Equal(t, "1000000", first.RawAmount)
	require.NotNil(t, first.ValueUSD)
	assert.InDelta(t, 2.5, *first.ValueUSD, 1e-12)
	assert.True(t, first.Timestamp.Equal(ts))

	second := events[1]
	assert.Equal(t, "0xBBB", second.TokenAddress)
	assert.Equal(t, "9", second.Decimals)
	assert.Nil(t, second.ValueUSD)
}

func TestTransferFeedProvider_StopsAtMaxPages(t *testing.T) {
	moralis := &fakeMoralis{pages: []*wire.MoralisTransfersResponse{
		{Cursor: "c1", Result: []wire.MoralisTransfer{{Address: "0x1", Value: "1"}}},
		{Cursor: "c2", Result: []wire.MoralisTransfer{{Address: "0x2", Value: "1"}}},
	}}
	p := NewTransferFeedProvider(moralis, 100, 1, logger.Nop())

	events, err := p.GetTransfers(context.Background(), entity.TransferQuery{WalletAddress: "0xwallet"})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Len(t, moralis.requests, 1)
}

func TestTransferFeedProvider_EmptyAndError(t *testing.T) {
	events, err := NewTransferFeedProvider(&fakeMoralis{}, 100, 1, logger.Nop()).
		GetTransfers(context.Background(), entity.TransferQuery{WalletAddress: "0xwallet"})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	upstream := &entity.UpstreamStatusError{Provider: "moralis", StatusCode: http.StatusUnauthorized}
	_, err = NewTransferFeedProvider(&fakeMoralis{err: upstream}, 100, 1, logger.Nop()).
		GetTransfers(context.Background(), entity.TransferQuery{WalletAddress: "0xwallet"})
	require.Error(t, err)
	var statusErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestSpotPriceProvider(t *testing.T) {
	t.Run("first pair wins", func(t *testing.T) {
		dex := &fakeDEX{pairs: []wire.PairData{
			{ChainID: "pulsechain", PriceUsd: "0.15", PriceNative: "3", PairAddress: "0xpair", DexID: "pulsex", Info: &wire.PairInfo{ImageURL: "https://img"}},
			{ChainID: "pulsechain", PriceUsd: "0.20"},
		}}
		q, err := NewSpotPriceProvider(dex, "pulsechain", logger.Nop()).GetSpotQuote(context.Background(), "0xtoken")
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.InDelta(t, 0.15, q.PriceUSD, 1e-12)
		assert.InDelta(t, 3.0, q.PriceNative, 1e-12)
		assert.Equal(t, "https://img", q.ImageURL)
		assert.Equal(t, "0xpair", q.PairAddress)
		assert.Equal(t, "pulsex", q.DexID)
	})

	t.Run("configured chain preferred", func(t *testing.T) {
		dex := &fakeDEX{pairs: []wire.PairData{
			{ChainID: "ethereum", PriceUsd: "9"},
			{ChainID: "pulsechain", PriceUsd: "1"},
		}}
		q, err := NewSpotPriceProvider(dex, "pulsechain", logger.Nop()).GetSpotQuote(context.Background(), "0xtoken")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, q.PriceUSD, 1e-12)
	})

	t.Run("no pairs", func(t *testing.T) {
		q, err := NewSpotPriceProvider(&fakeDEX{pairs: []wire.PairData{}}, "pulsechain", logger.Nop()).GetSpotQuote(context.Background(), "0xtoken")
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("malformed price", func(t *testing.T) {
		q, err := NewSpotPriceProvider(&fakeDEX{pairs: []wire.PairData{{PriceUsd: "n/a"}}}, "", logger.Nop()).GetSpotQuote(context.Background(), "0xtoken")
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Zero(t, q.PriceUSD)
	})

	t.Run("client error", func(t *testing.T) {
		_, err := NewSpotPriceProvider(&fakeDEX{err: errors.New("boom")}, "pulsechain", logger.Nop()).GetSpotQuote(context.Background(), "0xtoken")
		assert.Error(t, err)
	})
}

func TestHistoricalPriceProvider(t *testing.T) {
	p := NewHistoricalPriceProvider(&fakeMoralis{price: &wire.MoralisTokenPrice{USDPrice: "0.1"}}, "0x171", logger.Nop())
	price, ok, err := p.GetTokenPriceUSD(context.Background(), "0xtoken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.1, price, 1e-12)

	p = NewHistoricalPriceProvider(&fakeMoralis{price: &wire.MoralisTokenPrice{}}, "0x171", logger.Nop())
	_, ok, err = p.GetTokenPriceUSD(context.Background(), "0xtoken")
	require.NoError(t, err)
	assert.False(t, ok)

	notFound := &entity.UpstreamStatusError{Provider: "moralis", StatusCode: http.StatusNotFound}
	p = NewHistoricalPriceProvider(&fakeMoralis{err: notFound}, "0x171", logger.Nop())
	_, ok, err = p.GetTokenPriceUSD(context.Background(), "0xtoken")
	require.NoError(t, err)
	assert.False(t, ok)

	p = NewHistoricalPriceProvider(&fakeMoralis{err: errors.New("timeout")}, "0x171", logger.Nop())
	_, ok, err = p.GetTokenPriceUSD(context.Background(), "0xtoken")
	assert.Error(t, err)
	assert.False(t, ok)
}
