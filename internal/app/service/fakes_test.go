package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/infrastructure/configloader"
)

const (
	testWallet = "0x1111111111111111111111111111111111111111"
	otherAddr  = "0x2222222222222222222222222222222222222222"
	tokenA     = "0xaaaa000000000000000000000000000000000001"
	tokenB     = "0xbbbb000000000000000000000000000000000002"
	tokenC     = "0xcccc000000000000000000000000000000000003"
)

// units returns the raw 18-decimal amount of a whole number of tokens.
func units(whole string) string {
	return whole + "000000000000000000"
}

func usd(v float64) *float64 { return &v }

func buy(token, raw string, valueUSD *float64, ts time.Time) entity.TransferEvent {
	return entity.TransferEvent{
		TokenAddress: token,
		TokenSymbol:  "SYM",
		RawAmount:    raw,
		FromAddress:  otherAddr,
		ToAddress:    testWallet,
		Timestamp:    ts,
		ValueUSD:     valueUSD,
	}
}

func sell(token, raw string, valueUSD *float64, ts time.Time) entity.TransferEvent {
	return entity.TransferEvent{
		TokenAddress: token,
		TokenSymbol:  "SYM",
		RawAmount:    raw,
		FromAddress:  testWallet,
		ToAddress:    otherAddr,
		Timestamp:    ts,
		ValueUSD:     valueUSD,
	}
}

// fakeFeed honors FromTimestamp as an inclusive bound.
type fakeFeed struct {
	transfers []entity.TransferEvent
	err       error
	mu        sync.Mutex
	queries   []entity.TransferQuery
}

func (f *fakeFeed) GetTransfers(_ context.Context, q entity.TransferQuery) ([]entity.TransferEvent, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if q.FromTimestamp == nil {
		return f.transfers, nil
	}
	window := entity.TimeWindow{From: *q.FromTimestamp}
	var out []entity.TransferEvent
	for _, t := range f.transfers {
		if window.Includes(t.Timestamp) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeFeed) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeSpot struct {
	quotes map[string]*entity.SpotQuote
	errs   map[string]error
	delay  time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (f *fakeSpot) GetSpotQuote(_ context.Context, token string) (*entity.SpotQuote, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	return f.quotes[token], nil
}

type fakeHistorical struct {
	prices map[string]float64
	err    error
	calls  atomic.Int32
}

func (f *fakeHistorical) GetTokenPriceUSD(_ context.Context, token string) (float64, bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, false, f.err
	}
	p, ok := f.prices[token]
	return p, ok, nil
}

func testConfig() *configloader.Config {
	offset := 420
	return &configloader.Config{
		Moralis: configloader.MoralisConfig{APIKey: "test-key"},
		Portfolio: configloader.PortfolioConfig{
			DustThreshold:         0.000001,
			TimezoneOffsetMinutes: &offset,
			MaxConcurrentRequests: 4,
			RequestTimeoutMillis:  5000,
		},
	}
}
