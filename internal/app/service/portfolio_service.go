package service

import (
	"context"
	"strings"
	"time"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/infrastructure/configloader"
	"pnl_tracker/internal/pkg/metrics"
	"pnl_tracker/internal/pkg/utils"
)

const (
	ViewPortfolio = "portfolio"
	ViewToday     = "today"

	feedProviderName = "Moralis"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	feed           port.TransferFeedProvider
	enricher       *PriceEnricher
	chain          entity.NetworkDefinition
	apiKey         string
	dustThreshold  float64
	offsetMinutes  int
	requestTimeout time.Duration
	logger         port.Logger
	now            func() time.Time
}

// Option configures a PortfolioServiceImpl.
type Option func(*PortfolioServiceImpl)

// WithClock replaces time.Now, which drives the today window.
func WithClock(now func() time.Time) Option {
	return func(s *PortfolioServiceImpl) { s.now = now }
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	feed port.TransferFeedProvider,
	enricher *PriceEnricher,
	chain entity.NetworkDefinition,
	cfg *configloader.Config,
	l port.Logger,
	opts ...Option,
) port.PortfolioService {
	s := &PortfolioServiceImpl{
		feed:           feed,
		enricher:       enricher,
		chain:          chain,
		apiKey:         cfg.Moralis.APIKey,
		dustThreshold:  cfg.Portfolio.DustThreshold,
		offsetMinutes:  cfg.TimezoneOffset(),
		requestTimeout: time.Duration(cfg.Portfolio.RequestTimeoutMillis) * time.Millisecond,
		logger:         l,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	l.Info("PortfolioService initialized", "chain", chain.Identifier, "chainID", chain.ChainIDHex(), "timezoneOffsetMinutes", s.offsetMinutes)
	return s
}

// GetPortfolioSummary implements port.PortfolioService.
func (s *PortfolioServiceImpl) GetPortfolioSummary(ctx context.Context, walletAddress string) (view *entity.PortfolioView, err error) {
	started := time.Now()
	defer func() {
		n := 0
		if view != nil {
			n = len(view.Portfolio)
		}
		s.observe(ViewPortfolio, started, err, n)
	}()

	wallet, err := s.checkRequest(walletAddress)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Info("Fetching portfolio summary", "wallet", wallet)
	positions, err := s.loadPositions(ctx, wallet, nil)
	if err != nil {
		return nil, err
	}

	held := make(map[string]entity.TokenPosition, len(positions))
	for key, pos := range positions {
		if pos.NetQuantity() > s.dustThreshold {
			held[key] = pos
		}
	}

	priced := s.enricher.Enrich(ctx, held, EnrichOptions{UseHistorical: true, View: ViewPortfolio})
	rows := make([]entity.PnLResult, 0, len(priced))
	for _, p := range priced {
		rows = append(rows, CalculatePnL(p))
	}
	SortPnLResults(rows)

	s.logger.Info("Portfolio summary computed", "wallet", wallet, "tokens", len(rows), "positions", len(positions))
	return &entity.PortfolioView{Portfolio: rows}, nil
}

// GetTodayTransactions implements port.PortfolioService.
func (s *PortfolioServiceImpl) GetTodayTransactions(ctx context.Context, walletAddress string) (view *entity.TodayView, err error) {
	started := time.Now()
	defer func() {
		n := 0
		if view != nil {
			n = len(view.Transactions)
		}
		s.observe(ViewToday, started, err, n)
	}()

	wallet, err := s.checkRequest(walletAddress)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	window := TodayWindow(s.now(), s.offsetMinutes)
	s.logger.Info("Fetching today transactions", "wallet", wallet, "from", window.From.Format(time.RFC3339))

	positions, err := s.loadPositions(ctx, wallet, &window.From)
	if err != nil {
		return nil, err
	}

	// Enrich keeps only tokens bought in the window, so sell-only tokens never appear.
	priced := s.enricher.Enrich(ctx, positions, EnrichOptions{View: ViewToday})
	rows := make([]entity.TodayPnLResult, 0, len(priced))
	for _, p := range priced {
		rows = append(rows, CalculateTodayPnL(p))
	}
	SortTodayPnLResults(rows)

	summary := Summarize(rows)
	s.logger.Info("Today transactions computed", "wallet", wallet, "tokens", len(rows), "totalProfitUSD", summary.TotalProfitUSD)
	return &entity.TodayView{Transactions: rows, Summary: summary}, nil
}

// checkRequest validates the wallet before the API key, both before any network call.
func (s *PortfolioServiceImpl) checkRequest(walletAddress string) (string, error) {
	wallet := strings.TrimSpace(walletAddress)
	if wallet == "" {
		return "", entity.NewInvalidInputError("Wallet address is required")
	}
	if !utils.IsValidEVMAddress(wallet) {
		return "", entity.NewInvalidInputError("Invalid EVM wallet address format")
	}
	if s.apiKey == "" {
		s.logger.Error("Moralis API key is not configured")
		return "", entity.NewConfigurationError("Moralis API key not configured")
	}
	return wallet, nil
}

func (s *PortfolioServiceImpl) loadPositions(ctx context.Context, wallet string, from *time.Time) (map[string]entity.TokenPosition, error) {
	transfers, err := s.feed.GetTransfers(ctx, entity.TransferQuery{
		WalletAddress: wallet,
		ChainID:       s.chain.ChainIDHex(),
		FromTimestamp: from,
	})
	if err != nil {
		feedErr := entity.NewUpstreamFeedError(feedProviderName, err)
		s.logger.Error("Transfer feed failed", "wallet", wallet, "error", feedErr)
		return nil, feedErr
	}
	s.logger.Debug("Received token transfers", "wallet", wallet, "count", len(transfers))
	return BuildPositions(transfers, wallet, s.logger), nil
}

func (s *PortfolioServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

func (s *PortfolioServiceImpl) observe(view string, started time.Time, err error, rows int) {
	result := "ok"
	if err != nil {
		result = string(entity.KindOf(err))
	} else {
		metrics.PositionsReturned.WithLabelValues(view).Observe(float64(rows))
	}
	metrics.PipelineDuration.WithLabelValues(view, result).Observe(time.Since(started).Seconds())
}
