package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pnl_tracker/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const dexScreenerProvider = "dexscreener"

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	// GetTokenPairs returns every pair DEX Screener lists for a token, in the order the API returns them.
	GetTokenPairs(ctx context.Context, tokenAddress string) ([]entity.PairData, error)
}

// dexScreenerClientImpl is the implementation of DEXScreenerClient.
type dexScreenerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewDEXScreenerClient creates a new instance of dexScreenerClientImpl.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger, rateLimit, burst int) DEXScreenerClient {
	return &dexScreenerClientImpl{
		client:  &fasthttp.Client{Name: "pnl-tracker"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: newLimiter(rateLimit, burst),
		logger:  logger.Named("DEXScreenerClient"),
	}
}

// GetTokenPairs implements the DEXScreenerClient interface.
func (c *dexScreenerClientImpl) GetTokenPairs(ctx context.Context, tokenAddress string) ([]entity.PairData, error) {
	if tokenAddress == "" {
		return nil, fmt.Errorf("tokenAddress cannot be empty")
	}
	requestURL := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, tokenAddress)

	rawBody, err := doGet(ctx, c.client, c.limiter, c.timeout, c.logger, getRequest{
		provider: dexScreenerProvider,
		endpoint: "token_pairs",
		url:      requestURL,
	})
	if err != nil {
		return nil, err
	}

	var wrapper entity.DEXTokenPair
	if err := json.Unmarshal(rawBody, &wrapper); err == nil {
		if wrapper.Pairs != nil {
			return wrapper.Pairs, nil
		}
		if wrapper.Pair != nil {
			return []entity.PairData{*wrapper.Pair}, nil
		}
		// {"schemaVersion":"1.0.0","pairs":null} is how DEX Screener reports an unknown token.
		if wrapper.SchemaVersion != "" {
			c.logger.Debug("DEXScreener returned no pairs for token", zap.String("tokenAddress", tokenAddress))
			return []entity.PairData{}, nil
		}
	}

	var directPairs []entity.PairData
	if err := json.Unmarshal(rawBody, &directPairs); err != nil {
		c.logger.Error("Failed to unmarshal DEX Screener response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}

	c.logger.Debug("Successfully unmarshalled DEX Screener response (direct array)",
		zap.String("tokenAddress", tokenAddress),
		zap.Int("pairCount", len(directPairs)))
	return directPairs, nil
}
