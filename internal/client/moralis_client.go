package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pnl_tracker/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const moralisProvider = "moralis"

// TransfersPageRequest selects one page of a wallet's ERC-20 transfers.
type TransfersPageRequest struct {
	WalletAddress string
	ChainHex      string
	FromDate      *time.Time // inclusive
	Cursor        string
	Limit         int
}

// MoralisClient defines the subset of the Moralis Web3 Data API the tracker uses.
type MoralisClient interface {
	GetERC20Transfers(ctx context.Context, req TransfersPageRequest) (*entity.MoralisTransfersResponse, error)
	GetTokenPrice(ctx context.Context, tokenAddress, chainHex string) (*entity.MoralisTokenPrice, error)
}

type moralisClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewMoralisClient creates a new Moralis client. The API key is sent as X-API-Key on every call.
func NewMoralisClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, rateLimit, burst int) MoralisClient {
	return &moralisClientImpl{
		client:  &fasthttp.Client{Name: "pnl-tracker"},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: newLimiter(rateLimit, burst),
		logger:  logger.Named("MoralisClient"),
	}
}

func (c *moralisClientImpl) headers() map[string]string {
	return map[string]string{"X-API-Key": c.apiKey}
}

// GetERC20Transfers fetches one page of /{address}/erc20/transfers.
func (c *moralisClientImpl) GetERC20Transfers(ctx context.Context, req TransfersPageRequest) (*entity.MoralisTransfersResponse, error) {
	if req.WalletAddress == "" {
		return nil, fmt.Errorf("walletAddress cannot be empty")
	}
	query := [][2]string{{"chain", req.ChainHex}}
	if req.Limit > 0 {
		query = append(query, [2]string{"limit", strconv.Itoa(req.Limit)})
	}
	if req.FromDate != nil {
		query = append(query, [2]string{"from_date", req.FromDate.UTC().Format(time.RFC3339Nano)})
	}
	if req.Cursor != "" {
		query = append(query, [2]string{"cursor", req.Cursor})
	}

	rawBody, err := doGet(ctx, c.client, c.limiter, c.timeout, c.logger, getRequest{
		provider: moralisProvider,
		endpoint: "erc20_transfers",
		url:      fmt.Sprintf("%s/%s/erc20/transfers", c.baseURL, req.WalletAddress),
		query:    query,
		headers:  c.headers(),
	})
	if err != nil {
		return nil, err
	}

	var page entity.MoralisTransfersResponse
	if err := json.Unmarshal(rawBody, &page); err != nil {
		c.logger.Error("Failed to unmarshal Moralis transfers response",
			zap.String("wallet", req.WalletAddress),
			zap.ByteString("responseBody", truncate(rawBody, 512)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Moralis transfers response: %w", err)
	}
	c.logger.Debug("Received Moralis transfers page",
		zap.String("wallet", req.WalletAddress),
		zap.Int("count", len(page.Result)),
		zap.Bool("hasCursor", page.Cursor != ""))
	return &page, nil
}

// GetTokenPrice fetches /erc20/{address}/price.
func (c *moralisClientImpl) GetTokenPrice(ctx context.Context, tokenAddress, chainHex string) (*entity.MoralisTokenPrice, error) {
	if tokenAddress == "" {
		return nil, fmt.Errorf("tokenAddress cannot be empty")
	}
	rawBody, err := doGet(ctx, c.client, c.limiter, c.timeout, c.logger, getRequest{
		provider: moralisProvider,
		endpoint: "erc20_price",
		url:      fmt.Sprintf("%s/erc20/%s/price", c.baseURL, tokenAddress),
		query:    [][2]string{{"chain", chainHex}},
		headers:  c.headers(),
	})
	if err != nil {
		return nil, err
	}

	var price entity.MoralisTokenPrice
	if err := json.Unmarshal(rawBody, &price); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Moralis price response for %s: %w", tokenAddress, err)
	}
	return &price, nil
}
