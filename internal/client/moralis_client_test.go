package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pnl_tracker/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWallet = "0x1111111111111111111111111111111111111111"

func TestMoralisClient_GetERC20Transfers(t *testing.T) {
	from := time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)
	var gotPath, gotKey string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 0, "page_size": 100, "cursor": "next-page",
			"result": [{
				"token_name": "Token A", "token_symbol": "TKA", "token_logo": "https://logo/a.png",
				"token_decimals": "6", "address": "0xAAA0000000000000000000000000000000000001",
				"from_address": "0x2222222222222222222222222222222222222222",
				"to_address": "0x1111111111111111111111111111111111111111",
				"value": "100000000", "value_usd": 10.5,
				"transaction_hash": "0xdead", "block_number": "123",
				"block_timestamp": "2025-03-09T18:00:00.000Z"
			}]
		}`))
	}))
	defer srv.Close()

	c := NewMoralisClient(srv.URL+"/", "secret-key", 5*time.Second, zap.NewNop(), 0, 0)
	page, err := c.GetERC20Transfers(context.Background(), TransfersPageRequest{
		WalletAddress: testWallet,
		ChainHex:      "0x171",
		FromDate:      &from,
		Cursor:        "abc",
		Limit:         100,
	})
	require.NoError(t, err)

	assert.Equal(t, "/"+testWallet+"/erc20/transfers", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "0x171", gotQuery["chain"])
	assert.Equal(t, "100", gotQuery["limit"])
	assert.Equal(t, "abc", gotQuery["cursor"])
	assert.Equal(t, "2025-03-09T17:00:00Z", gotQuery["from_date"])

	require.Len(t, page.Result, 1)
	assert.Equal(t, "next-page", page.Cursor)
	tr := page.Result[0]
	assert.Equal(t, "TKA", tr.TokenSymbol)
	assert.Equal(t, "6", tr.TokenDecimals.String())
	assert.Equal(t, "100000000", tr.Value.String())
	usd, ok := tr.ValueUSD.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 10.5, usd, 1e-9)
	assert.True(t, tr.BlockTimestamp.Equal(time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)))
}

func TestMoralisClient_GetERC20Transfers_OmitsOptionalQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"result": []}`))
	}))
	defer srv.Close()

	c := NewMoralisClient(srv.URL, "k", time.Second, zap.NewNop(), 0, 0)
	page, err := c.GetERC20Transfers(context.Background(), TransfersPageRequest{WalletAddress: testWallet, ChainHex: "0x171"})
	require.NoError(t, err)
	assert.Empty(t, page.Result)
	assert.Equal(t, "chain=0x171", rawQuery)
}

func TestMoralisClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid key"}`))
	}))
	defer srv.Close()

	c := NewMoralisClient(srv.URL, "bad", time.Second, zap.NewNop(), 0, 0)
	_, err := c.GetERC20Transfers(context.Background(), TransfersPageRequest{WalletAddress: testWallet, ChainHex: "0x171"})
	require.Error(t, err)

	var statusErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "moralis", statusErr.Provider)
	assert.Contains(t, statusErr.Body, "Invalid key")
}

func TestMoralisClient_EmptyWallet(t *testing.T) {
	c := NewMoralisClient("http://127.0.0.1:1", "k", time.Second, zap.NewNop(), 0, 0)
	_, err := c.GetERC20Transfers(context.Background(), TransfersPageRequest{})
	assert.Error(t, err)
}

func TestMoralisClient_GetTokenPrice(t *testing.T) {
	var gotPath, gotChain string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChain = r.URL.Query().Get("chain")
		_, _ = w.Write([]byte(`{"tokenSymbol":"TKA","usdPrice":"0.1234","nativePrice":{"value":"1000","decimals":18,"symbol":"PLS"}}`))
	}))
	defer srv.Close()

	c := NewMoralisClient(srv.URL, "k", time.Second, zap.NewNop(), 0, 0)
	price, err := c.GetTokenPrice(context.Background(), "0xabc", "0x171")
	require.NoError(t, err)
	assert.Equal(t, "/erc20/0xabc/price", gotPath)
	assert.Equal(t, "0x171", gotChain)

	usd, ok := price.USDPrice.Float64()
	require.True(t, ok)
	assert.InDelta(t, 0.1234, usd, 1e-12)
	require.NotNil(t, price.NativePrice)
	assert.Equal(t, "PLS", price.NativePrice.Symbol)
}

func TestMoralisClient_ContextCancelled(t *testing.T) {
	c := NewMoralisClient("http://127.0.0.1:1", "k", time.Second, zap.NewNop(), 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetTokenPrice(ctx, "0xabc", "0x171")
	assert.ErrorIs(t, err, context.Canceled)
}
