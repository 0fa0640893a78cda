package service

import (
	"strings"
	"testing"
	"time"

	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPositions_BuysAndSells(t *testing.T) {
	ts := time.Now().UTC()
	transfers := []entity.TransferEvent{
		buy(tokenA, units("100"), usd(10), ts),
		buy(tokenA, units("50"), usd(7.5), ts),
		sell(tokenA, units("30"), usd(6), ts),
	}

	positions := BuildPositions(transfers, testWallet, logger.Nop())
	require.Len(t, positions, 1)

	pos := positions[tokenA]
	assert.InDelta(t, 150, pos.QuantityBought, 1e-9)
	assert.InDelta(t, 30, pos.QuantitySold, 1e-9)
	assert.InDelta(t, 120, pos.NetQuantity(), 1e-9)
	assert.InDelta(t, 17.5, pos.BuySpendUSD, 1e-9)
	assert.InDelta(t, 6, pos.SellValueUSD, 1e-9)
	assert.True(t, pos.HasBuySpendUSD)
	assert.True(t, pos.HasSellValueUSD)
	assert.Equal(t, 2, pos.BuyCount)
	assert.Equal(t, 1, pos.SellCount)
}

func TestBuildPositions_AddressesAreCaseInsensitive(t *testing.T) {
	ts := time.Now().UTC()
	upperWallet := "0x" + strings.ToUpper(testWallet[2:])
	upperToken := "0x" + strings.ToUpper(tokenA[2:])

	t1 := buy(upperToken, units("1"), nil, ts)
	t2 := buy(tokenA, units("2"), nil, ts)

	positions := BuildPositions([]entity.TransferEvent{t1, t2}, upperWallet, logger.Nop())
	require.Len(t, positions, 1)
	pos, ok := positions[tokenA]
	require.True(t, ok)
	assert.Equal(t, tokenA, pos.TokenAddress)
	assert.InDelta(t, 3, pos.QuantityBought, 1e-9)
	assert.False(t, pos.HasBuySpendUSD)
}

func TestBuildPositions_Decimals(t *testing.T) {
	ts := time.Now().UTC()
	sixDecimals := buy(tokenA, "2500000", nil, ts)
	sixDecimals.Decimals = "6"
	missing := buy(tokenB, units("4"), nil, ts)
	garbage := buy(tokenC, units("5"), nil, ts)
	garbage.Decimals = "eighteen"

	positions := BuildPositions([]entity.TransferEvent{sixDecimals, missing, garbage}, testWallet, logger.Nop())
	assert.InDelta(t, 2.5, positions[tokenA].QuantityBought, 1e-12)
	assert.InDelta(t, 4, positions[tokenB].QuantityBought, 1e-12)
	assert.InDelta(t, 5, positions[tokenC].QuantityBought, 1e-12)
}

func TestBuildPositions_SkipsAndEdgeCases(t *testing.T) {
	ts := time.Now().UTC()

	noToken := buy("", units("1"), nil, ts)
	unrelated := buy(tokenA, units("1"), nil, ts)
	unrelated.ToAddress = otherAddr
	badAmount := buy(tokenA, "12abc", nil, ts)
	selfTransfer := buy(tokenB, units("3"), nil, ts)
	selfTransfer.FromAddress = testWallet
	sellOnly := sell(tokenC, units("9"), nil, ts)
	sellOnly.TokenSymbol = ""

	positions := BuildPositions([]entity.TransferEvent{noToken, unrelated, badAmount, selfTransfer, sellOnly}, testWallet, logger.Nop())

	_, hasA := positions[tokenA]
	assert.False(t, hasA)

	self := positions[tokenB]
	assert.InDelta(t, 3, self.QuantityBought, 1e-9)
	assert.Zero(t, self.QuantitySold)

	so := positions[tokenC]
	assert.Zero(t, so.QuantityBought)
	assert.InDelta(t, 9, so.QuantitySold, 1e-9)
	assert.Equal(t, UnknownTokenSymbol, so.TokenSymbol)
}

func TestBuildPositions_FirstSymbolAndLogoWin(t *testing.T) {
	ts := time.Now().UTC()
	first := buy(tokenA, units("1"), nil, ts)
	first.TokenSymbol = ""
	second := buy(tokenA, units("1"), nil, ts)
	second.TokenSymbol = "AAA"
	second.TokenLogo = "https://logo/a.png"
	third := buy(tokenA, units("1"), nil, ts)
	third.TokenSymbol = "OTHER"

	pos := BuildPositions([]entity.TransferEvent{first, second, third}, testWallet, logger.Nop())[tokenA]
	assert.Equal(t, "AAA", pos.TokenSymbol)
	assert.Equal(t, "https://logo/a.png", pos.TokenLogo)
}

func TestBuildPositions_Empty(t *testing.T) {
	positions := BuildPositions(nil, testWallet, logger.Nop())
	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}
