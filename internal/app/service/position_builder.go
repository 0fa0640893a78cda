package service

import (
	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/domain/entity"
	"pnl_tracker/internal/pkg/utils"
)

// UnknownTokenSymbol is reported for tokens whose transfers carry no symbol.
const UnknownTokenSymbol = "UNKNOWN"

// BuildPositions folds transfers into one position per token, keyed by the lower-cased token address.
// Incoming transfers are buys, outgoing transfers are sells; a self-transfer counts as a buy.
// Transfers without a token address, with an unusable amount or unrelated to wallet are skipped.
func BuildPositions(transfers []entity.TransferEvent, wallet string, logger port.Logger) map[string]entity.TokenPosition {
	acc := make(map[string]*entity.TokenPosition)
	skipped := 0

	for _, t := range transfers {
		key := utils.NormalizeAddress(t.TokenAddress)
		if key == "" {
			skipped++
			continue
		}

		isBuy := utils.SameAddress(t.ToAddress, wallet)
		isSell := !isBuy && utils.SameAddress(t.FromAddress, wallet)
		if !isBuy && !isSell {
			skipped++
			continue
		}

		qty, err := utils.NormalizeAmount(t.RawAmount, utils.ParseDecimals(t.Decimals))
		if err != nil {
			logger.Warn("Skipping transfer with unusable amount", "token", key, "tx", t.TransactionHash, "error", err)
			skipped++
			continue
		}

		pos, ok := acc[key]
		if !ok {
			pos = &entity.TokenPosition{TokenAddress: key}
			acc[key] = pos
		}
		if pos.TokenSymbol == "" {
			pos.TokenSymbol = t.TokenSymbol
		}
		if pos.TokenLogo == "" {
			pos.TokenLogo = t.TokenLogo
		}

		usd, hasUSD := transferUSD(t)
		if isBuy {
			pos.QuantityBought += qty
			pos.BuyCount++
			if hasUSD {
				pos.BuySpendUSD += usd
				pos.HasBuySpendUSD = true
			}
		} else {
			pos.QuantitySold += qty
			pos.SellCount++
			if hasUSD {
				pos.SellValueUSD += usd
				pos.HasSellValueUSD = true
			}
		}
	}

	positions := make(map[string]entity.TokenPosition, len(acc))
	for key, pos := range acc {
		if pos.TokenSymbol == "" {
			pos.TokenSymbol = UnknownTokenSymbol
		}
		positions[key] = *pos
	}

	logger.Debug("Positions built", "transfers", len(transfers), "tokens", len(positions), "skipped", skipped)
	return positions
}

func transferUSD(t entity.TransferEvent) (float64, bool) {
	if t.ValueUSD == nil || *t.ValueUSD < 0 {
		return 0, false
	}
	return *t.ValueUSD, true
}
