package service

import (
	"sort"

	"pnl_tracker/internal/domain/entity"
)

// CalculatePnL derives the all-time row of a priced position using weighted average cost.
// Realized profit on sells is valued at the same average buy price as the held quantity.
func CalculatePnL(p entity.PricedPosition) entity.PnLResult {
	row := unrealized(p)

	sellCost := p.QuantitySold * p.AvgBuyPriceUSD
	sellValue := sellCost
	if p.HasSellValueUSD {
		sellValue = p.SellValueUSD
	}
	row.TotalProfitUSD = row.UnrealizedPnlUSD + (sellValue - sellCost)
	return row
}

// CalculateTodayPnL derives the today-view row of a priced position.
func CalculateTodayPnL(p entity.PricedPosition) entity.TodayPnLResult {
	row := unrealized(p)
	row.TotalProfitUSD = row.UnrealizedPnlUSD

	return entity.TodayPnLResult{
		PnLResult:      row,
		TotalBuyUSD:    totalBuyUSD(p.TokenPosition, p.AvgBuyPriceUSD),
		TotalBuyNative: p.BuySpendNative,
		SoldQuantity:   p.QuantitySold,
		PnlPercent:     row.UnrealizedPnlPercent,
		ProfitUSD:      row.UnrealizedPnlUSD,
	}
}

// Summarize aggregates today-view rows.
func Summarize(rows []entity.TodayPnLResult) entity.PortfolioSummary {
	var s entity.PortfolioSummary
	for _, r := range rows {
		s.TotalBuyUSD += r.TotalBuyUSD
		s.TotalCurrentValue += r.ValueUSD
		s.TotalProfitUSD += r.TotalProfitUSD
	}
	s.TotalProfitPercent = percentOf(s.TotalProfitUSD, s.TotalBuyUSD)
	return s
}

// SortPnLResults orders rows by value descending, then by token address.
func SortPnLResults(rows []entity.PnLResult) {
	sort.SliceStable(rows, func(i, j int) bool {
		return lessByValue(rows[i], rows[j])
	})
}

// SortTodayPnLResults orders rows by value descending, then by token address.
func SortTodayPnLResults(rows []entity.TodayPnLResult) {
	sort.SliceStable(rows, func(i, j int) bool {
		return lessByValue(rows[i].PnLResult, rows[j].PnLResult)
	})
}

func lessByValue(a, b entity.PnLResult) bool {
	if a.ValueUSD != b.ValueUSD {
		return a.ValueUSD > b.ValueUSD
	}
	return a.TokenAddress < b.TokenAddress
}

func unrealized(p entity.PricedPosition) entity.PnLResult {
	quantity := p.NetQuantity()
	if quantity < 0 {
		quantity = 0
	}
	value := quantity * p.CurrentPrice
	costBasis := quantity * p.AvgBuyPriceUSD
	pnl := value - costBasis

	return entity.PnLResult{
		TokenAddress:         p.TokenAddress,
		TokenSymbol:          p.TokenSymbol,
		TokenLogo:            p.TokenLogo,
		AvgBuyPrice:          p.AvgBuyPriceUSD,
		Quantity:             quantity,
		CurrentPrice:         p.CurrentPrice,
		ValueUSD:             value,
		UnrealizedPnlUSD:     pnl,
		UnrealizedPnlPercent: percentOf(pnl, costBasis),
		ChartLink:            p.ChartLink,
	}
}

// percentOf returns part/base*100, or 0 when base is not positive.
func percentOf(part, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return part / base * 100
}
