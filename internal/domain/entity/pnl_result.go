package entity

// PnLResult is one row of the all-time portfolio view.
// Field names are consumed by the dashboard and must stay as they are.
type PnLResult struct {
	TokenAddress         string  `json:"tokenAddress"`
	TokenSymbol          string  `json:"tokenSymbol"`
	TokenLogo            string  `json:"tokenLogo"`
	AvgBuyPrice          float64 `json:"avgBuyPrice"`
	Quantity             float64 `json:"quantity"`
	CurrentPrice         float64 `json:"currentPrice"`
	ValueUSD             float64 `json:"valueUSD"`
	UnrealizedPnlUSD     float64 `json:"unrealizedPnlUSD"`
	UnrealizedPnlPercent float64 `json:"unrealizedPnlPercent"`
	TotalProfitUSD       float64 `json:"totalProfitUSD"`
	ChartLink            string  `json:"chartLink"`
}

// TodayPnLResult is one row of the today view.
type TodayPnLResult struct {
	PnLResult
	TotalBuyUSD    float64 `json:"totalBuyUSD"`
	TotalBuyNative float64 `json:"totalBuyNative"`
	SoldQuantity   float64 `json:"soldQuantity"`
	PnlPercent     float64 `json:"pnlPercent"`
	ProfitUSD      float64 `json:"profitUSD"`
}

// PortfolioSummary aggregates the today view.
type PortfolioSummary struct {
	TotalBuyUSD        float64 `json:"totalBuyUSD"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
	TotalProfitUSD     float64 `json:"totalProfitUSD"`
	TotalProfitPercent float64 `json:"totalProfitPercent"`
}

// PortfolioView is the all-time response shape.
type PortfolioView struct {
	Portfolio []PnLResult `json:"portfolio"`
}

// TodayView is the today response shape.
type TodayView struct {
	Transactions []TodayPnLResult `json:"transactions"`
	Summary      PortfolioSummary `json:"summary"`
}
