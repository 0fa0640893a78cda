package entity

// AvgBuyPriceSource tells where a position's average buy price came from.
type AvgBuyPriceSource string

const (
	AvgBuyPriceFromFeedUSD    AvgBuyPriceSource = "feed_usd"
	AvgBuyPriceFromHistorical AvgBuyPriceSource = "historical"
	AvgBuyPriceFromSpot       AvgBuyPriceSource = "spot"
)

// TokenPosition is the per-token aggregate of one pass over a transfer feed.
type TokenPosition struct {
	TokenAddress    string
	TokenSymbol     string
	TokenLogo       string
	QuantityBought  float64
	QuantitySold    float64
	BuySpendUSD     float64
	SellValueUSD    float64
	HasBuySpendUSD  bool
	HasSellValueUSD bool
	BuyCount        int
	SellCount       int
}

// NetQuantity returns bought minus sold. It can be negative when the feed window
// misses earlier buys.
func (p TokenPosition) NetQuantity() float64 {
	return p.QuantityBought - p.QuantitySold
}

// SpotQuote is the current market quote for a token.
type SpotQuote struct {
	PriceUSD    float64
	PriceNative float64 // token price expressed in the chain's native currency, 0 if unknown
	ImageURL    string
	PairAddress string
	DexID       string
}

// PricedPosition is a TokenPosition with its price fields resolved.
type PricedPosition struct {
	TokenPosition
	CurrentPrice      float64
	PriceNative       float64
	AvgBuyPriceUSD    float64
	AvgBuyPriceSource AvgBuyPriceSource
	BuySpendNative    float64
	ChartLink         string
	PriceDegraded     bool
}
