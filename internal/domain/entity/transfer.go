package entity

import "time"

// TransferEvent is a single ERC-20 transfer as delivered by the transfer feed.
// Direction relative to the tracked wallet is derived from From/To, it is never stored.
type TransferEvent struct {
	TokenAddress    string
	TokenSymbol     string
	TokenLogo       string
	Decimals        string // raw value from the feed, "" when absent
	RawAmount       string // integer amount in the token's smallest unit
	FromAddress     string
	ToAddress       string
	Timestamp       time.Time
	TransactionHash string
	ValueUSD        *float64 // set only when the feed prices the transfer itself
}

// TransferQuery is what the core asks the transfer feed for.
type TransferQuery struct {
	WalletAddress string
	ChainID       string // hex chain id, e.g. "0x171"
	FromTimestamp *time.Time
}

// TimeWindow is an inclusive lower time bound.
type TimeWindow struct {
	From time.Time
}

// Includes reports whether ts falls inside the window.
func (w TimeWindow) Includes(ts time.Time) bool {
	return !ts.Before(w.From)
}
