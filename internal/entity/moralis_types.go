package entity

import "time"

// MoralisTransfersResponse is the page envelope of /{address}/erc20/transfers.
type MoralisTransfersResponse struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Cursor   string            `json:"cursor"`
	Result   []MoralisTransfer `json:"result"`
}

// MoralisTransfer is one ERC-20 transfer as Moralis reports it.
// Some deployments of the API use token_address/decimals instead of address/token_decimals,
// both spellings are decoded.
type MoralisTransfer struct {
	TokenName       string         `json:"token_name"`
	TokenSymbol     string         `json:"token_symbol"`
	TokenLogo       string         `json:"token_logo"`
	TokenDecimals   FlexibleNumber `json:"token_decimals"`
	Decimals        FlexibleNumber `json:"decimals"`
	Address         string         `json:"address"`
	TokenAddress    string         `json:"token_address"`
	FromAddress     string         `json:"from_address"`
	ToAddress       string         `json:"to_address"`
	Value           FlexibleNumber `json:"value"`
	ValueDecimal    FlexibleNumber `json:"value_decimal"`
	ValueUSD        FlexibleNumber `json:"value_usd"`
	TransactionHash string         `json:"transaction_hash"`
	BlockNumber     FlexibleNumber `json:"block_number"`
	BlockTimestamp  time.Time      `json:"block_timestamp"`
	PossibleSpam    bool           `json:"possible_spam"`
}

// MoralisTokenPrice is the body of /erc20/{address}/price.
type MoralisTokenPrice struct {
	TokenName       string              `json:"tokenName"`
	TokenSymbol     string              `json:"tokenSymbol"`
	TokenLogo       string              `json:"tokenLogo"`
	TokenDecimals   FlexibleNumber      `json:"tokenDecimals"`
	NativePrice     *MoralisNativePrice `json:"nativePrice"`
	USDPrice        FlexibleNumber      `json:"usdPrice"`
	ExchangeAddress string              `json:"exchangeAddress"`
	ExchangeName    string              `json:"exchangeName"`
}

// MoralisNativePrice is the native-currency part of a price response.
type MoralisNativePrice struct {
	Value    FlexibleNumber `json:"value"`
	Decimals int            `json:"decimals"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
}
