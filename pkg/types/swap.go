package types

// ChainDescriptor identifies a supported blockchain network.
type ChainDescriptor struct {
	DisplayName string
	ChainID     int64
}

// TokenDescriptor identifies a supported token and its base-unit precision.
type TokenDescriptor struct {
	Symbol   string
	Decimals int
}

// SwapIntent represents a user's swap selection before it is quoted.
type SwapIntent struct {
	FromChain   string // chain display name, e.g. "Polygon"
	ToChain     string // chain display name, e.g. "Arbitrum"
	FromToken   string // token symbol, e.g. "USDC"
	ToToken     string // token symbol, e.g. "ETH"
	HumanAmount string // decimal string, e.g. "100" or "0.5"
	FromAddress string // optional connected wallet address
}

// QuoteResult holds the normalized outcome of a successful route quote.
type QuoteResult struct {
	OutputUSD    float64
	FeesUSD      float64
	ETASeconds   int
	ProviderName string
	SummaryText  string
	PriceImpact  float64
	GasCostUSD   float64
}

// SubmissionRecord is the write-once execution record sent to the
// persistence service. It is never mutated after creation.
type SubmissionRecord struct {
	WalletAddress string `json:"user_address"`
	FromChainID   int64  `json:"from_chain_id"`
	ToChainID     int64  `json:"to_chain_id"`
	FromToken     string `json:"from_token"`
	ToToken       string `json:"to_token"`
	FromAmount    string `json:"from_amount"`
	ToAmount      string `json:"to_amount"`
	TxHash        string `json:"tx_hash"`
}
