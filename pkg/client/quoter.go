package client

import (
	"context"
	"fmt"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/amount"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/registry"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
)

// Fallback values for fields the quote service may omit.
const (
	FallbackSummary  = "Route found successfully"
	FallbackProvider = "Unknown"
)

// Quoter turns a user's swap intent into a provider-ready request and
// normalizes the response. Selection and amount validation happen here,
// before any network I/O.
type Quoter struct {
	api *Client
}

// NewQuoter creates a Quoter backed by the given API client.
func NewQuoter(api *Client) *Quoter {
	return &Quoter{api: api}
}

// BuildParams resolves the intent's chains and tokens and converts the
// from-amount to base units. A resolution failure surfaces synchronously,
// without issuing network I/O.
func (q *Quoter) BuildParams(intent types.SwapIntent) (QuoteParams, error) {
	fromChain, err := registry.ResolveChain(intent.FromChain)
	if err != nil {
		return QuoteParams{}, fmt.Errorf("source chain: %w", err)
	}
	toChain, err := registry.ResolveChain(intent.ToChain)
	if err != nil {
		return QuoteParams{}, fmt.Errorf("destination chain: %w", err)
	}
	fromToken, err := registry.ResolveToken(intent.FromToken)
	if err != nil {
		return QuoteParams{}, fmt.Errorf("source token: %w", err)
	}
	toToken, err := registry.ResolveToken(intent.ToToken)
	if err != nil {
		return QuoteParams{}, fmt.Errorf("destination token: %w", err)
	}

	baseUnits, err := amount.ToBaseUnits(intent.HumanAmount, fromToken.Decimals)
	if err != nil {
		return QuoteParams{}, err
	}

	return QuoteParams{
		FromChainID: fromChain.ChainID,
		ToChainID:   toChain.ChainID,
		FromToken:   fromToken.Symbol,
		ToToken:     toToken.Symbol,
		FromAmount:  baseUnits,
		FromAddress: intent.FromAddress,
	}, nil
}

// RequestQuote performs one quote round trip for the intent. Optional
// response fields are defaulted here so callers can trust the result.
func (q *Quoter) RequestQuote(ctx context.Context, intent types.SwapIntent) (types.QuoteResult, error) {
	params, err := q.BuildParams(intent)
	if err != nil {
		return types.QuoteResult{}, err
	}

	raw, err := q.api.GetQuote(ctx, params)
	if err != nil {
		return types.QuoteResult{}, err
	}

	result := types.QuoteResult{
		SummaryText:  raw.Summary,
		ProviderName: FallbackProvider,
	}
	if result.SummaryText == "" {
		result.SummaryText = FallbackSummary
	}
	if raw.Provider != nil && *raw.Provider != "" {
		result.ProviderName = *raw.Provider
	}
	if raw.TimeSeconds != nil {
		result.ETASeconds = *raw.TimeSeconds
	}
	if raw.FeesUSD != nil {
		result.FeesUSD = *raw.FeesUSD
	}
	if raw.OutputUSD != nil {
		result.OutputUSD = *raw.OutputUSD
	}
	if raw.PriceImpact != nil {
		result.PriceImpact = *raw.PriceImpact
	}
	if raw.GasCostUSD != nil {
		result.GasCostUSD = *raw.GasCostUSD
	}

	if result.ETASeconds < 0 {
		result.ETASeconds = 0
	}

	return result, nil
}
