// Package registry holds the static chain and token tables the client
// supports. The tables are loaded at process start and never mutated.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
)

var (
	// ErrUnknownChain is returned when a chain name is not in the static table.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnknownToken is returned when a token symbol is not in the static table.
	ErrUnknownToken = errors.New("unknown token")
)

// Chain IDs follow the canonical EVM chain registry.
var chains = map[string]types.ChainDescriptor{
	"ethereum":         {DisplayName: "Ethereum", ChainID: 1},
	"polygon":          {DisplayName: "Polygon", ChainID: 137},
	"arbitrum":         {DisplayName: "Arbitrum", ChainID: 42161},
	"optimism":         {DisplayName: "Optimism", ChainID: 10},
	"base":             {DisplayName: "Base", ChainID: 8453},
	"sepolia":          {DisplayName: "Sepolia", ChainID: 11155111},
	"arbitrum sepolia": {DisplayName: "Arbitrum Sepolia", ChainID: 421614},
	"optimism sepolia": {DisplayName: "Optimism Sepolia", ChainID: 11155420},
	"base sepolia":     {DisplayName: "Base Sepolia", ChainID: 84532},
}

var tokens = map[string]types.TokenDescriptor{
	"ETH":  {Symbol: "ETH", Decimals: 18},
	"USDC": {Symbol: "USDC", Decimals: 6},
	"USDT": {Symbol: "USDT", Decimals: 6},
	"WBTC": {Symbol: "WBTC", Decimals: 8},
	"DAI":  {Symbol: "DAI", Decimals: 18},
}

// ResolveChain looks up a chain by its display name, case-insensitively.
func ResolveChain(name string) (types.ChainDescriptor, error) {
	chain, ok := chains[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return types.ChainDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownChain, name)
	}
	return chain, nil
}

// ResolveToken looks up a token by its symbol, case-insensitively.
func ResolveToken(symbol string) (types.TokenDescriptor, error) {
	token, ok := tokens[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return types.TokenDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownToken, symbol)
	}
	return token, nil
}

// Chains returns all supported chains sorted by chain ID.
func Chains() []types.ChainDescriptor {
	out := make([]types.ChainDescriptor, 0, len(chains))
	for _, c := range chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// Tokens returns all supported tokens sorted by symbol.
func Tokens() []types.TokenDescriptor {
	out := make([]types.TokenDescriptor, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
