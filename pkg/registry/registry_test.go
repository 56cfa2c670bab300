package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveChainKnown(t *testing.T) {
	cases := map[string]int64{
		"Ethereum": 1,
		"Polygon":  137,
		"Arbitrum": 42161,
		"Optimism": 10,
		"Base":     8453,
	}

	for name, wantID := range cases {
		chain, err := ResolveChain(name)
		require.NoError(t, err, "chain %s", name)
		assert.Equal(t, wantID, chain.ChainID)
		assert.Equal(t, name, chain.DisplayName)
		assert.Positive(t, chain.ChainID)
	}
}

func TestResolveChainCaseInsensitive(t *testing.T) {
	chain, err := ResolveChain("  ARBITRUM ")
	require.NoError(t, err)
	assert.Equal(t, int64(42161), chain.ChainID)
}

func TestResolveChainUnknown(t *testing.T) {
	_, err := ResolveChain("Solana")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownChain))
}

func TestResolveTokenKnown(t *testing.T) {
	cases := map[string]int{
		"ETH":  18,
		"USDC": 6,
		"USDT": 6,
		"WBTC": 8,
		"DAI":  18,
	}

	for symbol, wantDecimals := range cases {
		token, err := ResolveToken(symbol)
		require.NoError(t, err, "token %s", symbol)
		assert.Equal(t, wantDecimals, token.Decimals)
		assert.Equal(t, symbol, token.Symbol)
	}
}

func TestResolveTokenUnknown(t *testing.T) {
	_, err := ResolveToken("DOGE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownToken))
}

func TestEnumerationsSorted(t *testing.T) {
	all := Chains()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ChainID, all[i].ChainID)
	}

	toks := Tokens()
	require.Len(t, toks, 5)
	assert.Equal(t, "DAI", toks[0].Symbol)
}
