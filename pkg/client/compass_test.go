package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
)

func TestGetQuoteSendsProviderParams(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/quote", r.URL.Path)
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary": "ok"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetQuote(context.Background(), QuoteParams{
		FromChainID: 137,
		ToChainID:   42161,
		FromToken:   "USDC",
		ToToken:     "ETH",
		FromAmount:  "100000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "137", gotQuery["fromChain"])
	assert.Equal(t, "42161", gotQuery["toChain"])
	assert.Equal(t, "USDC", gotQuery["fromToken"])
	assert.Equal(t, "ETH", gotQuery["toToken"])
	assert.Equal(t, "100000000", gotQuery["fromAmount"])
	// quoting without a wallet falls back to the simulation address
	assert.Equal(t, DefaultSimulationAddress, gotQuery["fromAddress"])
}

func TestGetQuoteStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "no route"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetQuote(context.Background(), QuoteParams{FromChainID: 137, ToChainID: 42161})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "no route")
	assert.False(t, errors.Is(err, ErrNetwork))
}

func TestGetQuoteObjectDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["fromAmount"], "msg": "invalid pattern"}]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetQuote(context.Background(), QuoteParams{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Detail, "invalid pattern")
}

func TestGetQuoteTimeoutIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewWithClient(server.URL, &http.Client{Timeout: 20 * time.Millisecond})
	_, err := c.GetQuote(context.Background(), QuoteParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestGetQuoteTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := New(server.URL)
	_, err := c.GetQuote(context.Background(), QuoteParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestSubmitTransaction(t *testing.T) {
	var got types.SubmissionRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/transactions/submit", r.URL.Path)
		require.NoError(t, jsonDecode(r, &got))
		w.Write([]byte(`{"tx_hash": "0xdeadbeef", "status": "pending"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	id, err := c.SubmitTransaction(context.Background(), types.SubmissionRecord{
		WalletAddress: "0xABC",
		FromChainID:   137,
		ToChainID:     42161,
		FromToken:     "USDC",
		ToToken:       "ETH",
		FromAmount:    "100",
		ToAmount:      "0.045",
		TxHash:        "0xlocal",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", id)
	assert.Equal(t, "0xABC", got.WalletAddress)
	assert.Equal(t, int64(137), got.FromChainID)
	assert.Equal(t, "0xlocal", got.TxHash)
}

func TestSubmitTransactionAlternateIdentifierKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transaction_id": "tx-42"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	id, err := c.SubmitTransaction(context.Background(), types.SubmissionRecord{})
	require.NoError(t, err)
	assert.Equal(t, "tx-42", id)
}

func TestSubmitTransactionMissingIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "pending"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.SubmitTransaction(context.Background(), types.SubmissionRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identifier")
}

func TestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "0xABC", r.URL.Query().Get("address"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"transactions": [{"id": 1, "user_address": "0xABC", "from_token": "USDC", "status": "pending"}], "count": 1}`))
	}))
	defer server.Close()

	c := New(server.URL)
	records, err := c.History(context.Background(), "0xABC", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "USDC", records[0].FromToken)
	assert.Equal(t, "pending", records[0].Status)
}

func TestCompareRoutesKeepsRouteAttribution(t *testing.T) {
	// The backend ranks results by score, so they come back in a different
	// order than they were submitted. Each entry's echoed route identifies
	// the destination it was quoted for.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/compare", r.URL.Path)

		var body []RouteRequest
		require.NoError(t, jsonDecode(r, &body))
		require.Len(t, body, 3)
		require.Equal(t, "42161", body[0].ToChain)

		w.Write([]byte(`{
			"routes": [
				{"route": {"fromChain": "137", "toChain": "10", "fromToken": "USDC", "toToken": "ETH", "fromAmount": "100000000"},
				 "quote": {"summary": "best", "output_usd": 0.05}, "score": 91.2},
				{"route": {"fromChain": "137", "toChain": "42161", "fromToken": "USDC", "toToken": "ETH", "fromAmount": "100000000"},
				 "quote": {"summary": "ok", "output_usd": 0.04}, "score": 88.7},
				{"route": {"fromChain": "137", "toChain": "8453", "fromToken": "USDC", "toToken": "ETH", "fromAmount": "100000000"},
				 "error": "no route found", "score": 0}
			],
			"best_route": {"route": {"fromChain": "137", "toChain": "10", "fromToken": "USDC", "toToken": "ETH", "fromAmount": "100000000"},
			 "quote": {"summary": "best", "output_usd": 0.05}, "score": 91.2},
			"comparison_count": 3
		}`))
	}))
	defer server.Close()

	c := New(server.URL)
	routes := []QuoteParams{
		{FromChainID: 137, ToChainID: 42161, FromToken: "USDC", ToToken: "ETH", FromAmount: "100000000"},
		{FromChainID: 137, ToChainID: 10, FromToken: "USDC", ToToken: "ETH", FromAmount: "100000000"},
		{FromChainID: 137, ToChainID: 8453, FromToken: "USDC", ToToken: "ETH", FromAmount: "100000000"},
	}

	result, err := c.CompareRoutes(context.Background(), routes)
	require.NoError(t, err)
	require.Len(t, result.Routes, 3)

	assert.Equal(t, "10", result.Routes[0].Route.ToChain)
	require.NotNil(t, result.Routes[0].Quote)
	assert.Equal(t, 0.05, *result.Routes[0].Quote.OutputUSD)

	assert.Equal(t, "42161", result.Routes[1].Route.ToChain)
	assert.Equal(t, "8453", result.Routes[2].Route.ToChain)
	assert.Equal(t, "no route found", result.Routes[2].Error)

	require.NotNil(t, result.BestRoute)
	assert.Equal(t, "10", result.BestRoute.Route.ToChain)
}

func TestCompareRoutesLimits(t *testing.T) {
	c := New("http://127.0.0.1:0")

	_, err := c.CompareRoutes(context.Background(), nil)
	require.Error(t, err)

	six := make([]QuoteParams, 6)
	_, err = c.CompareRoutes(context.Background(), six)
	require.Error(t, err)
}

func TestChainsAndTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/chains":
			w.Write([]byte(`{"chains": [{"id": 137, "name": "Polygon", "symbol": "MATIC"}], "count": 1}`))
		case "/api/v1/tokens":
			w.Write([]byte(`{"tokens": [{"symbol": "USDC", "name": "USD Coin", "decimals": 6}], "count": 1}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL)

	chains, err := c.Chains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, int64(137), chains[0].ID)

	tokens, err := c.Tokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, 6, tokens[0].Decimals)
}

func jsonDecode(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
