// Package client speaks to the ChainCompass routing backend over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
)

// DefaultSimulationAddress is the documented placeholder source address used
// for price-impact simulation when no wallet is connected. It must never be
// used on the execution path.
const DefaultSimulationAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

// DefaultQuoteTimeout bounds a single quote round trip.
const DefaultQuoteTimeout = 15 * time.Second

// ErrNetwork wraps transport failures and timeouts: the request never
// produced a structured response from the service.
var ErrNetwork = errors.New("network error")

// APIError is a structured rejection from the backend: an HTTP non-2xx
// status with a `detail` body. The detail is surfaced to the user verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Detail)
}

// Client is a ChainCompass API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with the default quote timeout.
func New(baseURL string) *Client {
	return NewWithClient(baseURL, &http.Client{Timeout: DefaultQuoteTimeout})
}

// NewWithClient creates a client using the given http.Client, which owns
// the transport timeout.
func NewWithClient(baseURL string, httpClient *http.Client) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// QuoteParams carries a provider-ready quote request: numeric chain IDs,
// token symbols and the from-amount already converted to base units.
type QuoteParams struct {
	FromChainID int64
	ToChainID   int64
	FromToken   string
	ToToken     string
	FromAmount  string // integer base units
	FromAddress string // defaults to DefaultSimulationAddress when empty
}

func (p QuoteParams) values() url.Values {
	from := p.FromAddress
	if from == "" {
		from = DefaultSimulationAddress
	}

	v := url.Values{}
	v.Set("fromChain", strconv.FormatInt(p.FromChainID, 10))
	v.Set("toChain", strconv.FormatInt(p.ToChainID, 10))
	v.Set("fromToken", p.FromToken)
	v.Set("toToken", p.ToToken)
	v.Set("fromAmount", p.FromAmount)
	v.Set("fromAddress", from)
	return v
}

// QuoteSummary is the raw quote response. Optional fields are pointers and
// are defaulted once, at the Quoter boundary.
type QuoteSummary struct {
	Summary     string   `json:"summary"`
	Provider    *string  `json:"provider"`
	TimeSeconds *int     `json:"time_seconds"`
	FeesUSD     *float64 `json:"fees_usd"`
	OutputUSD   *float64 `json:"output_usd"`
	PriceImpact *float64 `json:"price_impact"`
	GasCostUSD  *float64 `json:"gas_cost_usd"`
}

// GetQuote fetches a route quote for the given parameters.
func (c *Client) GetQuote(ctx context.Context, params QuoteParams) (*QuoteSummary, error) {
	var quote QuoteSummary
	if err := c.get(ctx, "/api/v1/quote", params.values(), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// DetailedQuote extends QuoteSummary with per-hop route information.
type DetailedQuote struct {
	Summary     string      `json:"summary"`
	Provider    string      `json:"provider"`
	TimeSeconds int         `json:"time_seconds"`
	FeesUSD     float64     `json:"fees_usd"`
	OutputUSD   float64     `json:"output_usd"`
	InputUSD    float64     `json:"input_usd"`
	PriceImpact float64     `json:"price_impact"`
	GasCostUSD  float64     `json:"gas_cost_usd"`
	RouteSteps  []RouteStep `json:"route_steps"`
}

// RouteStep is one hop of a detailed route.
type RouteStep struct {
	Tool          string `json:"tool"`
	FromChain     string `json:"from_chain"`
	ToChain       string `json:"to_chain"`
	FromToken     string `json:"from_token"`
	ToToken       string `json:"to_token"`
	EstimatedTime int    `json:"estimated_time"`
}

// GetDetailedQuote fetches a quote with full route step information.
func (c *Client) GetDetailedQuote(ctx context.Context, params QuoteParams) (*DetailedQuote, error) {
	var quote DetailedQuote
	if err := c.get(ctx, "/api/v1/quote/detailed", params.values(), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// RouteRequest mirrors the backend's QuoteRequest body schema, which
// carries chain IDs as decimal strings. The backend echoes it back with
// each compared route.
type RouteRequest struct {
	FromChain   string `json:"fromChain"`
	ToChain     string `json:"toChain"`
	FromToken   string `json:"fromToken"`
	ToToken     string `json:"toToken"`
	FromAmount  string `json:"fromAmount"`
	FromAddress string `json:"fromAddress,omitempty"`
}

// ComparedRoute is one entry of a route comparison, scored by the backend.
// Entries come back sorted by score, not in submission order; Route says
// which request each one answers.
type ComparedRoute struct {
	Route RouteRequest  `json:"route"`
	Quote *QuoteSummary `json:"quote,omitempty"`
	Error string        `json:"error,omitempty"`
	Score float64       `json:"score"`
}

// ComparisonResult ranks candidate routes, best first.
type ComparisonResult struct {
	Routes    []ComparedRoute `json:"routes"`
	BestRoute *ComparedRoute  `json:"best_route"`
	Count     int             `json:"comparison_count"`
}

// CompareRoutes asks the backend to quote and rank up to five routes.
func (c *Client) CompareRoutes(ctx context.Context, routes []QuoteParams) (*ComparisonResult, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes to compare")
	}
	if len(routes) > 5 {
		return nil, fmt.Errorf("at most 5 routes can be compared at once")
	}

	body := make([]RouteRequest, 0, len(routes))
	for _, r := range routes {
		from := r.FromAddress
		if from == "" {
			from = DefaultSimulationAddress
		}
		body = append(body, RouteRequest{
			FromChain:   strconv.FormatInt(r.FromChainID, 10),
			ToChain:     strconv.FormatInt(r.ToChainID, 10),
			FromToken:   r.FromToken,
			ToToken:     r.ToToken,
			FromAmount:  r.FromAmount,
			FromAddress: from,
		})
	}

	var result ComparisonResult
	if err := c.post(ctx, "/api/v1/compare", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// submissionResponse is parsed leniently: deployments have returned the
// identifier under different keys.
type submissionResponse struct {
	TxHash        string `json:"tx_hash"`
	TransactionID string `json:"transaction_id"`
	SubmissionID  string `json:"submission_id"`
	ID            string `json:"id"`
}

func (r submissionResponse) identifier() string {
	for _, id := range []string{r.TxHash, r.TransactionID, r.SubmissionID, r.ID} {
		if id != "" {
			return id
		}
	}
	return ""
}

// SubmitTransaction records an intent-to-execute with the persistence
// service and returns the service-assigned identifier.
func (c *Client) SubmitTransaction(ctx context.Context, record types.SubmissionRecord) (string, error) {
	var resp submissionResponse
	if err := c.post(ctx, "/api/v1/transactions/submit", record, &resp); err != nil {
		return "", err
	}

	id := resp.identifier()
	if id == "" {
		return "", fmt.Errorf("submission response carried no identifier")
	}
	return id, nil
}

// TransactionRecord is one row of a wallet's submission history.
type TransactionRecord struct {
	ID          int64  `json:"id"`
	UserAddress string `json:"user_address"`
	FromChainID int64  `json:"from_chain_id"`
	ToChainID   int64  `json:"to_chain_id"`
	FromToken   string `json:"from_token"`
	ToToken     string `json:"to_token"`
	FromAmount  string `json:"from_amount"`
	ToAmount    string `json:"to_amount"`
	TxHash      string `json:"tx_hash"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type historyResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
	Count        int                 `json:"count"`
}

// History fetches up to limit submission records for the given address.
func (c *Client) History(ctx context.Context, address string, limit int) ([]TransactionRecord, error) {
	v := url.Values{}
	v.Set("address", address)
	v.Set("limit", strconv.Itoa(limit))

	var resp historyResponse
	if err := c.get(ctx, "/api/v1/transactions/history", v, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// ChainInfo is a chain as listed by the backend.
type ChainInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Logo   string `json:"logo,omitempty"`
}

// TokenInfo is a token as listed by the backend.
type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// Chains lists the blockchain networks the backend supports.
func (c *Client) Chains(ctx context.Context) ([]ChainInfo, error) {
	var resp struct {
		Chains []ChainInfo `json:"chains"`
	}
	if err := c.get(ctx, "/api/v1/chains", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Chains, nil
}

// Tokens lists the tokens the backend supports.
func (c *Client) Tokens(ctx context.Context) ([]TokenInfo, error) {
	var resp struct {
		Tokens []TokenInfo `json:"tokens"`
	}
	if err := c.get(ctx, "/api/v1/tokens", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// Stats reports backend cache and request counters.
type Stats struct {
	Cache struct {
		Size        int    `json:"size"`
		MaxSize     int    `json:"max_size"`
		Utilization string `json:"utilization"`
	} `json:"cache"`
	Requests struct {
		Total       int    `json:"total"`
		CacheHits   int    `json:"cache_hits"`
		CacheMisses int    `json:"cache_misses"`
		HitRate     string `json:"hit_rate"`
	} `json:"requests"`
}

// GetStats fetches backend usage statistics.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.get(ctx, "/api/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// HealthStatus is the backend's self-reported status.
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

// Health checks whether the backend is reachable and ready.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.get(ctx, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status: resp.StatusCode,
			Detail: extractDetail(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// extractDetail pulls the service error message out of a `{detail: ...}`
// body. The detail may be a string or a structured object.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		return string(envelope.Detail)
	}
	if len(body) > 0 {
		return string(body)
	}
	return "request rejected"
}
