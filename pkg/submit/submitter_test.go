package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

const testWallet = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

func TestSubmitRequiresWallet(t *testing.T) {
	s := New(client.New("http://unused"))

	_, err := s.Submit(context.Background(), "", 137, 42161, "USDC", "ETH", "100", "0.045")
	assert.True(t, errors.Is(err, wallet.ErrNotConnected))

	_, err = s.Submit(context.Background(), "not-hex", 137, 42161, "USDC", "ETH", "100", "0.045")
	assert.True(t, errors.Is(err, wallet.ErrInvalidAddress))
}

func TestSubmitPostsRecord(t *testing.T) {
	var got types.SubmissionRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/transactions/submit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"tx_hash": "0xdeadbeef"}`))
	}))
	defer server.Close()

	s := New(client.New(server.URL))
	id, err := s.Submit(context.Background(), testWallet, 137, 42161, "USDC", "ETH", "100", "0.045")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", id)

	assert.Equal(t, testWallet, got.WalletAddress)
	assert.Equal(t, int64(137), got.FromChainID)
	assert.Equal(t, int64(42161), got.ToChainID)
	assert.Equal(t, "USDC", got.FromToken)
	assert.Equal(t, "ETH", got.ToToken)
	assert.Equal(t, "100", got.FromAmount)
	assert.Equal(t, "0.045", got.ToAmount)
	// locally generated 32-byte reference, not a broadcast hash
	assert.True(t, strings.HasPrefix(got.TxHash, "0x"))
	assert.Len(t, got.TxHash, 66)
}

func TestSubmitPlaceholderRefsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rec types.SubmissionRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.False(t, seen[rec.TxHash], "duplicate placeholder reference")
		seen[rec.TxHash] = true
		w.Write([]byte(`{"tx_hash": "ok"}`))
	}))
	defer server.Close()

	s := New(client.New(server.URL))
	for i := 0; i < 5; i++ {
		_, err := s.Submit(context.Background(), testWallet, 1, 10, "ETH", "DAI", "1", "3000")
		require.NoError(t, err)
	}
}

func TestSubmitServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "address not authenticated"}`))
	}))
	defer server.Close()

	s := New(client.New(server.URL))
	_, err := s.Submit(context.Background(), testWallet, 137, 42161, "USDC", "ETH", "100", "0.045")
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Detail, "address not authenticated")
}

func TestSubmitTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	s := New(client.New(server.URL))
	_, err := s.Submit(context.Background(), testWallet, 137, 42161, "USDC", "ETH", "100", "0.045")
	assert.True(t, errors.Is(err, client.ErrNetwork))
}
