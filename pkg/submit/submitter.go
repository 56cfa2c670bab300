// Package submit records intent-to-execute with the persistence service.
// No signing or broadcasting happens here: the transaction reference is a
// locally generated placeholder.
package submit

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/client"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/types"
	"github.com/THEN01EXPLORER/ChainCompass-AI/pkg/wallet"
)

// Submitter posts execution records to the persistence service.
type Submitter struct {
	api *client.Client
}

// New creates a Submitter backed by the given API client.
func New(api *client.Client) *Submitter {
	return &Submitter{api: api}
}

// Submit builds a write-once SubmissionRecord for the quoted route and
// posts it. It requires a connected wallet address and returns the
// service-assigned submission identifier.
func (s *Submitter) Submit(ctx context.Context, walletAddress string, fromChainID, toChainID int64, fromToken, toToken, fromAmount, toAmount string) (string, error) {
	if walletAddress == "" {
		return "", wallet.ErrNotConnected
	}
	if !common.IsHexAddress(walletAddress) {
		return "", fmt.Errorf("%w: %q", wallet.ErrInvalidAddress, walletAddress)
	}

	record := types.SubmissionRecord{
		WalletAddress: walletAddress,
		FromChainID:   fromChainID,
		ToChainID:     toChainID,
		FromToken:     fromToken,
		ToToken:       toToken,
		FromAmount:    fromAmount,
		ToAmount:      toAmount,
		TxHash:        placeholderTxRef(walletAddress),
	}

	id, err := s.api.SubmitTransaction(ctx, record)
	if err != nil {
		return "", fmt.Errorf("submitting transaction: %w", err)
	}
	return id, nil
}

// placeholderTxRef derives a unique local reference for the submission.
// It is not an on-chain transaction hash.
func placeholderTxRef(walletAddress string) string {
	nonce := make([]byte, 8)
	rand.Read(nonce)

	payload := fmt.Sprintf("%s|%d|%x", walletAddress, time.Now().UnixNano(), nonce)
	return crypto.Keccak256Hash([]byte(payload)).Hex()
}
