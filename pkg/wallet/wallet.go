// Package wallet tracks the connected wallet address. Connection protocol
// internals belong to an external connector; this package only holds the
// resulting address and persists it between CLI runs.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

const DefaultStoreFileName = ".chaincompass-wallet.json"

var (
	// ErrNotConnected is returned when an operation requires a connected
	// wallet and none is present.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrInvalidAddress is returned for addresses that are not valid
	// 0x-prefixed hex addresses.
	ErrInvalidAddress = errors.New("invalid wallet address")
)

// Store holds the connected wallet address, backed by a JSON file.
type Store struct {
	filePath string
	mu       sync.RWMutex
	address  string
}

type walletFile struct {
	Address string `json:"address"`
}

// NewStore opens a wallet store at filePath, defaulting to a file in the
// user's home directory. A missing file means no wallet is connected yet.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(home, DefaultStoreFileName)
	}

	store := &Store{filePath: filePath}
	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
	}

	return store, nil
}

// Connect validates and stores the wallet address.
func (s *Store) Connect(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = common.HexToAddress(address).Hex()
	return s.save()
}

// Disconnect clears the stored address.
func (s *Store) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = ""
	return s.save()
}

// Address returns the connected address, if any.
func (s *Store) Address() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address, s.address != ""
}

// Source reports the wallet address to act as, if any.
type Source interface {
	Address() (string, bool)
}

// FallbackSource layers a configured address under a Source: the store's
// connected wallet wins, the configured address fills in when the store is
// empty. An invalid configured address is ignored.
type FallbackSource struct {
	primary  Source
	fallback string
}

// NewFallbackSource wraps primary with a configured fallback address.
func NewFallbackSource(primary Source, fallback string) *FallbackSource {
	if !common.IsHexAddress(fallback) {
		fallback = ""
	} else {
		fallback = common.HexToAddress(fallback).Hex()
	}
	return &FallbackSource{primary: primary, fallback: fallback}
}

// Address returns the primary source's address, or the fallback.
func (f *FallbackSource) Address() (string, bool) {
	if address, ok := f.primary.Address(); ok {
		return address, true
	}
	return f.fallback, f.fallback != ""
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}

	if wf.Address != "" && !common.IsHexAddress(wf.Address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, wf.Address)
	}
	s.address = wf.Address
	return nil
}

// save is called with the mutex held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(walletFile{Address: s.address}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet file: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to save wallet file: %w", err)
	}
	return nil
}
