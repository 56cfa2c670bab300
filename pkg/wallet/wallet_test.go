package wallet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

func TestConnectAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")

	store, err := NewStore(path)
	require.NoError(t, err)

	_, connected := store.Address()
	assert.False(t, connected)

	require.NoError(t, store.Connect(testAddress))
	addr, connected := store.Address()
	assert.True(t, connected)
	assert.Equal(t, testAddress, addr)

	// a fresh store sees the persisted address
	reopened, err := NewStore(path)
	require.NoError(t, err)
	addr, connected = reopened.Address()
	assert.True(t, connected)
	assert.Equal(t, testAddress, addr)
}

func TestConnectRejectsInvalidAddress(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)

	for _, bad := range []string{"", "0x123", "not-an-address", "d8dA6BF26964aF9D7eEd9e03E53415D37aA9604"} {
		err := store.Connect(bad)
		assert.True(t, errors.Is(err, ErrInvalidAddress), "%q", bad)
	}

	_, connected := store.Address()
	assert.False(t, connected)
}

func TestFallbackSource(t *testing.T) {
	const configured = "0x1CBd3b2770909D4e10f157cABC84C7264073C9Ec"

	store, err := NewStore(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)

	// empty store: the configured address fills in, checksummed
	src := NewFallbackSource(store, "0x1cbd3b2770909d4e10f157cabc84c7264073c9ec")
	addr, connected := src.Address()
	assert.True(t, connected)
	assert.Equal(t, configured, addr)

	// a connected wallet wins over the configured address
	require.NoError(t, store.Connect(testAddress))
	addr, connected = src.Address()
	assert.True(t, connected)
	assert.Equal(t, testAddress, addr)

	// an invalid configured address is ignored
	empty, err := NewStore(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)
	_, connected = NewFallbackSource(empty, "not-an-address").Address()
	assert.False(t, connected)
	_, connected = NewFallbackSource(empty, "").Address()
	assert.False(t, connected)
}

func TestDisconnect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Connect(testAddress))
	require.NoError(t, store.Disconnect())

	_, connected := store.Address()
	assert.False(t, connected)

	reopened, err := NewStore(path)
	require.NoError(t, err)
	_, connected = reopened.Address()
	assert.False(t, connected)
}
