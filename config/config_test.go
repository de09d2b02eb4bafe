package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("client:\n  node_urls:\n    - https://node.example\nwallet:\n  coin_type: 1\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	opts, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, []string{"https://node.example"}, opts.Client.NodeURLs)
	require.Equal(t, 30*time.Second, opts.Client.APITimeout)
	require.Equal(t, 100, opts.Client.MaxParallelAPIRequests)

	require.Equal(t, uint32(1), opts.Wallet.CoinType)
	require.Equal(t, uint32(0), opts.Wallet.AccountIndex)
	require.Equal(t, "smr", opts.Wallet.Bech32HRP)
	require.Equal(t, 5*time.Second, opts.Wallet.MinSyncInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
