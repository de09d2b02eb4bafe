// Package config loads the node-URL, timeout, and BIP-44 configuration a
// CLI or server wrapping this SDK would supply, via viper the way the
// teacher's own config loading does (SPEC_FULL.md §1 Configuration).
package config

import (
	"time"

	"github.com/spf13/viper"
)

// ClientOptions parameterizes the NodeClient implementation: where to
// reach the node/indexer and how long to wait for it (spec §6, §5).
type ClientOptions struct {
	NodeURLs                []string `mapstructure:"node_urls"`
	APITimeout              time.Duration `mapstructure:"api_timeout"`
	MaxParallelAPIRequests  int           `mapstructure:"max_parallel_api_requests"`
}

// WalletOptions parameterizes the wallet façade and Syncer (spec §4.3,
// §5).
type WalletOptions struct {
	CoinType        uint32        `mapstructure:"coin_type"`
	AccountIndex    uint32        `mapstructure:"account_index"`
	Bech32HRP       string        `mapstructure:"bech32_hrp"`
	MinSyncInterval time.Duration `mapstructure:"min_sync_interval"`
}

// Options bundles both for a single config file load.
type Options struct {
	Client ClientOptions `mapstructure:"client"`
	Wallet WalletOptions `mapstructure:"wallet"`
}

// defaults mirrors the "default provided" language of spec §5 (api_timeout)
// and §4.3 (MIN_SYNC_INTERVAL, PARALLEL_REQUESTS_AMOUNT).
func defaults(v *viper.Viper) {
	v.SetDefault("client.api_timeout", 30*time.Second)
	v.SetDefault("client.max_parallel_api_requests", 100)
	v.SetDefault("wallet.coin_type", 4218)
	v.SetDefault("wallet.account_index", 0)
	v.SetDefault("wallet.bech32_hrp", "smr")
	v.SetDefault("wallet.min_sync_interval", 5*time.Second)
}

// Load reads path via viper, which auto-detects TOML/YAML/JSON from the
// file extension, and returns the populated Options.
func Load(path string) (*Options, error) {
	v := viper.New()
	defaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var o Options
	if err := v.Unmarshal(&o); err != nil {
		return nil, err
	}
	return &o, nil
}
