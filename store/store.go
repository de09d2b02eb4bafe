// Package store declares the local durability boundary (spec §6): an
// opaque key-value store holding the wallet's persisted view. Ledger-Types
// and TxBuilder never touch it; only the wallet façade does, at the start
// and end of a sync/send cycle.
package store

import (
	"encoding/json"
	"errors"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// CurrentSchemaVersion is bumped whenever WalletData's shape changes in a
// way that requires migration (original_source/sdk/src/wallet/migration,
// carried forward per SPEC_FULL.md §3 supplement).
const CurrentSchemaVersion = 1

// ErrNotFound is returned by KVStore.Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// KVStore is the opaque persistence surface of spec §6. Keys are the
// literal strings named there (WalletDataKey, ClientOptionsKey, ...);
// values are caller-serialized bytes, so the store itself never
// understands wallet shapes.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Well-known keys, per spec §6 "Persisted wallet state".
const (
	WalletDataKey    = "wallet_data"
	ClientOptionsKey = "client_options"
	SecretSnapshotKey = "secret_snapshot"
)

// SpentMetadata is the persisted counterpart of client.SpentMetadata: a
// zero TransactionID and Slot marks a pruned output whose spender the node
// could no longer attribute (spec §4.3 step 4: "pruned").
type SpentMetadata struct {
	Slot          uint32
	TransactionID ids.ID
}

// IncomingTransaction is a transaction the Syncer observed being created
// (spec §4.3 step 5) along with the inputs it fetched to explain it.
type IncomingTransaction struct {
	TransactionID ids.ID
	Transaction   *iotago.Transaction
	Inputs        []iotago.UTXO
}

// PendingTransaction is a transaction this wallet submitted and is still
// tracking for inclusion (spec §4.3 pending-transaction tracker).
type PendingTransaction struct {
	TransactionID  ids.ID
	Transaction    *iotago.Transaction
	ConsumedInputs []ids.OutputID
	// SignedBlock is the exact bytes submitted to SubmitBlock, kept so
	// ReissueUntilIncluded can resubmit the same signed payload rather
	// than re-deriving and re-signing it.
	SignedBlock []byte
}

// WalletData is the full persisted view named by spec §6: address,
// bech32 hrp, coin type, and every output/transaction collection the
// Syncer maintains.
type WalletData struct {
	SchemaVersion int

	Address  iotago.Address
	Bech32HRP string
	CoinType  uint32
	Alias     string

	// Outputs holds every output ever observed for this wallet, spent or
	// not; UnspentOutputs is the live subset (spec §4.3).
	Outputs        map[ids.OutputID]iotago.UTXO
	UnspentOutputs map[ids.OutputID]iotago.UTXO
	// SpentMetadata carries the spent-state recorded for an Outputs entry
	// once it leaves UnspentOutputs (spec §4.3 step 4: "leave in Outputs
	// with spent metadata"). Absence means still-unspent.
	SpentMetadata map[ids.OutputID]SpentMetadata

	Transactions                     map[ids.ID]*iotago.Transaction
	PendingTransactions               map[ids.ID]PendingTransaction
	IncomingTransactions              map[ids.ID]IncomingTransaction
	InaccessibleIncomingTransactions  ids.Set

	// LockedOutputs holds outputs currently reserved by an in-flight send,
	// so a second concurrent send doesn't double-select them (spec §5).
	LockedOutputs map[ids.OutputID]struct{}
}

// NewWalletData returns an empty WalletData at the current schema version,
// ready for a wallet's first sync.
func NewWalletData(address iotago.Address, bech32HRP string, coinType uint32) *WalletData {
	return &WalletData{
		SchemaVersion:                    CurrentSchemaVersion,
		Address:                          address,
		Bech32HRP:                        bech32HRP,
		CoinType:                         coinType,
		Outputs:                          make(map[ids.OutputID]iotago.UTXO),
		SpentMetadata:                    make(map[ids.OutputID]SpentMetadata),
		UnspentOutputs:                   make(map[ids.OutputID]iotago.UTXO),
		Transactions:                     make(map[ids.ID]*iotago.Transaction),
		PendingTransactions:              make(map[ids.ID]PendingTransaction),
		IncomingTransactions:             make(map[ids.ID]IncomingTransaction),
		InaccessibleIncomingTransactions: ids.NewSet(),
		LockedOutputs:                    make(map[ids.OutputID]struct{}),
	}
}

// MigrateIfNeeded upgrades raw bytes read from KVStore[WalletDataKey] to
// the current schema before the caller unmarshals them further, per the
// SPEC_FULL.md §3 migration-marker supplement. Today there is exactly one
// schema version, so this is a no-op validation pass; it exists so a
// future version bump has a single place to add a real migration.
func MigrateIfNeeded(raw []byte) ([]byte, error) {
	var probe struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if len(raw) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if probe.SchemaVersion > CurrentSchemaVersion {
		return nil, errors.New("store: wallet data schema is newer than this build supports")
	}
	return raw, nil
}
