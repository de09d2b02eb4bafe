// Package secretmanager declares the external signing oracle this SDK
// consumes (spec §6). A vault, hardware device, or plain key file can all
// implement SecretManager; this package fixes the two operations the rest
// of the module needs and never itself holds a key.
package secretmanager

import (
	"context"

	"github.com/shimmerkit/ledgersdk/iotago"
)

// BIP44Path is the fixed-size derivation-path tuple design note 9
// prescribes in place of a string-concatenated path: "model BIP-44 paths
// as a fixed-size tuple (purpose, coin_type, account, change, address)
// with hardened flags; never serialize the path as a string at an API
// boundary." Purpose is always 44 for this module's addresses.
type BIP44Path struct {
	CoinType     uint32
	Account      uint32
	Change       uint32 // 0 = external chain, 1 = internal/change chain
	AddressIndex uint32
}

// Internal reports whether this path derives an internal (change) address.
func (p BIP44Path) Internal() bool { return p.Change == 1 }

// SecretManager is the two-operation trait of spec §6.
type SecretManager interface {
	// GenerateEd25519Addresses derives `count` consecutive addresses
	// starting at startIndex under (coinType, accountIndex, internal),
	// without revealing any private key material to the caller.
	GenerateEd25519Addresses(ctx context.Context, coinType, accountIndex, startIndex, count uint32, internal bool) ([]iotago.Address, error)

	// SignTransaction receives the canonical essence bytes of a prepared
	// transaction and the BIP-44 path owning each input (same order as
	// the transaction's inputs) and returns one Unlock per input. Ed25519
	// signatures verify against blake2b-256(essenceBytes) (spec §6).
	SignTransaction(ctx context.Context, essenceBytes []byte, inputPaths []BIP44Path) ([]iotago.Unlock, error)
}
