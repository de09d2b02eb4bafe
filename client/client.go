// Package client declares the external node/indexer API this SDK consumes
// (spec §6). Implementations talk JSON-over-HTTPS to a real node; this
// package only defines the surface and the shapes the rest of the module
// needs. No implementation lives here — the wallet façade and the Syncer
// are built against the interface alone, the same way the teacher's
// rpcchainvm packages consume a gRPC-shaped interface without caring who
// is on the other end.
package client

import (
	"context"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// Info is the response to GET /info: network name and the protocol
// parameters needed by Ledger-Types and TxBuilder (spec §6).
type Info struct {
	NetworkName string
	Params      iotago.ProtocolParameters
}

// SpentMetadata is populated once an output has been consumed. TransactionID
// is the zero ID and Slot is 0 for a pruned output the node can no longer
// attribute to a specific spending transaction (spec §4.3 step 4: "pruned").
type SpentMetadata struct {
	Slot          uint32
	TransactionID ids.ID
}

// OutputMetadata mirrors the node's /outputs/{id}/metadata response. Spent
// is nil for a still-unspent output.
type OutputMetadata struct {
	OutputID     ids.OutputID
	IncludedSlot uint32
	Spent        *SpentMetadata
}

// IndexerQuery narrows an address-owned-outputs lookup to the kinds a
// caller cares about (spec §4.3 step 2: sync_only_most_basic_outputs and
// friends live in wallet.SyncOptions, which the Syncer turns into one of
// these per fan-out address).
type IndexerQuery struct {
	Address iotago.Address
	// Kinds restricts results to these output kinds; empty means all kinds.
	Kinds []iotago.OutputKind
	// AddressUnlockConditionOnly requires the single unlock condition on a
	// matching output to be a plain Address condition (used for
	// sync_only_most_basic_outputs).
	AddressUnlockConditionOnly bool
}

// TransactionState is the node's view of a submitted transaction, the
// input to the Syncer's pending-transaction tracker (spec §4.3).
type TransactionState byte

const (
	TransactionPending TransactionState = iota
	TransactionAccepted
	TransactionCommitted
	TransactionFinalized
	TransactionFailed
)

// TransactionMetadata is the node's response to a transaction-state query.
type TransactionMetadata struct {
	TransactionID ids.ID
	State         TransactionState
}

// IncludedBlock is the block that carries a given transaction, looked up
// by transaction id (spec §4.3 step 5, §6).
type IncludedBlock struct {
	BlockID iotago.BlockID
	Block   *iotago.Transaction
}

// NodeClient is the four-capability surface spec §6 requires: info,
// output/metadata fetch (batched, ignore-not-found), indexer queries, and
// block submission/lookup. Every method takes a context so the caller can
// bound or cancel it at a suspension point (spec §5).
type NodeClient interface {
	// Info fetches the network name and current protocol parameters.
	Info(ctx context.Context) (*Info, error)

	// Outputs fetches the output bodies for the given ids in one batched
	// call. A ids.OutputID the node doesn't know about is simply absent
	// from the result rather than causing the whole call to fail
	// (ignore-not-found semantics).
	Outputs(ctx context.Context, ids []ids.OutputID) ([]iotago.UTXO, error)

	// OutputsMetadata is the metadata-only counterpart of Outputs, used by
	// the Syncer's reconciliation pass (spec §4.3 step 4).
	OutputsMetadata(ctx context.Context, ids []ids.OutputID) ([]OutputMetadata, error)

	// IndexerQuery resolves a query into the output ids an address (or
	// derived chain address) currently owns (spec §4.3 step 2).
	IndexerQuery(ctx context.Context, q IndexerQuery) ([]ids.OutputID, error)

	// ChainOutput resolves a chain id (Account/Foundry/NFT/Delegation) to
	// its current live output, returning ErrNotFound once the chain has
	// been destroyed or was never created. Used by the Syncer's foundry
	// lookup (spec §4.3 step 6) to fetch a native token's minting foundry
	// by id rather than by owner address.
	ChainOutput(ctx context.Context, chainID ids.ID) (*iotago.UTXO, error)

	// SubmitBlock submits a finished, signed block and returns its id.
	SubmitBlock(ctx context.Context, block []byte) (iotago.BlockID, error)

	// TransactionState reports a submitted transaction's current state,
	// used by the pending-transaction tracker (spec §4.3).
	TransactionState(ctx context.Context, txID ids.ID) (*TransactionMetadata, error)

	// IncludedBlock looks up the block that carries txID, returning
	// ErrNotFound if the node has no attachment for it (spec §4.3 step 5,
	// and the Failed/NotFound branch of the pending tracker).
	IncludedBlock(ctx context.Context, txID ids.ID) (*IncludedBlock, error)
}
