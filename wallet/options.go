package wallet

import (
	"time"

	"github.com/shimmerkit/ledgersdk/iotago"
)

// SyncOptions narrows what a Syncer.Sync pass fetches (spec §4.3 step 2).
type SyncOptions struct {
	// Kinds restricts fan-out queries to these output kinds; empty means
	// every kind.
	Kinds []iotago.OutputKind
	// SyncOnlyMostBasicOutputs requests only Basic outputs whose single
	// unlock condition is a plain Address condition, skipping anything
	// time-locked, expiring, or SDR-bearing.
	SyncOnlyMostBasicOutputs bool
	// ForceSyncing bypasses the MinSyncInterval coalescing check.
	ForceSyncing bool
}

// DefaultParallelRequests is PARALLEL_REQUESTS_AMOUNT from spec §4.3: the
// chunk size for batched fan-out queries.
const DefaultParallelRequests = 100

// DefaultMinSyncInterval is the coalescing window spec §4.3 names.
const DefaultMinSyncInterval = 5 * time.Second
