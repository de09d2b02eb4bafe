package wallet

import (
	"context"

	"github.com/shimmerkit/ledgersdk/client"
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/store"
	"github.com/shimmerkit/ledgersdk/utils"
)

// InclusionState is the four-valued enum of spec §4.3.
type InclusionState byte

const (
	Pending InclusionState = iota
	Confirmed
	Conflicting
	UnknownPruned
)

func (s InclusionState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Confirmed:
		return "Confirmed"
	case Conflicting:
		return "Conflicting"
	case UnknownPruned:
		return "UnknownPruned"
	default:
		return "unknown"
	}
}

// reconcilePending implements the spec §4.3 "Pending-transaction tracker":
// for every transaction in data.PendingTransactions, decide whether it is
// now confirmed, conflicting, unknown-pruned, or still pending, querying
// the node only when local evidence doesn't already answer the question.
func (s *Syncer) reconcilePending(ctx context.Context, data *store.WalletData) error {
	var errs utils.MultiErr
	for txID, pend := range data.PendingTransactions {
		state, err := s.classifyPending(ctx, data, pend)
		if err != nil {
			// One pending transaction's node query failing shouldn't stop
			// the rest of the tracker from reconciling; collect and report
			// together once the pass is done.
			errs.Add(err)
			continue
		}
		switch state {
		case Confirmed:
			delete(data.PendingTransactions, txID)
			for _, outID := range pend.ConsumedInputs {
				delete(data.LockedOutputs, outID)
			}
		case Conflicting, UnknownPruned:
			delete(data.PendingTransactions, txID)
			s.releaseUnspentInputs(data, pend)
		case Pending:
			// leave as is.
		}
	}
	return errs.ErrorOrNil()
}

// producedOutputObserved reports whether any output tx T produced already
// shows up in the wallet's known output sets — the fast local-only path
// spec §4.3 prefers before asking the node anything.
func producedOutputObserved(data *store.WalletData, pend store.PendingTransaction) bool {
	if pend.Transaction == nil {
		return false
	}
	for i := range pend.Transaction.Outputs {
		outID := ids.OutputID{TransactionID: pend.TransactionID, Index: uint16(i)}
		if _, ok := data.UnspentOutputs[outID]; ok {
			return true
		}
		if _, ok := data.Outputs[outID]; ok {
			return true
		}
	}
	return false
}

func (s *Syncer) classifyPending(ctx context.Context, data *store.WalletData, pend store.PendingTransaction) (InclusionState, error) {
	if producedOutputObserved(data, pend) {
		return Confirmed, nil
	}

	meta, err := s.client.TransactionState(ctx, pend.TransactionID)
	if err != nil {
		if err == client.ErrNotFound {
			return s.classifyNotFound(data, pend), nil
		}
		return Pending, err
	}

	switch meta.State {
	case client.TransactionAccepted, client.TransactionCommitted, client.TransactionFinalized:
		return Confirmed, nil
	case client.TransactionFailed:
		if _, err := s.client.IncludedBlock(ctx, pend.TransactionID); err == nil {
			return Confirmed, nil
		} else if err != client.ErrNotFound {
			return Pending, err
		}
		return Conflicting, nil
	default:
		return Pending, nil
	}
}

// classifyNotFound handles the "node has no record" branch of spec §4.3:
// if any input is observed spent, the transaction lost the race
// (Conflicting); if every input is pruned rather than observably spent,
// the outcome is unknowable (UnknownPruned); otherwise it's still Pending.
func (s *Syncer) classifyNotFound(data *store.WalletData, pend store.PendingTransaction) InclusionState {
	anySpent := false
	allPruned := true
	for _, outID := range pend.ConsumedInputs {
		u, known := data.Outputs[outID]
		_ = u
		if !known {
			continue
		}
		if _, stillUnspent := data.UnspentOutputs[outID]; stillUnspent {
			allPruned = false
			continue
		}
		anySpent = true
		allPruned = false
	}
	if anySpent {
		return Conflicting
	}
	if allPruned {
		return UnknownPruned
	}
	return Pending
}

// releaseUnspentInputs unlocks pend's consumed outputs that are still
// unspent, so the builder's input pool isn't permanently starved by a
// transaction that will never confirm (spec §4.3, §5).
func (s *Syncer) releaseUnspentInputs(data *store.WalletData, pend store.PendingTransaction) {
	for _, outID := range pend.ConsumedInputs {
		if _, stillUnspent := data.UnspentOutputs[outID]; stillUnspent {
			delete(data.LockedOutputs, outID)
		}
	}
}
