package iotago

import "github.com/shimmerkit/ledgersdk/ids"

// ChainState is the three-state machine of spec §4.1 for Account/Foundry/
// NFT/Delegation outputs.
type ChainState byte

const (
	ChainAbsent ChainState = iota
	ChainLive
	ChainDestroyed
)

// ChainTransitionKind classifies what a transaction does to one chain id,
// inferred from the pair (input, output) per spec §3 Lifecycles and
// §4.1's state machine.
type ChainTransitionKind byte

const (
	// ChainCreation: an output with a non-null chain id has no matching
	// input with that id.
	ChainCreation ChainTransitionKind = iota
	// ChainTransition: the same chain id appears in both an input and an
	// output.
	ChainTransition
	// ChainDestruction: a non-null chain id appears in an input but no
	// output carries it; requires the matching capability flag.
	ChainDestruction
	// ChainStateTransition/ChainGovernanceTransition further refine
	// ChainTransition for Account outputs specifically.
	ChainStateTransition
	ChainGovernanceTransition
)

// DeriveChainID computes the post-creation chain id for a freshly created
// Account/NFT/Delegation output: blake2b-256(output_id), per spec §3.
func DeriveChainID(createdAt ids.OutputID) ids.ID {
	return ids.Blake2b256(createdAt.Bytes())
}

// ClassifyAccountTransition distinguishes a state transition from a
// governance transition for a pair of Account outputs sharing a chain id,
// per spec §4.1: "state transition (state_index increments...); governance
// transition (state_index unchanged; only governor-controlled fields may
// change)."
func ClassifyAccountTransition(in, out *AccountOutput) ChainTransitionKind {
	if out.StateIndex == in.StateIndex {
		return ChainGovernanceTransition
	}
	return ChainStateTransition
}

// ChainIDOf returns the chain id a Output carries, or (Empty, false) if o
// is not a ChainOutput.
func ChainIDOf(o Output) (ids.ID, bool) {
	co, ok := o.(ChainOutput)
	if !ok {
		return ids.Empty, false
	}
	return co.ChainID(), true
}
