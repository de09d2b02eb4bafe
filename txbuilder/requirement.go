// Package txbuilder implements the requirement-driven input selector of
// spec §4.2: given desired outputs, an optional Burn set, a pool of
// available inputs and a remainder address, it produces either a fully
// balanced PreparedTransaction or a typed error. It is synchronous and
// never performs I/O (spec §5): Build takes the whole available-inputs
// slice and returns without awaiting, generalizing the teacher's
// wallet/chain/p Builder.spend() loop (single Account/NFT/Foundry/
// Delegation world instead of avalanchego's asset-keyed UTXO model).
package txbuilder

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// RequirementKind tags what is missing, per the requirement table of
// spec §4.2.
type RequirementKind byte

const (
	RequirementAccount RequirementKind = iota
	RequirementFoundry
	RequirementNFT
	RequirementDelegation
	RequirementSender
	RequirementIssuer
	RequirementEd25519
	RequirementNativeTokens
	RequirementAmount
	RequirementMana
	RequirementContextInputs
)

func (k RequirementKind) String() string {
	switch k {
	case RequirementAccount:
		return "Account"
	case RequirementFoundry:
		return "Foundry"
	case RequirementNFT:
		return "Nft"
	case RequirementDelegation:
		return "Delegation"
	case RequirementSender:
		return "Sender"
	case RequirementIssuer:
		return "Issuer"
	case RequirementEd25519:
		return "Ed25519"
	case RequirementNativeTokens:
		return "NativeTokens"
	case RequirementAmount:
		return "Amount"
	case RequirementMana:
		return "Mana"
	case RequirementContextInputs:
		return "ContextInputs"
	}
	return "Unknown"
}

// Requirement is one entry in the builder's work queue. ChainID is
// populated for Account/Foundry/NFT/Delegation requirements; Address for
// Sender/Issuer/Ed25519 ones. The NativeTokens/Amount/Mana/ContextInputs
// kinds are never queued: the balancing pass works on totals directly.
type Requirement struct {
	Kind    RequirementKind
	ChainID ids.ID
	Address iotago.Address
}

// requirementQueue is a plain FIFO work queue (design notes: "model
// explicitly as a work queue + a per-iteration state; not as an async
// stream" since the builder does no I/O).
type requirementQueue struct {
	items []Requirement
	// seen suppresses re-queuing an already-pending or already-satisfied
	// requirement, keyed by a cheap string so the loop terminates.
	seen map[string]bool
}

func newRequirementQueue() *requirementQueue {
	return &requirementQueue{seen: make(map[string]bool)}
}

func (q *requirementQueue) key(r Requirement) string {
	switch r.Kind {
	case RequirementAccount, RequirementFoundry, RequirementNFT, RequirementDelegation:
		return r.Kind.String() + ":" + r.ChainID.String()
	case RequirementSender, RequirementIssuer, RequirementEd25519:
		return r.Kind.String() + ":" + r.Address.Key()
	default:
		return r.Kind.String()
	}
}

// push enqueues r unless an identical requirement is already pending or
// has already been satisfied this build.
func (q *requirementQueue) push(r Requirement) {
	k := q.key(r)
	if q.seen[k] {
		return
	}
	q.seen[k] = true
	q.items = append(q.items, r)
}

// pushAlways re-raises a balancing requirement (Amount/NativeTokens/Mana)
// even if it was previously satisfied, since selecting a new input can
// reopen the balance.
func (q *requirementQueue) pushAlways(r Requirement) {
	q.items = append(q.items, r)
}

func (q *requirementQueue) pop() (Requirement, bool) {
	if len(q.items) == 0 {
		return Requirement{}, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

func (q *requirementQueue) empty() bool { return len(q.items) == 0 }
