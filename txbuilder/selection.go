package txbuilder

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// selectInput records u as consumed and remembers its slot for later
// Account(ix)/NFT(ix) unlock references.
func (b *builder) selectInput(u iotago.UTXO, st *buildState) int {
	idx := len(st.selected)
	st.selected = append(st.selected, u)
	if chainID, ok := iotago.ChainIDOf(u.Output); ok && !isZeroID(chainID) {
		st.chainInputIx[chainID] = idx
	}
	return idx
}

// requireAddressUnlock maps the address that must authorize an input's
// consumption onto the requirement that guarantees it ends up unlocked,
// per spec §4.2: a plain key hashes to an Ed25519 requirement; chain
// addresses recurse into Account/NFT requirements so the owning chain
// output is pulled in as well.
func requireAddressUnlock(addr iotago.Address) Requirement {
	switch a := addr.(type) {
	case *iotago.AccountAddress:
		return Requirement{Kind: RequirementAccount, ChainID: ids.ID(a.ID)}
	case *iotago.NFTAddress:
		return Requirement{Kind: RequirementNFT, ChainID: ids.ID(a.ID)}
	case *iotago.RestrictedAddress:
		return requireAddressUnlock(a.Inner)
	default:
		return Requirement{Kind: RequirementEd25519, Address: addr}
	}
}

// resolveAccountUnlockAddress decides whether an Account input needs its
// state-controller or governor address, by looking for a same-chain-id
// output in the desired outputs and classifying the transition (spec
// §4.1: state transition vs governance transition). Absence of a
// matching output means destruction, which per the real protocol still
// requires the state controller.
func resolveAccountUnlockAddress(in *iotago.AccountOutput, outputs []iotago.Output) (iotago.Address, error) {
	for _, out := range outputs {
		accOut, ok := out.(*iotago.AccountOutput)
		if !ok || accOut.AccountIDVal != in.AccountIDVal {
			continue
		}
		if iotago.ClassifyAccountTransition(in, accOut) == iotago.ChainGovernanceTransition {
			if addr, ok := in.Governor(); ok {
				return addr, nil
			}
			return nil, iotago.ErrMissingPrimaryAddress
		}
		break
	}
	if addr, ok := in.StateController(); ok {
		return addr, nil
	}
	return nil, iotago.ErrMissingPrimaryAddress
}

// unlockAddressFor returns the address whose unlock authorizes spending
// o, dispatching per kind since only Account has the
// state-controller/governor distinction and Foundry is always owned by
// an Account address.
func unlockAddressFor(o iotago.Output, outputs []iotago.Output) (iotago.Address, error) {
	switch out := o.(type) {
	case *iotago.AccountOutput:
		return resolveAccountUnlockAddress(out, outputs)
	case *iotago.FoundryOutput:
		addr, ok := out.AccountAddr()
		if !ok {
			return nil, iotago.ErrMissingImmutableAccountAddress
		}
		return addr, nil
	default:
		addr, ok := iotago.PrimaryAddress(o)
		if !ok {
			return nil, iotago.ErrMissingPrimaryAddress
		}
		return addr, nil
	}
}

// drainQueue processes every pending requirement until the queue is
// empty, returning whether any input was newly selected.
func (b *builder) drainQueue(outputs []iotago.Output, q *requirementQueue, p *pool, st *buildState) (bool, error) {
	progressed := false
	for {
		req, ok := q.pop()
		if !ok {
			return progressed, nil
		}
		selected, err := b.resolveRequirement(outputs, req, p, st, q)
		if err != nil {
			return progressed, err
		}
		if selected {
			progressed = true
		}
	}
}

func (b *builder) resolveRequirement(outputs []iotago.Output, req Requirement, p *pool, st *buildState, q *requirementQueue) (bool, error) {
	switch req.Kind {
	case RequirementAccount:
		return b.resolveChainRequirement(outputs, RequirementAccount, p.byAccount, req.ChainID, p, st, q)
	case RequirementFoundry:
		return b.resolveChainRequirement(outputs, RequirementFoundry, p.byFoundry, req.ChainID, p, st, q)
	case RequirementNFT:
		return b.resolveChainRequirement(outputs, RequirementNFT, p.byNFT, req.ChainID, p, st, q)
	case RequirementDelegation:
		return b.resolveChainRequirement(outputs, RequirementDelegation, p.byDelegation, req.ChainID, p, st, q)
	case RequirementSender, RequirementIssuer:
		q.push(requireAddressUnlock(req.Address))
		return false, nil
	case RequirementEd25519:
		return b.resolveEd25519Requirement(req.Address, p, st, q)
	default:
		return false, nil
	}
}

func (b *builder) resolveChainRequirement(outputs []iotago.Output, kind RequirementKind, index map[ids.ID]iotago.UTXO, chainID ids.ID, p *pool, st *buildState, q *requirementQueue) (bool, error) {
	if _, already := st.chainInputIx[chainID]; already {
		return false, nil
	}
	u, ok := p.takeChain(index, chainID)
	if !ok {
		return false, &AdditionalInputsRequired{Requirement: Requirement{Kind: kind, ChainID: chainID}}
	}
	idx := b.selectInput(u, st)
	unlockAddr, err := unlockAddressFor(u.Output, outputs)
	if err != nil {
		return false, err
	}
	// A terminal Ed25519/implicit address is satisfied by this very
	// selection (the owning input is itself what gets signed); only a
	// further chain address (Account/NFT) raises a genuine new
	// requirement to also pull in the chain that controls it.
	req := requireAddressUnlock(unlockAddr)
	if req.Kind == RequirementEd25519 {
		if _, already := st.unlockedAddrs[unlockAddr.Key()]; !already {
			st.unlockedAddrs[unlockAddr.Key()] = idx
		}
		return true, nil
	}
	q.push(req)
	return true, nil
}

func (b *builder) resolveEd25519Requirement(addr iotago.Address, p *pool, st *buildState, q *requirementQueue) (bool, error) {
	if _, ok := st.unlockedAddrs[addr.Key()]; ok {
		return false, nil
	}
	for i, u := range p.rest {
		primary, ok := iotago.PrimaryAddress(u.Output)
		if !ok || primary.Key() != addr.Key() {
			continue
		}
		if !b.canSign(primary) {
			continue
		}
		p.rest = append(p.rest[:i], p.rest[i+1:]...)
		p.removeFromChainIndex(u)
		idx := b.selectInput(u, st)
		st.unlockedAddrs[addr.Key()] = idx
		return true, nil
	}
	return false, &AdditionalInputsRequired{Requirement: Requirement{Kind: RequirementEd25519, Address: addr}}
}
