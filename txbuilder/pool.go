package txbuilder

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// rank implements the "priority map keyed by (output-kind-rank,
// has_native_token)" of spec §4.2: "smaller rank first (Basic < Account <
// NFT < Foundry), inputs without native tokens first."
func rank(o iotago.Output) int {
	switch o.(type) {
	case *iotago.BasicOutput:
		return 0
	case *iotago.AccountOutput:
		return 1
	case *iotago.NFTOutput:
		return 2
	case *iotago.FoundryOutput:
		return 3
	case *iotago.DelegationOutput:
		return 4
	default:
		return 5
	}
}

// priorityLess orders two pool candidates for amount/native-token
// balancing selection.
func priorityLess(a, b iotago.Output) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	aHas, bHas := len(a.NativeTokens()) > 0, len(b.NativeTokens()) > 0
	if aHas != bHas {
		return !aHas // no-token first
	}
	return a.Amount() < b.Amount()
}

// pool is the mutable available-inputs working set the builder consumes
// from during one Build call. It indexes by chain id for O(1) requirement
// resolution and keeps a priority-ordered slice for amount/token
// balancing.
type pool struct {
	byAccount    map[ids.ID]iotago.UTXO
	byFoundry    map[ids.ID]iotago.UTXO
	byNFT        map[ids.ID]iotago.UTXO
	byDelegation map[ids.ID]iotago.UTXO
	rest         []iotago.UTXO // everything not yet claimed by chain id
}

func newPool(available []iotago.UTXO) *pool {
	p := &pool{
		byAccount:    make(map[ids.ID]iotago.UTXO),
		byFoundry:    make(map[ids.ID]iotago.UTXO),
		byNFT:        make(map[ids.ID]iotago.UTXO),
		byDelegation: make(map[ids.ID]iotago.UTXO),
	}
	for _, u := range available {
		switch o := u.Output.(type) {
		case *iotago.AccountOutput:
			p.byAccount[o.ChainID()] = u
		case *iotago.FoundryOutput:
			if fid, err := o.FoundryID(); err == nil {
				p.byFoundry[ids.ID(fid)] = u
			}
		case *iotago.NFTOutput:
			p.byNFT[o.ChainID()] = u
		case *iotago.DelegationOutput:
			p.byDelegation[o.ChainID()] = u
		}
		p.rest = append(p.rest, u)
	}
	return p
}

// takeChain removes and returns the UTXO for chainID from the indexed map
// and from rest, or (_, false) if absent.
func (p *pool) takeChain(m map[ids.ID]iotago.UTXO, chainID ids.ID) (iotago.UTXO, bool) {
	u, ok := m[chainID]
	if !ok {
		return iotago.UTXO{}, false
	}
	delete(m, chainID)
	p.removeFromRest(u.OutputID)
	return u, true
}

func (p *pool) removeFromRest(id ids.OutputID) {
	for i, u := range p.rest {
		if u.OutputID == id {
			p.rest = append(p.rest[:i], p.rest[i+1:]...)
			return
		}
	}
}

// takeBestForAmount removes and returns, from rest, the candidate whose
// amount is >= deficit that ranks first under priorityLess (kind rank
// before amount), or — if none closes the gap
// alone — the single largest remaining candidate (spec §4.2: "prefer the
// smallest input that closes the gap; if none closes it alone, take the
// largest remaining and iterate").
func (p *pool) takeBestForAmount(deficit uint64) (iotago.UTXO, bool) {
	if len(p.rest) == 0 {
		return iotago.UTXO{}, false
	}
	bestCloseIdx := -1
	largestIdx := 0
	for i, u := range p.rest {
		if u.Output.Amount() >= deficit {
			if bestCloseIdx == -1 || priorityLess(u.Output, p.rest[bestCloseIdx].Output) {
				bestCloseIdx = i
			}
		}
		if u.Output.Amount() > p.rest[largestIdx].Output.Amount() {
			largestIdx = i
		}
	}
	idx := bestCloseIdx
	if idx == -1 {
		idx = largestIdx
	}
	u := p.rest[idx]
	p.rest = append(p.rest[:idx], p.rest[idx+1:]...)
	p.removeFromChainIndex(u)
	return u, true
}

// takeContainingToken removes and returns, from rest in priority order,
// the first candidate that carries at least one unit of tokenID.
func (p *pool) takeContainingToken(tokenID iotago.NativeTokenID) (iotago.UTXO, bool) {
	bestIdx := -1
	for i, u := range p.rest {
		found := false
		for _, nt := range u.Output.NativeTokens() {
			if nt.ID == tokenID {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		if bestIdx == -1 || priorityLess(u.Output, p.rest[bestIdx].Output) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return iotago.UTXO{}, false
	}
	u := p.rest[bestIdx]
	p.rest = append(p.rest[:bestIdx], p.rest[bestIdx+1:]...)
	p.removeFromChainIndex(u)
	return u, true
}

func (p *pool) removeFromChainIndex(u iotago.UTXO) {
	switch o := u.Output.(type) {
	case *iotago.AccountOutput:
		delete(p.byAccount, o.ChainID())
	case *iotago.FoundryOutput:
		if fid, err := o.FoundryID(); err == nil {
			delete(p.byFoundry, ids.ID(fid))
		}
	case *iotago.NFTOutput:
		delete(p.byNFT, o.ChainID())
	case *iotago.DelegationOutput:
		delete(p.byDelegation, o.ChainID())
	}
}

func (p *pool) empty() bool { return len(p.rest) == 0 }
