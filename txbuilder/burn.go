package txbuilder

import "github.com/shimmerkit/ledgersdk/ids"

// Burn is a set of chain ids to intentionally consume without a
// corresponding output, plus a flag for burning mana instead of allotting
// it (spec §4.2 Burn semantics, §3 glossary "Burn").
type Burn struct {
	Accounts    ids.Set
	Foundries   ids.Set
	NFTs        ids.Set
	Delegations ids.Set
	Mana        bool
}

// NewBurn returns an empty Burn set.
func NewBurn() *Burn {
	return &Burn{
		Accounts:    ids.NewSet(),
		Foundries:   ids.NewSet(),
		NFTs:        ids.NewSet(),
		Delegations: ids.NewSet(),
	}
}

func (b *Burn) Account(id ids.ID) *Burn    { b.Accounts.Add(id); return b }
func (b *Burn) Foundry(id ids.ID) *Burn    { b.Foundries.Add(id); return b }
func (b *Burn) NFT(id ids.ID) *Burn        { b.NFTs.Add(id); return b }
func (b *Burn) Delegation(id ids.ID) *Burn { b.Delegations.Add(id); return b }
func (b *Burn) WithMana() *Burn            { b.Mana = true; return b }
