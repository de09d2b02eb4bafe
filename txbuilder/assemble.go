package txbuilder

import (
	"sort"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// assemble sorts the consumed inputs by OutputId, builds the essence and
// derives a per-input unlock hint for each, per spec §4.2 Unlock
// emission.
func (b *builder) assemble(st *buildState, finalOutputs []iotago.Output, burn *Burn, o Options) (*iotago.Transaction, []UnlockHint, []iotago.UTXO, error) {
	consumed := append([]iotago.UTXO(nil), st.selected...)
	sort.Slice(consumed, func(i, j int) bool { return consumed[i].OutputID.Less(consumed[j].OutputID) })

	chainIxNew := make(map[ids.ID]int, len(consumed))
	for i, u := range consumed {
		if chainID, ok := iotago.ChainIDOf(u.Output); ok && !isZeroID(chainID) {
			chainIxNew[chainID] = i
		}
	}

	inputs := make([]iotago.Input, len(consumed))
	hints := make([]UnlockHint, len(consumed))
	firstAddrIx := make(map[string]int)
	for i, u := range consumed {
		inputs[i] = iotago.Input{UTXOID: u.OutputID}
		addr, err := unlockAddressFor(u.Output, finalOutputs)
		if err != nil {
			return nil, nil, nil, err
		}
		hint, err := emitUnlock(addr, i, chainIxNew, firstAddrIx)
		if err != nil {
			return nil, nil, nil, err
		}
		hints[i] = hint
	}

	tx := &iotago.Transaction{
		NetworkID:    b.backend.NetworkID,
		CreationSlot: b.backend.CreationSlot,
		Inputs:       inputs,
		Outputs:      finalOutputs,
		Capabilities: derivedCapabilities(burn),
	}

	return tx, hints, consumed, nil
}

// emitUnlock decides, for the address that must authorize input idx,
// which Unlock variant to use: a chain address always references the
// input that owns that chain (Account(ix)/NFT(ix)); a plain key gets a
// Signature on first occurrence and a Reference to it afterward.
func emitUnlock(addr iotago.Address, idx int, chainIxNew map[ids.ID]int, firstAddrIx map[string]int) (UnlockHint, error) {
	switch a := addr.(type) {
	case *iotago.AccountAddress:
		ownerIx, ok := chainIxNew[ids.ID(a.ID)]
		if !ok {
			return UnlockHint{}, ErrUnknownOutputType
		}
		return UnlockHint{Kind: iotago.UnlockAccount, Reference: uint16(ownerIx)}, nil
	case *iotago.NFTAddress:
		ownerIx, ok := chainIxNew[ids.ID(a.ID)]
		if !ok {
			return UnlockHint{}, ErrUnknownOutputType
		}
		return UnlockHint{Kind: iotago.UnlockNFT, Reference: uint16(ownerIx)}, nil
	case *iotago.RestrictedAddress:
		return emitUnlock(a.Inner, idx, chainIxNew, firstAddrIx)
	case *iotago.MultiAddress:
		return emitMultiUnlock(a, idx, chainIxNew, firstAddrIx)
	default:
		key := addr.Key()
		if first, ok := firstAddrIx[key]; ok {
			return UnlockHint{Kind: iotago.UnlockReference, Reference: uint16(first)}, nil
		}
		firstAddrIx[key] = idx
		return UnlockHint{Kind: iotago.UnlockSignature, Address: addr}, nil
	}
}

// emitMultiUnlock recurses per member, taking members in descending
// weight order until cumulative weight reaches the threshold (spec
// §4.2: "Multi-address unlocks recurse per member with cumulative
// weight >= threshold").
func emitMultiUnlock(a *iotago.MultiAddress, idx int, chainIxNew map[ids.ID]int, firstAddrIx map[string]int) (UnlockHint, error) {
	members := append([]iotago.WeightedAddress(nil), a.Members...)
	sort.Slice(members, func(i, j int) bool { return members[i].Weight > members[j].Weight })

	var subs []UnlockHint
	var cumulative int
	for _, m := range members {
		if cumulative >= int(a.Threshold) {
			break
		}
		sub, err := emitUnlock(m.Address, idx, chainIxNew, firstAddrIx)
		if err != nil {
			return UnlockHint{}, err
		}
		subs = append(subs, sub)
		cumulative += int(m.Weight)
	}
	if cumulative < int(a.Threshold) {
		return UnlockHint{}, &AdditionalInputsRequired{Requirement: Requirement{Kind: RequirementEd25519}}
	}
	return UnlockHint{Kind: iotago.UnlockMulti, SubHints: subs}, nil
}

// derivedCapabilities sets exactly the destroy-* bits the requested
// burns require, per scenario S5 ("transaction rejected if the flag is
// absent").
func derivedCapabilities(burn *Burn) iotago.Capabilities {
	var caps iotago.Capabilities
	if len(burn.Accounts) > 0 {
		caps.Set(iotago.CapDestroyAccount)
	}
	if len(burn.Foundries) > 0 {
		caps.Set(iotago.CapDestroyFoundry)
	}
	if len(burn.NFTs) > 0 {
		caps.Set(iotago.CapDestroyNFT)
	}
	if burn.Mana {
		caps.Set(iotago.CapBurnMana)
	}
	return caps
}
