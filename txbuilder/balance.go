package txbuilder

import "github.com/shimmerkit/ledgersdk/iotago"

// requiredTokenTotals sums every native token quantity the desired
// outputs carry, keyed by token id.
func requiredTokenTotals(outputs []iotago.Output) map[iotago.NativeTokenID][32]byte {
	totals := make(map[iotago.NativeTokenID][32]byte)
	for _, out := range outputs {
		for _, nt := range out.NativeTokens() {
			totals[nt.ID] = add256(totals[nt.ID], nt.Amount)
		}
	}
	return totals
}

// estimatedRemainderMin is the storage deposit a remainder Basic output
// addressed to remainderAddr would need, used as a balancing target so
// the base-token pass doesn't leave a dust-violating surplus (spec §4.2
// Balancing: "enough amount to satisfy storage deposit").
func estimatedRemainderMin(remainderAddr iotago.Address, params iotago.StorageScoreParameters) uint64 {
	skeleton := iotago.NewBasicOutput(0, remainderAddr)
	return iotago.MinStorageDeposit(skeleton, params)
}

// balance closes amount and native-token shortfalls by pulling more
// inputs from the pool (spec §4.2 Balancing), falling back to reducing a
// transitioning Account/Foundry/NFT output's amount toward its minimum
// storage deposit when the pool is exhausted. It returns whether the
// ledger is now balanced and whether it made progress this call (pulled
// an input or reduced an output), so the caller's outer loop knows
// whether to keep iterating.
func (b *builder) balance(outputs []iotago.Output, burn *Burn, p *pool, st *buildState, q *requirementQueue, o Options) (balanced bool, progressed bool, err error) {
	target := requiredAmount(outputs) + estimatedRemainderMin(o.RemainderAddress, b.backend.Params.Storage)

	for st.selectedAmount() < target {
		u, ok := p.takeBestForAmount(target - st.selectedAmount())
		if !ok {
			if reduced := b.reduceChainOutputs(outputs, target-st.selectedAmount()); reduced {
				progressed = true
				target = requiredAmount(outputs) + estimatedRemainderMin(o.RemainderAddress, b.backend.Params.Storage)
				continue
			}
			return false, progressed, &InsufficientAmount{Found: st.selectedAmount(), Required: target}
		}
		b.selectInput(u, st)
		progressed = true
		b.followUpUnlock(u, outputs, st, q)
	}

	for tokenID, required := range requiredTokenTotals(outputs) {
		for {
			have := st.selectedToken(tokenID)
			if _, short := sub256(have, required); !short {
				break
			}
			u, ok := p.takeContainingToken(tokenID)
			if !ok {
				return false, progressed, &InsufficientNativeTokenAmount{TokenID: tokenID, Found: have, Required: required}
			}
			b.selectInput(u, st)
			progressed = true
			b.followUpUnlock(u, outputs, st, q)
		}
	}

	return true, progressed, nil
}

// followUpUnlock raises whatever requirement u's unlock address implies
// once u has been pulled in purely to close an amount/token shortfall:
// a chain address (Account/NFT) needs its owning chain input selected
// too, while a plain key is already satisfied by selecting u itself.
func (b *builder) followUpUnlock(u iotago.UTXO, outputs []iotago.Output, st *buildState, q *requirementQueue) {
	addr, err := unlockAddressFor(u.Output, outputs)
	if err != nil {
		return
	}
	req := requireAddressUnlock(addr)
	if req.Kind == RequirementEd25519 {
		if _, already := st.unlockedAddrs[addr.Key()]; !already {
			st.unlockedAddrs[addr.Key()] = len(st.selected) - 1
		}
		return
	}
	q.push(req)
}

// reduceChainOutputs lowers the amount of the first transitioning
// Account/Foundry/NFT output (never a caller-supplied Basic output, per
// spec §4.2) whose current amount exceeds its minimum storage deposit,
// reporting whether it reduced one. Only one reduction per call so
// the outer balance loop can re-check whether that was enough.
func (b *builder) reduceChainOutputs(outputs []iotago.Output, deficit uint64) bool {
	for i, out := range outputs {
		switch out.(type) {
		case *iotago.AccountOutput, *iotago.FoundryOutput, *iotago.NFTOutput:
		default:
			continue
		}
		min := iotago.MinStorageDeposit(out, b.backend.Params.Storage)
		if out.Amount() <= min {
			continue
		}
		slack := out.Amount() - min
		reduceBy := deficit
		if reduceBy > slack {
			reduceBy = slack
		}
		outputs[i].SetAmount(out.Amount() - reduceBy)
		return true
	}
	return false
}
