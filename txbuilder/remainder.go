package txbuilder

import "github.com/shimmerkit/ledgersdk/iotago"

// synthesizeRemainder appends a remainder Basic output carrying whatever
// base-token and native-token surplus balance() left unconsumed (spec
// §4.2 Balancing: "Positive base-token surplus becomes a remainder Basic
// output..."). A single remainder is produced; splitting across two
// remainders when the native token list would otherwise overflow the
// u8 container limit is not implemented.
func (b *builder) synthesizeRemainder(outputs []iotago.Output, burn *Burn, st *buildState, o Options) ([]iotago.Output, error) {
	final := append([]iotago.Output(nil), outputs...)

	surplus := st.selectedAmount() - requiredAmount(outputs)
	if surplus == 0 && !hasTokenSurplus(outputs, st) {
		return final, nil
	}

	remainder := iotago.NewBasicOutput(surplus, o.RemainderAddress)

	for tokenID, have := range tokenSurpluses(outputs, st) {
		if isZero256(have) {
			continue
		}
		remainder.Tokens = append(remainder.Tokens, iotago.NativeToken{ID: tokenID, Amount: have})
	}
	iotago.SortNativeTokens(remainder.Tokens)

	min := iotago.MinStorageDeposit(remainder, b.backend.Params.Storage)
	if remainder.Amount() < min {
		return nil, ErrInvalidStorageDepositAmount
	}

	return append(final, remainder), nil
}

func hasTokenSurplus(outputs []iotago.Output, st *buildState) bool {
	for _, have := range tokenSurpluses(outputs, st) {
		if !isZero256(have) {
			return true
		}
	}
	return false
}

// tokenSurpluses computes, per token id present among the selected
// inputs, how much is left over after covering every desired output's
// requirement.
func tokenSurpluses(outputs []iotago.Output, st *buildState) map[iotago.NativeTokenID][32]byte {
	required := requiredTokenTotals(outputs)
	selected := make(map[iotago.NativeTokenID][32]byte)
	for _, u := range st.selected {
		for _, nt := range u.Output.NativeTokens() {
			selected[nt.ID] = add256(selected[nt.ID], nt.Amount)
		}
	}
	surplus := make(map[iotago.NativeTokenID][32]byte, len(selected))
	for id, have := range selected {
		left, underflow := sub256(have, required[id])
		if underflow {
			left = [32]byte{}
		}
		surplus[id] = left
	}
	return surplus
}
