package iotago

import (
	"sort"

	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// NativeTokenID identifies the fungible token minted by exactly one Foundry
// output. Per spec §3's ChainId derivation rule, it is
// blake2b-256(account_addr || serial_number || token_scheme_kind) — see
// FoundryOutput.FoundryID in output.go.
type NativeTokenID [32]byte

// NativeToken is an (id, amount) pair. Invariant 5 of spec §3 requires the
// ids within one output's list to be unique and sorted ascending.
type NativeToken struct {
	ID     NativeTokenID
	Amount [32]byte // uint256, little-endian
}

func (n NativeToken) Pack(w *codec.Writer) error {
	w.WriteFixedBytes(n.ID[:])
	w.WriteUint256(n.Amount)
	return nil
}

func (n *NativeToken) Unpack(r *codec.Reader) error {
	id, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(n.ID[:], id)
	amount, err := r.ReadUint256()
	if err != nil {
		return err
	}
	n.Amount = amount
	return nil
}

// PackNativeTokens writes the u8-length-prefixed list (container table,
// spec §4.1), erroring on more than 255 entries, unsorted entries, or
// duplicate ids (invariant 5, spec §3 / ErrUnsortedOrDuplicate spec §4.1).
func PackNativeTokens(w *codec.Writer, tokens []NativeToken) error {
	if !sort.SliceIsSorted(tokens, func(i, j int) bool { return lessTokenID(tokens[i].ID, tokens[j].ID) }) {
		return codec.ErrUnsortedOrDuplicate
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].ID == tokens[i].ID {
			return codec.ErrUnsortedOrDuplicate
		}
	}
	if err := w.WriteCount8(len(tokens)); err != nil {
		return err
	}
	for _, t := range tokens {
		if err := t.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func UnpackNativeTokens(r *codec.Reader) ([]NativeToken, error) {
	n, err := r.ReadCount8()
	if err != nil {
		return nil, err
	}
	tokens := make([]NativeToken, n)
	for i := range tokens {
		if err := tokens[i].Unpack(r); err != nil {
			return nil, err
		}
	}
	for i := 1; i < len(tokens); i++ {
		if !lessTokenID(tokens[i-1].ID, tokens[i].ID) {
			return nil, codec.ErrUnsortedOrDuplicate
		}
	}
	return tokens, nil
}

func lessTokenID(a, b NativeTokenID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// SortNativeTokens sorts a caller-built list ascending by id, used by the
// builder when assembling a remainder's native token list (spec §4.2
// Balancing).
func SortNativeTokens(tokens []NativeToken) {
	sort.Slice(tokens, func(i, j int) bool { return lessTokenID(tokens[i].ID, tokens[j].ID) })
}
