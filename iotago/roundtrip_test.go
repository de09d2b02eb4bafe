package iotago

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

func testEd25519Addr(seed byte) *Ed25519Address {
	var a Ed25519Address
	a.PubKeyHash[0] = seed
	return &a
}

func TestBasicOutputRoundTrip(t *testing.T) {
	out := NewBasicOutput(1_000_000, testEd25519Addr(1))
	out.Feats = []Feature{&TagFeature{Tag: []byte("hello")}}

	encoded := MustEncodeOutput(out)
	decoded, err := DecodeOutput(codec.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, out.Amount(), decoded.Amount())
	require.Equal(t, MustEncodeOutput(out), MustEncodeOutput(decoded))
}

func TestAccountOutputRoundTrip(t *testing.T) {
	out := &AccountOutput{
		commonFields: commonFields{
			AmountVal: 2_000_000,
			Conditions: []UnlockCondition{
				&StateControllerAddressUnlockCondition{Address: testEd25519Addr(2)},
				&GovernorAddressUnlockCondition{Address: testEd25519Addr(3)},
			},
		},
		StateIndex:     5,
		FoundryCounter: 1,
	}
	encoded := MustEncodeOutput(out)
	decoded, err := DecodeOutput(codec.NewReader(encoded))
	require.NoError(t, err)
	got := decoded.(*AccountOutput)
	require.Equal(t, out.StateIndex, got.StateIndex)
	require.Equal(t, out.FoundryCounter, got.FoundryCounter)
}

func TestTransactionIdentityStability(t *testing.T) {
	tx := &Transaction{
		NetworkID:    1,
		CreationSlot: 10,
		Inputs: []Input{{UTXOID: ids.OutputID{TransactionID: ids.ID{1}, Index: 0}}},
		Outputs: []Output{
			NewBasicOutput(1_000_000, testEd25519Addr(9)),
		},
	}
	id1, err := tx.ID()
	require.NoError(t, err)

	w := codec.NewWriter()
	require.NoError(t, tx.Pack(w))
	expect := ids.Blake2b256(w.Bytes())
	require.Equal(t, expect, id1)

	// Identical essence must hash identically (deterministic encoding).
	id2, err := tx.ID()
	require.NoError(t, err)
	require.Equal(t, id1, id2)
}

func TestCanonicalOrderingRejectsUnsortedFeatures(t *testing.T) {
	out := NewBasicOutput(1_000_000, testEd25519Addr(1))
	out.Feats = []Feature{
		&TagFeature{Tag: []byte("b")},
		&SenderFeature{Address: testEd25519Addr(2)},
	}
	err := out.Pack(codec.NewWriter())
	require.ErrorIs(t, err, ErrUnsortedOrDuplicate)
}

func TestStorageDepositInvariant(t *testing.T) {
	params := StorageScoreParameters{FactorData: 1, OffsetOutput: 100, StorageCost: 100}
	out := NewBasicOutput(1, testEd25519Addr(1))
	err := ValidateOutput(out, params, 1_000_000_000)
	require.ErrorIs(t, err, ErrAmountBelowStorageDeposit)
}

func TestExpirationReturnMustDifferFromPrimary(t *testing.T) {
	addr := testEd25519Addr(7)
	out := NewBasicOutput(1_000_000, addr)
	out.Conditions = append(out.Conditions, &ExpirationUnlockCondition{ReturnAddress: addr, Slot: 10})
	params := StorageScoreParameters{FactorData: 1, StorageCost: 1}
	err := ValidateOutput(out, params, 1_000_000_000)
	require.ErrorIs(t, err, ErrExpirationReturnSameAsAddress)
}

func TestOutputIDSortOrder(t *testing.T) {
	a := ids.OutputID{TransactionID: ids.ID{1}, Index: 1}
	b := ids.OutputID{TransactionID: ids.ID{1}, Index: 0}
	list := []ids.OutputID{a, b}
	ids.SortOutputIDs(list)
	require.Equal(t, b, list[0])
	require.Equal(t, a, list[1])
}
