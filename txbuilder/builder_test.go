package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

func testParams() iotago.ProtocolParameters {
	return iotago.ProtocolParameters{
		NetworkName: "test",
		TokenSupply: 1_000_000_000,
		Storage: iotago.StorageScoreParameters{
			FactorData:   1,
			OffsetOutput: 10,
			StorageCost:  100,
		},
	}
}

func testBackend() Backend {
	return Backend{Params: testParams(), NetworkID: 1}
}

func ed25519Addr(b byte) *iotago.Ed25519Address {
	var a iotago.Ed25519Address
	a.PubKeyHash[0] = b
	return &a
}

func outputID(b byte, index uint16) ids.OutputID {
	var txID ids.ID
	txID[0] = b
	return ids.OutputID{TransactionID: txID, Index: index}
}

// S1 — Simple send with remainder (spec §8).
func TestBuildSimpleSendWithRemainder(t *testing.T) {
	a0 := ed25519Addr(0xA0)
	a1 := ed25519Addr(0xA1)

	available := []iotago.UTXO{
		{OutputID: outputID(1, 0), Output: iotago.NewBasicOutput(2_000_000, a0)},
	}
	desired := []iotago.Output{iotago.NewBasicOutput(1_000_000, a1)}

	bld := NewBuilder(testBackend(), []iotago.Address{a0})
	remainderAddr := ed25519Addr(0xAA)

	prepared, err := bld.Build(desired, nil, available, WithRemainderAddress(remainderAddr))
	require.NoError(t, err)

	require.Len(t, prepared.Transaction.Inputs, 1)
	require.Len(t, prepared.Transaction.Outputs, 2)
	require.Len(t, prepared.UnlockHints, 1)
	require.Equal(t, iotago.UnlockSignature, prepared.UnlockHints[0].Kind)

	var totalIn, totalOut uint64
	for _, u := range prepared.ConsumedOutputs {
		totalIn += u.Output.Amount()
	}
	for _, o := range prepared.Transaction.Outputs {
		totalOut += o.Amount()
	}
	require.Equal(t, totalIn, totalOut, "amount_balance must be zero")

	remainder := prepared.Transaction.Outputs[1]
	require.GreaterOrEqual(t, remainder.Amount(), iotago.MinStorageDeposit(remainder, testParams().Storage))
}

// S4 — Account state transition (spec §8).
func TestBuildAccountStateTransition(t *testing.T) {
	stateController := ed25519Addr(0xB0)
	governor := ed25519Addr(0xB1)
	remainderAddr := ed25519Addr(0xBB)

	var accountID ids.ID
	accountID[0] = 0xAC

	inAccount := iotago.NewAccountOutput(2_000_000, accountID, 5, stateController, governor)
	outAccount := iotago.NewAccountOutput(1_000_000, accountID, 6, stateController, governor)

	available := []iotago.UTXO{{OutputID: outputID(2, 0), Output: inAccount}}
	desired := []iotago.Output{outAccount}

	bld := NewBuilder(testBackend(), []iotago.Address{stateController, governor})
	prepared, err := bld.Build(desired, nil, available, WithRemainderAddress(remainderAddr))
	require.NoError(t, err)

	require.Len(t, prepared.Transaction.Inputs, 1)
	require.Len(t, prepared.UnlockHints, 1)
	require.Equal(t, iotago.UnlockSignature, prepared.UnlockHints[0].Kind)
	require.Equal(t, stateController.Key(), prepared.UnlockHints[0].Address.Key())

	require.Len(t, prepared.Transaction.Outputs, 2)
	var remainderAmount uint64
	for _, o := range prepared.Transaction.Outputs {
		if o.Kind() == iotago.OutputBasic {
			remainderAmount = o.Amount()
		}
	}
	require.Equal(t, uint64(1_000_000), remainderAmount)
}

// S5 — Burn foundry (spec §8): capability flag must be set when a
// Foundry is burned, and the owning Account must still be pulled in so
// its Account(ix) unlock can reference it.
func TestBuildBurnFoundryRequiresCapability(t *testing.T) {
	stateController := ed25519Addr(0xC0)
	governor := ed25519Addr(0xC1)
	remainderAddr := ed25519Addr(0xCC)

	var accountID ids.ID
	accountID[0] = 0xAD

	account := iotago.NewAccountOutput(1_000_000, accountID, 0, stateController, governor)
	account.FoundryCounter = 1

	accountAddr := &iotago.AccountAddress{ID: accountID}
	foundry := iotago.NewFoundryOutput(1_000_000, accountAddr, 1, iotago.SimpleTokenScheme{
		Minted: amount256(70),
		Melted: amount256(70),
		Max:    amount256(100),
	})
	foundryID, err := foundry.FoundryID()
	require.NoError(t, err)

	available := []iotago.UTXO{
		{OutputID: outputID(3, 0), Output: account},
		{OutputID: outputID(3, 1), Output: foundry},
	}
	// Account stays (same id, no state change requested by caller other
	// than what balancing reduces); Foundry is burned.
	desiredAccount := iotago.NewAccountOutput(1_000_000, accountID, 0, stateController, governor)
	desiredAccount.FoundryCounter = 1
	desired := []iotago.Output{desiredAccount}

	burn := NewBurn().Foundry(ids.ID(foundryID))

	bld := NewBuilder(testBackend(), []iotago.Address{stateController, governor})
	prepared, err := bld.Build(desired, burn, available, WithRemainderAddress(remainderAddr))
	require.NoError(t, err)

	require.True(t, prepared.Transaction.Capabilities.Has(iotago.CapDestroyFoundry))
	require.Len(t, prepared.Transaction.Inputs, 2, "both Account and Foundry must be consumed")
}

func amount256(v uint64) [32]byte {
	var out [32]byte
	out[0] = byte(v)
	out[1] = byte(v >> 8)
	return out
}
