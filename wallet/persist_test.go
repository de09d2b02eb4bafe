package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/store"
)

func testAddr(b byte) *iotago.Ed25519Address {
	var a iotago.Ed25519Address
	a.PubKeyHash[0] = b
	return &a
}

func testOutputID(b byte, index uint16) ids.OutputID {
	var txID ids.ID
	txID[0] = b
	return ids.OutputID{TransactionID: txID, Index: index}
}

// Round-trip invariant (spec §8): marshalWalletData/unmarshalWalletData
// must reproduce every field of a populated WalletData.
func TestWalletDataRoundTrip(t *testing.T) {
	owner := testAddr(0x01)
	data := store.NewWalletData(owner, "smr", 4218)
	data.Alias = "primary"

	out := iotago.NewBasicOutput(1_000_000, owner)
	outID := testOutputID(0x10, 0)
	u := iotago.UTXO{OutputID: outID, Output: out}
	data.Outputs[outID] = u
	data.UnspentOutputs[outID] = u

	spentID := testOutputID(0x11, 0)
	var spenderTx ids.ID
	spenderTx[0] = 0x22
	data.Outputs[spentID] = iotago.UTXO{OutputID: spentID, Output: out}
	data.SpentMetadata[spentID] = store.SpentMetadata{Slot: 42, TransactionID: spenderTx}

	tx := &iotago.Transaction{
		NetworkID: 1,
		Inputs:    []iotago.Input{{UTXOID: outID}},
		Outputs:   []iotago.Output{out},
	}
	txID, err := tx.ID()
	require.NoError(t, err)
	data.Transactions[txID] = tx
	data.PendingTransactions[txID] = store.PendingTransaction{
		TransactionID:  txID,
		Transaction:    tx,
		ConsumedInputs: []ids.OutputID{outID},
		SignedBlock:    []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}
	data.LockedOutputs[outID] = struct{}{}

	var inaccessible ids.ID
	inaccessible[0] = 0x33
	data.InaccessibleIncomingTransactions.Add(inaccessible)

	raw, err := marshalWalletData(data)
	require.NoError(t, err)

	got, err := unmarshalWalletData(raw)
	require.NoError(t, err)

	require.Equal(t, data.SchemaVersion, got.SchemaVersion)
	require.Equal(t, data.Bech32HRP, got.Bech32HRP)
	require.Equal(t, data.CoinType, got.CoinType)
	require.Equal(t, data.Alias, got.Alias)
	require.Equal(t, owner.Key(), got.Address.Key())

	require.Contains(t, got.UnspentOutputs, outID)
	require.Equal(t, out.Amount(), got.UnspentOutputs[outID].Output.Amount())

	sm, ok := got.SpentMetadata[spentID]
	require.True(t, ok)
	require.Equal(t, uint32(42), sm.Slot)
	require.Equal(t, spenderTx, sm.TransactionID)

	gotTx, ok := got.Transactions[txID]
	require.True(t, ok)
	gotTxID, err := gotTx.ID()
	require.NoError(t, err)
	require.Equal(t, txID, gotTxID)

	pend, ok := got.PendingTransactions[txID]
	require.True(t, ok)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, pend.SignedBlock)
	require.Equal(t, []ids.OutputID{outID}, pend.ConsumedInputs)

	require.Contains(t, got.LockedOutputs, outID)
	require.True(t, got.InaccessibleIncomingTransactions.Contains(inaccessible))
}
