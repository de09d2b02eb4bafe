package wallet

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/client"
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/mocks"
	"github.com/shimmerkit/ledgersdk/store"
)

func testParams() iotago.ProtocolParameters {
	return iotago.ProtocolParameters{
		NetworkName: "test",
		Storage: iotago.StorageScoreParameters{
			FactorData:   1,
			OffsetOutput: 10,
			StorageCost:  100,
		},
	}
}

// Fan-out (spec §4.3 steps 1-3): a lone Ed25519 address with one Basic
// output should be discovered and recorded as unspent.
func TestSyncerFanOutDiscoversBasicOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockNodeClient(ctrl)

	owner := testAddr(0x01)
	data := store.NewWalletData(owner, "smr", 4218)
	outID := testOutputID(0x10, 0)
	u := iotago.UTXO{OutputID: outID, Output: iotago.NewBasicOutput(1_000_000, owner)}

	mc.EXPECT().IndexerQuery(gomock.Any(), gomock.Any()).Return([]ids.OutputID{outID}, nil).AnyTimes()
	mc.EXPECT().Outputs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, reqIDs []ids.OutputID) ([]iotago.UTXO, error) {
			if len(reqIDs) == 0 {
				return nil, nil
			}
			return []iotago.UTXO{u}, nil
		}).AnyTimes()
	mc.EXPECT().OutputsMetadata(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().IncludedBlock(gomock.Any(), gomock.Any()).Return(nil, client.ErrNotFound).AnyTimes()

	s := NewSyncer(mc, testParams(), nil, nil)
	err := s.Sync(context.Background(), data, SyncOptions{ForceSyncing: true})
	require.NoError(t, err)

	require.Contains(t, data.UnspentOutputs, outID)
	require.Equal(t, uint64(1_000_000), data.UnspentOutputs[outID].Output.Amount())
}

// Metadata reconciliation (spec §4.3 step 4): an output no longer returned
// by the indexer but reported spent must move out of UnspentOutputs and
// leave SpentMetadata behind.
func TestSyncerReconcileMetadataMarksSpent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockNodeClient(ctrl)

	owner := testAddr(0x02)
	data := store.NewWalletData(owner, "smr", 4218)
	outID := testOutputID(0x20, 0)
	data.Outputs[outID] = iotago.UTXO{OutputID: outID, Output: iotago.NewBasicOutput(500_000, owner)}
	data.UnspentOutputs[outID] = data.Outputs[outID]

	var spender ids.ID
	spender[0] = 0x99

	mc.EXPECT().IndexerQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().Outputs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().OutputsMetadata(gomock.Any(), []ids.OutputID{outID}).Return([]client.OutputMetadata{
		{OutputID: outID, Spent: &client.SpentMetadata{Slot: 7, TransactionID: spender}},
	}, nil)

	s := NewSyncer(mc, testParams(), nil, nil)
	err := s.Sync(context.Background(), data, SyncOptions{ForceSyncing: true})
	require.NoError(t, err)

	require.NotContains(t, data.UnspentOutputs, outID)
	sm, ok := data.SpentMetadata[outID]
	require.True(t, ok)
	require.Equal(t, uint32(7), sm.Slot)
	require.Equal(t, spender, sm.TransactionID)
}

// Foundry lookup (spec §4.3 step 6): a native token held in an unspent
// output resolves its minting foundry via ChainOutput and caches it.
func TestSyncerLookupFoundries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockNodeClient(ctrl)

	owner := testAddr(0x03)
	data := store.NewWalletData(owner, "smr", 4218)

	accountAddr := &iotago.AccountAddress{ID: ids.ID{0xAC}}
	foundry := iotago.NewFoundryOutput(1_000_000, accountAddr, 1, iotago.SimpleTokenScheme{})
	foundryID, err := foundry.FoundryID()
	require.NoError(t, err)

	heldOutID := testOutputID(0x30, 0)
	heldOutput := iotago.NewBasicOutput(500_000, owner)
	heldOutput.Tokens = []iotago.NativeToken{{ID: foundryID}}
	data.Outputs[heldOutID] = iotago.UTXO{OutputID: heldOutID, Output: heldOutput}
	data.UnspentOutputs[heldOutID] = data.Outputs[heldOutID]

	foundryOutID := testOutputID(0x31, 0)

	mc.EXPECT().IndexerQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().Outputs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().OutputsMetadata(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().ChainOutput(gomock.Any(), ids.ID(foundryID)).Return(&iotago.UTXO{OutputID: foundryOutID, Output: foundry}, nil)
	mc.EXPECT().IncludedBlock(gomock.Any(), gomock.Any()).Return(nil, client.ErrNotFound).AnyTimes()

	s := NewSyncer(mc, testParams(), nil, nil)
	err = s.Sync(context.Background(), data, SyncOptions{ForceSyncing: true})
	require.NoError(t, err)

	require.Contains(t, data.Outputs, foundryOutID)
}

// Pending-transaction tracker (spec §4.3, §8 "pending-to-confirmed"): once
// the produced output is observed unspent, a pending transaction resolves
// to Confirmed and its locked inputs are released.
func TestSyncerReconcilePendingConfirmsOnProducedOutputObserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockNodeClient(ctrl)

	owner := testAddr(0x04)
	data := store.NewWalletData(owner, "smr", 4218)

	var txID ids.ID
	txID[0] = 0x40
	producedOutID := ids.OutputID{TransactionID: txID, Index: 0}
	consumedOutID := testOutputID(0x41, 0)

	data.Outputs[producedOutID] = iotago.UTXO{OutputID: producedOutID, Output: iotago.NewBasicOutput(100, owner)}
	data.UnspentOutputs[producedOutID] = data.Outputs[producedOutID]
	data.PendingTransactions[txID] = store.PendingTransaction{
		TransactionID:  txID,
		Transaction:    &iotago.Transaction{Outputs: []iotago.Output{iotago.NewBasicOutput(100, owner)}},
		ConsumedInputs: []ids.OutputID{consumedOutID},
	}
	data.LockedOutputs[consumedOutID] = struct{}{}

	mc.EXPECT().IndexerQuery(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().Outputs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().OutputsMetadata(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mc.EXPECT().IncludedBlock(gomock.Any(), gomock.Any()).Return(nil, client.ErrNotFound).AnyTimes()

	s := NewSyncer(mc, testParams(), nil, nil)
	err := s.Sync(context.Background(), data, SyncOptions{ForceSyncing: true})
	require.NoError(t, err)

	require.NotContains(t, data.PendingTransactions, txID)
	require.NotContains(t, data.LockedOutputs, consumedOutID)
}
