package wallet

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/client"
	"github.com/shimmerkit/ledgersdk/config"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/mocks"
	"github.com/shimmerkit/ledgersdk/secretmanager"
	"github.com/shimmerkit/ledgersdk/store"
)

func testWalletOptions() config.WalletOptions {
	return config.WalletOptions{CoinType: 4218, AccountIndex: 0, Bech32HRP: "smr", MinSyncInterval: 0}
}

// Open provisions a fresh wallet by asking the secret manager for its
// first address when the KVStore has nothing persisted yet.
func TestOpenProvisionsFreshWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	mc := mocks.NewMockNodeClient(ctrl)
	sm := mocks.NewMockSecretManager(ctrl)

	owner := testAddr(0x50)

	kv.EXPECT().Get(store.WalletDataKey).Return(nil, store.ErrNotFound)
	sm.EXPECT().GenerateEd25519Addresses(gomock.Any(), uint32(4218), uint32(0), uint32(0), uint32(1), false).
		Return([]iotago.Address{owner}, nil)
	mc.EXPECT().Info(gomock.Any()).Return(&client.Info{NetworkName: "test", Params: testParams()}, nil)

	w, err := Open(context.Background(), kv, mc, sm, testWalletOptions(), nil)
	require.NoError(t, err)
	require.Equal(t, owner.Key(), w.data.Address.Key())
}

// Send builds, signs, submits, and tracks a transaction, locking its
// consumed inputs for the duration and releasing nothing on success
// (spec §5: inputs stay locked until a later sync confirms them).
func TestWalletSendHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	mc := mocks.NewMockNodeClient(ctrl)
	sm := mocks.NewMockSecretManager(ctrl)

	owner := testAddr(0x60)
	inputOutID := testOutputID(0x61, 0)
	data := store.NewWalletData(owner, "smr", 4218)
	data.UnspentOutputs[inputOutID] = iotago.UTXO{OutputID: inputOutID, Output: iotago.NewBasicOutput(2_000_000, owner)}
	data.Outputs[inputOutID] = data.UnspentOutputs[inputOutID]

	raw, err := marshalWalletData(data)
	require.NoError(t, err)
	kv.EXPECT().Get(store.WalletDataKey).Return(raw, nil)
	mc.EXPECT().Info(gomock.Any()).Return(&client.Info{NetworkName: "test", Params: testParams()}, nil).AnyTimes()

	w, err := Open(context.Background(), kv, mc, sm, testWalletOptions(), nil)
	require.NoError(t, err)

	recipient := testAddr(0x62)
	desired := []iotago.Output{iotago.NewBasicOutput(1_000_000, recipient)}

	sm.EXPECT().SignTransaction(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ []byte, paths []secretmanager.BIP44Path) ([]iotago.Unlock, error) {
			return []iotago.Unlock{{Kind: iotago.UnlockSignature, Ed25519: &iotago.Ed25519Signature{}}}, nil
		})
	mc.EXPECT().SubmitBlock(gomock.Any(), gomock.Any()).Return(iotago.BlockID{}, nil)
	kv.EXPECT().Set(store.WalletDataKey, gomock.Any()).Return(nil)

	tx, err := w.Send(context.Background(), desired, nil, 1)
	require.NoError(t, err)
	require.Len(t, tx.Inputs, 1)
	require.Equal(t, inputOutID, tx.Inputs[0].UTXOID)

	txID, err := tx.ID()
	require.NoError(t, err)
	require.Contains(t, w.data.PendingTransactions, txID)
	require.Contains(t, w.data.LockedOutputs, inputOutID)
}

// releaseLocks unwinds a failed Send's input locks (spec §5), so a later
// Send over the same inputs isn't permanently blocked.
func TestWalletReleaseLocksOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	mc := mocks.NewMockNodeClient(ctrl)
	sm := mocks.NewMockSecretManager(ctrl)

	owner := testAddr(0x70)
	inputOutID := testOutputID(0x71, 0)
	data := store.NewWalletData(owner, "smr", 4218)
	data.UnspentOutputs[inputOutID] = iotago.UTXO{OutputID: inputOutID, Output: iotago.NewBasicOutput(2_000_000, owner)}
	data.Outputs[inputOutID] = data.UnspentOutputs[inputOutID]

	raw, err := marshalWalletData(data)
	require.NoError(t, err)
	kv.EXPECT().Get(store.WalletDataKey).Return(raw, nil)
	mc.EXPECT().Info(gomock.Any()).Return(&client.Info{NetworkName: "test", Params: testParams()}, nil).AnyTimes()

	w, err := Open(context.Background(), kv, mc, sm, testWalletOptions(), nil)
	require.NoError(t, err)

	recipient := testAddr(0x72)
	desired := []iotago.Output{iotago.NewBasicOutput(1_000_000, recipient)}

	sm.EXPECT().SignTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

	_, err = w.Send(context.Background(), desired, nil, 1)
	require.Error(t, err)
	require.Empty(t, w.data.LockedOutputs)
}
