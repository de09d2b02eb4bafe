package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shimmerkit/ledgersdk/iotago"
)

func TestNewWalletDataInitializesCollections(t *testing.T) {
	var owner iotago.Ed25519Address
	owner.PubKeyHash[0] = 0x01

	data := NewWalletData(&owner, "smr", 4218)

	require.Equal(t, CurrentSchemaVersion, data.SchemaVersion)
	require.NotNil(t, data.Outputs)
	require.NotNil(t, data.UnspentOutputs)
	require.NotNil(t, data.SpentMetadata)
	require.NotNil(t, data.Transactions)
	require.NotNil(t, data.PendingTransactions)
	require.NotNil(t, data.IncomingTransactions)
	require.NotNil(t, data.InaccessibleIncomingTransactions)
	require.NotNil(t, data.LockedOutputs)
}

func TestMigrateIfNeededRejectsNewerSchema(t *testing.T) {
	_, err := MigrateIfNeeded([]byte(`{"schemaVersion": 999}`))
	require.Error(t, err)
}

func TestMigrateIfNeededPassesThroughCurrentSchema(t *testing.T) {
	raw := []byte(`{"schemaVersion": 1}`)
	out, err := MigrateIfNeeded(raw)
	require.NoError(t, err)
	require.Equal(t, raw, out)
}

func TestMigrateIfNeededEmptyInput(t *testing.T) {
	out, err := MigrateIfNeeded(nil)
	require.NoError(t, err)
	require.Nil(t, out)
}
