package wallet

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shimmerkit/ledgersdk/client"
	"github.com/shimmerkit/ledgersdk/config"
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/iotago/codec"
	"github.com/shimmerkit/ledgersdk/logging"
	"github.com/shimmerkit/ledgersdk/secretmanager"
	"github.com/shimmerkit/ledgersdk/store"
	"github.com/shimmerkit/ledgersdk/txbuilder"
)

// Wallet is the façade spec §5 describes: a single mutable WalletData
// guarded by one lock, a Syncer that collapses concurrent Sync calls
// into one, and a Send path that locks its selected inputs before it
// ever releases the write lock, so a second concurrent Send cannot
// double-select them.
type Wallet struct {
	kv            store.KVStore
	client        client.NodeClient
	secretManager secretmanager.SecretManager
	syncer        *Syncer
	logger        logging.Logger
	opts          config.WalletOptions

	mu   sync.RWMutex
	data *store.WalletData

	// addressPaths maps an address's Key() to the BIP-44 path that
	// derives it, so Send knows which path to hand the secret manager for
	// each Signature unlock hint without ever serializing the path as a
	// string (design notes §9).
	addressPaths map[string]secretmanager.BIP44Path

	syncGroup singleflight.Group
}

// Open loads an existing wallet from kv, or provisions a fresh one (one
// freshly generated Ed25519 address at index 0) if none is persisted yet.
func Open(ctx context.Context, kv store.KVStore, c client.NodeClient, sm secretmanager.SecretManager, opts config.WalletOptions, logger logging.Logger) (*Wallet, error) {
	if logger == nil {
		logger = logging.NoLog{}
	}

	data, err := loadOrInit(ctx, kv, sm, opts)
	if err != nil {
		return nil, err
	}

	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		kv:            kv,
		client:        c,
		secretManager: sm,
		syncer:        NewSyncer(c, info.Params, logger, nil),
		logger:        logger,
		opts:          opts,
		data:          data,
		addressPaths:  make(map[string]secretmanager.BIP44Path),
	}
	w.syncer.minSyncInterval = opts.MinSyncInterval
	w.addressPaths[data.Address.Key()] = secretmanager.BIP44Path{CoinType: opts.CoinType, Account: opts.AccountIndex}

	w.recoverLocks()

	return w, nil
}

func loadOrInit(ctx context.Context, kv store.KVStore, sm secretmanager.SecretManager, opts config.WalletOptions) (*store.WalletData, error) {
	raw, err := kv.Get(store.WalletDataKey)
	switch err {
	case nil:
		migrated, err := store.MigrateIfNeeded(raw)
		if err != nil {
			return nil, err
		}
		return unmarshalWalletData(migrated)
	case store.ErrNotFound:
		addrs, err := sm.GenerateEd25519Addresses(ctx, opts.CoinType, opts.AccountIndex, 0, 1, false)
		if err != nil {
			return nil, err
		}
		if len(addrs) == 0 {
			return nil, fmt.Errorf("wallet: secret manager returned no addresses")
		}
		return store.NewWalletData(addrs[0], opts.Bech32HRP, opts.CoinType), nil
	default:
		return nil, err
	}
}

// recoverLocks drops a LockedOutputs entry left over from a process crash
// between Send's input-lock step and its PendingTransactions commit: if
// no pending transaction actually references the output, the lock is
// stale (spec §5: "crash-consistent unlocking at startup").
func (w *Wallet) recoverLocks() {
	referenced := make(map[ids.OutputID]struct{})
	for _, p := range w.data.PendingTransactions {
		for _, outID := range p.ConsumedInputs {
			referenced[outID] = struct{}{}
		}
	}
	for outID := range w.data.LockedOutputs {
		if _, ok := referenced[outID]; !ok {
			delete(w.data.LockedOutputs, outID)
		}
	}
}

// Sync runs one pass of the wallet-sync algorithm (spec §4.3), coalescing
// any concurrent callers into a single underlying pass.
func (w *Wallet) Sync(ctx context.Context, opts SyncOptions) error {
	_, err, _ := w.syncGroup.Do("sync", func() (interface{}, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		if err := w.syncer.Sync(ctx, w.data, opts); err != nil {
			return nil, err
		}
		if err := w.persistLocked(); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Balance returns the wallet's balance snapshot as of the last Sync,
// evaluated against currentSlot (needed to resolve timelocks).
func (w *Wallet) Balance(currentSlot uint32) *Balance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.syncer.Balance(w.data, currentSlot)
}

// persistLocked serializes w.data and writes it to the KVStore. Callers
// must hold w.mu (read or write; Set is assumed safe to call without
// additional synchronization by the KVStore implementation).
func (w *Wallet) persistLocked() error {
	raw, err := marshalWalletData(w.data)
	if err != nil {
		return err
	}
	return w.kv.Set(store.WalletDataKey, raw)
}

// signerAddressesLocked returns every address this wallet can unlock: its
// primary address and the addresses of any owned Account/NFT chain
// outputs. Must be called with w.mu held.
func (w *Wallet) signerAddressesLocked() []iotago.Address {
	addrs := []iotago.Address{w.data.Address}
	for _, u := range w.data.UnspentOutputs {
		switch o := u.Output.(type) {
		case *iotago.AccountOutput:
			addrs = append(addrs, &iotago.AccountAddress{ID: o.AccountIDVal})
		case *iotago.NFTOutput:
			addrs = append(addrs, &iotago.NFTAddress{ID: o.NFTIDVal})
		}
	}
	return addrs
}

func networkIDFromName(name string) uint64 {
	h := ids.Blake2b256([]byte(name))
	return binary.LittleEndian.Uint64(h[:8])
}

// Send builds, signs, and submits a transaction paying outputs, burning
// burn (nil for none). It locks its selected inputs under w.mu before
// ever returning, so a concurrent Send cannot double-spend them; if
// signing or submission fails, the lock is released (spec §5).
func (w *Wallet) Send(ctx context.Context, outputs []iotago.Output, burn *txbuilder.Burn, creationSlot uint32) (*iotago.Transaction, error) {
	info, err := w.client.Info(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	available := make([]iotago.UTXO, 0, len(w.data.UnspentOutputs))
	for outID, u := range w.data.UnspentOutputs {
		if _, locked := w.data.LockedOutputs[outID]; locked {
			continue
		}
		available = append(available, u)
	}
	signerAddrs := w.signerAddressesLocked()
	remainderAddr := w.data.Address

	backend := txbuilder.Backend{
		Params:           info.Params,
		NetworkID:        networkIDFromName(info.NetworkName),
		RemainderAddress: remainderAddr,
		CreationSlot:     creationSlot,
		TargetSlot:       creationSlot,
		Log:              w.logger,
	}
	builder := txbuilder.NewBuilder(backend, signerAddrs)

	prepared, err := builder.Build(outputs, burn, available)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	consumedIDs := make([]ids.OutputID, len(prepared.ConsumedOutputs))
	for i, u := range prepared.ConsumedOutputs {
		w.data.LockedOutputs[u.OutputID] = struct{}{}
		consumedIDs[i] = u.OutputID
	}
	w.mu.Unlock()

	tx, signedBlock, err := w.signAndSubmit(ctx, prepared)
	if err != nil {
		w.releaseLocks(consumedIDs)
		return nil, err
	}

	txID, err := tx.ID()
	if err != nil {
		w.releaseLocks(consumedIDs)
		return nil, err
	}

	w.mu.Lock()
	w.data.PendingTransactions[txID] = store.PendingTransaction{
		TransactionID:  txID,
		Transaction:    tx,
		ConsumedInputs: consumedIDs,
		SignedBlock:    signedBlock,
	}
	persistErr := w.persistLocked()
	w.mu.Unlock()
	if persistErr != nil {
		return nil, persistErr
	}

	return tx, nil
}

func (w *Wallet) releaseLocks(outIDs []ids.OutputID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, outID := range outIDs {
		delete(w.data.LockedOutputs, outID)
	}
}

// signAndSubmit assembles the final per-input Unlock list from
// prepared.UnlockHints (querying the secret manager only for the
// addresses that actually need a Signature unlock), packs the signed
// payload, and submits it.
func (w *Wallet) signAndSubmit(ctx context.Context, prepared *txbuilder.PreparedTransaction) (*iotago.Transaction, []byte, error) {
	essence, err := prepared.Transaction.EssenceBytes()
	if err != nil {
		return nil, nil, err
	}

	var paths []secretmanager.BIP44Path
	w.mu.RLock()
	for _, h := range prepared.UnlockHints {
		if h.Kind != iotago.UnlockSignature {
			continue
		}
		path, ok := w.addressPaths[h.Address.Key()]
		if !ok {
			w.mu.RUnlock()
			return nil, nil, fmt.Errorf("wallet: no known derivation path for unlock address")
		}
		paths = append(paths, path)
	}
	w.mu.RUnlock()

	sigUnlocks, err := w.secretManager.SignTransaction(ctx, essence, paths)
	if err != nil {
		return nil, nil, err
	}
	if len(sigUnlocks) != len(paths) {
		return nil, nil, fmt.Errorf("wallet: secret manager returned %d unlocks for %d signature paths", len(sigUnlocks), len(paths))
	}

	sigPos := 0
	var buildUnlock func(h txbuilder.UnlockHint) (iotago.Unlock, error)
	buildUnlock = func(h txbuilder.UnlockHint) (iotago.Unlock, error) {
		switch h.Kind {
		case iotago.UnlockSignature:
			u := sigUnlocks[sigPos]
			sigPos++
			return u, nil
		case iotago.UnlockReference, iotago.UnlockAccount, iotago.UnlockNFT:
			return iotago.Unlock{Kind: h.Kind, Reference: h.Reference}, nil
		case iotago.UnlockMulti:
			sub := make([]iotago.Unlock, len(h.SubHints))
			for i, sh := range h.SubHints {
				u, err := buildUnlock(sh)
				if err != nil {
					return iotago.Unlock{}, err
				}
				sub[i] = u
			}
			return iotago.Unlock{Kind: iotago.UnlockMulti, SubUnlocks: sub}, nil
		default:
			return iotago.Unlock{}, fmt.Errorf("wallet: unknown unlock hint kind %v", h.Kind)
		}
	}

	unlocks := make([]iotago.Unlock, len(prepared.UnlockHints))
	for i, h := range prepared.UnlockHints {
		u, err := buildUnlock(h)
		if err != nil {
			return nil, nil, err
		}
		unlocks[i] = u
	}

	payload := &iotago.TransactionPayload{Transaction: prepared.Transaction, Unlocks: unlocks}
	w2 := codec.NewWriter()
	if err := payload.Pack(w2); err != nil {
		return nil, nil, err
	}
	blockBytes := w2.Bytes()

	if _, err := w.client.SubmitBlock(ctx, blockBytes); err != nil {
		return nil, nil, err
	}

	return prepared.Transaction, blockBytes, nil
}

// ReissueUntilIncluded resubmits txID's already-signed block on interval
// until a Sync observes it Confirmed (the pending transaction is no
// longer tracked) or attempts is exhausted, mirroring the retry loop
// original_source/sdk/src/wallet/operations/syncing/transactions.rs runs
// after a submission the node doesn't promptly include.
func (w *Wallet) ReissueUntilIncluded(ctx context.Context, txID ids.ID, interval time.Duration, attempts int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 0; attempts <= 0 || attempt < attempts; attempt++ {
		w.mu.RLock()
		pend, stillPending := w.data.PendingTransactions[txID]
		w.mu.RUnlock()
		if !stillPending {
			return nil
		}

		if len(pend.SignedBlock) > 0 {
			if _, err := w.client.SubmitBlock(ctx, pend.SignedBlock); err != nil {
				w.logger.Warn("reissue: submit failed", "txID", txID.String(), "err", err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := w.Sync(ctx, SyncOptions{ForceSyncing: true}); err != nil {
			return err
		}
	}

	return fmt.Errorf("wallet: transaction %s not included after %d reissue attempts", txID, attempts)
}
