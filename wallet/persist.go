package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/iotago/codec"
	"github.com/shimmerkit/ledgersdk/store"
)

// walletDataJSON is the wire shape persisted under store.WalletDataKey.
// Output/Address/Transaction values are interfaces backed by the
// canonical Ledger-Types encoding, so they round-trip as 0x-hex blobs
// rather than struct fields (spec §6: "Byte-typed fields are serialized
// as 0x-prefixed hex").
type walletDataJSON struct {
	SchemaVersion int    `json:"schemaVersion"`
	Address       string `json:"address"`
	Bech32HRP     string `json:"bech32Hrp"`
	CoinType      uint32 `json:"coinType"`
	Alias         string `json:"alias"`

	Outputs          []utxoJSON          `json:"outputs"`
	UnspentOutputIDs []string            `json:"unspentOutputIds"`
	SpentMetadata    map[string]spentJSON `json:"spentMetadata"`

	Transactions                     map[string]string              `json:"transactions"`
	PendingTransactions              []pendingTransactionJSON        `json:"pendingTransactions"`
	IncomingTransactions             []incomingTransactionJSON       `json:"incomingTransactions"`
	InaccessibleIncomingTransactions []string                        `json:"inaccessibleIncomingTransactions"`
	LockedOutputIDs                  []string                        `json:"lockedOutputIds"`
}

type utxoJSON struct {
	OutputID string `json:"outputId"`
	Output   string `json:"output"`
}

type spentJSON struct {
	Slot          uint32 `json:"slot"`
	TransactionID string `json:"transactionId"`
}

type pendingTransactionJSON struct {
	TransactionID  string   `json:"transactionId"`
	Transaction    string   `json:"transaction"`
	ConsumedInputs []string `json:"consumedInputs"`
	SignedBlock    string   `json:"signedBlock,omitempty"`
}

type incomingTransactionJSON struct {
	TransactionID string     `json:"transactionId"`
	Transaction   string     `json:"transaction"`
	Inputs        []utxoJSON `json:"inputs"`
}

func hexEncode(b []byte) string { return "0x" + hex.EncodeToString(b) }

func hexDecode(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

func encodeAddress(a iotago.Address) (string, error) {
	w := codec.NewWriter()
	if err := a.Pack(w); err != nil {
		return "", err
	}
	return hexEncode(w.Bytes()), nil
}

func decodeAddress(s string) (iotago.Address, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, err
	}
	return iotago.DecodeAddress(codec.NewReader(b))
}

func encodeOutput(o iotago.Output) (string, error) {
	w := codec.NewWriter()
	if err := o.Pack(w); err != nil {
		return "", err
	}
	return hexEncode(w.Bytes()), nil
}

func decodeOutput(s string) (iotago.Output, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, err
	}
	return iotago.DecodeOutput(codec.NewReader(b))
}

func encodeUTXO(u iotago.UTXO) (utxoJSON, error) {
	out, err := encodeOutput(u.Output)
	if err != nil {
		return utxoJSON{}, err
	}
	return utxoJSON{OutputID: hexEncode(u.OutputID.Bytes()), Output: out}, nil
}

func decodeUTXO(j utxoJSON) (iotago.UTXO, error) {
	idBytes, err := hexDecode(j.OutputID)
	if err != nil {
		return iotago.UTXO{}, err
	}
	outID, err := ids.OutputIDFromBytes(idBytes)
	if err != nil {
		return iotago.UTXO{}, err
	}
	out, err := decodeOutput(j.Output)
	if err != nil {
		return iotago.UTXO{}, err
	}
	return iotago.UTXO{OutputID: outID, Output: out}, nil
}

func encodeTransaction(tx *iotago.Transaction) (string, error) {
	b, err := tx.EssenceBytes()
	if err != nil {
		return "", err
	}
	return hexEncode(b), nil
}

func decodeTransaction(s string) (*iotago.Transaction, error) {
	b, err := hexDecode(s)
	if err != nil {
		return nil, err
	}
	tx := &iotago.Transaction{}
	if err := tx.Unpack(codec.NewReader(b)); err != nil {
		return nil, err
	}
	return tx, nil
}

func encodeIDHex(id ids.ID) string { return hexEncode(id[:]) }

func decodeIDHex(s string) (ids.ID, error) {
	b, err := hexDecode(s)
	if err != nil {
		return ids.Empty, err
	}
	return ids.FromBytes(b)
}

// marshalWalletData serializes data into the bytes stored under
// store.WalletDataKey.
func marshalWalletData(data *store.WalletData) ([]byte, error) {
	addr, err := encodeAddress(data.Address)
	if err != nil {
		return nil, err
	}

	j := walletDataJSON{
		SchemaVersion:                    data.SchemaVersion,
		Address:                          addr,
		Bech32HRP:                        data.Bech32HRP,
		CoinType:                         data.CoinType,
		Alias:                            data.Alias,
		SpentMetadata:                    make(map[string]spentJSON, len(data.SpentMetadata)),
		Transactions:                     make(map[string]string, len(data.Transactions)),
	}

	for outID, u := range data.Outputs {
		encoded, err := encodeUTXO(u)
		if err != nil {
			return nil, err
		}
		encoded.OutputID = hexEncode(outID.Bytes())
		j.Outputs = append(j.Outputs, encoded)
	}
	for outID := range data.UnspentOutputs {
		j.UnspentOutputIDs = append(j.UnspentOutputIDs, hexEncode(outID.Bytes()))
	}
	for outID, sm := range data.SpentMetadata {
		j.SpentMetadata[hexEncode(outID.Bytes())] = spentJSON{Slot: sm.Slot, TransactionID: encodeIDHex(sm.TransactionID)}
	}
	for txID, tx := range data.Transactions {
		encoded, err := encodeTransaction(tx)
		if err != nil {
			return nil, err
		}
		j.Transactions[encodeIDHex(txID)] = encoded
	}
	for txID, p := range data.PendingTransactions {
		encoded, err := encodeTransaction(p.Transaction)
		if err != nil {
			return nil, err
		}
		pj := pendingTransactionJSON{TransactionID: encodeIDHex(txID), Transaction: encoded}
		if len(p.SignedBlock) > 0 {
			pj.SignedBlock = hexEncode(p.SignedBlock)
		}
		for _, outID := range p.ConsumedInputs {
			pj.ConsumedInputs = append(pj.ConsumedInputs, hexEncode(outID.Bytes()))
		}
		j.PendingTransactions = append(j.PendingTransactions, pj)
	}
	for txID, in := range data.IncomingTransactions {
		encoded, err := encodeTransaction(in.Transaction)
		if err != nil {
			return nil, err
		}
		ij := incomingTransactionJSON{TransactionID: encodeIDHex(txID), Transaction: encoded}
		for _, u := range in.Inputs {
			eu, err := encodeUTXO(u)
			if err != nil {
				return nil, err
			}
			ij.Inputs = append(ij.Inputs, eu)
		}
		j.IncomingTransactions = append(j.IncomingTransactions, ij)
	}
	for txID := range data.InaccessibleIncomingTransactions {
		j.InaccessibleIncomingTransactions = append(j.InaccessibleIncomingTransactions, encodeIDHex(txID))
	}
	for outID := range data.LockedOutputs {
		j.LockedOutputIDs = append(j.LockedOutputIDs, hexEncode(outID.Bytes()))
	}

	return json.Marshal(j)
}

// unmarshalWalletData is the inverse of marshalWalletData, used when
// loading a wallet from its KVStore.
func unmarshalWalletData(raw []byte) (*store.WalletData, error) {
	var j walletDataJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, err
	}

	addr, err := decodeAddress(j.Address)
	if err != nil {
		return nil, fmt.Errorf("wallet: decode address: %w", err)
	}

	data := store.NewWalletData(addr, j.Bech32HRP, j.CoinType)
	data.SchemaVersion = j.SchemaVersion
	data.Alias = j.Alias

	for _, ju := range j.Outputs {
		u, err := decodeUTXO(ju)
		if err != nil {
			return nil, err
		}
		data.Outputs[u.OutputID] = u
	}
	for _, s := range j.UnspentOutputIDs {
		b, err := hexDecode(s)
		if err != nil {
			return nil, err
		}
		outID, err := ids.OutputIDFromBytes(b)
		if err != nil {
			return nil, err
		}
		if u, ok := data.Outputs[outID]; ok {
			data.UnspentOutputs[outID] = u
		}
	}
	for key, sm := range j.SpentMetadata {
		b, err := hexDecode(key)
		if err != nil {
			return nil, err
		}
		outID, err := ids.OutputIDFromBytes(b)
		if err != nil {
			return nil, err
		}
		txID, err := decodeIDHex(sm.TransactionID)
		if err != nil {
			return nil, err
		}
		data.SpentMetadata[outID] = store.SpentMetadata{Slot: sm.Slot, TransactionID: txID}
	}
	for key, txHex := range j.Transactions {
		txID, err := decodeIDHex(key)
		if err != nil {
			return nil, err
		}
		tx, err := decodeTransaction(txHex)
		if err != nil {
			return nil, err
		}
		data.Transactions[txID] = tx
	}
	for _, pj := range j.PendingTransactions {
		txID, err := decodeIDHex(pj.TransactionID)
		if err != nil {
			return nil, err
		}
		tx, err := decodeTransaction(pj.Transaction)
		if err != nil {
			return nil, err
		}
		p := store.PendingTransaction{TransactionID: txID, Transaction: tx}
		if pj.SignedBlock != "" {
			b, err := hexDecode(pj.SignedBlock)
			if err != nil {
				return nil, err
			}
			p.SignedBlock = b
		}
		for _, s := range pj.ConsumedInputs {
			b, err := hexDecode(s)
			if err != nil {
				return nil, err
			}
			outID, err := ids.OutputIDFromBytes(b)
			if err != nil {
				return nil, err
			}
			p.ConsumedInputs = append(p.ConsumedInputs, outID)
		}
		data.PendingTransactions[txID] = p
	}
	for _, ij := range j.IncomingTransactions {
		txID, err := decodeIDHex(ij.TransactionID)
		if err != nil {
			return nil, err
		}
		tx, err := decodeTransaction(ij.Transaction)
		if err != nil {
			return nil, err
		}
		in := store.IncomingTransaction{TransactionID: txID, Transaction: tx}
		for _, ju := range ij.Inputs {
			u, err := decodeUTXO(ju)
			if err != nil {
				return nil, err
			}
			in.Inputs = append(in.Inputs, u)
		}
		data.IncomingTransactions[txID] = in
	}
	for _, s := range j.InaccessibleIncomingTransactions {
		txID, err := decodeIDHex(s)
		if err != nil {
			return nil, err
		}
		data.InaccessibleIncomingTransactions.Add(txID)
	}
	for _, s := range j.LockedOutputIDs {
		b, err := hexDecode(s)
		if err != nil {
			return nil, err
		}
		outID, err := ids.OutputIDFromBytes(b)
		if err != nil {
			return nil, err
		}
		data.LockedOutputs[outID] = struct{}{}
	}

	return data, nil
}
