package iotago

import "github.com/shimmerkit/ledgersdk/ids"

// UTXO pairs an OutputID with the Output it created — the unit the Syncer
// stores and the TxBuilder's available-inputs pool is made of (spec §3,
// §4.2, §4.3).
type UTXO struct {
	OutputID ids.OutputID
	Output   Output
}

// BlockID = blake2b-256(block_bytes) || slot_index_le (spec §4.1).
type BlockID struct {
	Hash  ids.ID
	Slot  uint32
}

func (b BlockID) Bytes() []byte {
	buf := make([]byte, 36)
	copy(buf, b.Hash[:])
	buf[32] = byte(b.Slot)
	buf[33] = byte(b.Slot >> 8)
	buf[34] = byte(b.Slot >> 16)
	buf[35] = byte(b.Slot >> 24)
	return buf
}
