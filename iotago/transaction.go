package iotago

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// Input references a previously created output by its OutputID.
type Input struct {
	UTXOID ids.OutputID
}

func (in Input) Pack(w *codec.Writer) error {
	w.WriteFixedBytes(in.UTXOID.Bytes())
	return nil
}

func (in *Input) Unpack(r *codec.Reader) error {
	b, err := r.ReadFixedBytes(34)
	if err != nil {
		return err
	}
	id, err := ids.OutputIDFromBytes(b)
	if err != nil {
		return err
	}
	in.UTXOID = id
	return nil
}

// ContextInputKind tags the context-input sum type of spec §3.
type ContextInputKind byte

const (
	ContextInputCommitment ContextInputKind = iota
	ContextInputBlockIssuanceCredit
	ContextInputReward
)

// ContextInput carries a commitment id, an account id (for BIC), or an
// input index (for a mana reward claim).
type ContextInput struct {
	Kind          ContextInputKind
	CommitmentID  ids.ID
	AccountID     ids.ID
	RewardInputIx uint16
}

func (c ContextInput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(c.Kind))
	switch c.Kind {
	case ContextInputCommitment:
		w.WriteFixedBytes(c.CommitmentID[:])
	case ContextInputBlockIssuanceCredit:
		w.WriteFixedBytes(c.AccountID[:])
	case ContextInputReward:
		w.WriteUint16(c.RewardInputIx)
	}
	return nil
}

func (c *ContextInput) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	c.Kind = ContextInputKind(kind)
	switch c.Kind {
	case ContextInputCommitment:
		b, err := r.ReadFixedBytes(32)
		if err != nil {
			return err
		}
		copy(c.CommitmentID[:], b)
	case ContextInputBlockIssuanceCredit:
		b, err := r.ReadFixedBytes(32)
		if err != nil {
			return err
		}
		copy(c.AccountID[:], b)
	case ContextInputReward:
		if c.RewardInputIx, err = r.ReadUint16(); err != nil {
			return err
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

// Allotment allots mana to an account's block-issuer credit balance.
type Allotment struct {
	AccountID ids.ID
	Mana      uint64
}

func (a Allotment) Pack(w *codec.Writer) error {
	w.WriteFixedBytes(a.AccountID[:])
	w.WriteUint64(a.Mana)
	return nil
}

func (a *Allotment) Unpack(r *codec.Reader) error {
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(a.AccountID[:], b)
	mana, err := r.ReadUint64()
	if err != nil {
		return err
	}
	a.Mana = mana
	return nil
}

// Transaction is the essence of spec §3: everything that is hashed to
// produce the TransactionID, excluding unlocks.
type Transaction struct {
	NetworkID     uint64
	CreationSlot  uint32
	Inputs        []Input
	Outputs       []Output
	ContextInputs []ContextInput
	Allotments    []Allotment
	Capabilities  Capabilities
	Payload       []byte
}

// InputsCommitment is blake2b-256 over the concatenated canonical
// serializations of the consumed outputs, in input order (spec §3).
func InputsCommitment(consumed []Output) ids.ID {
	w := codec.NewWriter()
	for _, o := range consumed {
		w.WriteFixedBytes(MustEncodeOutput(o))
	}
	return ids.Blake2b256(w.Bytes())
}

// Pack writes the canonical essence encoding (excludes unlocks).
func (tx *Transaction) Pack(w *codec.Writer) error {
	w.WriteUint64(tx.NetworkID)
	w.WriteUint32(tx.CreationSlot)

	if err := w.WriteCount16(len(tx.Inputs)); err != nil {
		return err
	}
	for _, in := range tx.Inputs {
		if err := in.Pack(w); err != nil {
			return err
		}
	}

	if err := w.WriteCount16(len(tx.ContextInputs)); err != nil {
		return err
	}
	for _, ci := range tx.ContextInputs {
		if err := ci.Pack(w); err != nil {
			return err
		}
	}

	if err := w.WriteCount16(len(tx.Outputs)); err != nil {
		return err
	}
	for _, o := range tx.Outputs {
		if err := o.Pack(w); err != nil {
			return err
		}
	}

	if err := w.WriteCount16(len(tx.Allotments)); err != nil {
		return err
	}
	for _, a := range tx.Allotments {
		if err := a.Pack(w); err != nil {
			return err
		}
	}

	if err := tx.Capabilities.Pack(w); err != nil {
		return err
	}

	return w.WriteVarBytes16(tx.Payload)
}

func (tx *Transaction) Unpack(r *codec.Reader) error {
	var err error
	if tx.NetworkID, err = r.ReadUint64(); err != nil {
		return err
	}
	if tx.CreationSlot, err = r.ReadUint32(); err != nil {
		return err
	}

	nIn, err := r.ReadCount16()
	if err != nil {
		return err
	}
	tx.Inputs = make([]Input, nIn)
	for i := range tx.Inputs {
		if err := tx.Inputs[i].Unpack(r); err != nil {
			return err
		}
	}

	nCtx, err := r.ReadCount16()
	if err != nil {
		return err
	}
	tx.ContextInputs = make([]ContextInput, nCtx)
	for i := range tx.ContextInputs {
		if err := tx.ContextInputs[i].Unpack(r); err != nil {
			return err
		}
	}

	nOut, err := r.ReadCount16()
	if err != nil {
		return err
	}
	tx.Outputs = make([]Output, nOut)
	for i := range tx.Outputs {
		o, err := DecodeOutput(r)
		if err != nil {
			return err
		}
		tx.Outputs[i] = o
	}

	nAllot, err := r.ReadCount16()
	if err != nil {
		return err
	}
	tx.Allotments = make([]Allotment, nAllot)
	for i := range tx.Allotments {
		if err := tx.Allotments[i].Unpack(r); err != nil {
			return err
		}
	}

	if err := tx.Capabilities.Unpack(r); err != nil {
		return err
	}

	if tx.Payload, err = r.ReadVarBytes16(); err != nil {
		return err
	}
	return nil
}

// EssenceBytes is the canonical encoding handed to the external secret
// manager for signing (spec §6): blake2b-256 of this is the
// transaction_signing_hash every Ed25519 signature verifies against.
func (tx *Transaction) EssenceBytes() ([]byte, error) {
	w := codec.NewWriter()
	if err := tx.Pack(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ID derives the TransactionID: blake2b-256 over the canonical encoding of
// the essence (spec §3/§4.1, tested in §8 as "Identity stability").
func (tx *Transaction) ID() (ids.ID, error) {
	b, err := tx.EssenceBytes()
	if err != nil {
		return ids.Empty, err
	}
	return ids.Blake2b256(b), nil
}

// SigningHash is the transaction_signing_hash of spec §6: blake2b-256 of
// the essence bytes, the preimage every Ed25519 signature verifies
// against. It is numerically identical to ID() but kept distinct because
// callers reason about it for a different purpose (signing vs naming).
func (tx *Transaction) SigningHash() (ids.ID, error) {
	return tx.ID()
}

// ---- Unlocks ----

// UnlockKind tags the Unlock sum type of spec §3 TransactionPayload.
type UnlockKind byte

const (
	UnlockSignature UnlockKind = iota
	UnlockReference
	UnlockAccount
	UnlockNFT
	UnlockMulti
)

// Ed25519Signature is the fixed-size (pubkey, signature) pair produced by
// the external secret manager (spec §6).
type Ed25519Signature struct {
	PublicKey [32]byte
	Signature [64]byte
}

type Unlock struct {
	Kind UnlockKind

	// UnlockSignature
	Ed25519 *Ed25519Signature
	// UnlockReference / UnlockAccount / UnlockNFT
	Reference uint16
	// UnlockMulti
	SubUnlocks []Unlock
}

func (u Unlock) Pack(w *codec.Writer) error {
	w.WriteByte(byte(u.Kind))
	switch u.Kind {
	case UnlockSignature:
		w.WriteFixedBytes(u.Ed25519.PublicKey[:])
		w.WriteFixedBytes(u.Ed25519.Signature[:])
	case UnlockReference, UnlockAccount, UnlockNFT:
		w.WriteUint16(u.Reference)
	case UnlockMulti:
		if err := w.WriteCount8(len(u.SubUnlocks)); err != nil {
			return err
		}
		for _, sub := range u.SubUnlocks {
			if err := sub.Pack(w); err != nil {
				return err
			}
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

func (u *Unlock) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	u.Kind = UnlockKind(kind)
	switch u.Kind {
	case UnlockSignature:
		pub, err := r.ReadFixedBytes(32)
		if err != nil {
			return err
		}
		sig, err := r.ReadFixedBytes(64)
		if err != nil {
			return err
		}
		u.Ed25519 = &Ed25519Signature{}
		copy(u.Ed25519.PublicKey[:], pub)
		copy(u.Ed25519.Signature[:], sig)
	case UnlockReference, UnlockAccount, UnlockNFT:
		if u.Reference, err = r.ReadUint16(); err != nil {
			return err
		}
	case UnlockMulti:
		n, err := r.ReadCount8()
		if err != nil {
			return err
		}
		u.SubUnlocks = make([]Unlock, n)
		for i := range u.SubUnlocks {
			if err := u.SubUnlocks[i].Unpack(r); err != nil {
				return err
			}
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

// TransactionPayload pairs a Transaction with one Unlock per input.
type TransactionPayload struct {
	Transaction *Transaction
	Unlocks     []Unlock
}

func (p *TransactionPayload) Pack(w *codec.Writer) error {
	if err := p.Transaction.Pack(w); err != nil {
		return err
	}
	if err := w.WriteCount16(len(p.Unlocks)); err != nil {
		return err
	}
	for _, u := range p.Unlocks {
		if err := u.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (p *TransactionPayload) Unpack(r *codec.Reader) error {
	p.Transaction = &Transaction{}
	if err := p.Transaction.Unpack(r); err != nil {
		return err
	}
	n, err := r.ReadCount16()
	if err != nil {
		return err
	}
	p.Unlocks = make([]Unlock, n)
	for i := range p.Unlocks {
		if err := p.Unlocks[i].Unpack(r); err != nil {
			return err
		}
	}
	return nil
}
