// Package codec is the Packable capability named in the design notes: a
// small, explicit binary writer/reader pair that every Ledger-Types entity
// packs itself through, so encoding and structural verification share the
// same code path. It plays the role the teacher's codec/linearcodec plus
// codec.Manager pair plays for avalanchego-family wire types, but is
// implemented as explicit Pack/Unpack methods rather than reflection, since
// every entity here is a hand-maintained sum type.
package codec

import (
	"encoding/binary"
	"errors"
)

// Sentinel structural errors, named identically to spec §4.1's failure
// modes so every layer can match on them directly.
var (
	ErrInvalidKind              = errors.New("codec: invalid kind")
	ErrLengthOutOfRange         = errors.New("codec: length out of range")
	ErrUnsortedOrDuplicate      = errors.New("codec: unsorted or duplicate entries")
	ErrTrailingBytes            = errors.New("codec: trailing bytes")
	ErrBufferTooShort           = errors.New("codec: buffer too short")
)

// Writer accumulates a canonical little-endian encoding.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteByte(b byte) { w.buf = append(w.buf, b) }

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint256 writes a big-endian-free, little-endian 32-byte integer,
// used for foundry token-scheme minted/melted/max amounts.
func (w *Writer) WriteUint256(v [32]byte) {
	w.buf = append(w.buf, v[:]...)
}

func (w *Writer) WriteFixedBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteVarBytes8 writes a byte slice with a u8 length prefix;
// WriteVarBytes16 below is the u16-prefixed variant used for
// metadata/tag bytes.
func (w *Writer) WriteVarBytes8(b []byte) error {
	if len(b) > 0xff {
		return ErrLengthOutOfRange
	}
	w.WriteByte(byte(len(b)))
	w.buf = append(w.buf, b...)
	return nil
}

func (w *Writer) WriteVarBytes16(b []byte) error {
	if len(b) > 0xffff {
		return ErrLengthOutOfRange
	}
	w.WriteUint16(uint16(len(b)))
	w.buf = append(w.buf, b...)
	return nil
}

// WriteCount8/16 write a bare length prefix for a following sequence of
// self-describing elements (Inputs/Outputs/Unlocks/Features/
// UnlockConditions use u16; native tokens use u8, per the container table).
func (w *Writer) WriteCount8(n int) error {
	if n > 0xff {
		return ErrLengthOutOfRange
	}
	w.WriteByte(byte(n))
	return nil
}

func (w *Writer) WriteCount16(n int) error {
	if n > 0xffff {
		return ErrLengthOutOfRange
	}
	w.WriteUint16(uint16(n))
	return nil
}
