package codec

import "encoding/binary"

// Reader walks a canonical encoding produced by Writer, tracking position so
// callers can detect trailing bytes (spec §4.1 TrailingBytes).
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, ErrBufferTooShort
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrBufferTooShort
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrBufferTooShort
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, ErrBufferTooShort
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadUint256() ([32]byte, error) {
	var v [32]byte
	if r.Remaining() < 32 {
		return v, ErrBufferTooShort
	}
	copy(v[:], r.buf[r.pos:r.pos+32])
	r.pos += 32
	return v, nil
}

func (r *Reader) ReadFixedBytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrBufferTooShort
	}
	b := append([]byte(nil), r.buf[r.pos:r.pos+n]...)
	r.pos += n
	return b, nil
}

func (r *Reader) ReadVarBytes8() ([]byte, error) {
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return r.ReadFixedBytes(int(n))
}

func (r *Reader) ReadVarBytes16() ([]byte, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return r.ReadFixedBytes(int(n))
}

func (r *Reader) ReadCount8() (int, error) {
	n, err := r.ReadByte()
	return int(n), err
}

func (r *Reader) ReadCount16() (int, error) {
	n, err := r.ReadUint16()
	return int(n), err
}

// Finish errors with ErrTrailingBytes if the reader did not consume the
// whole buffer.
func (r *Reader) Finish() error {
	if r.Remaining() != 0 {
		return ErrTrailingBytes
	}
	return nil
}
