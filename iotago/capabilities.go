package iotago

import "github.com/shimmerkit/ledgersdk/iotago/codec"

// CapabilityFlag is one of the six transaction-level capability bitflags
// of spec §6.
type CapabilityFlag byte

const (
	CapBurnNativeToken CapabilityFlag = 1 << iota
	CapBurnMana
	CapDestroyAccount
	CapDestroyAnchor
	CapDestroyFoundry
	CapDestroyNFT
)

// Capabilities is the little-endian, variable-length-encoded bitflag set
// of spec §6, with "no trailing zero byte permitted".
type Capabilities struct {
	flags byte
}

func (c *Capabilities) Has(f CapabilityFlag) bool { return c.flags&byte(f) != 0 }

func (c *Capabilities) Set(f CapabilityFlag) { c.flags |= byte(f) }

func (c *Capabilities) Clear(f CapabilityFlag) { c.flags &^= byte(f) }

// Pack encodes the capability set as a variable-length byte array: empty
// if no flag is set, one byte otherwise (no trailing zero byte is
// possible since CapabilityFlag fits in a single byte here).
func (c Capabilities) Pack(w *codec.Writer) error {
	if c.flags == 0 {
		return w.WriteVarBytes8(nil)
	}
	return w.WriteVarBytes8([]byte{c.flags})
}

func (c *Capabilities) Unpack(r *codec.Reader) error {
	b, err := r.ReadVarBytes8()
	if err != nil {
		return err
	}
	if len(b) == 0 {
		c.flags = 0
		return nil
	}
	if len(b) > 1 || b[len(b)-1] == 0 {
		return ErrLengthOutOfRange
	}
	c.flags = b[0]
	return nil
}
