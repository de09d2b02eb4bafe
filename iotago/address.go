package iotago

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcutil/bech32"

	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// AddressKind tags the Address sum type on the wire (spec §3 Address).
type AddressKind byte

const (
	AddressEd25519 AddressKind = iota
	AddressAccount
	AddressNFT
	AddressMulti
	AddressRestricted
	AddressImplicitAccountCreation
)

// ErrInvalidBech32Hrp is one of the named structural failure modes of
// spec §4.1.
var ErrInvalidBech32Hrp = errors.New("iotago: invalid bech32 hrp")

// Address is the sum type of spec §3. Every variant additionally
// implements codec.Packable through Pack/Unpack.
type Address interface {
	codec.Packable
	Kind() AddressKind
	// Key returns a comparable representation usable as a map key, used
	// by the builder's priority map and the syncer's seed-address set.
	Key() string
	// Bech32 renders the address using hrp as the human-readable part
	// (spec §6).
	Bech32(hrp string) (string, error)
}

// Ed25519Address is the hash of an ed25519 public key (32 bytes).
type Ed25519Address struct {
	PubKeyHash [32]byte
}

func (a *Ed25519Address) Kind() AddressKind { return AddressEd25519 }
func (a *Ed25519Address) Key() string       { return string(append([]byte{byte(AddressEd25519)}, a.PubKeyHash[:]...)) }

func (a *Ed25519Address) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressEd25519))
	w.WriteFixedBytes(a.PubKeyHash[:])
	return nil
}

func (a *Ed25519Address) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressEd25519 {
		return codec.ErrInvalidKind
	}
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(a.PubKeyHash[:], b)
	return nil
}

func (a *Ed25519Address) Bech32(hrp string) (string, error) {
	return encodeBech32(hrp, byte(AddressEd25519), a.PubKeyHash[:])
}

// AccountAddress/NFTAddress wrap a chain id so the owning chain output's id
// can be used as the unlocking address (spec §4.3 step 3 recursive chain
// discovery).
type AccountAddress struct{ ID [32]byte }

func (a *AccountAddress) Kind() AddressKind { return AddressAccount }
func (a *AccountAddress) Key() string       { return string(append([]byte{byte(AddressAccount)}, a.ID[:]...)) }
func (a *AccountAddress) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressAccount))
	w.WriteFixedBytes(a.ID[:])
	return nil
}
func (a *AccountAddress) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressAccount {
		return codec.ErrInvalidKind
	}
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(a.ID[:], b)
	return nil
}
func (a *AccountAddress) Bech32(hrp string) (string, error) {
	return encodeBech32(hrp, byte(AddressAccount), a.ID[:])
}

type NFTAddress struct{ ID [32]byte }

func (a *NFTAddress) Kind() AddressKind { return AddressNFT }
func (a *NFTAddress) Key() string       { return string(append([]byte{byte(AddressNFT)}, a.ID[:]...)) }
func (a *NFTAddress) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressNFT))
	w.WriteFixedBytes(a.ID[:])
	return nil
}
func (a *NFTAddress) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressNFT {
		return codec.ErrInvalidKind
	}
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(a.ID[:], b)
	return nil
}
func (a *NFTAddress) Bech32(hrp string) (string, error) {
	return encodeBech32(hrp, byte(AddressNFT), a.ID[:])
}

// WeightedAddress is one member of a MultiAddress.
type WeightedAddress struct {
	Address Address
	Weight  uint8
}

// MultiAddress requires cumulative weight >= Threshold across its weighted
// members before it unlocks (spec §4.2 Unlock emission: "Multi-address
// unlocks recurse per member with cumulative weight >= threshold").
type MultiAddress struct {
	Members   []WeightedAddress
	Threshold uint16
}

func (a *MultiAddress) Kind() AddressKind { return AddressMulti }
func (a *MultiAddress) Key() string {
	var sb strings.Builder
	sb.WriteByte(byte(AddressMulti))
	for _, m := range a.Members {
		sb.WriteString(m.Address.Key())
	}
	return sb.String()
}
func (a *MultiAddress) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressMulti))
	if err := w.WriteCount8(len(a.Members)); err != nil {
		return err
	}
	for _, m := range a.Members {
		if err := m.Address.Pack(w); err != nil {
			return err
		}
		w.WriteByte(m.Weight)
	}
	w.WriteUint16(a.Threshold)
	return nil
}
func (a *MultiAddress) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressMulti {
		return codec.ErrInvalidKind
	}
	n, err := r.ReadCount8()
	if err != nil {
		return err
	}
	a.Members = make([]WeightedAddress, n)
	for i := range a.Members {
		addr, err := DecodeAddress(r)
		if err != nil {
			return err
		}
		weight, err := r.ReadByte()
		if err != nil {
			return err
		}
		a.Members[i] = WeightedAddress{Address: addr, Weight: weight}
	}
	threshold, err := r.ReadUint16()
	if err != nil {
		return err
	}
	a.Threshold = threshold
	return nil
}
func (a *MultiAddress) Bech32(hrp string) (string, error) {
	w := codec.NewWriter()
	if err := a.Pack(w); err != nil {
		return "", err
	}
	return encodeBech32(hrp, byte(AddressMulti), w.Bytes()[1:])
}

// Capability bitflags restricting what a RestrictedAddress may be used for
// (e.g. forbidding native tokens or mana on outputs it controls).
type AddressCapabilitiesBitmask byte

const (
	AddressCapCanReceiveNativeTokens AddressCapabilitiesBitmask = 1 << iota
	AddressCapCanReceiveMana
	AddressCapCanReceiveOutputsWithTimelock
	AddressCapCanReceiveOutputsWithExpiration
	AddressCapCanReceiveOutputsWithStorageDepositReturn
	AddressCapCanReceiveAccountOutputs
	AddressCapCanReceiveNFTOutputs
	AddressCapCanReceiveDelegationOutputs
)

// RestrictedAddress wraps an inner address with a capability bitmask.
type RestrictedAddress struct {
	Inner        Address
	Capabilities AddressCapabilitiesBitmask
}

func (a *RestrictedAddress) Kind() AddressKind { return AddressRestricted }
func (a *RestrictedAddress) Key() string {
	return string([]byte{byte(AddressRestricted)}) + a.Inner.Key()
}
func (a *RestrictedAddress) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressRestricted))
	if err := a.Inner.Pack(w); err != nil {
		return err
	}
	return w.WriteVarBytes8([]byte{byte(a.Capabilities)})
}
func (a *RestrictedAddress) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressRestricted {
		return codec.ErrInvalidKind
	}
	inner, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	a.Inner = inner
	capBytes, err := r.ReadVarBytes8()
	if err != nil {
		return err
	}
	if len(capBytes) > 0 {
		a.Capabilities = AddressCapabilitiesBitmask(capBytes[0])
	}
	return nil
}
func (a *RestrictedAddress) Bech32(hrp string) (string, error) {
	return a.Inner.Bech32(hrp)
}

// ImplicitAccountCreationAddress behaves like an Ed25519Address for unlock
// purposes but marks the first transaction that spends it as the creation
// of the account it implies.
type ImplicitAccountCreationAddress struct {
	PubKeyHash [32]byte
}

func (a *ImplicitAccountCreationAddress) Kind() AddressKind { return AddressImplicitAccountCreation }
func (a *ImplicitAccountCreationAddress) Key() string {
	return string(append([]byte{byte(AddressImplicitAccountCreation)}, a.PubKeyHash[:]...))
}
func (a *ImplicitAccountCreationAddress) Pack(w *codec.Writer) error {
	w.WriteByte(byte(AddressImplicitAccountCreation))
	w.WriteFixedBytes(a.PubKeyHash[:])
	return nil
}
func (a *ImplicitAccountCreationAddress) Unpack(r *codec.Reader) error {
	kind, err := r.ReadByte()
	if err != nil {
		return err
	}
	if AddressKind(kind) != AddressImplicitAccountCreation {
		return codec.ErrInvalidKind
	}
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(a.PubKeyHash[:], b)
	return nil
}
func (a *ImplicitAccountCreationAddress) Bech32(hrp string) (string, error) {
	return encodeBech32(hrp, byte(AddressImplicitAccountCreation), a.PubKeyHash[:])
}

// DecodeAddress peeks the kind tag and dispatches to the right variant's
// Unpack. An unknown kind tag consumes no bytes; if the variant's Unpack
// fails, the bytes it read stay consumed.
func DecodeAddress(r *codec.Reader) (Address, error) {
	save := *r
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	*r = save
	var a Address
	switch AddressKind(kind) {
	case AddressEd25519:
		a = &Ed25519Address{}
	case AddressAccount:
		a = &AccountAddress{}
	case AddressNFT:
		a = &NFTAddress{}
	case AddressMulti:
		a = &MultiAddress{}
	case AddressRestricted:
		a = &RestrictedAddress{}
	case AddressImplicitAccountCreation:
		a = &ImplicitAccountCreationAddress{}
	default:
		return nil, codec.ErrInvalidKind
	}
	if err := a.Unpack(r); err != nil {
		return nil, err
	}
	return a, nil
}

// encodeBech32 implements spec §6: "<hrp>1<data+checksum>"; data is the
// address-variant tag byte followed by the payload.
func encodeBech32(hrp string, tag byte, payload []byte) (string, error) {
	if len(hrp) == 0 || len(hrp) > 83 || strings.ToLower(hrp) != hrp {
		return "", ErrInvalidBech32Hrp
	}
	data := append([]byte{tag}, payload...)
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, converted)
}

// DecodeBech32Address parses the format from spec §6, verifying the
// checksum and hrp, and returns the decoded Address value.
func DecodeBech32Address(s string) (hrp string, addr Address, err error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return "", nil, err
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, ErrInvalidBech32Hrp
	}
	r := codec.NewReader(raw)
	addr, err = DecodeAddress(r)
	if err != nil {
		return "", nil, err
	}
	return hrp, addr, nil
}
