package iotago

import (
	"sort"

	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// UnlockConditionKind tags the sum type, and also defines its canonical
// sort order (spec §3: "order is canonical by kind").
type UnlockConditionKind byte

const (
	UnlockConditionAddress UnlockConditionKind = iota
	UnlockConditionStorageDepositReturn
	UnlockConditionTimelock
	UnlockConditionExpiration
	UnlockConditionStateControllerAddress
	UnlockConditionGovernorAddress
	UnlockConditionImmutableAccountAddress
)

type UnlockCondition interface {
	codec.Packable
	Kind() UnlockConditionKind
}

type AddressUnlockCondition struct{ Address Address }

func (u *AddressUnlockCondition) Kind() UnlockConditionKind { return UnlockConditionAddress }
func (u *AddressUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionAddress))
	return u.Address.Pack(w)
}
func (u *AddressUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionAddress)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	u.Address = addr
	return nil
}

// StorageDepositReturnUnlockCondition forces a Basic output of Amount back
// to ReturnAddress before expiration (spec §4.2 Storage-deposit-return).
type StorageDepositReturnUnlockCondition struct {
	ReturnAddress Address
	Amount        uint64
}

func (u *StorageDepositReturnUnlockCondition) Kind() UnlockConditionKind {
	return UnlockConditionStorageDepositReturn
}
func (u *StorageDepositReturnUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionStorageDepositReturn))
	if err := u.ReturnAddress.Pack(w); err != nil {
		return err
	}
	w.WriteUint64(u.Amount)
	return nil
}
func (u *StorageDepositReturnUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionStorageDepositReturn)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	amount, err := r.ReadUint64()
	if err != nil {
		return err
	}
	u.ReturnAddress, u.Amount = addr, amount
	return nil
}

type TimelockUnlockCondition struct{ Slot uint32 }

func (u *TimelockUnlockCondition) Kind() UnlockConditionKind { return UnlockConditionTimelock }
func (u *TimelockUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionTimelock))
	w.WriteUint32(u.Slot)
	return nil
}
func (u *TimelockUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionTimelock)); err != nil {
		return err
	}
	slot, err := r.ReadUint32()
	if err != nil {
		return err
	}
	u.Slot = slot
	return nil
}

// ExpirationUnlockCondition hands the output to ReturnAddress once Slot has
// passed. Invariant 4 of spec §3 requires ReturnAddress to differ from the
// output's primary Address-family unlock condition.
type ExpirationUnlockCondition struct {
	ReturnAddress Address
	Slot          uint32
}

func (u *ExpirationUnlockCondition) Kind() UnlockConditionKind { return UnlockConditionExpiration }
func (u *ExpirationUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionExpiration))
	if err := u.ReturnAddress.Pack(w); err != nil {
		return err
	}
	w.WriteUint32(u.Slot)
	return nil
}
func (u *ExpirationUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionExpiration)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	slot, err := r.ReadUint32()
	if err != nil {
		return err
	}
	u.ReturnAddress, u.Slot = addr, slot
	return nil
}

// IsExpired reports whether currentSlot has passed u.Slot, per spec §4.2:
// "Expiration is computed against the transaction's
// slot_commitment_id.slot_index."
func (u *ExpirationUnlockCondition) IsExpired(currentSlot uint32) bool {
	return currentSlot >= u.Slot
}

type StateControllerAddressUnlockCondition struct{ Address Address }

func (u *StateControllerAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockConditionStateControllerAddress
}
func (u *StateControllerAddressUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionStateControllerAddress))
	return u.Address.Pack(w)
}
func (u *StateControllerAddressUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionStateControllerAddress)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	u.Address = addr
	return nil
}

type GovernorAddressUnlockCondition struct{ Address Address }

func (u *GovernorAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockConditionGovernorAddress
}
func (u *GovernorAddressUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionGovernorAddress))
	return u.Address.Pack(w)
}
func (u *GovernorAddressUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionGovernorAddress)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	u.Address = addr
	return nil
}

// ImmutableAccountAddressUnlockCondition pins a Foundry to the account that
// controls it; it never changes across transitions (spec §3 Foundry row).
type ImmutableAccountAddressUnlockCondition struct{ Address *AccountAddress }

func (u *ImmutableAccountAddressUnlockCondition) Kind() UnlockConditionKind {
	return UnlockConditionImmutableAccountAddress
}
func (u *ImmutableAccountAddressUnlockCondition) Pack(w *codec.Writer) error {
	w.WriteByte(byte(UnlockConditionImmutableAccountAddress))
	return u.Address.Pack(w)
}
func (u *ImmutableAccountAddressUnlockCondition) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(UnlockConditionImmutableAccountAddress)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	accAddr, ok := addr.(*AccountAddress)
	if !ok {
		return codec.ErrInvalidKind
	}
	u.Address = accAddr
	return nil
}

func expectKind(r *codec.Reader, want byte) error {
	got, err := r.ReadByte()
	if err != nil {
		return err
	}
	if got != want {
		return codec.ErrInvalidKind
	}
	return nil
}

func decodeUnlockCondition(r *codec.Reader) (UnlockCondition, error) {
	save := *r
	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	*r = save
	var uc UnlockCondition
	switch UnlockConditionKind(kindByte) {
	case UnlockConditionAddress:
		uc = &AddressUnlockCondition{}
	case UnlockConditionStorageDepositReturn:
		uc = &StorageDepositReturnUnlockCondition{}
	case UnlockConditionTimelock:
		uc = &TimelockUnlockCondition{}
	case UnlockConditionExpiration:
		uc = &ExpirationUnlockCondition{}
	case UnlockConditionStateControllerAddress:
		uc = &StateControllerAddressUnlockCondition{}
	case UnlockConditionGovernorAddress:
		uc = &GovernorAddressUnlockCondition{}
	case UnlockConditionImmutableAccountAddress:
		uc = &ImmutableAccountAddressUnlockCondition{}
	default:
		return nil, codec.ErrInvalidKind
	}
	if err := uc.Unpack(r); err != nil {
		return nil, err
	}
	return uc, nil
}

// PackUnlockConditions writes the u16-length-prefixed, kind-sorted,
// kind-unique list (container table + invariant 6, spec §3/§4.1).
func PackUnlockConditions(w *codec.Writer, conditions []UnlockCondition) error {
	if err := checkSortedUniqueConditions(conditions); err != nil {
		return err
	}
	if err := w.WriteCount16(len(conditions)); err != nil {
		return err
	}
	for _, uc := range conditions {
		if err := uc.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func UnpackUnlockConditions(r *codec.Reader) ([]UnlockCondition, error) {
	n, err := r.ReadCount16()
	if err != nil {
		return nil, err
	}
	conditions := make([]UnlockCondition, n)
	for i := range conditions {
		uc, err := decodeUnlockCondition(r)
		if err != nil {
			return nil, err
		}
		conditions[i] = uc
	}
	if err := checkSortedUniqueConditions(conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}

func checkSortedUniqueConditions(conditions []UnlockCondition) error {
	if !sort.SliceIsSorted(conditions, func(i, j int) bool { return conditions[i].Kind() < conditions[j].Kind() }) {
		return codec.ErrUnsortedOrDuplicate
	}
	for i := 1; i < len(conditions); i++ {
		if conditions[i-1].Kind() == conditions[i].Kind() {
			return codec.ErrUnsortedOrDuplicate
		}
	}
	return nil
}

// SortUnlockConditions sorts a caller-built slice ascending by kind.
func SortUnlockConditions(conditions []UnlockCondition) {
	sort.Slice(conditions, func(i, j int) bool { return conditions[i].Kind() < conditions[j].Kind() })
}
