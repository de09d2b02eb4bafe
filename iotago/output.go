package iotago

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// OutputKind tags the sum type on the wire (spec §3 Output table).
type OutputKind byte

const (
	OutputBasic OutputKind = iota
	OutputAccount
	OutputFoundry
	OutputNFT
	OutputDelegation
)

// Output is the sum type of spec §3: every variant carries a base amount,
// optional mana, native tokens, unlock conditions and features.
type Output interface {
	codec.Packable
	Kind() OutputKind
	Amount() uint64
	SetAmount(uint64)
	Mana() uint64
	NativeTokens() []NativeToken
	UnlockConditions() []UnlockCondition
	Features() []Feature
}

// ChainOutput is additionally implemented by the four chain-carrying
// variants (Account, Foundry, NFT, Delegation); ChainID returns the empty
// ID for a not-yet-created chain (spec §3 invariant 7).
type ChainOutput interface {
	Output
	ChainID() ids.ID
}

// commonFields is embedded by every variant to avoid repeating the shared
// amount/mana/native-token/unlock-condition/feature machinery every
// Output kind carries (spec §3 preamble).
type commonFields struct {
	AmountVal  uint64
	ManaVal    uint64
	Tokens     []NativeToken
	Conditions []UnlockCondition
	Feats      []Feature
}

func (c *commonFields) Amount() uint64                      { return c.AmountVal }
func (c *commonFields) SetAmount(v uint64)                  { c.AmountVal = v }
func (c *commonFields) Mana() uint64                        { return c.ManaVal }
func (c *commonFields) NativeTokens() []NativeToken         { return c.Tokens }
func (c *commonFields) UnlockConditions() []UnlockCondition { return c.Conditions }
func (c *commonFields) Features() []Feature                 { return c.Feats }

func (c *commonFields) pack(w *codec.Writer) error {
	w.WriteUint64(c.AmountVal)
	w.WriteUint64(c.ManaVal)
	if err := PackNativeTokens(w, c.Tokens); err != nil {
		return err
	}
	if err := PackUnlockConditions(w, c.Conditions); err != nil {
		return err
	}
	return PackFeatures(w, c.Feats)
}

func (c *commonFields) unpack(r *codec.Reader) error {
	var err error
	if c.AmountVal, err = r.ReadUint64(); err != nil {
		return err
	}
	if c.ManaVal, err = r.ReadUint64(); err != nil {
		return err
	}
	if c.Tokens, err = UnpackNativeTokens(r); err != nil {
		return err
	}
	if c.Conditions, err = UnpackUnlockConditions(r); err != nil {
		return err
	}
	if c.Feats, err = UnpackFeatures(r); err != nil {
		return err
	}
	return nil
}

// PrimaryAddress returns the single Address-family unlock condition a
// non-chain-governed output must carry (invariant 3, spec §3).
func PrimaryAddress(o Output) (Address, bool) {
	for _, uc := range o.UnlockConditions() {
		if a, ok := uc.(*AddressUnlockCondition); ok {
			return a.Address, true
		}
	}
	return nil, false
}

// ExpirationCondition returns the output's Expiration unlock condition, if
// any.
func ExpirationCondition(o Output) (*ExpirationUnlockCondition, bool) {
	for _, uc := range o.UnlockConditions() {
		if e, ok := uc.(*ExpirationUnlockCondition); ok {
			return e, true
		}
	}
	return nil, false
}

// StorageDepositReturnCondition returns the output's SDR unlock condition,
// if any.
func StorageDepositReturnCondition(o Output) (*StorageDepositReturnUnlockCondition, bool) {
	for _, uc := range o.UnlockConditions() {
		if s, ok := uc.(*StorageDepositReturnUnlockCondition); ok {
			return s, true
		}
	}
	return nil, false
}

// TimelockCondition returns the output's Timelock unlock condition, if any.
func TimelockCondition(o Output) (*TimelockUnlockCondition, bool) {
	for _, uc := range o.UnlockConditions() {
		if t, ok := uc.(*TimelockUnlockCondition); ok {
			return t, true
		}
	}
	return nil, false
}

// ---- BasicOutput ----

// BasicOutput is the plain value carrier of spec §3.
type BasicOutput struct {
	commonFields
}

func NewBasicOutput(amount uint64, owner Address) *BasicOutput {
	return &BasicOutput{commonFields{
		AmountVal:  amount,
		Conditions: []UnlockCondition{&AddressUnlockCondition{Address: owner}},
	}}
}

func (o *BasicOutput) Kind() OutputKind { return OutputBasic }
func (o *BasicOutput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(OutputBasic))
	return o.pack(w)
}
func (o *BasicOutput) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(OutputBasic)); err != nil {
		return err
	}
	return o.unpack(r)
}

// NewAccountOutput builds an Account output with the given state/governor
// addresses and state index; callers append any additional features or
// immutable features afterward.
func NewAccountOutput(amount uint64, accountID ids.ID, stateIndex uint32, stateController, governor Address) *AccountOutput {
	return &AccountOutput{
		commonFields: commonFields{
			AmountVal: amount,
			Conditions: []UnlockCondition{
				&StateControllerAddressUnlockCondition{Address: stateController},
				&GovernorAddressUnlockCondition{Address: governor},
			},
		},
		AccountIDVal: accountID,
		StateIndex:   stateIndex,
	}
}

// ---- AccountOutput ----

// AccountOutput is the controllable chain output of spec §3, with distinct
// state-controller and governor unlock roles.
type AccountOutput struct {
	commonFields
	AccountIDVal    ids.ID
	StateIndex      uint32
	FoundryCounter  uint32
	StateMetadata   []byte
	ImmutableFeats  []Feature
}

func (o *AccountOutput) Kind() OutputKind { return OutputAccount }
func (o *AccountOutput) ChainID() ids.ID  { return o.AccountIDVal }

func (o *AccountOutput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(OutputAccount))
	if err := o.pack(w); err != nil {
		return err
	}
	w.WriteFixedBytes(o.AccountIDVal[:])
	w.WriteUint32(o.StateIndex)
	w.WriteUint32(o.FoundryCounter)
	if err := w.WriteVarBytes16(o.StateMetadata); err != nil {
		return err
	}
	return PackFeatures(w, o.ImmutableFeats)
}

func (o *AccountOutput) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(OutputAccount)); err != nil {
		return err
	}
	if err := o.unpack(r); err != nil {
		return err
	}
	id, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(o.AccountIDVal[:], id)
	if o.StateIndex, err = r.ReadUint32(); err != nil {
		return err
	}
	if o.FoundryCounter, err = r.ReadUint32(); err != nil {
		return err
	}
	if o.StateMetadata, err = r.ReadVarBytes16(); err != nil {
		return err
	}
	if o.ImmutableFeats, err = UnpackFeatures(r); err != nil {
		return err
	}
	return nil
}

// StateController returns the address allowed to perform state transitions.
func (o *AccountOutput) StateController() (Address, bool) {
	for _, uc := range o.Conditions {
		if sc, ok := uc.(*StateControllerAddressUnlockCondition); ok {
			return sc.Address, true
		}
	}
	return nil, false
}

// Governor returns the address allowed to perform governance transitions.
func (o *AccountOutput) Governor() (Address, bool) {
	for _, uc := range o.Conditions {
		if g, ok := uc.(*GovernorAddressUnlockCondition); ok {
			return g.Address, true
		}
	}
	return nil, false
}

// ---- FoundryOutput ----

// TokenSchemeKind tags the Foundry's minting scheme.
type TokenSchemeKind byte

const TokenSchemeSimple TokenSchemeKind = 0

// SimpleTokenScheme is the only scheme this spec implements: a minted,
// melted, and max supply, each a uint256.
type SimpleTokenScheme struct {
	Minted [32]byte
	Melted [32]byte
	Max    [32]byte
}

func (s SimpleTokenScheme) Pack(w *codec.Writer) error {
	w.WriteByte(byte(TokenSchemeSimple))
	w.WriteUint256(s.Minted)
	w.WriteUint256(s.Melted)
	w.WriteUint256(s.Max)
	return nil
}

func (s *SimpleTokenScheme) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(TokenSchemeSimple)); err != nil {
		return err
	}
	var err error
	if s.Minted, err = r.ReadUint256(); err != nil {
		return err
	}
	if s.Melted, err = r.ReadUint256(); err != nil {
		return err
	}
	if s.Max, err = r.ReadUint256(); err != nil {
		return err
	}
	return nil
}

// FoundryOutput mints/melts exactly one native token id, identified by its
// parent account + serial + scheme kind (spec §3 Foundry row).
type FoundryOutput struct {
	commonFields
	SerialNumber   uint32
	TokenScheme    SimpleTokenScheme
	ImmutableFeats []Feature
}

func (o *FoundryOutput) Kind() OutputKind { return OutputFoundry }

// AccountAddr returns the owning account, via the mandatory
// ImmutableAccountAddress unlock condition.
func (o *FoundryOutput) AccountAddr() (*AccountAddress, bool) {
	for _, uc := range o.Conditions {
		if imm, ok := uc.(*ImmutableAccountAddressUnlockCondition); ok {
			return imm.Address, true
		}
	}
	return nil, false
}

// FoundryID derives the native-token id this Foundry mints/melts, per
// spec §3 ChainId derivation: blake2b-256(account_addr || serial_number ||
// token_scheme_kind).
func (o *FoundryOutput) FoundryID() (NativeTokenID, error) {
	accAddr, ok := o.AccountAddr()
	if !ok {
		return NativeTokenID{}, ErrMissingImmutableAccountAddress
	}
	w := codec.NewWriter()
	w.WriteFixedBytes(accAddr.ID[:])
	w.WriteUint32(o.SerialNumber)
	w.WriteByte(byte(TokenSchemeSimple))
	return NativeTokenID(ids.Blake2b256(w.Bytes())), nil
}

func (o *FoundryOutput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(OutputFoundry))
	if err := o.pack(w); err != nil {
		return err
	}
	w.WriteUint32(o.SerialNumber)
	if err := o.TokenScheme.Pack(w); err != nil {
		return err
	}
	return PackFeatures(w, o.ImmutableFeats)
}

func (o *FoundryOutput) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(OutputFoundry)); err != nil {
		return err
	}
	if err := o.unpack(r); err != nil {
		return err
	}
	var err error
	if o.SerialNumber, err = r.ReadUint32(); err != nil {
		return err
	}
	if err := o.TokenScheme.Unpack(r); err != nil {
		return err
	}
	if o.ImmutableFeats, err = UnpackFeatures(r); err != nil {
		return err
	}
	return nil
}

// ChainID for a Foundry is its FoundryID reinterpreted as an ids.ID, since
// the same derivation rule covers both roles (spec §3).
func (o *FoundryOutput) ChainID() ids.ID {
	id, err := o.FoundryID()
	if err != nil {
		return ids.Empty
	}
	return ids.ID(id)
}

// NewFoundryOutput builds a Foundry output pinned to accountAddr with the
// given serial number and a SimpleTokenScheme.
func NewFoundryOutput(amount uint64, accountAddr *AccountAddress, serial uint32, scheme SimpleTokenScheme) *FoundryOutput {
	return &FoundryOutput{
		commonFields: commonFields{
			AmountVal: amount,
			Conditions: []UnlockCondition{
				&ImmutableAccountAddressUnlockCondition{Address: accountAddr},
			},
		},
		SerialNumber: serial,
		TokenScheme:  scheme,
	}
}

// ---- NFTOutput ----

// NFTOutput is the non-fungible carrier of spec §3; ImmutableFeats is set
// once at creation and never changes.
type NFTOutput struct {
	commonFields
	NFTIDVal       ids.ID
	ImmutableFeats []Feature
}

func (o *NFTOutput) Kind() OutputKind { return OutputNFT }
func (o *NFTOutput) ChainID() ids.ID  { return o.NFTIDVal }

func (o *NFTOutput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(OutputNFT))
	if err := o.pack(w); err != nil {
		return err
	}
	w.WriteFixedBytes(o.NFTIDVal[:])
	return PackFeatures(w, o.ImmutableFeats)
}

func (o *NFTOutput) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(OutputNFT)); err != nil {
		return err
	}
	if err := o.unpack(r); err != nil {
		return err
	}
	id, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(o.NFTIDVal[:], id)
	if o.ImmutableFeats, err = UnpackFeatures(r); err != nil {
		return err
	}
	return nil
}

// ---- DelegationOutput ----

// DelegationOutput stakes DelegatedAmount to ValidatorAddress for the
// [StartEpoch, EndEpoch) range (spec §3 Delegation row).
type DelegationOutput struct {
	commonFields
	DelegationIDVal  ids.ID
	ValidatorAddress Address
	DelegatedAmount  uint64
	StartEpoch       uint64
	EndEpoch         uint64
}

func (o *DelegationOutput) Kind() OutputKind { return OutputDelegation }
func (o *DelegationOutput) ChainID() ids.ID  { return o.DelegationIDVal }

func (o *DelegationOutput) Pack(w *codec.Writer) error {
	w.WriteByte(byte(OutputDelegation))
	if err := o.pack(w); err != nil {
		return err
	}
	w.WriteFixedBytes(o.DelegationIDVal[:])
	if err := o.ValidatorAddress.Pack(w); err != nil {
		return err
	}
	w.WriteUint64(o.DelegatedAmount)
	w.WriteUint64(o.StartEpoch)
	w.WriteUint64(o.EndEpoch)
	return nil
}

func (o *DelegationOutput) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(OutputDelegation)); err != nil {
		return err
	}
	if err := o.unpack(r); err != nil {
		return err
	}
	id, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(o.DelegationIDVal[:], id)
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	o.ValidatorAddress = addr
	if o.DelegatedAmount, err = r.ReadUint64(); err != nil {
		return err
	}
	if o.StartEpoch, err = r.ReadUint64(); err != nil {
		return err
	}
	if o.EndEpoch, err = r.ReadUint64(); err != nil {
		return err
	}
	return nil
}

// DecodeOutput peeks the kind tag and dispatches to the right variant.
func DecodeOutput(r *codec.Reader) (Output, error) {
	save := *r
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	*r = save
	var o Output
	switch OutputKind(kind) {
	case OutputBasic:
		o = &BasicOutput{}
	case OutputAccount:
		o = &AccountOutput{}
	case OutputFoundry:
		o = &FoundryOutput{}
	case OutputNFT:
		o = &NFTOutput{}
	case OutputDelegation:
		o = &DelegationOutput{}
	default:
		return nil, codec.ErrInvalidKind
	}
	if err := o.Unpack(r); err != nil {
		return nil, err
	}
	return o, nil
}

// MustEncodeOutput returns the canonical encoding of o. It never errors in
// practice because every field of a constructed Output is already
// well-formed by the time StorageScore needs its size; a malformed Output
// reaching here is a programmer error, not a runtime condition.
func MustEncodeOutput(o Output) []byte {
	w := codec.NewWriter()
	if err := o.Pack(w); err != nil {
		panic(err)
	}
	return w.Bytes()
}
