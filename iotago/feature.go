package iotago

import (
	"sort"

	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// FeatureKind tags the sum type and gives its canonical sort order
// (spec §3 Feature).
type FeatureKind byte

const (
	FeatureSender FeatureKind = iota
	FeatureIssuer
	FeatureMetadata
	FeatureTag
	FeatureNativeToken
	FeatureBlockIssuer
	FeatureStaking
)

type Feature interface {
	codec.Packable
	Kind() FeatureKind
}

type SenderFeature struct{ Address Address }

func (f *SenderFeature) Kind() FeatureKind { return FeatureSender }
func (f *SenderFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureSender))
	return f.Address.Pack(w)
}
func (f *SenderFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureSender)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	f.Address = addr
	return nil
}

// IssuerFeature is immutable-only (spec §3): it may only appear on an
// output's ImmutableFeatures set, never on Features, and only at chain
// creation.
type IssuerFeature struct{ Address Address }

func (f *IssuerFeature) Kind() FeatureKind { return FeatureIssuer }
func (f *IssuerFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureIssuer))
	return f.Address.Pack(w)
}
func (f *IssuerFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureIssuer)); err != nil {
		return err
	}
	addr, err := DecodeAddress(r)
	if err != nil {
		return err
	}
	f.Address = addr
	return nil
}

type MetadataFeature struct{ Entries map[string][]byte }

func (f *MetadataFeature) Kind() FeatureKind { return FeatureMetadata }
func (f *MetadataFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureMetadata))
	keys := make([]string, 0, len(f.Entries))
	for k := range f.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := w.WriteCount16(len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := w.WriteVarBytes16([]byte(k)); err != nil {
			return err
		}
		if err := w.WriteVarBytes16(f.Entries[k]); err != nil {
			return err
		}
	}
	return nil
}
func (f *MetadataFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureMetadata)); err != nil {
		return err
	}
	n, err := r.ReadCount16()
	if err != nil {
		return err
	}
	f.Entries = make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		key, err := r.ReadVarBytes16()
		if err != nil {
			return err
		}
		value, err := r.ReadVarBytes16()
		if err != nil {
			return err
		}
		f.Entries[string(key)] = value
	}
	return nil
}

type TagFeature struct{ Tag []byte }

func (f *TagFeature) Kind() FeatureKind { return FeatureTag }
func (f *TagFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureTag))
	return w.WriteVarBytes16(f.Tag)
}
func (f *TagFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureTag)); err != nil {
		return err
	}
	tag, err := r.ReadVarBytes16()
	if err != nil {
		return err
	}
	f.Tag = tag
	return nil
}

type NativeTokenFeature struct{ Token NativeToken }

func (f *NativeTokenFeature) Kind() FeatureKind { return FeatureNativeToken }
func (f *NativeTokenFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureNativeToken))
	return f.Token.Pack(w)
}
func (f *NativeTokenFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureNativeToken)); err != nil {
		return err
	}
	return f.Token.Unpack(r)
}

// BlockIssuerKey is an ed25519 public key authorized to issue blocks on
// behalf of the account.
type BlockIssuerKey [32]byte

// BlockIssuerFeature marks an Account output as a block issuer (spec §3);
// full BIC semantic validation is a deferred extension per §9 Open
// questions.
type BlockIssuerFeature struct {
	ExpirySlot uint32
	Keys       []BlockIssuerKey
}

func (f *BlockIssuerFeature) Kind() FeatureKind { return FeatureBlockIssuer }
func (f *BlockIssuerFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureBlockIssuer))
	w.WriteUint32(f.ExpirySlot)
	if err := w.WriteCount8(len(f.Keys)); err != nil {
		return err
	}
	for _, k := range f.Keys {
		w.WriteFixedBytes(k[:])
	}
	return nil
}
func (f *BlockIssuerFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureBlockIssuer)); err != nil {
		return err
	}
	slot, err := r.ReadUint32()
	if err != nil {
		return err
	}
	n, err := r.ReadCount8()
	if err != nil {
		return err
	}
	f.ExpirySlot = slot
	f.Keys = make([]BlockIssuerKey, n)
	for i := range f.Keys {
		b, err := r.ReadFixedBytes(32)
		if err != nil {
			return err
		}
		copy(f.Keys[i][:], b)
	}
	return nil
}

// StakingFeature records a validator's staked amount and fixed-term epoch
// range; unbonding-rule semantics are a deferred extension per §9.
type StakingFeature struct {
	StakedAmount uint64
	FixedCost    uint64
	StartEpoch   uint64
	EndEpoch     uint64
}

func (f *StakingFeature) Kind() FeatureKind { return FeatureStaking }
func (f *StakingFeature) Pack(w *codec.Writer) error {
	w.WriteByte(byte(FeatureStaking))
	w.WriteUint64(f.StakedAmount)
	w.WriteUint64(f.FixedCost)
	w.WriteUint64(f.StartEpoch)
	w.WriteUint64(f.EndEpoch)
	return nil
}
func (f *StakingFeature) Unpack(r *codec.Reader) error {
	if err := expectKind(r, byte(FeatureStaking)); err != nil {
		return err
	}
	var err error
	if f.StakedAmount, err = r.ReadUint64(); err != nil {
		return err
	}
	if f.FixedCost, err = r.ReadUint64(); err != nil {
		return err
	}
	if f.StartEpoch, err = r.ReadUint64(); err != nil {
		return err
	}
	if f.EndEpoch, err = r.ReadUint64(); err != nil {
		return err
	}
	return nil
}

func decodeFeature(r *codec.Reader) (Feature, error) {
	save := *r
	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	*r = save
	var f Feature
	switch FeatureKind(kindByte) {
	case FeatureSender:
		f = &SenderFeature{}
	case FeatureIssuer:
		f = &IssuerFeature{}
	case FeatureMetadata:
		f = &MetadataFeature{}
	case FeatureTag:
		f = &TagFeature{}
	case FeatureNativeToken:
		f = &NativeTokenFeature{}
	case FeatureBlockIssuer:
		f = &BlockIssuerFeature{}
	case FeatureStaking:
		f = &StakingFeature{}
	default:
		return nil, codec.ErrInvalidKind
	}
	if err := f.Unpack(r); err != nil {
		return nil, err
	}
	return f, nil
}

// PackFeatures writes the u16-length-prefixed, kind-sorted, kind-unique
// list (container table + invariant 6, spec §3/§4.1).
func PackFeatures(w *codec.Writer, features []Feature) error {
	if err := checkSortedUniqueFeatures(features); err != nil {
		return err
	}
	if err := w.WriteCount16(len(features)); err != nil {
		return err
	}
	for _, f := range features {
		if err := f.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func UnpackFeatures(r *codec.Reader) ([]Feature, error) {
	n, err := r.ReadCount16()
	if err != nil {
		return nil, err
	}
	features := make([]Feature, n)
	for i := range features {
		f, err := decodeFeature(r)
		if err != nil {
			return nil, err
		}
		features[i] = f
	}
	if err := checkSortedUniqueFeatures(features); err != nil {
		return nil, err
	}
	return features, nil
}

func checkSortedUniqueFeatures(features []Feature) error {
	if !sort.SliceIsSorted(features, func(i, j int) bool { return features[i].Kind() < features[j].Kind() }) {
		return codec.ErrUnsortedOrDuplicate
	}
	for i := 1; i < len(features); i++ {
		if features[i-1].Kind() == features[i].Kind() {
			return codec.ErrUnsortedOrDuplicate
		}
	}
	return nil
}

// SortFeatures sorts a caller-built slice ascending by kind.
func SortFeatures(features []Feature) {
	sort.Slice(features, func(i, j int) bool { return features[i].Kind() < features[j].Kind() })
}
