package iotago

// ProtocolParameters is the value-typed context threaded through every
// codec/builder call, replacing the teacher-pattern of package-level
// mutable defaults (design notes: "Global mutable defaults") with an
// explicit parameter object returned by the external node's GET /info
// (spec §6).
type ProtocolParameters struct {
	NetworkName  string
	Bech32HRP    string
	TokenSupply  uint64
	SlotDuration uint32
	GenesisUnix  int64

	Storage StorageScoreParameters
	Mana    ManaParameters
	Work    WorkScoreParameters
}

// StorageScoreParameters is the reference weight table named in spec §4.1:
// "implementers share one reference table".
type StorageScoreParameters struct {
	// FactorData is the per-byte multiplier applied to an output's
	// serialized size.
	FactorData uint64
	// Offsets below are additive per-entity contributions, keyed by what
	// they describe. All are expressed in the same score unit as
	// FactorData*bytes.
	OffsetOutput                uint64
	OffsetEd25519BlockIssuerKey  uint64
	OffsetStakingFeature         uint64
	OffsetDelegation             uint64
	// StorageCost is the base-token cost of one storage-score unit; the
	// minimum amount for an output is Score(output) * StorageCost.
	StorageCost uint64
}

// ManaParameters parameterizes mana decay. They are carried with the
// protocol parameters; neither the transaction builder nor the wallet
// balance reads them.
type ManaParameters struct {
	// BitsCount is the size of the decay factor lookup table.
	BitsCount uint8
	// GenerationRate and GenerationRateExponent convert stored base
	// tokens into mana accrued per slot.
	GenerationRate         uint8
	GenerationRateExponent uint8
	// DecayFactors is indexed by number of elapsed epochs; entries are
	// fixed-point multipliers (numerator over 1<<DecayFactorsExponent).
	DecayFactors         []uint32
	DecayFactorsExponent uint8
	SlotsPerEpochExponent uint8
}

// WorkScoreParameters is carried for completeness (spec §6 GET /info) but
// is not used to re-verify proof-of-work, which is explicitly out of scope
// (spec §1 Non-goals).
type WorkScoreParameters struct {
	DataByte   uint32
	Block      uint32
	Input      uint32
	ContextInput uint32
	Output     uint32
}
