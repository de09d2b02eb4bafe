package iotago

// StorageScore computes the total weight of an output per spec §4.1: a
// total, pure function of factor_data*size + sum(offsets). It never
// suspends and never errors — every Output variant must be fully formed
// before this is called.
func StorageScore(o Output, params StorageScoreParameters) uint64 {
	size := uint64(len(MustEncodeOutput(o)))
	score := params.FactorData*size + params.OffsetOutput

	for _, f := range o.Features() {
		switch ft := f.(type) {
		case *BlockIssuerFeature:
			score += uint64(len(ft.Keys)) * params.OffsetEd25519BlockIssuerKey
		case *StakingFeature:
			score += params.OffsetStakingFeature
		}
	}
	if _, ok := o.(*DelegationOutput); ok {
		score += params.OffsetDelegation
	}
	return score
}

// MinStorageDeposit returns the minimum amount required for o to satisfy
// invariant 2 of spec §3 (dust protection): score(o) * storage_cost.
func MinStorageDeposit(o Output, params StorageScoreParameters) uint64 {
	return StorageScore(o, params) * params.StorageCost
}
