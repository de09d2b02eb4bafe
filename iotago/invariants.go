package iotago

// ValidateOutput enforces the structural invariants of spec §3 that apply
// to every Output regardless of kind. Variant-specific primary-address
// rules are checked by validatePrimaryAddressRule.
func ValidateOutput(o Output, params StorageScoreParameters, tokenSupply uint64) error {
	if o.Amount() == 0 {
		return ErrAmountZero
	}
	if o.Amount() > tokenSupply {
		return ErrAmountExceedsSupply
	}
	if min := MinStorageDeposit(o, params); o.Amount() < min {
		return ErrAmountBelowStorageDeposit
	}

	if err := checkSortedUniqueConditions(o.UnlockConditions()); err != nil {
		return err
	}
	if err := checkSortedUniqueFeatures(o.Features()); err != nil {
		return err
	}
	for i := 1; i < len(o.NativeTokens()); i++ {
		if !lessTokenID(o.NativeTokens()[i-1].ID, o.NativeTokens()[i].ID) {
			return ErrUnsortedOrDuplicate
		}
	}

	if exp, ok := ExpirationCondition(o); ok {
		if primary, ok := PrimaryAddress(o); ok && addressesEqual(primary, exp.ReturnAddress) {
			return ErrExpirationReturnSameAsAddress
		}
	}

	return validatePrimaryAddressRule(o)
}

// validatePrimaryAddressRule enforces invariant 3: "Exactly one primary
// Address-family unlock condition per output (variant-specific)."
func validatePrimaryAddressRule(o Output) error {
	switch v := o.(type) {
	case *BasicOutput:
		if _, ok := PrimaryAddress(v); !ok {
			return ErrMissingPrimaryAddress
		}
	case *NFTOutput:
		if _, ok := PrimaryAddress(v); !ok {
			return ErrMissingPrimaryAddress
		}
	case *DelegationOutput:
		if _, ok := PrimaryAddress(v); !ok {
			return ErrMissingPrimaryAddress
		}
	case *AccountOutput:
		if _, ok := v.StateController(); !ok {
			return ErrMissingPrimaryAddress
		}
		if _, ok := v.Governor(); !ok {
			return ErrMissingPrimaryAddress
		}
	case *FoundryOutput:
		if _, ok := v.AccountAddr(); !ok {
			return ErrMissingImmutableAccountAddress
		}
	}
	return nil
}

func addressesEqual(a, b Address) bool {
	return a.Key() == b.Key()
}
