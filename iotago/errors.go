package iotago

import (
	"errors"

	"github.com/shimmerkit/ledgersdk/iotago/codec"
)

// Structural failure modes named verbatim in spec §4.1. These are always
// local and never recoverable at this layer (spec §7 taxonomy 1);
// Ledger-Types surfaces them as-is and never logs or panics. The four
// generic ones are aliased onto the codec package's sentinels so a single
// error identity flows from the low-level writer/reader up through every
// domain-level check.
var (
	ErrInvalidKind             = codec.ErrInvalidKind
	ErrLengthOutOfRange        = codec.ErrLengthOutOfRange
	ErrUnsortedOrDuplicate     = codec.ErrUnsortedOrDuplicate
	ErrTrailingBytes           = codec.ErrTrailingBytes

	ErrAmountZero                     = errors.New("iotago: amount must be greater than zero")
	ErrAmountExceedsSupply            = errors.New("iotago: amount exceeds token supply")
	ErrAmountBelowStorageDeposit       = errors.New("iotago: amount below storage deposit")
	ErrExpirationReturnSameAsAddress   = errors.New("iotago: expiration return address same as primary address")
	ErrMissingPrimaryAddress           = errors.New("iotago: missing primary address unlock condition")
	ErrMissingImmutableAccountAddress  = errors.New("iotago: missing immutable account address unlock condition")
	ErrNetworkIDMismatch               = errors.New("iotago: network id mismatch")
	ErrChainIDNotPreserved             = errors.New("iotago: non-null chain id not preserved across transition")
)
