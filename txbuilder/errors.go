package txbuilder

import (
	"errors"
	"fmt"

	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// Sentinel/struct errors named in spec §4.2/§7 taxonomy 2. Each carries
// enough context to drive automated retry with a larger input pool.
var (
	ErrNoAvailableInputsProvided = errors.New("txbuilder: no available inputs provided")
	ErrInvalidStorageDepositAmount = errors.New("txbuilder: invalid storage deposit amount")
	ErrNoChangeAddress           = errors.New("txbuilder: no remainder address configured")
	ErrUnknownOutputType         = errors.New("txbuilder: unknown output type for selected input")
)

// AdditionalInputsRequired reports a requirement the available pool could
// not satisfy at all (as opposed to an amount shortfall, which is
// InsufficientAmount).
type AdditionalInputsRequired struct {
	Requirement Requirement
}

func (e *AdditionalInputsRequired) Error() string {
	return fmt.Sprintf("txbuilder: additional inputs required to satisfy %s requirement", e.Requirement.Kind)
}

// InsufficientAmount reports a base-token shortfall.
type InsufficientAmount struct {
	Found, Required uint64
}

func (e *InsufficientAmount) Error() string {
	return fmt.Sprintf("txbuilder: insufficient amount: found %d, required %d", e.Found, e.Required)
}

// InsufficientNativeTokenAmount reports a shortfall for one token id.
type InsufficientNativeTokenAmount struct {
	TokenID         iotago.NativeTokenID
	Found, Required [32]byte
}

func (e *InsufficientNativeTokenAmount) Error() string {
	return fmt.Sprintf("txbuilder: insufficient native token amount for %x", e.TokenID)
}

// InsufficientMana reports a mana shortfall after decay.
type InsufficientMana struct {
	Found, Required uint64
}

func (e *InsufficientMana) Error() string {
	return fmt.Sprintf("txbuilder: insufficient mana: found %d, required %d", e.Found, e.Required)
}

// BurnAndTransition is raised when the caller both burns a chain id and
// supplies a transitioning output for the same id (spec §4.2 Burn
// semantics (a)).
type BurnAndTransition struct {
	ChainID ids.ID
}

func (e *BurnAndTransition) Error() string {
	return fmt.Sprintf("txbuilder: chain %s is both burned and transitioned", e.ChainID)
}
