package wallet

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/utils"
)

// Balance is the snapshot spec §4.3 "Balance computation" describes, taken
// over the wallet's current UnspentOutputs.
type Balance struct {
	Available uint64
	// PotentiallyLocked is the portion of total amount that a timelock or
	// unsatisfied expiration condition currently withholds from Available.
	PotentiallyLocked uint64

	Accounts    int
	Foundries   int
	NFTs        int
	Delegations int

	// NativeTokens totals available native-token amounts by id.
	NativeTokens map[iotago.NativeTokenID][32]byte

	// RequiredStorageDeposit sums each output's own minimum amount, the
	// portion of Available that storage-deposit protection pins down.
	RequiredStorageDeposit uint64
}

func newBalance() *Balance {
	return &Balance{NativeTokens: make(map[iotago.NativeTokenID][32]byte)}
}

// computeBalance classifies every unspent output as available or
// potentially locked against currentSlot, and accumulates the per-kind and
// per-token totals spec §4.3 names.
func computeBalance(unspent map[ids.OutputID]iotago.UTXO, currentSlot uint32, params iotago.StorageScoreParameters) *Balance {
	b := newBalance()
	for _, u := range unspent {
		o := u.Output
		if sum, err := utils.Add64(b.RequiredStorageDeposit, iotago.MinStorageDeposit(o, params)); err == nil {
			b.RequiredStorageDeposit = sum
		}

		net, locked := availableAmount(o, currentSlot)
		if locked {
			if sum, err := utils.Add64(b.PotentiallyLocked, o.Amount()); err == nil {
				b.PotentiallyLocked = sum
			}
		} else {
			if sum, err := utils.Add64(b.Available, net); err == nil {
				b.Available = sum
			}
			for _, nt := range o.NativeTokens() {
				b.NativeTokens[nt.ID] = add256(b.NativeTokens[nt.ID], nt.Amount)
			}
		}

		switch o.(type) {
		case *iotago.AccountOutput:
			b.Accounts++
		case *iotago.FoundryOutput:
			b.Foundries++
		case *iotago.NFTOutput:
			b.NFTs++
		case *iotago.DelegationOutput:
			b.Delegations++
		}
	}
	return b
}

// availableAmount reports the net amount o contributes to Available (its
// full amount less any active Storage Deposit Return obligation) and
// whether a timelock or unexpired Expiration makes it unavailable right
// now (spec §4.3 Balance computation).
func availableAmount(o iotago.Output, currentSlot uint32) (net uint64, locked bool) {
	net = o.Amount()
	for _, uc := range o.UnlockConditions() {
		switch c := uc.(type) {
		case *iotago.TimelockUnlockCondition:
			if currentSlot < c.Slot {
				return 0, true
			}
		case *iotago.ExpirationUnlockCondition:
			if !c.IsExpired(currentSlot) {
				// Not yet returned to c.ReturnAddress; still spendable by
				// the primary address, but the return address's claim
				// hasn't activated either way so amount stays available
				// to the current owner.
			}
		case *iotago.StorageDepositReturnUnlockCondition:
			if remaining, err := utils.Sub64(net, c.Amount); err == nil {
				net = remaining
			} else {
				net = 0
			}
		}
	}
	return net, false
}

func add256(a, b [32]byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 0; i < 32; i++ {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}
