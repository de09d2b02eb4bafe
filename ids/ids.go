// Package ids defines the fixed-size hash identifiers used throughout the
// ledger: TransactionID, OutputID and ChainID. All are blake2b-256
// derived per spec §4.1. BlockID is declared in package iotago.
package ids

import (
	"encoding/hex"
	"errors"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// ID is a 32-byte blake2b-256 digest, used as TransactionID and ChainID.
type ID [32]byte

// Empty is the null/zero ID, used to mark a chain output as newly created.
var Empty ID

func (id ID) IsEmpty() bool { return id == Empty }

func (id ID) String() string { return hex.EncodeToString(id[:]) }

func (id ID) Bytes() []byte { return id[:] }

// FromBytes copies the first 32 bytes of b into an ID, erroring if b is too
// short.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) < len(id) {
		return id, errors.New("ids: buffer too short for ID")
	}
	copy(id[:], b)
	return id, nil
}

// Blake2b256 hashes data into an ID, the sole hashing primitive named by
// §4.1 for every identifier derivation.
func Blake2b256(data []byte) ID {
	return ID(blake2b.Sum256(data))
}

// Less provides a total order for canonical sorting (e.g. inputs by OutputId,
// §4.2 Unlock emission).
func (id ID) Less(other ID) bool {
	for i := range id {
		if id[i] != other[i] {
			return id[i] < other[i]
		}
	}
	return false
}

// SortIDs sorts ids ascending, in place.
func SortIDs(list []ID) {
	sort.Slice(list, func(i, j int) bool { return list[i].Less(list[j]) })
}

// Set is a minimal unique-membership set of IDs, used by the Syncer's
// visited-chain-address tracking (spec §4.3 step 3) to guarantee
// termination of the recursive discovery walk.
type Set map[ID]struct{}

func NewSet() Set { return make(Set) }

func (s Set) Add(id ID) { s[id] = struct{}{} }

func (s Set) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }
