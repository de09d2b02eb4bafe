package txbuilder

import (
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// maxIterations bounds the requirement-drain/balance loop so a
// pathological input set fails fast instead of spinning (spec §4.2:
// "Terminate with InsufficientAmount ... if no progress is possible").
const maxIterations = 1000

// UnlockHint tells the caller's secret manager what kind of unlock each
// input needs without the builder performing any signing itself (spec
// §4.2 Unlock emission; signing is the SecretManager's job, spec §4.4).
type UnlockHint struct {
	Kind UnlockKind
	// Address is populated for a Signature unlock.
	Address iotago.Address
	// Reference is populated for Reference/Account/NFT unlocks: the index
	// of the input that already carries (or will carry) the unlock for
	// this address/chain.
	Reference uint16
	// SubHints is populated for a Multi unlock, one entry per member
	// needed to reach the address's threshold.
	SubHints []UnlockHint
}

// UnlockKind mirrors iotago.UnlockKind; kept as a builder-local alias so
// callers needn't import iotago just to switch on it.
type UnlockKind = iotago.UnlockKind

// PreparedTransaction is the builder's output: an unsigned essence, the
// UTXOs it consumes (parallel to Transaction.Inputs, in the same order),
// and per-input unlock hints (spec §4.2: "emits ... inputs, outputs,
// unlock order, and ancillary commitments").
type PreparedTransaction struct {
	Transaction      *iotago.Transaction
	ConsumedOutputs  []iotago.UTXO
	UnlockHints      []UnlockHint
	InputsCommitment ids.ID
}

// Builder is implemented by *builder; the interface exists so tests and
// the wallet façade can substitute a fake (teacher pattern: small
// interfaces at package boundaries, e.g. wallet/chain/p Builder).
type Builder interface {
	Build(outputs []iotago.Output, burn *Burn, available []iotago.UTXO, opts ...Option) (*PreparedTransaction, error)
}

type builder struct {
	backend Backend
	// signerAddresses is the set of addresses this wallet can sign for,
	// consulted by canSign when an Ed25519 requirement is resolved. Inputs
	// pulled for amount or native-token balancing, or by chain id, are not
	// filtered against it.
	signerAddresses map[string]bool
}

// NewBuilder returns a Builder that resolves Ed25519 requirements only
// from inputs unlockable by one of signerAddresses. Other selection steps
// take from available without checking signerAddresses.
func NewBuilder(backend Backend, signerAddresses []iotago.Address) Builder {
	set := make(map[string]bool, len(signerAddresses))
	for _, a := range signerAddresses {
		set[a.Key()] = true
	}
	return &builder{backend: backend, signerAddresses: set}
}

// buildState tracks progress across the requirement-drain/balance loop.
type buildState struct {
	selected      []iotago.UTXO
	unlockedAddrs map[string]int // address key -> index of input carrying its Signature/Account/NFT unlock
	chainInputIx  map[ids.ID]int // chain id -> index in selected, for Account(ix)/NFT(ix) hints
}

func newBuildState() *buildState {
	return &buildState{
		unlockedAddrs: make(map[string]int),
		chainInputIx:  make(map[ids.ID]int),
	}
}

func (s *buildState) selectedAmount() uint64 {
	var total uint64
	for _, u := range s.selected {
		total += u.Output.Amount()
	}
	return total
}

func (s *buildState) selectedToken(id iotago.NativeTokenID) [32]byte {
	var total [32]byte
	for _, u := range s.selected {
		for _, nt := range u.Output.NativeTokens() {
			if nt.ID == id {
				total = add256(total, nt.Amount)
			}
		}
	}
	return total
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

func sub256(a, b [32]byte) (out [32]byte, underflow bool) {
	var borrow int16
	for i := 0; i < 32; i++ {
		d := int16(a[i]) - int16(b[i]) - borrow
		if d < 0 {
			d += 256
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(d)
	}
	return out, borrow != 0
}

func isZero256(a [32]byte) bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

// canSign reports whether addr is one of the wallet's signer addresses.
func (b *builder) canSign(addr iotago.Address) bool {
	return b.signerAddresses[addr.Key()]
}

// Build implements the requirement-driven selection algorithm of spec
// §4.2, generalizing the teacher's wallet/chain/p Builder.spend() loop:
// drain a requirement queue (chain ids, sender/issuer addresses,
// Ed25519 addresses), then balance amount and native tokens by pulling
// more inputs from the pool, looping until the queue is empty and no
// more inputs were pulled. Mana is not balanced: input and output mana
// are not compared and no decay is applied.
func (b *builder) Build(outputs []iotago.Output, burn *Burn, available []iotago.UTXO, opts ...Option) (*PreparedTransaction, error) {
	o := newOptions(b.backend, opts)
	if len(available) == 0 {
		return nil, ErrNoAvailableInputsProvided
	}
	if o.RemainderAddress == nil {
		return nil, ErrNoChangeAddress
	}
	if burn == nil {
		burn = NewBurn()
	}

	if err := checkBurnAndTransition(outputs, burn); err != nil {
		return nil, err
	}

	p := newPool(available)
	st := newBuildState()
	q := newRequirementQueue()

	for _, out := range outputs {
		if chainID, ok := iotago.ChainIDOf(out); ok && !isZeroID(chainID) {
			q.push(b.requirementForChainID(out, chainID))
		}
		for _, f := range out.Features() {
			switch feat := f.(type) {
			case *iotago.SenderFeature:
				q.push(Requirement{Kind: RequirementSender, Address: feat.Address})
			case *iotago.IssuerFeature:
				q.push(Requirement{Kind: RequirementIssuer, Address: feat.Address})
			}
		}
	}
	for id := range burn.Accounts {
		q.push(Requirement{Kind: RequirementAccount, ChainID: id})
	}
	for id := range burn.Foundries {
		q.push(Requirement{Kind: RequirementFoundry, ChainID: id})
	}
	for id := range burn.NFTs {
		q.push(Requirement{Kind: RequirementNFT, ChainID: id})
	}
	for id := range burn.Delegations {
		q.push(Requirement{Kind: RequirementDelegation, ChainID: id})
	}

	iterations := 0
	for {
		iterations++
		if iterations > maxIterations {
			return nil, &InsufficientAmount{Found: st.selectedAmount(), Required: requiredAmount(outputs)}
		}

		progressed, err := b.drainQueue(outputs, q, p, st)
		if err != nil {
			return nil, err
		}

		balanced, balProgress, err := b.balance(outputs, burn, p, st, q, o)
		if err != nil {
			return nil, err
		}
		if balanced && !progressed && !balProgress {
			break
		}
		if balanced && q.empty() {
			break
		}
	}

	finalOutputs, err := b.synthesizeRemainder(outputs, burn, st, o)
	if err != nil {
		return nil, err
	}

	tx, hints, consumed, err := b.assemble(st, finalOutputs, burn, o)
	if err != nil {
		return nil, err
	}

	inputsCommitment := iotago.InputsCommitment(outputsOf(consumed))

	return &PreparedTransaction{
		Transaction:      tx,
		ConsumedOutputs:  consumed,
		UnlockHints:      hints,
		InputsCommitment: inputsCommitment,
	}, nil
}

func outputsOf(utxos []iotago.UTXO) []iotago.Output {
	out := make([]iotago.Output, len(utxos))
	for i, u := range utxos {
		out[i] = u.Output
	}
	return out
}

func isZeroID(id ids.ID) bool { return id == ids.Empty }

func requiredAmount(outputs []iotago.Output) uint64 {
	var total uint64
	for _, o := range outputs {
		total += o.Amount()
	}
	return total
}

func checkBurnAndTransition(outputs []iotago.Output, burn *Burn) error {
	for _, out := range outputs {
		chainID, ok := iotago.ChainIDOf(out)
		if !ok || isZeroID(chainID) {
			continue
		}
		if burn.Accounts.Contains(chainID) || burn.Foundries.Contains(chainID) ||
			burn.NFTs.Contains(chainID) || burn.Delegations.Contains(chainID) {
			return &BurnAndTransition{ChainID: chainID}
		}
	}
	return nil
}

func (b *builder) requirementForChainID(out iotago.Output, chainID ids.ID) Requirement {
	switch out.(type) {
	case *iotago.AccountOutput:
		return Requirement{Kind: RequirementAccount, ChainID: chainID}
	case *iotago.FoundryOutput:
		return Requirement{Kind: RequirementFoundry, ChainID: chainID}
	case *iotago.NFTOutput:
		return Requirement{Kind: RequirementNFT, ChainID: chainID}
	case *iotago.DelegationOutput:
		return Requirement{Kind: RequirementDelegation, ChainID: chainID}
	}
	return Requirement{}
}
