package txbuilder

import (
	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/logging"
)

// Backend specifies everything the builder needs beyond its arguments to
// Build, mirroring the teacher's BuilderBackend split of "context plus a
// couple of accessors" (wallet/chain/p/builder.go). Unlike the teacher,
// there is no UTXOs()/GetTx() I/O call here: Build is synchronous (spec §5),
// so the whole available-inputs slice and any referenced subnet/chain
// outputs are passed in directly by the caller (the wallet façade, which
// already has them from the Syncer's snapshot).
type Backend struct {
	Params            iotago.ProtocolParameters
	NetworkID         uint64
	RemainderAddress  iotago.Address
	CreationSlot      uint32
	TargetSlot        uint32
	Log               logging.Logger
}

// Options are per-Build overrides, generalizing the teacher's
// wallet/subnet/primary/common.Options (change owner, min issuance time).
type Options struct {
	RemainderAddress iotago.Address
	Logger           logging.Logger
}

type Option func(*Options)

func WithRemainderAddress(a iotago.Address) Option {
	return func(o *Options) { o.RemainderAddress = a }
}

func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func newOptions(backend Backend, opts []Option) Options {
	o := Options{RemainderAddress: backend.RemainderAddress, Logger: backend.Log}
	for _, apply := range opts {
		apply(&o)
	}
	if o.Logger == nil {
		o.Logger = logging.NoLog{}
	}
	return o
}
