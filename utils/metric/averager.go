// Package metric wraps prometheus histograms the way the teacher's
// vms/metervm package times VM calls, reused here so the Syncer can time its
// external calls (indexer fan-out, output fetch, foundry fetch) uniformly.
package metric

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shimmerkit/ledgersdk/utils"
)

// Averager records observations of a duration-like quantity under a single
// prometheus histogram.
type Averager interface {
	Observe(float64)
}

type averager struct {
	histogram prometheus.Histogram
}

func (a *averager) Observe(v float64) { a.histogram.Observe(v) }

// noopAverager discards observations, used when no registry was supplied
// (e.g. in tests or a caller that doesn't want prometheus wired in).
type noopAverager struct{}

func (noopAverager) Observe(float64) {}

// NewNoopAverager returns an Averager that discards every observation.
func NewNoopAverager() Averager { return noopAverager{} }

// NewAverager registers a histogram named namespace_name with reg, appending
// any registration error to errs instead of returning it, matching the
// teacher's newAverager(namespace, name, reg, errs) signature.
func NewAverager(namespace, name string, reg prometheus.Registerer, errs *utils.Errs) Averager {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      fmt.Sprintf("time (in ns) of a %s call", name),
	})
	if errs != nil {
		errs.Add(reg.Register(histogram))
	}
	return &averager{histogram: histogram}
}
