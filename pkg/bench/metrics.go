package bench

import "github.com/prometheus/client_golang/prometheus"

const (
	StructureMidlist   = "midlist"
	StructureTwoAnchor = "two_anchor"
)

type Metrics struct {
	hops *prometheus.HistogramVec
	ops  *prometheus.CounterVec
}

// NewMetrics registers the bench collectors to reg. A nil reg is allowed,
// in which case nothing is registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hops: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "traversal_hops",
			Help:    "Link hops walked to reach a position",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"structure", "op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bench_ops_total",
			Help: "The total number of bench operations",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.hops, m.ops)
	}
	return m
}

func (m *Metrics) observe(op string, mid, base int) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op).Inc()
	m.hops.WithLabelValues(StructureMidlist, op).Observe(float64(mid))
	m.hops.WithLabelValues(StructureTwoAnchor, op).Observe(float64(base))
}
