package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for the contact gate.
type ContactMetrics struct {
	attemptsTotal       *prometheus.CounterVec
	quotaExhaustedTotal prometheus.Counter
	leadLatency         prometheus.Histogram
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		attemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propline",
			Subsystem: "contact",
			Name:      "attempts_total",
			Help:      "Total contact attempts by outcome",
		}, []string{"outcome"}),
		quotaExhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "propline",
			Subsystem: "contact",
			Name:      "quota_exhausted_total",
			Help:      "Attempts rejected because the contact quota was exhausted",
		}),
		leadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "propline",
			Subsystem: "contact",
			Name:      "lead_creation_seconds",
			Help:      "Latency of lead creation in the lead store",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.attemptsTotal, m.quotaExhaustedTotal, m.leadLatency)
	return m
}

// Attempt outcomes.
const (
	OutcomeCreated          = "created"
	OutcomeValidationFailed = "validation_failed"
	OutcomeQuotaExhausted   = "quota_exhausted"
	OutcomeStoreError       = "store_error"
)

func (m *ContactMetrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}
	m.attemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *ContactMetrics) ObserveQuotaExhausted() {
	if m == nil {
		return
	}
	m.quotaExhaustedTotal.Inc()
}

func (m *ContactMetrics) ObserveLeadLatency(seconds float64) {
	if m == nil {
		return
	}
	m.leadLatency.Observe(seconds)
}
