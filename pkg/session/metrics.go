package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "browsersession"

type metrics struct {
	loads      *prometheus.CounterVec
	saves      *prometheus.CounterVec
	errors     prometheus.Counter
	cookieSize prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "loads_total",
			Help:      "Sessions opened, by result",
		}, []string{"result"}),

		saves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "saves_total",
			Help:      "Sessions finalized, by action",
		}, []string{"action"}),

		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "save_errors_total",
			Help:      "Sessions that could not be written",
		}),

		cookieSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cookie_size_bytes",
			Help:      "Size of written session tokens",
			Buckets:   prometheus.ExponentialBuckets(64, 2, 7),
		}),
	}
}

// nil-safe helpers keep call sites free of metric checks.

func (m *metrics) load(result string) {
	if m != nil {
		m.loads.WithLabelValues(result).Inc()
	}
}

func (m *metrics) save(action ActionKind, size int) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(action.String()).Inc()
	if action == ActionSet {
		m.cookieSize.Observe(float64(size))
	}
}

func (m *metrics) saveError() {
	if m != nil {
		m.errors.Inc()
	}
}
