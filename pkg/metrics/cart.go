package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "elex"

// Persistence failure kinds.
const (
	KindLoad = "load"
	KindSave = "save"
)

// CartMetrics records cart store activity.
type CartMetrics struct {
	operations  *prometheus.CounterVec
	persistence *prometheus.CounterVec
	checkouts   prometheus.Counter
	active      prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart mutations applied, by operation.",
	}, []string{"op"})
	persistence := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persistence_failures_total",
		Help:      "Swallowed cart storage failures, by kind.",
	}, []string{"kind"})
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_checkout_links_total",
		Help:      "WhatsApp checkout links built.",
	})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_active_stores",
		Help:      "Cart stores currently held in memory.",
	})
	reg.MustRegister(operations, persistence, checkouts, active)
	return &CartMetrics{
		operations:  operations,
		persistence: persistence,
		checkouts:   checkouts,
		active:      active,
	}
}

// IncOperation counts one applied mutation.
func (c *CartMetrics) IncOperation(op string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPersistenceFailure counts a load or save failure that was recovered from.
func (c *CartMetrics) IncPersistenceFailure(kind string) {
	if c == nil || c.persistence == nil {
		return
	}
	c.persistence.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (c *CartMetrics) IncCheckout() {
	if c == nil || c.checkouts == nil {
		return
	}
	c.checkouts.Inc()
}

// SetActiveStores reports the registry size.
func (c *CartMetrics) SetActiveStores(n int) {
	if c == nil || c.active == nil {
		return
	}
	c.active.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
