package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records spreadsheet fetches and storefront activity.
type CatalogMetrics struct {
	duration  *prometheus.HistogramVec
	success   *prometheus.CounterVec
	failure   *prometheus.CounterVec
	products  prometheus.Gauge
	anomalies *prometheus.CounterVec
	orders    prometheus.Counter
	mutations *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of catalog source fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_success",
		Help: "Successful catalog fetches.",
	}, []string{"source"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failure",
		Help: "Failed catalog fetches.",
	}, []string{"source"})
	products := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products",
		Help: "Products in the most recently loaded catalog.",
	})
	anomalies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_row_anomalies",
		Help: "Product rows recovered with defaulted cells.",
	}, []string{"kind"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_formatted",
		Help: "Order messages produced for checkout.",
	})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations",
		Help: "Cart quantity changes by direction.",
	}, []string{"direction"})
	reg.MustRegister(duration, success, failure, products, anomalies, orders, mutations)
	return &CatalogMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		products:  products,
		anomalies: anomalies,
		orders:    orders,
		mutations: mutations,
	}
}

// ObserveFetch records the duration and outcome of one fetch.
func (c *CatalogMetrics) ObserveFetch(source string, duration time.Duration, err error) {
	if c == nil || c.duration == nil {
		return
	}
	source = normalizeLabel(source)
	c.duration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		c.failure.WithLabelValues(source).Inc()
		return
	}
	c.success.WithLabelValues(source).Inc()
}

// SetProducts records the size of the loaded catalog.
func (c *CatalogMetrics) SetProducts(n int) {
	if c == nil || c.products == nil {
		return
	}
	c.products.Set(float64(n))
}

// AddAnomalies counts recovered rows of the given kind.
func (c *CatalogMetrics) AddAnomalies(kind string, n int) {
	if c == nil || c.anomalies == nil || n <= 0 {
		return
	}
	c.anomalies.WithLabelValues(normalizeLabel(kind)).Add(float64(n))
}

// IncOrders counts a formatted order.
func (c *CatalogMetrics) IncOrders() {
	if c == nil || c.orders == nil {
		return
	}
	c.orders.Inc()
}

// ObserveMutation counts a cart change by the sign of delta.
func (c *CatalogMetrics) ObserveMutation(delta int) {
	if c == nil || c.mutations == nil || delta == 0 {
		return
	}
	direction := "increment"
	if delta < 0 {
		direction = "decrement"
	}
	c.mutations.WithLabelValues(direction).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
