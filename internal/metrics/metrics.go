package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	valuationsTotal    *prometheus.CounterVec
	valuationDuration  *prometheus.HistogramVec
	greeksDuration     prometheus.Histogram
	invalidContracts   *prometheus.CounterVec
	priceLimitBreaches *prometheus.CounterVec
	archiveWrites      *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{Registry: reg}

	r.valuationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optval_valuations_total",
			Help: "Total number of option valuations by kind and moneyness",
		},
		[]string{"kind", "status"},
	)
	r.valuationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optval_valuation_duration_seconds",
			Help:    "Time spent producing a valuation report",
			Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"kind"},
	)
	r.greeksDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optval_greeks_duration_seconds",
			Help:    "Time spent computing Greeks",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005},
		},
	)
	r.invalidContracts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optval_invalid_contracts_total",
			Help: "Valuations run on contracts that failed validation",
		},
		[]string{"kind"},
	)
	r.priceLimitBreaches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optval_price_limit_breaches_total",
			Help: "Spot prices found outside the daily price band",
		},
		[]string{"market"},
	)
	r.archiveWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optval_archive_writes_total",
			Help: "Valuation reports written to the archive",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.valuationsTotal)
	reg.MustRegister(r.valuationDuration)
	reg.MustRegister(r.greeksDuration)
	reg.MustRegister(r.invalidContracts)
	reg.MustRegister(r.priceLimitBreaches)
	reg.MustRegister(r.archiveWrites)

	return r
}

// RecordValuation records a completed valuation.
func (r *Registry) RecordValuation(kind, status string, duration time.Duration) {
	r.valuationsTotal.WithLabelValues(kind, status).Inc()
	r.valuationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordGreeks records the time taken by one Greeks computation.
func (r *Registry) RecordGreeks(duration time.Duration) {
	r.greeksDuration.Observe(duration.Seconds())
}

// RecordInvalidContract counts a valuation of a contract that failed validation.
func (r *Registry) RecordInvalidContract(kind string) {
	r.invalidContracts.WithLabelValues(kind).Inc()
}

// RecordPriceLimitBreach counts a spot outside the market's daily band.
func (r *Registry) RecordPriceLimitBreach(market string) {
	r.priceLimitBreaches.WithLabelValues(market).Inc()
}

// RecordArchiveWrite records the outcome of an archive write.
func (r *Registry) RecordArchiveWrite(err error) {
	r.archiveWrites.WithLabelValues(outcome(err)).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
