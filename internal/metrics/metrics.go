// Package metrics records operation latency, failures and money volume.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Collector is implemented by every metrics backend.
type Collector interface {
	RecordOperationDuration(operation string, d time.Duration)
	RecordError(operation, code string)
	RecordTransactionVolume(txType string, amount decimal.Decimal)
}

// Noop discards all measurements.
type Noop struct{}

func (Noop) RecordOperationDuration(string, time.Duration)   {}
func (Noop) RecordError(string, string)                      {}
func (Noop) RecordTransactionVolume(string, decimal.Decimal) {}

// OrNoop returns c, or Noop when c is nil.
func OrNoop(c Collector) Collector {
	if c == nil {
		return Noop{}
	}
	return c
}

// Prometheus exports measurements as prometheus series.
type Prometheus struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	volume   *prometheus.CounterVec
}

// NewPrometheus registers the collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "propmarket_operation_duration_seconds",
			Help:    "Latency of wallet and marketplace operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "propmarket_operation_errors_total",
			Help: "Failed wallet and marketplace operations by error code.",
		}, []string{"operation", "code"}),
		volume: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "propmarket_transaction_volume_total",
			Help: "Absolute money volume of completed ledger entries.",
		}, []string{"type"}),
	}
}

func (p *Prometheus) RecordOperationDuration(operation string, d time.Duration) {
	p.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (p *Prometheus) RecordError(operation, code string) {
	p.errors.WithLabelValues(operation, code).Inc()
}

func (p *Prometheus) RecordTransactionVolume(txType string, amount decimal.Decimal) {
	f, _ := amount.Abs().Float64()
	p.volume.WithLabelValues(txType).Add(f)
}
