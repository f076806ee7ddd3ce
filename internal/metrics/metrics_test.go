package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus_RecordsSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.RecordError("purchase", "INSUFFICIENT_FUNDS")
	p.RecordError("purchase", "INSUFFICIENT_FUNDS")
	p.RecordTransactionVolume("purchase", decimal.RequireFromString("-150.25"))
	p.RecordOperationDuration("purchase", 20*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(p.errors.WithLabelValues("purchase", "INSUFFICIENT_FUNDS")))
	assert.Equal(t, 150.25, testutil.ToFloat64(p.volume.WithLabelValues("purchase")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.duration))
}

func TestOrNoop(t *testing.T) {
	assert.Equal(t, Noop{}, OrNoop(nil))

	p := NewPrometheus(prometheus.NewRegistry())
	assert.Same(t, p, OrNoop(p))
}
