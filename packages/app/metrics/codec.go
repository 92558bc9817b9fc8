package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OperationEncode is the operation label of encoded snapshots.
	OperationEncode = "encode"

	// OperationDecode is the operation label of decoded snapshots.
	OperationDecode = "decode"

	resultSuccess = "success"
	resultFailure = "failure"
)

// region Codec ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Codec contains the collectors that record the operations of the snapshot codec.
type Codec struct {
	operations *prometheus.CounterVec
	sizes      *prometheus.HistogramVec
	lastSlot   prometheus.Gauge
}

// NewCodec creates the collectors of the snapshot codec.
func NewCodec() *Codec {
	return &Codec{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_snapshot_operations_total",
				Help: "number of snapshot operations per operation and result",
			}, []string{
				"operation",
				"result",
			}),
		sizes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_snapshot_bytes",
				Help:    "size of the successfully processed snapshots in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 10),
			}, []string{
				"operation",
			}),
		lastSlot: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bank_snapshot_last_slot",
			Help: "slot of the last successfully processed snapshot",
		}),
	}
}

// MustRegister registers the collectors at the given registry.
func (c *Codec) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(c.operations)
	registry.MustRegister(c.sizes)
	registry.MustRegister(c.lastSlot)
}

// Observe records the outcome of an operation. It is a no-op on a nil Codec.
func (c *Codec) Observe(operation string, size int, slot uint64, err error) {
	if c == nil {
		return
	}

	if err != nil {
		c.operations.WithLabelValues(operation, resultFailure).Inc()
		return
	}

	c.operations.WithLabelValues(operation, resultSuccess).Inc()
	c.sizes.WithLabelValues(operation).Observe(float64(size))
	c.lastSlot.Set(float64(slot))
}

// Operations returns the counter of the operations with the given labels.
func (c *Codec) Operations(operation string, success bool) prometheus.Counter {
	result := resultFailure
	if success {
		result = resultSuccess
	}

	return c.operations.WithLabelValues(operation, result)
}

// LastSlot returns the gauge of the last processed slot.
func (c *Codec) LastSlot() prometheus.Gauge {
	return c.lastSlot
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
