package metrics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Observe(t *testing.T) {
	codec := NewCodec()
	registry := prometheus.NewRegistry()
	codec.MustRegister(registry)

	codec.Observe(OperationEncode, 1024, 42, nil)
	codec.Observe(OperationEncode, 2048, 43, nil)
	codec.Observe(OperationDecode, 0, 0, errors.New("broken"))

	assert.Equal(t, 2.0, testutil.ToFloat64(codec.Operations(OperationEncode, true)))
	assert.Equal(t, 1.0, testutil.ToFloat64(codec.Operations(OperationDecode, false)))
	assert.Equal(t, 0.0, testutil.ToFloat64(codec.Operations(OperationDecode, true)))
	assert.Equal(t, 43.0, testutil.ToFloat64(codec.LastSlot()))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "bank_snapshot_operations_total")
	assert.Contains(t, names, "bank_snapshot_bytes")
	assert.Contains(t, names, "bank_snapshot_last_slot")
}

func TestCodec_ObserveNil(t *testing.T) {
	var codec *Codec

	assert.NotPanics(t, func() {
		codec.Observe(OperationDecode, 1, 1, nil)
	})
}
