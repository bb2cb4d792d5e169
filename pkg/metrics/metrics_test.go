package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/pkg/metrics"
)

func TestMetrics_Nil(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/producer/list", 200, time.Millisecond)
		m.ComponentEvent("created")
		m.DeviceAssembled("D1")
		m.AssemblyFailed("quality_pending")
		m.Login("ok")
	})
	assert.Nil(t, metrics.New(nil))
}

func TestMetrics_Registra(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	require.NotNil(t, m)

	m.DeviceAssembled("D1")
	m.DeviceAssembled("")
	m.AssemblyFailed("component_rejected")
	m.ObserveRequest("POST", "/assembler/add", 201, 5*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "devices_assembled_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "D1 y unresolved son series distintas")

	count, err = testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
