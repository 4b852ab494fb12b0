package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRecompute(time.Now(), true)
	m.ObserveRecompute(time.Now(), false)
	m.CountCommand("add_day")
	m.CountCommand("add_day")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recomputes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandsApplied.WithLabelValues("add_day")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "mokki_recompute_duration_seconds")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRecompute(time.Now(), true)
		m.CountCommand("reset")
		m.ObserveRPC("/mokki.v1.TripService/GetTrip", "ok", time.Now())
	})
}
