package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("test-service", reg)

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict()
	m.IncStatusUpdate("Approved")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsCreated.WithLabelValues("test-service")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingConflicts.WithLabelValues("test-service")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingStatusUpdates.WithLabelValues("test-service", "Approved")))
	assert.Equal(t, "test-service", m.Service())
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NotPanics(t, func() {
		n.IncBookingCreated()
		n.IncBookingConflict()
		n.IncStatusUpdate("Rejected")
	})
}
