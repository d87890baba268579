package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "equipshare"

// Metrics holds every Prometheus collector exported by the service
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	BookingsCreated      *prometheus.CounterVec
	BookingConflicts     *prometheus.CounterVec
	BookingStatusUpdates *prometheus.CounterVec
}

// New creates the collectors and registers them in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the collectors and registers them in reg
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by method, route and status code.",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),

		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database call latency by operation.",
				Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_errors_total",
				Help:      "Count of failed database calls by operation.",
			},
			[]string{"service", "operation"},
		),
		DBConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections",
				Help:      "Connection pool state (open, in_use, idle).",
			},
			[]string{"service", "state"},
		),

		BookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_created_total",
				Help:      "Count of bookings created.",
			},
			[]string{"service"},
		),
		BookingConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_conflicts_total",
				Help:      "Count of booking requests rejected because the dates were taken.",
			},
			[]string{"service"},
		),
		BookingStatusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_status_updates_total",
				Help:      "Count of owner decisions over bookings by target status.",
			},
			[]string{"service", "status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.BookingsCreated,
		m.BookingConflicts,
		m.BookingStatusUpdates,
	)

	return m
}

// Service returns the service label value
func (m *Metrics) Service() string {
	return m.service
}

func (m *Metrics) IncBookingCreated() {
	m.BookingsCreated.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncBookingConflict() {
	m.BookingConflicts.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncStatusUpdate(status string) {
	m.BookingStatusUpdates.WithLabelValues(m.service, status).Inc()
}

// Noop satisfies the booking recorders when metrics are disabled
type Noop struct{}

func (Noop) IncBookingCreated()       {}
func (Noop) IncBookingConflict()      {}
func (Noop) IncStatusUpdate(_ string) {}
