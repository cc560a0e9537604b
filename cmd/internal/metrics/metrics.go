package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing, which keeps tests free of registries.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bookings        *prometheus.CounterVec
	generations     *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	pendingJobs     prometheus.Gauge
	socketClients   prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "companion",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of response durations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"status"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Name:      "generations_total",
			Help:      "Text generation calls by category, tier and outcome",
		}, []string{"category", "tier", "status"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "companion",
			Name:      "email_deliveries_total",
			Help:      "Email deliveries by mode (immediate or deferred) and outcome",
		}, []string{"mode", "status"}),
		pendingJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "companion",
			Name:      "deferred_jobs_pending",
			Help:      "Deferred notifications registered but not yet fired",
		}),
		socketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "companion",
			Name:      "socket_clients",
			Help:      "Open realtime connections",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.httpRequests, m.requestDuration, m.bookings, m.generations,
		m.deliveries, m.pendingJobs, m.socketClients)
	return m
}

func (m *Metrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveGeneration(category, tier, status string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(category, tier, status).Inc()
}

func (m *Metrics) ObserveDelivery(mode string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.deliveries.WithLabelValues(mode, status).Inc()
}

func (m *Metrics) JobScheduled() {
	if m == nil {
		return
	}
	m.pendingJobs.Inc()
}

func (m *Metrics) JobFired() {
	if m == nil {
		return
	}
	m.pendingJobs.Dec()
}

func (m *Metrics) SocketOpened() {
	if m == nil {
		return
	}
	m.socketClients.Inc()
}

func (m *Metrics) SocketClosed() {
	if m == nil {
		return
	}
	m.socketClients.Dec()
}

// Middleware records request counts and latency per route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.httpRequests.WithLabelValues(path, method, status).Inc()
			m.requestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
