// Package metrics collects Prometheus metrics for the timesheet service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector is used by services and HTTP middleware
type MetricsCollector interface {
	RecordLogin(success bool)
	RecordTaskCreated()
	RecordHoursLogged(hours float64, created bool)
	RecordEntrySubmitted()
	RecordRejected(operation, kind string)
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Collector is the Prometheus implementation of MetricsCollector
type Collector struct {
	logins        *prometheus.CounterVec
	tasksCreated  prometheus.Counter
	hoursLogged   prometheus.Counter
	entriesLogged *prometheus.CounterVec
	entriesSubmit prometheus.Counter
	rejected      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_tasks_created_total",
			Help: "Tasks created by managers",
		}),
		hoursLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_hours_logged_total",
			Help: "Sum of hours written by log operations",
		}),
		entriesLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_entries_logged_total",
			Help: "Log operations by kind (created or updated)",
		}, []string{"kind"}),
		entriesSubmit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_entries_submitted_total",
			Help: "Entries transitioned to submitted",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_rejected_operations_total",
			Help: "Operations rejected by domain rules",
		}, []string{"operation", "kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timesheet_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.logins,
		c.tasksCreated,
		c.hoursLogged,
		c.entriesLogged,
		c.entriesSubmit,
		c.rejected,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// RecordLogin counts a login attempt
func (c *Collector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordTaskCreated counts a created task
func (c *Collector) RecordTaskCreated() {
	c.tasksCreated.Inc()
}

// RecordHoursLogged counts a successful log operation
func (c *Collector) RecordHoursLogged(hours float64, created bool) {
	kind := "updated"
	if created {
		kind = "created"
	}
	c.entriesLogged.WithLabelValues(kind).Inc()
	c.hoursLogged.Add(hours)
}

// RecordEntrySubmitted counts a submit transition
func (c *Collector) RecordEntrySubmitted() {
	c.entriesSubmit.Inc()
}

// RecordRejected counts an operation refused with a domain error
func (c *Collector) RecordRejected(operation, kind string) {
	c.rejected.WithLabelValues(operation, kind).Inc()
}

// RecordHTTPRequest observes a completed request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = Nop{}
)

func (Nop) RecordLogin(bool) {}
func (Nop) RecordTaskCreated() {}
func (Nop) RecordHoursLogged(float64, bool) {}
func (Nop) RecordEntrySubmitted() {}
func (Nop) RecordRejected(string, string) {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
