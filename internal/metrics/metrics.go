// Package metrics collects Prometheus metrics for classification, reports,
// votes and HTTP traffic, and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements classifier.Recorder and the service counters.
type Collector struct {
	classifications     *prometheus.CounterVec
	classifyLatency     prometheus.Histogram
	reportsSubmitted    *prometheus.CounterVec
	votesCast           *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustlink_classifications_total",
			Help: "Classification calls by outcome",
		}, []string{"outcome"}),
		classifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustlink_classification_duration_seconds",
			Help:    "Classification latency in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		reportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustlink_reports_submitted_total",
			Help: "Reports recorded by category",
		}, []string{"category"}),
		votesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustlink_community_votes_total",
			Help: "Community votes cast by category",
		}, []string{"category"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
	}

	reg.MustRegister(
		c.classifications,
		c.classifyLatency,
		c.reportsSubmitted,
		c.votesCast,
		c.httpRequests,
		c.httpRequestDuration,
		c.httpInFlight,
	)
	return c
}

func (c *Collector) RecordClassification(outcome string, d time.Duration) {
	c.classifications.WithLabelValues(outcome).Inc()
	c.classifyLatency.Observe(d.Seconds())
}

func (c *Collector) RecordReport(category string) {
	c.reportsSubmitted.WithLabelValues(category).Inc()
}

func (c *Collector) RecordVote(category string) {
	c.votesCast.WithLabelValues(category).Inc()
}

// Middleware records request counts and latency per matched route.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		c.httpInFlight.Inc()
		defer c.httpInFlight.Dec()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := ctx.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}

		c.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.httpRequestDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// FiberHandler adapts Handler for a Fiber route.
func FiberHandler(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(Handler(gatherer))
}
