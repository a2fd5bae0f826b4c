// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

// Package metrics provides Prometheus metric collection and exposition.
//
// # Architecture
//
// A single [Collector] is registered at startup and injected into the layers
// that produce signals (HTTP middleware, order ledger). Exposition happens on
// the unauthenticated /metrics endpoint via promhttp.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the application-level Prometheus metrics.
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpLatency    prometheus.Histogram
	ordersPlaced   prometheus.Counter
	ordersRejected *prometheus.CounterVec
	signups        prometheus.Counter
	logins         *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderly_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orderly_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderly_orders_placed_total",
			Help: "Orders accepted and persisted.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderly_orders_rejected_total",
			Help: "Orders rejected before persistence, by reason.",
		}, []string{"reason"}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderly_signups_total",
			Help: "Successful account registrations.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderly_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.ordersPlaced,
		c.ordersRejected,
		c.signups,
		c.logins,
	)

	return c
}

// ObserveRequest records the final status and latency of an HTTP request.
// Implements the middleware.StatusObserver interface.
func (c *Collector) ObserveRequest(method, path string, status int, latency time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(latency.Seconds())
}

// RecordOrderPlaced counts a persisted order.
func (c *Collector) RecordOrderPlaced() {
	c.ordersPlaced.Inc()
}

// RecordOrderRejected counts an order rejected before any write.
func (c *Collector) RecordOrderRejected(reason string) {
	c.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordSignup counts a successful registration.
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordLogin counts a login attempt. outcome is "success" or "failure".
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler that serves the metrics registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
