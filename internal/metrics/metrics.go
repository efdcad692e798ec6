// Package metrics counts capture activity across a test run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the capture counters. A nil *Collector ignores every call.
type Collector struct {
	records          *prometheus.CounterVec
	failedResponses  prometheus.Counter
	bodyReadFailures prometheus.Counter
	finalizations    *prometheus.CounterVec
	artifactBytes    prometheus.Histogram
}

// NewCollector registers the capture counters on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "api_capture_records_total",
			Help: "Total number of captured traffic records by kind",
		}, []string{"kind"}),
		failedResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: "api_capture_failed_responses_total",
			Help: "Total number of captured responses with status >= 400",
		}),
		bodyReadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "api_capture_body_read_failures_total",
			Help: "Total number of response bodies replaced by a placeholder after a read error or timeout",
		}),
		finalizations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "api_capture_finalizations_total",
			Help: "Total number of finalized tests by status and outcome",
		}, []string{"status", "outcome"}),
		artifactBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "api_capture_artifact_bytes",
			Help:    "Size of persisted API log artifacts",
			Buckets: prometheus.ExponentialBuckets(512, 4, 8),
		}),
	}
}

// ObserveRecord counts one captured record of the given kind
func (c *Collector) ObserveRecord(kind string, status int) {
	if c == nil {
		return
	}
	c.records.WithLabelValues(kind).Inc()
	if status >= 400 {
		c.failedResponses.Inc()
	}
}

// ObserveBodyReadFailure counts one placeholder substitution
func (c *Collector) ObserveBodyReadFailure() {
	if c == nil {
		return
	}
	c.bodyReadFailures.Inc()
}

// ObserveFinalization counts one finalized test; outcome is "reported", "skipped", "disabled" or "error"
func (c *Collector) ObserveFinalization(status, outcome string) {
	if c == nil {
		return
	}
	c.finalizations.WithLabelValues(status, outcome).Inc()
}

// ObserveArtifact records the size of a persisted artifact
func (c *Collector) ObserveArtifact(size int) {
	if c == nil {
		return
	}
	c.artifactBytes.Observe(float64(size))
}
