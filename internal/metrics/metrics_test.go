package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRecord("request", 0)
	c.ObserveRecord("response", 200)
	c.ObserveRecord("response", 404)
	c.ObserveRecord("response", 503)
	c.ObserveBodyReadFailure()
	c.ObserveFinalization("FAILED", "reported")
	c.ObserveArtifact(2048)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.records.WithLabelValues("request")))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.records.WithLabelValues("response")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.failedResponses))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.bodyReadFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.finalizations.WithLabelValues("FAILED", "reported")))

	count, err := testutil.GatherAndCount(reg, "api_capture_artifact_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollectorRegistriesAreIndependent(t *testing.T) {
	a := NewCollector(prometheus.NewRegistry())
	b := NewCollector(prometheus.NewRegistry())

	a.ObserveRecord("request", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(b.records.WithLabelValues("request")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveRecord("request", 500)
		c.ObserveBodyReadFailure()
		c.ObserveFinalization("PASSED", "skipped")
		c.ObserveArtifact(10)
	})
}
