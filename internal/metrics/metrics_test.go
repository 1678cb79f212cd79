package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPipelineMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)

	m.ObserveDocument(OutcomeCompressed)
	m.ObserveDocument(OutcomeCompressed)
	m.ObserveDocument(OutcomeFailed)
	m.ObserveBytes(100, 40)
	m.ObserveRun(250 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documents.WithLabelValues(OutcomeCompressed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documents.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.documents.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.bytesIn))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.bytesOut))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs))
}

func TestPipelineMetrics_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPipelineMetrics(reg)
	second := NewPipelineMetrics(reg)

	first.ObserveDocument(OutcomeSkipped)
	second.ObserveDocument(OutcomeSkipped)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.documents.WithLabelValues(OutcomeSkipped)))
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.ObserveDocument(OutcomeCompressed)
		m.ObserveBytes(1, 1)
		m.ObserveRun(time.Second)
	})
}
