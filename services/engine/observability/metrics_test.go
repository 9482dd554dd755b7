// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// Tests for the engine metrics

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineMetrics_RegistersOnGivenRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewEngineMetrics(registry)

	m.ObserveEvaluation("ok", 0.25, 10)
	m.ObserveEvaluation("cancelled", 0.05, 0)
	m.RecordValidationFailures("schema", 3)
	m.ActiveEvaluations.Inc()

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.PairComparisonsTotal))
	assert.Equal(t, float64(3),
		testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("schema")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActiveEvaluations))
}

func TestRecordValidationFailures_IgnoresNonPositive(t *testing.T) {
	m := NewEngineMetrics(prometheus.NewRegistry())

	m.RecordValidationFailures("catalog", 0)
	m.RecordValidationFailures("catalog", -2)

	assert.Equal(t, float64(0),
		testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("catalog")))
}

func TestNewEngineMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must coexist; promauto.With panics on collision within
	// one registry, so separate registries must register cleanly.
	m1 := NewEngineMetrics(prometheus.NewRegistry())
	m2 := NewEngineMetrics(prometheus.NewRegistry())

	m1.PairComparisonsTotal.Add(5)
	assert.Equal(t, float64(5), testutil.ToFloat64(m1.PairComparisonsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.PairComparisonsTotal))
}
