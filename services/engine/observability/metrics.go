// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the engine
// service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics holds the Prometheus collectors for the engine service.
//
// Collectors are registered on the Registerer passed to NewEngineMetrics
// rather than the global default registry, so tests can hand each instance
// its own registry without double-registration panics.
type EngineMetrics struct {
	// EvaluationsTotal counts completed evaluations by terminal status
	// ("ok", "cancelled", "rejected").
	EvaluationsTotal *prometheus.CounterVec

	// PairComparisonsTotal counts pair comparisons across all evaluations.
	PairComparisonsTotal prometheus.Counter

	// EvaluationDuration observes wall-clock evaluation time in seconds.
	EvaluationDuration prometheus.Histogram

	// ActiveEvaluations tracks evaluations currently in flight.
	ActiveEvaluations prometheus.Gauge

	// ValidationFailuresTotal counts validation errors by input kind
	// ("schema", "catalog", "ruleset").
	ValidationFailuresTotal *prometheus.CounterVec
}

// NewEngineMetrics creates and registers the engine collectors on reg.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	factory := promauto.With(reg)

	return &EngineMetrics{
		EvaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulate",
			Subsystem: "engine",
			Name:      "evaluations_total",
			Help:      "Completed matrix evaluations by terminal status.",
		}, []string{"status"}),
		PairComparisonsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rulate",
			Subsystem: "engine",
			Name:      "pair_comparisons_total",
			Help:      "Item pair comparisons performed across all evaluations.",
		}),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rulate",
			Subsystem: "engine",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall-clock duration of matrix evaluations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		ActiveEvaluations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rulate",
			Subsystem: "engine",
			Name:      "active_evaluations",
			Help:      "Matrix evaluations currently in flight.",
		}),
		ValidationFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rulate",
			Subsystem: "engine",
			Name:      "validation_failures_total",
			Help:      "Validation errors reported, by input kind.",
		}, []string{"kind"}),
	}
}

// ObserveEvaluation records a finished evaluation.
func (m *EngineMetrics) ObserveEvaluation(status string, seconds float64, pairs int) {
	m.EvaluationsTotal.WithLabelValues(status).Inc()
	m.EvaluationDuration.Observe(seconds)
	m.PairComparisonsTotal.Add(float64(pairs))
}

// RecordValidationFailures adds count failures for the given input kind.
func (m *EngineMetrics) RecordValidationFailures(kind string, count int) {
	if count <= 0 {
		return
	}
	m.ValidationFailuresTotal.WithLabelValues(kind).Add(float64(count))
}
