// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for signal handling and queue draining.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zoom_rooms_sync"

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
	OutcomeIgnored = "ignored"
)

var (
	// signalsProcessed counts change signals by subject and outcome.
	signalsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signals_processed_total",
		Help:      "Total number of change signals processed",
	}, []string{"subject", "outcome"})

	// queueEntriesRecorded counts entries appended to the queue.
	queueEntriesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queue_entries_recorded_total",
		Help:      "Total number of queue entries recorded",
	}, []string{"action"})

	// drainPasses counts drain passes by outcome.
	drainPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drain_passes_total",
		Help:      "Total number of drain passes",
	}, []string{"outcome"})

	// drainEntries counts delivered or dropped entries.
	drainEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drain_entries_total",
		Help:      "Total number of queue entries handled by the drain worker",
	}, []string{"action", "outcome"})

	drainDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "drain_duration_seconds",
		Help:      "Duration of a drain pass in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	deliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "delivery_duration_seconds",
		Help:      "Duration of a single calendar delivery in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	// queueDepth is the number of pending entries seen at the start of the last pass.
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Pending queue entries at the start of the last drain pass",
	})
)

// RecordSignal counts a processed signal.
func RecordSignal(subject, outcome string) {
	signalsProcessed.WithLabelValues(subject, outcome).Inc()
}

// RecordQueueEntry counts a recorded queue entry.
func RecordQueueEntry(action string) {
	queueEntriesRecorded.WithLabelValues(action).Inc()
}

// RecordDrainPass counts a drain pass and observes its duration.
func RecordDrainPass(outcome string, elapsed time.Duration) {
	drainPasses.WithLabelValues(outcome).Inc()
	drainDuration.Observe(elapsed.Seconds())
}

// RecordDrainEntry counts one delivered or dropped entry.
func RecordDrainEntry(action, outcome string) {
	drainEntries.WithLabelValues(action, outcome).Inc()
}

// RecordDelivery observes the duration of one calendar delivery.
func RecordDelivery(action string, elapsed time.Duration) {
	deliveryDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// UpdateQueueDepth sets the pending entry gauge.
func UpdateQueueDepth(count int) {
	queueDepth.Set(float64(count))
}
