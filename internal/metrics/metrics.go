// Package metrics defines the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolRuns counts calculator runs by tool and outcome.
	ToolRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "takhmino",
			Name:      "tool_runs_total",
			Help:      "Number of calculator runs.",
		},
		[]string{"tool", "status"},
	)

	// ToolDuration observes engine run time in seconds.
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "takhmino",
			Name:      "tool_duration_seconds",
			Help:      "Calculator run time.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"tool"},
	)

	// UnreachableGoals counts gold plans whose goal is not reachable within the horizon.
	UnreachableGoals = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "takhmino",
			Name:      "gold_unreachable_goals_total",
			Help:      "Gold plans that cannot reach the target.",
		},
	)

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "takhmino",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)

	// RunLogErrors counts failed run-log operations.
	RunLogErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "takhmino",
			Name:      "runlog_errors_total",
			Help:      "Failed run-log operations.",
		},
		[]string{"operation"},
	)
)

// Status labels.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)
