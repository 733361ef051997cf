// Package metrics exposes prometheus collectors for the grid control plane.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PlacementAttempts counts every job placement request handled by the
	// scheduler, regardless of outcome.
	PlacementAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grid_placement_attempts_total",
			Help: "Total number of job placement attempts.",
		},
	)

	// PlacementFailures counts placements dropped because no machine
	// accepted the job.
	PlacementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grid_placement_failures_total",
			Help: "Total number of job placements dropped with no capacity.",
		},
	)

	// JobsPlaced counts jobs accepted by a machine.
	JobsPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grid_jobs_placed_total",
			Help: "Total number of jobs accepted by a machine.",
		},
	)

	// AuthorizationDenials counts AddJobByUser calls refused by the user's
	// capability check.
	AuthorizationDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grid_authorization_denials_total",
			Help: "Total number of job creations denied by user authorization.",
		},
	)

	// Machines tracks how many machines the registry currently holds.
	Machines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "grid_machines",
			Help: "Number of machines registered with the control plane.",
		},
	)

	// Users tracks how many users the registry currently holds.
	Users = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "grid_users",
			Help: "Number of users registered with the control plane.",
		},
	)

	// TickDuration observes how long one tick over all machines takes.
	TickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grid_tick_duration_seconds",
			Help:    "Duration of a single update pass over all machines.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(PlacementAttempts)
	prometheus.MustRegister(PlacementFailures)
	prometheus.MustRegister(JobsPlaced)
	prometheus.MustRegister(AuthorizationDenials)
	prometheus.MustRegister(Machines)
	prometheus.MustRegister(Users)
	prometheus.MustRegister(TickDuration)
}
