package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entryMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calorie_entries_mutations_total",
			Help: "Calorie entry writes by operation.",
		},
		[]string{"op"},
	)

	statsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calorie_stats_requests_total",
			Help: "Stats computations by period.",
		},
		[]string{"period"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calorie_auth_events_total",
			Help: "Authentication outcomes.",
		},
		[]string{"event"},
	)
)
