package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_jobs_created_total",
		Help: "Total number of jobs successfully created.",
	})

	JobsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_jobs_accepted_total",
		Help: "Total number of jobs successfully accepted by movers.",
	})

	JobsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_jobs_completed_total",
		Help: "Total number of jobs completed and credited.",
	})

	AcceptConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_accept_conflicts_total",
		Help: "Total number of accept attempts that lost the acceptance race.",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_orders_cancelled_total",
		Help: "Total number of orders cancelled.",
	})

	RoutePlansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "haulaway_route_plans_total",
		Help: "Total number of route planning requests served.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "haulaway_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	ActiveJobCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "haulaway_active_job_cache_items",
		Help: "Current number of items in the active job cache.",
	})
)
