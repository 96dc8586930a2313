package reservation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeReserved        = "reserved"
	outcomePredicateFailed = "predicate_failed"
	outcomeError           = "error"
)

var (
	ReservationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_attempts_total",
			Help: "Reservation strategy executions by outcome",
		},
		[]string{"strategy", "outcome"},
	)

	ReservationResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_results_total",
			Help: "Final reservation results returned to callers",
		},
		[]string{"result"},
	)
)
