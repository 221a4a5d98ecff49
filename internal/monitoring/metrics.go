package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terra_reservation_attempts_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	holdsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "terra_holds_swept_total",
			Help: "Expired provisional holds removed by the sweeper",
		},
	)

	assistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terra_assistant_requests_total",
			Help: "AI assistant requests by status",
		},
		[]string{"status"},
	)
)

func ReservationAttempt(outcome string) {
	reservationAttempts.WithLabelValues(outcome).Inc()
}

func HoldsSwept(n int) {
	holdsSwept.Add(float64(n))
}

func AssistantRequest(status string) {
	assistantRequests.WithLabelValues(status).Inc()
}
