package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payments",
		Name:      "transactions_total",
		Help:      "Payment transactions processed, by result.",
	}, []string{"result"})

	paymentEventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "payments",
		Name:      "event_publish_failures_total",
		Help:      "Post-commit payment events that could not be queued.",
	})
)
