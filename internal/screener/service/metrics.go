package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screener_chat_requests_total",
		Help: "Total chat requests by outcome",
	}, []string{"status"})

	translationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screener_translations_total",
		Help: "Total language model translations by outcome",
	}, []string{"outcome"})

	screenDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "screener_screen_duration_seconds",
		Help:    "Duration of a screening pass",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"mode"})

	datasetReadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screener_dataset_read_errors_total",
		Help: "Total per-symbol datasets skipped because they could not be read",
	})
)
