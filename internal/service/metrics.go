package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsUseCaseObserver struct {
	calls      *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	selections *prometheus.CounterVec
	cacheHits  *prometheus.CounterVec
}

// NewMetricsObserver registers questgen use-case metrics on reg and returns
// an observer that records into them.
func NewMetricsObserver(reg prometheus.Registerer) UseCaseObserver {
	factory := promauto.With(reg)
	return &metricsUseCaseObserver{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "questgen",
			Subsystem: "service",
			Name:      "use_cases_total",
			Help:      "Service use-case executions by name and status",
		}, []string{"use_case", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "questgen",
			Subsystem: "service",
			Name:      "use_case_seconds",
			Help:      "Service use-case latency",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"use_case"}),
		selections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "questgen",
			Subsystem: "selector",
			Name:      "decisions_total",
			Help:      "Selector decisions by deciding rule",
		}, []string{"rule"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "questgen",
			Subsystem: "service",
			Name:      "rank_cache_total",
			Help:      "Rank cache lookups by result",
		}, []string{"result"}),
	}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	status := "ok"
	if !event.Success {
		status = "error"
	}
	o.calls.WithLabelValues(event.Name, status).Inc()
	o.latency.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if rule, ok := event.Fields["rule"]; ok {
		o.selections.WithLabelValues(fmt.Sprint(rule)).Inc()
	}
	if hit, ok := event.Fields["cache_hit"].(bool); ok {
		result := "miss"
		if hit {
			result = "hit"
		}
		o.cacheHits.WithLabelValues(result).Inc()
	}
}
