// Package metrics описывает метрики Prometheus сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Виды обращений к сервису генерации.
const (
	KindQuestions = "questions"
	KindInsights  = "insights"
)

// Исходы обращений к сервису генерации.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeTimeout  = "timeout"
	OutcomeFailure  = "failure"
)

// Metrics набор счётчиков сервиса. Методы безопасны для nil.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	generation   *prometheus.CounterVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey_insights",
			Name:      "http_requests_total",
			Help:      "Number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "survey_insights",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		generation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey_insights",
			Name:      "generation_requests_total",
			Help:      "Calls to the text generation service by outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.generation)
	return m
}

// ObserveHTTP учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveGeneration учитывает обращение к сервису генерации.
func (m *Metrics) ObserveGeneration(kind, outcome string) {
	if m == nil {
		return
	}
	m.generation.WithLabelValues(kind, outcome).Inc()
}
