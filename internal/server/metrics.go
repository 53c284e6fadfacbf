package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	missions  *prometheus.CounterVec
	answers   *prometheus.CounterVec
	asks      *prometheus.CounterVec
	active    prometheus.Gauge
	speechLen prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathspace_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mathspace_http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		missions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathspace_missions_total",
				Help: "Missions by outcome of the problem load or play-through",
			},
			[]string{"category", "outcome"}, // outcome: playing/empty/finished
		),
		answers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathspace_answers_total",
				Help: "Submitted answers",
			},
			[]string{"category", "correct"},
		),
		asks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathspace_tutor_questions_total",
				Help: "Questions put to Professor Robot",
			},
			[]string{"fallback"},
		),
		active: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mathspace_active_missions",
				Help: "Missions held in memory",
			},
		),
		speechLen: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mathspace_speech_payload_bytes",
				Help:    "Size of synthesized speech payloads",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}
