package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Identification metrics
	identifyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_identify_requests_total",
			Help: "Total number of identification requests",
		},
		[]string{"source", "result"}, // source: text, file, websocket; result: language code or "unknown"
	)

	identifyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langid_identify_duration_seconds",
			Help:    "Identification duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"source"},
	)

	identifyTextBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_identify_text_bytes",
			Help:    "Size of identified input text in bytes",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000, 10000000},
		},
	)

	identifyBestScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "langid_identify_best_score",
			Help:    "Best cosine similarity score per identification",
			Buckets: []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "langid_websocket_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langid_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"type"},
	)
)
