package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svinnscan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "svinnscan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Scan pipeline metrics
	scanRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svinnscan_scan_requests_total",
			Help: "Total number of scan requests",
		},
		[]string{"mode", "status"}, // mode: receipt, expiry
	)

	scanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "svinnscan_scan_duration_seconds",
			Help:    "End-to-end scan duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25, 50},
		},
		[]string{"mode"},
	)

	productsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "svinnscan_products_extracted",
			Help:    "Number of validated products per receipt scan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	datesRecovered = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "svinnscan_dates_recovered",
			Help:    "Number of plausible dates per expiry scan",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	estimateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svinnscan_estimate_requests_total",
			Help: "Total number of shelf-life estimate requests",
		},
		[]string{"confidence"},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svinnscan_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	// File upload metrics
	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "svinnscan_upload_size_bytes",
			Help:    "Size of uploaded files in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "svinnscan_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svinnscan_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
