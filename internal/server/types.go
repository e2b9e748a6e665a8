// Package server exposes the scanning pipeline over HTTP: JSON scan
// endpoints, a shelf-life estimate endpoint, Prometheus metrics, and a
// websocket stream with live scan progress.
package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/shelflife"
)

// scannerInterface defines the methods the server needs from a scanner.
type scannerInterface interface {
	ScanReceipt(ctx context.Context, frame raster.Frame, progress scan.ProgressFunc) (scan.ReceiptResult, error)
	ScanExpiry(ctx context.Context, frame raster.Frame, progress scan.ProgressFunc) (scan.ExpiryResult, error)
	Close() error
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	scanner     scannerInterface
	estimator   *shelflife.Estimator
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int

	ScanConfig      scan.Config
	ShelfLifeConfig shelflife.Config

	// Optional rate limiting; nil disables it.
	RateLimiter *RateLimiter
}

// ProductResponse is one validated product in a receipt scan response.
type ProductResponse struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price,omitempty"`
	Tier     string  `json:"tier"`
}

// ReceiptScanResponse is the JSON body of a receipt scan.
type ReceiptScanResponse struct {
	Success  bool              `json:"success"`
	Products []ProductResponse `json:"products"`
	Vendor   string            `json:"vendor,omitempty"`
	Score    int               `json:"score,omitempty"`
	Segments int               `json:"segments,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// ExpiryScanResponse is the JSON body of an expiry-date scan.
type ExpiryScanResponse struct {
	Success bool     `json:"success"`
	Dates   []string `json:"dates"`
	Best    string   `json:"best,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// EstimateResponse is the JSON body of a shelf-life estimate.
type EstimateResponse struct {
	Success     bool   `json:"success"`
	Category    string `json:"category,omitempty"`
	MinDays     int    `json:"min_days,omitempty"`
	MaxDays     int    `json:"max_days,omitempty"`
	TypicalDays int    `json:"typical_days,omitempty"`
	ExpiryDate  string `json:"expiry_date,omitempty"`
	Confidence  string `json:"confidence,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
	Error       string `json:"error,omitempty"`
}

// HealthResponse reports server health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// NewServer creates a server around a freshly built scanner using the given
// OCR engine.
func NewServer(config Config, engine ocr.Engine) (*Server, error) {
	scanner, err := scan.NewBuilder().
		WithEngine(engine).
		WithConfig(config.ScanConfig).
		Build()
	if err != nil {
		return nil, err
	}

	estimator, err := shelflife.New(config.ShelfLifeConfig)
	if err != nil {
		scanner.Close()
		return nil, err
	}

	return &Server{
		scanner:     scanner,
		estimator:   estimator,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
		rateLimiter: config.RateLimiter,
	}, nil
}

// Close releases the scanner and its engine.
func (s *Server) Close() error {
	if s.scanner != nil {
		return s.scanner.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/scan/receipt", s.corsMiddleware(s.rateLimitMiddleware(s.scanReceiptHandler)))
	mux.HandleFunc("/scan/expiry", s.corsMiddleware(s.rateLimitMiddleware(s.scanExpiryHandler)))
	mux.HandleFunc("/estimate", s.corsMiddleware(s.estimateHandler))
	mux.HandleFunc("/ws/scan", s.scanWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
