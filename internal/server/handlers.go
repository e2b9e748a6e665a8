package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/version"
)

// scanAborted reports a timeout or client disconnect. The pipeline returns
// the partial result accumulated up to the abort, so handlers serve it
// rather than reporting a failure.
func scanAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// scanReceiptHandler processes uploaded receipt photos.
func (s *Server) scanReceiptHandler(w http.ResponseWriter, r *http.Request) {
	frame, status, errMsg := s.readUploadedFrame(w, r)
	if errMsg != "" {
		s.writeScanError(w, errMsg, status)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	result, err := s.scanner.ScanReceipt(ctx, frame, nil)
	scanDuration.WithLabelValues("receipt").Observe(time.Since(start).Seconds())
	if err != nil && !scanAborted(err) {
		scanRequestsTotal.WithLabelValues("receipt", "error").Inc()
		if errors.Is(err, ocr.ErrEngineUnavailable) {
			s.writeScanError(w, "recognition engine unavailable", http.StatusServiceUnavailable)
			return
		}
		s.writeScanError(w, fmt.Sprintf("scan failed: %v", err), http.StatusInternalServerError)
		return
	}
	status := "ok"
	if err != nil {
		// Timed-out or disconnected scans still carry whatever the
		// pipeline accumulated before the abort.
		status = "aborted"
	}
	scanRequestsTotal.WithLabelValues("receipt", status).Inc()
	productsExtracted.Observe(float64(len(result.Products)))

	response := ReceiptScanResponse{
		Success:  true,
		Vendor:   result.Vendor,
		Score:    result.Score,
		Segments: result.Segments,
		Products: make([]ProductResponse, 0, len(result.Products)),
	}
	for _, p := range result.Products {
		response.Products = append(response.Products, ProductResponse{
			Name:     p.Name,
			Quantity: p.Quantity,
			Unit:     p.Unit,
			Price:    p.Price,
			Tier:     string(p.Tier),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding receipt response: %v\n", err)
	}
}

// scanExpiryHandler processes uploaded expiry-label photos.
func (s *Server) scanExpiryHandler(w http.ResponseWriter, r *http.Request) {
	frame, status, errMsg := s.readUploadedFrame(w, r)
	if errMsg != "" {
		s.writeScanError(w, errMsg, status)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	start := time.Now()
	result, err := s.scanner.ScanExpiry(ctx, frame, nil)
	scanDuration.WithLabelValues("expiry").Observe(time.Since(start).Seconds())
	if err != nil && !scanAborted(err) {
		scanRequestsTotal.WithLabelValues("expiry", "error").Inc()
		if errors.Is(err, ocr.ErrEngineUnavailable) {
			s.writeScanError(w, "recognition engine unavailable", http.StatusServiceUnavailable)
			return
		}
		s.writeScanError(w, fmt.Sprintf("scan failed: %v", err), http.StatusInternalServerError)
		return
	}
	status := "ok"
	if err != nil {
		status = "aborted"
	}
	scanRequestsTotal.WithLabelValues("expiry", status).Inc()
	datesRecovered.Observe(float64(len(result.Dates)))

	response := ExpiryScanResponse{
		Success: true,
		Dates:   make([]string, 0, len(result.Dates)),
	}
	for _, d := range result.Dates {
		response.Dates = append(response.Dates, d.ISO())
	}
	if result.Found {
		response.Best = result.Best.ISO()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding expiry response: %v\n", err)
	}
}

// estimateHandler returns a shelf-life estimate for a product name.
func (s *Server) estimateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.writeEstimateError(w, "missing 'name' query parameter", http.StatusBadRequest)
		return
	}

	est := s.estimator.Estimate(name)
	estimateRequestsTotal.WithLabelValues(string(est.Confidence)).Inc()

	response := EstimateResponse{
		Success:     true,
		Category:    est.Category,
		MinDays:     est.MinDays,
		MaxDays:     est.MaxDays,
		TypicalDays: est.TypicalDays,
		ExpiryDate:  est.ExpiryDate.Format("2006-01-02"),
		Confidence:  string(est.Confidence),
		Rationale:   est.Rationale,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding estimate response: %v\n", err)
	}
}

// readUploadedFrame parses the multipart upload and decodes the image file.
// It returns a non-empty error message with the HTTP status on failure.
func (s *Server) readUploadedFrame(w http.ResponseWriter, r *http.Request) (raster.Frame, int, string) {
	if r.Method != http.MethodPost {
		return raster.Frame{}, http.StatusMethodNotAllowed, "method not allowed"
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "too large") {
			return raster.Frame{}, http.StatusRequestEntityTooLarge, "file too large"
		}
		return raster.Frame{}, http.StatusBadRequest, "failed to parse form data"
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return raster.Frame{}, http.StatusBadRequest, "no image file provided"
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		return raster.Frame{}, http.StatusRequestEntityTooLarge, "file too large"
	}
	uploadSizeBytes.Observe(float64(header.Size))

	frame, err := raster.Decode(file)
	if err != nil {
		return raster.Frame{}, http.StatusBadRequest, "invalid image format"
	}
	return frame, http.StatusOK, ""
}

// requestContext derives the per-scan context with the configured timeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeoutSec <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), time.Duration(s.timeoutSec)*time.Second)
}

func (s *Server) writeScanError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ReceiptScanResponse{Success: false, Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}

func (s *Server) writeEstimateError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := EstimateResponse{Success: false, Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
