package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/raster"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is left to the deployment's reverse proxy.
		return true
	},
}

// WebSocketScanRequest is a scan request sent over the socket. Image carries
// the raw photo bytes (JSON base64-encodes them).
type WebSocketScanRequest struct {
	Mode  string `json:"mode"` // "receipt" or "expiry"
	Image []byte `json:"image"`
}

// WebSocketScanResponse is a progress update or final result.
type WebSocketScanResponse struct {
	Type      string      `json:"type"`
	Status    string      `json:"status"` // "processing", "completed", "error"
	Progress  int         `json:"progress"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// scanWebSocketHandler handles websocket connections streaming live scan
// progress.
func (s *Server) scanWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(r.Context(), conn)
}

func (s *Server) handleWebSocketConnection(ctx context.Context, conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Keepalive pings so idle connections survive intermediaries.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketScan(ctx, conn, data)
		}
	}
}

func (s *Server) handleWebSocketScan(ctx context.Context, conn *websocket.Conn, data []byte) {
	var req WebSocketScanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", fmt.Sprintf("Failed to parse request: %v", err), "")
		return
	}

	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)

	if len(req.Image) == 0 {
		s.sendWebSocketError(conn, "invalid_request", "No image data provided", requestID)
		return
	}
	frame, err := raster.Decode(bytes.NewReader(req.Image))
	if err != nil {
		s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("Failed to decode image: %v", err), requestID)
		return
	}

	scanCtx, cancel := contextWithTimeout(ctx, s.timeoutSec)
	defer cancel()

	// Writes are serialized: the progress callback and the final result may
	// race otherwise.
	var writeMu sync.Mutex
	progress := func(percent int) {
		writeMu.Lock()
		defer writeMu.Unlock()
		s.writeWebSocketResponse(conn, WebSocketScanResponse{
			Type:      "scan_response",
			Status:    "processing",
			Progress:  percent,
			RequestID: requestID,
		})
	}

	var (
		result  interface{}
		scanErr error
	)
	switch req.Mode {
	case "receipt":
		result, scanErr = s.scanner.ScanReceipt(scanCtx, frame, progress)
	case "expiry":
		result, scanErr = s.scanner.ScanExpiry(scanCtx, frame, progress)
	default:
		s.sendWebSocketError(conn, "invalid_request", "Unsupported scan mode: "+req.Mode, requestID)
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	if scanErr != nil && !scanAborted(scanErr) {
		errType := "processing_error"
		if errors.Is(scanErr, ocr.ErrEngineUnavailable) {
			errType = "engine_unavailable"
		}
		s.writeWebSocketResponse(conn, WebSocketScanResponse{
			Type:      "scan_response",
			Status:    "error",
			Error:     scanErr.Error(),
			ErrorType: errType,
			RequestID: requestID,
		})
		return
	}

	s.writeWebSocketResponse(conn, WebSocketScanResponse{
		Type:      "scan_response",
		Status:    "completed",
		Progress:  100,
		Result:    result,
		RequestID: requestID,
	})
}

func (s *Server) sendWebSocketError(conn *websocket.Conn, errType, message, requestID string) {
	s.writeWebSocketResponse(conn, WebSocketScanResponse{
		Type:      "scan_response",
		Status:    "error",
		Error:     message,
		ErrorType: errType,
		RequestID: requestID,
	})
}

func (s *Server) writeWebSocketResponse(conn *websocket.Conn, resp WebSocketScanResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

func contextWithTimeout(parent context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(seconds)*time.Second)
}
