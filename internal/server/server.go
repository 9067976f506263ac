// Package server exposes the dashboard state as a small JSON API. The
// rendering layer polls /api/dashboard and feeds the returned series into
// its chart widgets; this package never concerns itself with presentation.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
	"github.com/Ammaar-Alam/draw-calculator/internal/models"
	"github.com/Ammaar-Alam/draw-calculator/internal/session"
	"github.com/Ammaar-Alam/draw-calculator/internal/storage"
)

// HistoryStore is the slice of storage the server needs.
type HistoryStore interface {
	History(ctx context.Context, limit int) ([]storage.Record, error)
	Latest(ctx context.Context) (storage.Record, error)
}

// Server serves the dashboard API for one session.
type Server struct {
	sess         *session.Session
	store        HistoryStore
	historyLimit int
}

// New creates a Server. historyLimit caps how many records /api/history may
// return regardless of the caller's limit parameter.
func New(sess *session.Session, store HistoryStore, historyLimit int) *Server {
	return &Server{sess: sess, store: store, historyLimit: historyLimit}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/history/latest", s.handleLatest)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

type dashboardResponse struct {
	Status   session.Status         `json:"status"`
	Error    string                 `json:"error,omitempty"`
	Snapshot *models.Snapshot       `json:"snapshot,omitempty"`
	Metrics  *models.DerivedMetrics `json:"metrics,omitempty"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st := s.sess.State()

	resp := dashboardResponse{Status: st.Status}
	if st.Status != session.StatusLoading {
		snap, metrics := st.Snapshot, st.Metrics
		resp.Snapshot = &snap
		resp.Metrics = &metrics
	}
	if st.Err != nil {
		resp.Error = st.Err.Message
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	records, err := s.store.History(r.Context(), limit)
	if err != nil {
		logger.Error("Failed to read history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read history"})
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Latest(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no records yet"})
		return
	}
	if err != nil {
		logger.Error("Failed to read latest record: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read latest record"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}
