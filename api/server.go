// Package api exposes stored session records over HTTP: listings,
// JSON and CSV exports, summaries and rendered charts. It is a
// read-only consumer of the engine's output; the engine itself never
// blocks on it.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fitts-data/pointer.report/internal/db"
	"github.com/fitts-data/pointer.report/internal/export"
	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/monitoring"
	"github.com/fitts-data/pointer.report/internal/session"
)

type Server struct {
	db *db.DB
}

func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", s.listSessions)
	mux.HandleFunc("/session", s.getSession)
	mux.HandleFunc("/session/csv", s.getSessionCSV)
	mux.HandleFunc("/session/summary", s.getSessionSummary)
	mux.HandleFunc("/session/chart", s.handleTrajectoryChart)
	mux.HandleFunc("/session/velocity", s.handleVelocityChart)
	mux.HandleFunc("/session/plot", s.handleTrajectoryPlot)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("failed to encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// loadSession resolves the run_id query parameter to a stored record,
// writing the appropriate error response on failure.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Record, bool) {
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "run_id is required")
		return nil, false
	}

	rec, err := s.db.LoadSession(runID)
	if errors.Is(err, db.ErrSessionNotFound) {
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", runID))
		return nil, false
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load session: %v", err))
		return nil, false
	}
	return rec, true
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessions, err := s.db.ListSessions()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list sessions: %v", err))
		return
	}
	if sessions == nil {
		sessions = []db.SessionInfo{}
	}
	s.writeJSON(w, sessions)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, rec)
}

func (s *Server) getSessionCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=session_%s.csv", rec.CreatedAt.Format("20060102_150405")))
	if err := export.WriteCSV(w, rec); err != nil {
		monitoring.Logf("failed to write CSV for %s: %v", rec.RunID, err)
	}
}

func (s *Server) getSessionSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rec, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	summary, err := kinematics.Aggregate(rec.Trials)
	if errors.Is(err, kinematics.ErrNoTrials) {
		s.writeJSONError(w, http.StatusNotFound, "session has no completed trials")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to aggregate: %v", err))
		return
	}
	s.writeJSON(w, summary)
}
