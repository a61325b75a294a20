// Package server exposes a trained Controller over HTTP:
//
//	POST /api/predict     {"date": "2025-06-10", "temperature": 25, "direction": "OUTBOUND"}
//	GET  /api/stats
//	GET  /api/evaluation
//
// Requests made before the Controller is trained are answered with 503 Service Unavailable.
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet"
	"github.com/sharnoff/crowdnet/report"
	"github.com/sharnoff/crowdnet/trainer"
	"go.uber.org/zap"
)

// Server serializes access to a single Controller.
type Server struct {
	mu     sync.Mutex
	ctl    *trainer.Controller
	logger *zap.SugaredLogger
}

// New returns a Server answering from ctl. A nil logger discards all output.
func New(ctl *trainer.Controller, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{ctl: ctl, logger: logger}
}

// Routes registers the API on router.
func (s *Server) Routes(router *mux.Router) {
	router.HandleFunc("/api/predict", s.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/api/evaluation", s.handleEvaluation).Methods(http.MethodGet)
}

// Handler returns a router serving only the API.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.Routes(router)
	return router
}

type predictRequest struct {
	Date        string   `json:"date"`
	Temperature *float64 `json:"temperature"`
	Direction   string   `json:"direction"`
}

type predictResponse struct {
	Date string `json:"date"`
	trainer.Prediction
	Description string `json:"description"`
	Note        string `json:"note"`
}

type statsResponse struct {
	trainer.Stats
	ElapsedMs        int64    `json:"elapsedTimeMs"`
	OverfittingRatio *float64 `json:"overfittingRatio,omitempty"`
	Overfitting      string   `json:"overfitting"`
	TestAccuracy     float64  `json:"testAccuracy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrapf(err, "Malformed request"))
		return
	}

	date, err := crowdnet.ParseDate(req.Date)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	dir, err := crowdnet.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Temperature == nil {
		s.writeError(w, http.StatusBadRequest, &crowdnet.InputValidationError{Field: "temperature", Reason: "is required"})
		return
	}

	s.mu.Lock()
	p, err := s.ctl.Predict(date, *req.Temperature, dir)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}

	s.logger.Debugw("Prediction", "date", req.Date, "direction", dir, "level", p.Level, "confidence", p.Confidence)
	s.writeJSON(w, http.StatusOK, predictResponse{
		Date:        date.Format(crowdnet.DateLayout),
		Prediction:  p,
		Description: report.LevelDescription(p.Level),
		Note:        report.ConfidenceNote(p.Confidence),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats, err := s.ctl.Stats()
	acc := s.ctl.Accuracy(s.ctl.Split().Test)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}

	resp := statsResponse{
		Stats:        stats,
		ElapsedMs:    stats.ElapsedMs(),
		Overfitting:  stats.Overfitting().String(),
		TestAccuracy: acc,
	}
	if ratio := stats.OverfittingRatio(); !math.IsNaN(ratio) && !math.IsInf(ratio, 0) {
		resp.OverfittingRatio = &ratio
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ev, err := s.ctl.Evaluate()
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, ev)
}

func statusOf(err error) int {
	var verr *crowdnet.InputValidationError
	switch {
	case errors.Is(err, crowdnet.ErrNotTrained):
		return http.StatusServiceUnavailable
	case errors.As(err, &verr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Errorw("Request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnw("Failed to write response", "error", err)
	}
}
