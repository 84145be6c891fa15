// Package server exposes the calculation engine over HTTP. It is a thin
// layer: parse, validate, calculate, encode. All pricing semantics live in
// pkg/tco.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/tco"
	"github.com/fleetscope/evtco/pkg/validation"
)

const maxBodyBytes = 1 << 20

var (
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evtco_calculations_total",
		Help: "Scenario calculations by outcome.",
	}, []string{"status"})
	calculationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evtco_calculation_seconds",
		Help:    "Wall time of a full scenario calculation.",
		Buckets: prometheus.DefBuckets,
	})
)

// Server serves the scenario calculation API.
type Server struct {
	port int
	calc *tco.Calculator
}

// New creates a server around a calculator.
func New(port int, calc *tco.Calculator) *Server {
	return &Server{port: port, calc: calc}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/calculate", s.handleCalculate).Methods(http.MethodPost)
	r.HandleFunc("/api/validate", s.handleValidate).Methods(http.MethodPost)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return handlers.LoggingHandler(os.Stdout, r)
}

// Start launches the HTTP server and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("server starting", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

// parseScenario reads a YAML (or JSON) scenario body and validates it.
// On failure it writes the response itself and returns nil.
func (s *Server) parseScenario(w http.ResponseWriter, r *http.Request) *scenario.Scenario {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading body: %v", err))
		return nil
	}

	sc, err := scenario.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing scenario: %v", err))
		return nil
	}

	report := validation.ValidateScenario(sc)
	if !report.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "scenario validation failed",
			"report": report,
		})
		return nil
	}
	return sc
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	sc := s.parseScenario(w, r)
	if sc == nil {
		calculationsTotal.WithLabelValues("rejected").Inc()
		return
	}
	if err := sc.Prepare(); err != nil {
		calculationsTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("preparing scenario: %v", err))
		return
	}

	start := time.Now()
	result := s.calc.Calculate(sc)
	calculationSeconds.Observe(time.Since(start).Seconds())

	if result.Error != "" {
		calculationsTotal.WithLabelValues("failed").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	calculationsTotal.WithLabelValues("ok").Inc()
	slog.Info("calculation served",
		"run_id", result.RunID, "scenario", result.ScenarioName, "parity", result.ParityYear != nil)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reading body: %v", err))
		return
	}
	sc, err := scenario.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing scenario: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateScenario(sc))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
