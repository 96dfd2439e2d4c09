// Package api exposes the pipeline over HTTP for the surrounding
// application: triggering a run, probing busy state, and fetching the latest
// load report. It only translates pipeline outcomes into status codes; no
// rendering happens here.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gradetl/internal/config"
	"gradetl/internal/loader"
	"gradetl/internal/logging"
	"gradetl/internal/pipeline"
	"gradetl/internal/store"
)

// Server translates HTTP requests into pipeline calls.
type Server struct {
	cfg    *config.Config
	runner *pipeline.Runner
	store  *store.Store
	logger *slog.Logger
}

// NewServer constructs the HTTP surface around a pipeline runner.
func NewServer(cfg *config.Config, runner *pipeline.Runner, st *store.Store, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		runner: runner,
		store:  st,
		logger: logging.NewComponentLogger(logger, "api"),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pull", s.handlePull)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type pullFailure struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	outcome := s.runner.Run(r.Context())
	switch {
	case outcome.Busy:
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "a pipeline run is already in progress",
		})
	case outcome.Err != nil:
		// A collaborator outage is the caller's 502; everything else is ours.
		status := http.StatusInternalServerError
		if outcome.Stage == pipeline.StageFetch || outcome.Stage == pipeline.StageStandardize {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, pullFailure{Stage: string(outcome.Stage), Error: outcome.Err.Error()})
	default:
		writeJSON(w, http.StatusOK, outcome.Report)
	}
}

type statusBody struct {
	Busy            bool   `json:"busy"`
	Rows            int64  `json:"rows"`
	LockRunID       string `json:"lock_run_id,omitempty"`
	LockHeldSeconds int64  `json:"lock_held_seconds,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.Count(r.Context())
	if err != nil {
		s.logger.Error("count rows", logging.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database unavailable"})
		return
	}

	body := statusBody{Busy: s.runner.Busy(), Rows: rows}
	if state, held, err := s.runner.LockState(); err == nil && held {
		body.LockRunID = state.RunID
		body.LockHeldSeconds = int64(time.Since(state.CreatedAt).Seconds())
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := loader.ReadReport(s.cfg.Paths.ReportPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no load report yet"})
			return
		}
		s.logger.Error("read report", logging.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "busy": s.runner.Busy()})
}

// ListenAndServe runs the HTTP server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Paths.APIBind,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	s.logger.Info("api listening", logging.String("bind", s.cfg.Paths.APIBind))
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
