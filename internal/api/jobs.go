package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/nonblock/internal/engine"
	"github.com/seantiz/nonblock/internal/model"
	"github.com/seantiz/nonblock/internal/probe"
	"github.com/seantiz/nonblock/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxBodySize      = 1 << 20 // 1 MB
)

var maxTimeoutMS = engine.MaxTimeout.Milliseconds()

// createJobRequest is the JSON body for POST /v1/jobs and /v1/jobs/async.
type createJobRequest struct {
	Kind      string `json:"kind"`
	Target    string `json:"target"`
	SleepMS   *int   `json:"sleep_ms"`
	TimeoutMS *int   `json:"timeout_ms"`
}

// listJobsResponse wraps the paginated list response.
type listJobsResponse struct {
	Jobs   []*model.Job `json:"jobs"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// decodeJob parses and validates a job request, writing a 400 on failure.
func (s *Server) decodeJob(w http.ResponseWriter, r *http.Request) (*model.Job, bool) {
	var req createJobRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}

	if req.Kind == "" {
		s.writeError(w, http.StatusBadRequest, "kind is required")
		return nil, false
	}
	if _, err := s.registry.Resolve(req.Kind); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if req.TimeoutMS != nil && (*req.TimeoutMS < 0 || int64(*req.TimeoutMS) > maxTimeoutMS) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("timeout_ms must be between 0 and %d", maxTimeoutMS))
		return nil, false
	}
	if req.SleepMS != nil && (*req.SleepMS < 0 || *req.SleepMS > probe.MaxSleepMS) {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("sleep_ms must be between 0 and %d", probe.MaxSleepMS))
		return nil, false
	}

	return &model.Job{
		ID:        model.NewID(),
		Status:    model.StatusPending,
		Kind:      req.Kind,
		Target:    req.Target,
		SleepMS:   req.SleepMS,
		TimeoutMS: req.TimeoutMS,
		CreatedAt: time.Now().UTC(),
	}, true
}

// handleRunJob executes a job synchronously and returns its final record.
func (s *Server) handleRunJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.decodeJob(w, r)
	if !ok {
		return
	}

	final, err := s.engine.Run(r.Context(), j)
	if err != nil {
		s.logger.Error("run job", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to run job")
		return
	}

	s.writeJSON(w, http.StatusOK, final)
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.decodeJob(w, r)
	if !ok {
		return
	}

	if err := s.engine.Submit(r.Context(), j); err != nil {
		s.logger.Error("submit async job", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to submit job")
		return
	}

	s.writeJSON(w, http.StatusAccepted, j)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	j, err := s.store.GetJob(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		s.logger.Error("get job", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	s.writeJSON(w, http.StatusOK, j)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", defaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	jobs, total, err := s.store.ListJobs(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("list jobs", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	if jobs == nil {
		jobs = []*model.Job{}
	}

	s.writeJSON(w, http.StatusOK, listJobsResponse{
		Jobs:   jobs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
