package api

import (
	"net/http"

	"github.com/seantiz/nonblock/internal/model"
)

// reportedStatuses are always present in by_status, even at zero.
var reportedStatuses = []string{
	model.StatusPending,
	model.StatusRunning,
	model.StatusCompleted,
	model.StatusFailed,
	model.StatusTimedOut,
	model.StatusRejected,
}

// statsResponse is the JSON response for GET /v1/stats. Job counts come from
// the history store; signals is the live pool.
type statsResponse struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	ByKind        map[string]int `json:"by_kind"`
	AvgDurationMS float64        `json:"avg_duration_ms"`
	Signals       signalUsage    `json:"signals"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetJobStats(r.Context())
	if err != nil {
		s.logger.Error("get job stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	byStatus := make(map[string]int, len(reportedStatuses))
	for _, st := range reportedStatuses {
		byStatus[st] = stats.CountByStatus[st]
	}

	s.writeJSON(w, http.StatusOK, statsResponse{
		Total:         stats.Total,
		ByStatus:      byStatus,
		ByKind:        stats.CountByKind,
		AvgDurationMS: stats.AvgDurationMS,
		Signals:       usageOf(s.pool),
	})
}
