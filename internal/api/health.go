package api

import "net/http"

type healthResponse struct {
	Status          string `json:"status"`
	SignalsFree     int    `json:"signals_free"`
	SignalsReserved int    `json:"signals_reserved"`
}

// handleHealthz reports "degraded" when the pool has no signals, since every
// job would then be rejected.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	u := usageOf(s.pool)
	resp := healthResponse{
		Status:          "ok",
		SignalsFree:     u.Available,
		SignalsReserved: u.Size,
	}
	if u.Size == 0 {
		resp.Status = "degraded"
	}
	s.writeJSON(w, http.StatusOK, resp)
}
