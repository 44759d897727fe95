package api

import (
	"net/http"

	"github.com/seantiz/nonblock/internal/procstat"
	"github.com/seantiz/nonblock/internal/sigpool"
)

// signalUsage is a point-in-time view of the signal pool.
type signalUsage struct {
	Size      int `json:"size"`
	Available int `json:"available"`
	Leased    int `json:"leased"`
}

func usageOf(p *sigpool.Pool) signalUsage {
	u := signalUsage{Size: p.Size(), Available: p.Available()}
	u.Leased = u.Size - u.Available
	return u
}

// poolResponse is the JSON response for GET /v1/pool.
type poolResponse struct {
	signalUsage
	Threads    int `json:"threads"`
	ThreadsMax int `json:"threads_max"`
}

// handleGetPool reports signal pool occupancy alongside the process thread
// count. Thread figures are zero where procfs is unavailable.
func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	resp := poolResponse{signalUsage: usageOf(s.pool)}

	if th, err := procstat.ReadThreads(); err != nil {
		s.logger.Debug("read thread count", "error", err)
	} else {
		resp.Threads = th.Count
		resp.ThreadsMax = th.Max
	}

	s.writeJSON(w, http.StatusOK, resp)
}
