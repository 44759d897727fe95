package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seantiz/nonblock/internal/model"
)

func TestGetStats(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for _, body := range []map[string]any{
		{"kind": kindEcho, "target": "a"},
		{"kind": kindEcho, "target": "b"},
		{"kind": kindEcho},
	} {
		resp := postJSON(t, ts.URL+"/v1/jobs", body)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("GET /v1/stats: %v", err)
	}
	defer resp.Body.Close()

	var stats statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.ByStatus[model.StatusCompleted] != 2 {
		t.Errorf("by_status[completed] = %d, want 2", stats.ByStatus[model.StatusCompleted])
	}
	if stats.ByStatus[model.StatusFailed] != 1 {
		t.Errorf("by_status[failed] = %d, want 1", stats.ByStatus[model.StatusFailed])
	}
	if stats.ByKind[kindEcho] != 3 {
		t.Errorf("by_kind[echo] = %d, want 3", stats.ByKind[kindEcho])
	}
	if n, ok := stats.ByStatus[model.StatusTimedOut]; !ok || n != 0 {
		t.Errorf("by_status[timed_out] = %d (present %v), want 0 and present", n, ok)
	}
	if stats.Signals.Size != 4 || stats.Signals.Available != 4 || stats.Signals.Leased != 0 {
		t.Errorf("signals = %+v, want size 4, available 4, leased 0", stats.Signals)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("GET /v1/stats: %v", err)
	}
	defer resp.Body.Close()

	var stats statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("total = %d, want 0", stats.Total)
	}
}
