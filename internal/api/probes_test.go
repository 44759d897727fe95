package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seantiz/nonblock/internal/probe"
)

func TestListProbes(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/probes")
	if err != nil {
		t.Fatalf("GET /v1/probes: %v", err)
	}
	defer resp.Body.Close()

	var infos []probe.Info
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("len(probes) = %d, want 2", len(infos))
	}
	if infos[0].Kind != kindBlock || infos[1].Kind != kindEcho {
		t.Errorf("kinds = [%s %s], want [%s %s]", infos[0].Kind, infos[1].Kind, kindBlock, kindEcho)
	}
	if !infos[0].Capabilities.Interruptible {
		t.Error("block probe should report interruptible")
	}
}
