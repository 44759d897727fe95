package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/seantiz/nonblock/internal/deadline"
	"github.com/seantiz/nonblock/internal/engine"
	"github.com/seantiz/nonblock/internal/interrupt"
	"github.com/seantiz/nonblock/internal/probe"
	"github.com/seantiz/nonblock/internal/sigpool"
	"github.com/seantiz/nonblock/internal/store"
)

const (
	kindEcho  = "echo"
	kindBlock = "block"
)

// kickInterrupter releases blocked test probes when a job is interrupted.
type kickInterrupter struct {
	kick chan struct{}
	once sync.Once
}

func (k *kickInterrupter) Arm(sig syscall.Signal) (interrupt.Target, error) {
	return interrupt.Target{TID: int(sig)}, nil
}

func (k *kickInterrupter) Interrupt(interrupt.Target, syscall.Signal) error {
	k.once.Do(func() { close(k.kick) })
	return nil
}

func (k *kickInterrupter) Disarm(syscall.Signal) bool { return false }

// echoProbe returns its target as output.
type echoProbe struct{}

func (echoProbe) Prepare(spec probe.Spec) (probe.Operation, error) {
	return func() ([]byte, error) {
		if spec.Target == "" {
			return nil, errors.New("empty target")
		}
		return []byte(spec.Target), nil
	}, nil
}

func (echoProbe) Capabilities() probe.Capabilities {
	return probe.Capabilities{Name: kindEcho, Description: "echoes target"}
}

// blockProbe blocks until the interrupter kicks it.
type blockProbe struct {
	kick <-chan struct{}
}

func (b *blockProbe) Prepare(probe.Spec) (probe.Operation, error) {
	return func() ([]byte, error) {
		<-b.kick
		return nil, errors.New("interrupted system call")
	}, nil
}

func (b *blockProbe) Capabilities() probe.Capabilities {
	return probe.Capabilities{Name: kindBlock, Interruptible: true}
}

func newTestServer(t *testing.T) *Server {
	return newTestServerWithPool(t, 4)
}

// newTestServerWithPool builds a server whose runner leases from poolSize
// fake signals and interrupts through kickInterrupter.
func newTestServerWithPool(t *testing.T, poolSize int) *Server {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	intr := &kickInterrupter{kick: make(chan struct{})}
	reg := probe.NewRegistry()
	reg.Register(kindEcho, echoProbe{})
	reg.Register(kindBlock, &blockProbe{kick: intr.kick})

	sigs := make([]syscall.Signal, poolSize)
	for i := range sigs {
		sigs[i] = syscall.Signal(50 + i)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	runner := deadline.NewRunner(sigpool.New(sigs...), intr, logger)
	eng := engine.NewEngine(s, reg, runner, time.Second, logger)
	t.Cleanup(eng.Wait)

	return NewServer(":0", s, reg, eng, logger)
}

// postJSON posts body as JSON and returns the response.
func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)
	srv.Router().Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/test")
	if err != nil {
		t.Fatalf("GET /test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	// chi middleware.RequestID does not set X-Request-Id on the response by default,
	// but it sets it in the request context. Verify the middleware is active by
	// checking the request was processed successfully.
}

func TestPanicRecovery(t *testing.T) {
	srv := newTestServer(t)
	srv.Router().Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/panic")
	if err != nil {
		t.Fatalf("GET /panic: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)
	srv.Router().Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	req, _ := http.NewRequest("OPTIONS", ts.URL+"/test", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS /test: %v", err)
	}
	defer resp.Body.Close()

	if v := resp.Header.Get("Access-Control-Allow-Origin"); v != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", v, "*")
	}
}

func TestMetricsUseRoutePattern(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/jobs/01UNKNOWN")
	if err != nil {
		t.Fatalf("GET job: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`path="/v1/jobs/{id}"`)) {
		t.Error("metrics output missing route pattern label for /v1/jobs/{id}")
	}
	if bytes.Contains(body, []byte(`path="/v1/jobs/01UNKNOWN"`)) {
		t.Error("metrics output contains raw path label")
	}
}
