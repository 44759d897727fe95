// tryread starts several deadline-bounded reads of stdin, one per second,
// and prints the process thread count as readers start and finish. Readers
// left waiting past the deadline are interrupted, so the thread count falls
// back once every reader is joined.
//
// Usage: go run ./cmd/tryread
package main

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/seantiz/nonblock/internal/config"
	"github.com/seantiz/nonblock/internal/deadline"
	"github.com/seantiz/nonblock/internal/model"
	"github.com/seantiz/nonblock/internal/probe"
	"github.com/seantiz/nonblock/internal/procstat"
)

const (
	readers     = 4
	readTimeout = 6000 * time.Millisecond
	interval    = time.Second
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	runner, err := deadline.NewDefaultRunner(logger)
	if err != nil {
		log.Fatalf("failed to set up signal pool: %v", err)
	}

	reg := probe.NewRegistry()
	probe.RegisterDefaults(reg)
	p, err := reg.Resolve(model.KindRead)
	if err != nil {
		log.Fatalf("resolve read probe: %v", err)
	}

	var (
		mu   sync.Mutex
		data []byte
	)

	dones := make([]chan struct{}, readers)
	for i := range readers {
		op, err := p.Prepare(probe.Spec{ID: model.NewID(), Kind: model.KindRead, Target: probe.StdinTarget})
		if err != nil {
			log.Fatalf("prepare read: %v", err)
		}

		done := make(chan struct{})
		dones[i] = done
		go func() {
			defer close(done)
			fmt.Println("before read")
			out := deadline.Run(runner, readTimeout, op)
			switch out.Status {
			case deadline.StatusSuccess:
				fmt.Println("after read")
				mu.Lock()
				data = out.Value
				mu.Unlock()
			default:
				fmt.Printf("reader %d: %s: %v\n", i, out.Status, out.Err)
			}
			fmt.Println()
		}()

		time.Sleep(interval)
		printThreads()
	}

	for _, done := range dones {
		<-done
		printThreads()
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("echo : [%s]\n", trimNewline(data))
}

func printThreads() {
	th, err := procstat.ReadThreads()
	if err != nil {
		fmt.Printf("failed to get thread statistics: %v\n\n", err)
		return
	}
	fmt.Printf("Number of threads in process [%d/%d]\n\n", th.Count, th.Max)
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
