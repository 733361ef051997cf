// Package ticker drives periodic state advancement: every interval it walks
// the registry's machines and advances each by the elapsed wall-clock time.
package ticker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/grid/internal/clock"
	"github.com/viant/grid/metrics"
	"github.com/viant/grid/service/registry"
)

// State describes the lifecycle of the tick loop.
type State int32

const (
	// StateIdle means the loop has not been started.
	StateIdle State = iota
	// StateRunning means the loop is advancing machines.
	StateRunning
	// StateStopping means stop was requested; the loop exits after the
	// current iteration.
	StateStopping
	// StateStopped means the loop has terminated.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Config represents tick loop configuration.
type Config struct {
	// Interval is how long the loop sleeps between update passes.
	Interval time.Duration
}

// DefaultConfig returns the default tick loop configuration.
func DefaultConfig() Config {
	return Config{Interval: 500 * time.Millisecond}
}

// Service runs the tick loop over a registry. The loop blocks the goroutine
// it runs on; it is the single writer advancing machine state, per the
// registry's concurrency model.
type Service struct {
	config       Config
	registry     *registry.Service
	state        atomic.Int32
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// New creates a tick loop over the supplied registry.
func New(reg *registry.Service, config Config) *Service {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Service{
		config:     config,
		registry:   reg,
		shutdownCh: make(chan struct{}),
	}
}

// State returns the loop's lifecycle state.
func (s *Service) State() State {
	return State(s.state.Load())
}

// Start runs the loop on the calling goroutine until Shutdown is called or
// the context is cancelled. Each iteration computes the elapsed wall-clock
// time since the previous one, advances every machine by it, then sleeps the
// configured interval. Stop is honored at iteration boundaries only, so the
// worst-case stop latency is one full iteration.
func (s *Service) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("ticker: already started in state %v", s.State())
	}
	defer s.state.Store(int32(StateStopped))

	interval := time.NewTicker(s.config.Interval)
	defer interval.Stop()

	prev := clock.Now()
	for {
		now := clock.Now()
		s.tick(now.Sub(prev))
		prev = now

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.shutdownCh:
			return nil
		case <-interval.C:
		}
	}
}

// Shutdown requests the loop to stop. It does not interrupt an in-progress
// update pass; the loop exits at the next iteration boundary.
func (s *Service) Shutdown() {
	s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
	})
}

// tick advances every machine by the elapsed time. Machine order is
// unspecified; machines are independent.
func (s *Service) tick(elapsed time.Duration) {
	started := clock.Now()
	for _, aMachine := range s.registry.Machines() {
		aMachine.Update(elapsed)
	}
	metrics.TickDuration.Observe(clock.Since(started).Seconds())
}
