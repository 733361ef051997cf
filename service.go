package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/grid/metrics"
	"github.com/viant/grid/model/job"
	"github.com/viant/grid/model/machine"
	"github.com/viant/grid/model/user"
	"github.com/viant/grid/service/event"
	"github.com/viant/grid/service/messaging"
	mmemory "github.com/viant/grid/service/messaging/memory"
	"github.com/viant/grid/service/registry"
	"github.com/viant/grid/service/scheduler"
	"github.com/viant/grid/service/snapshot"
	"github.com/viant/grid/service/ticker"
)

// Service is the control-plane façade: it composes the entity registry, the
// scheduler, the tick loop and the snapshot store, and exposes their
// operations as its entire public surface.
//
// The registry is not internally synchronized; callers must serialize all
// mutating calls (Add*, Remove*, AddJob*, Restore) with the running tick
// loop, e.g. by confining them to one control goroutine.
type Service struct {
	config    *Config
	registry  *registry.Service
	scheduler *scheduler.Service
	ticker    *ticker.Service
	store     *snapshot.Store
	queue     messaging.Queue[event.Event[scheduler.Decision]]
}

// New creates a control-plane service. All collaborators default to
// in-process implementations; use options to override them.
func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	ret.init(options)
	return ret
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.scheduler = scheduler.New(s.registry, scheduler.WithEventQueue(s.queue))
	s.ticker = ticker.New(s.registry, ticker.Config{Interval: s.tickInterval()})
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.registry == nil {
		s.registry = registry.New()
	}
	if s.queue == nil {
		s.queue = mmemory.NewQueue[event.Event[scheduler.Decision]](mmemory.DefaultConfig())
	}
	if s.store == nil {
		s.store = snapshot.NewStore()
	}
}

func (s *Service) tickInterval() time.Duration {
	return time.Duration(s.config.Ticker.IntervalMs) * time.Millisecond
}

// Registry returns the entity registry.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Events returns the queue receiving placement decision events.
func (s *Service) Events() messaging.Queue[event.Event[scheduler.Decision]] {
	return s.queue
}

// AddUser registers a user and returns its id, or 0 for a nil user.
func (s *Service) AddUser(aUser *user.User) uint32 {
	id := s.registry.AddUser(aUser)
	metrics.Users.Set(float64(s.registry.UserCount()))
	return id
}

// AddMachine registers a machine and returns its id, or 0 for a nil machine.
func (s *Service) AddMachine(aMachine *machine.Machine) uint32 {
	id := s.registry.AddMachine(aMachine)
	metrics.Machines.Set(float64(s.registry.MachineCount()))
	return id
}

// RemoveUser drops the user with the given id.
func (s *Service) RemoveUser(id uint32) bool {
	removed := s.registry.RemoveUser(id)
	metrics.Users.Set(float64(s.registry.UserCount()))
	return removed
}

// RemoveMachine drops the machine with the given id.
func (s *Service) RemoveMachine(id uint32) bool {
	removed := s.registry.RemoveMachine(id)
	metrics.Machines.Set(float64(s.registry.MachineCount()))
	return removed
}

// GetUser returns the user with the given id, or nil.
func (s *Service) GetUser(id uint32) *user.User {
	return s.registry.GetUser(id)
}

// GetMachine returns the machine with the given id, or nil.
func (s *Service) GetMachine(id uint32) *machine.Machine {
	return s.registry.GetMachine(id)
}

// AddJob places the job on the best willing machine; when no machine accepts
// the job is dropped and the call returns false.
func (s *Service) AddJob(ctx context.Context, aJob *job.Job) bool {
	return s.scheduler.AddJob(ctx, aJob)
}

// AddJobByUser gates placement on the user's capability check and charges
// the user only on success.
func (s *Service) AddJobByUser(ctx context.Context, aUser *user.User, aJob *job.Job) bool {
	return s.scheduler.AddJobByUser(ctx, aUser, aJob)
}

// FindUsers returns users matching the predicate in ascending id order.
func (s *Service) FindUsers(predicate func(*user.User) bool) []*user.User {
	return s.registry.FindUsers(predicate)
}

// FindMachines returns machines matching the predicate in ascending id order.
func (s *Service) FindMachines(predicate func(*machine.Machine) bool) []*machine.Machine {
	return s.registry.FindMachines(predicate)
}

// FindJobs returns hosted jobs matching the predicate, flattened across
// machines in ascending machine-id then job-id order.
func (s *Service) FindJobs(predicate func(*job.Job) bool) []*job.Job {
	return s.registry.FindJobs(predicate)
}

// Save snapshots the registry to the configured URL.
func (s *Service) Save(ctx context.Context) error {
	return s.SaveTo(ctx, s.config.Snapshot.URL)
}

// SaveTo snapshots the registry to the supplied URL.
func (s *Service) SaveTo(ctx context.Context, URL string) error {
	return s.store.Save(ctx, URL, s.registry)
}

// Restore replaces the current registry with one loaded from the configured
// URL. It must be called before Start: a running tick loop holds the old
// registry and cannot be re-pointed.
func (s *Service) Restore(ctx context.Context) error {
	return s.RestoreFrom(ctx, s.config.Snapshot.URL)
}

// RestoreFrom replaces the current registry with one loaded from the
// supplied URL.
func (s *Service) RestoreFrom(ctx context.Context, URL string) error {
	if s.ticker.State() != ticker.StateIdle {
		return fmt.Errorf("cannot restore after the tick loop started (state %v)", s.ticker.State())
	}
	reg, err := s.store.Load(ctx, URL)
	if err != nil {
		return err
	}
	s.registry = reg
	s.scheduler = scheduler.New(reg, scheduler.WithEventQueue(s.queue))
	s.ticker = ticker.New(reg, ticker.Config{Interval: s.tickInterval()})
	metrics.Users.Set(float64(reg.UserCount()))
	metrics.Machines.Set(float64(reg.MachineCount()))
	return nil
}

// Start runs the tick loop on the calling goroutine until Shutdown is called
// or the context is cancelled. The loop blocks the goroutine it runs on;
// dedicate one to it.
func (s *Service) Start(ctx context.Context) error {
	return s.ticker.Start(ctx)
}

// Shutdown requests the tick loop to stop; the loop exits at the next
// iteration boundary.
func (s *Service) Shutdown() {
	s.ticker.Shutdown()
}

// TickerState returns the tick loop's lifecycle state.
func (s *Service) TickerState() ticker.State {
	return s.ticker.State()
}
