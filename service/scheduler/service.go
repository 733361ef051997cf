// Package scheduler places jobs on grid machines using a capacity-based
// ranking heuristic.
package scheduler

import (
	"context"
	"time"

	"github.com/viant/grid/internal/clock"
	"github.com/viant/grid/internal/idgen"
	"github.com/viant/grid/metrics"
	"github.com/viant/grid/model/job"
	"github.com/viant/grid/model/user"
	"github.com/viant/grid/service/event"
	"github.com/viant/grid/service/messaging"
	"github.com/viant/grid/service/registry"
	"github.com/viant/grid/tracing"
)

// Decision describes a completed placement, published to the event queue so
// external consumers can observe scheduling outcomes.
type Decision struct {
	ID          string    `json:"id"`
	JobID       uint32    `json:"jobID"`
	JobName     string    `json:"jobName"`
	MachineID   uint32    `json:"machineID"`
	MachineName string    `json:"machineName"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service ranks machines and places jobs on the best willing one. Placement
// is best-effort, fire-and-forget: when every machine refuses a job it is
// dropped, never queued or retried.
//
// The service shares the registry's single-writer model and performs no
// locking of its own.
type Service struct {
	registry  *registry.Service
	publisher *event.Publisher[Decision]
}

// Option customises the scheduler service.
type Option func(s *Service)

// WithEventQueue wires a queue receiving a Decision event per successful
// placement.
func WithEventQueue(queue messaging.Queue[event.Event[Decision]]) Option {
	return func(s *Service) {
		s.publisher = event.NewPublisher[Decision](queue)
	}
}

// New creates a scheduler over the supplied registry.
func New(reg *registry.Service, options ...Option) *Service {
	ret := &Service{registry: reg}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// AddJob places the job on the highest-scoring machine that accepts it and
// returns whether placement succeeded. The ranking is rebuilt from the
// registry on every call. When no machine accepts, the job is dropped with
// no side effect and the call returns false.
func (s *Service) AddJob(ctx context.Context, aJob *job.Job) bool {
	if aJob == nil {
		return false
	}
	ctx, span := tracing.StartSpan(ctx, "scheduler.addJob", "INTERNAL")
	metrics.PlacementAttempts.Inc()
	started := clock.Now()

	for _, aMachine := range Rank(s.registry.Machines()) {
		score := Score(aMachine)
		if !aMachine.AddJob(aJob) {
			continue
		}
		metrics.JobsPlaced.Inc()
		s.publishDecision(ctx, aJob, aMachine.ID, aMachine.Name, score, started)
		span.WithAttributes(map[string]string{
			"job.name":     aJob.Name,
			"machine.name": aMachine.Name,
		})
		tracing.EndSpan(span, nil)
		return true
	}

	metrics.PlacementFailures.Inc()
	tracing.EndSpan(span, nil)
	return false
}

// AddJobByUser gates placement on the user's capability check, then
// delegates to AddJob. The user is charged with the created job only when
// placement succeeds.
func (s *Service) AddJobByUser(ctx context.Context, aUser *user.User, aJob *job.Job) bool {
	if aUser == nil || aJob == nil {
		return false
	}
	if !aUser.CanCreateJob(aJob) {
		metrics.AuthorizationDenials.Inc()
		return false
	}
	if !s.AddJob(ctx, aJob) {
		return false
	}
	aUser.CreatedJob(aJob)
	return true
}

func (s *Service) publishDecision(ctx context.Context, aJob *job.Job, machineID uint32, machineName string, score float64, started time.Time) {
	if s.publisher == nil {
		return
	}
	decision := Decision{
		ID:          idgen.New(),
		JobID:       aJob.ID,
		JobName:     aJob.Name,
		MachineID:   machineID,
		MachineName: machineName,
		Score:       score,
		CreatedAt:   clock.Now(),
	}
	eventContext := &event.Context{
		JobID:       aJob.ID,
		MachineID:   machineID,
		EventType:   "placed",
		TimeTakenMs: int(clock.Since(started) / time.Millisecond),
	}
	// Best effort: a full or closed queue must not fail the placement.
	_ = s.publisher.Publish(ctx, event.NewEvent(eventContext, decision))
}
