// Package machine defines the worker machine collaborator: capacity
// accounting, hosted job bookkeeping and the per-tick simulation.
package machine

import (
	"sort"
	"time"

	"github.com/viant/grid/internal/wire"
	"github.com/viant/grid/model/job"
)

// Machine represents a worker machine in the grid. The id is assigned by the
// registry on first add; zero means not yet assigned.
//
// Machine is not internally synchronized; the registry's single-writer model
// applies (see package registry).
type Machine struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`

	// MaxJobs caps how many jobs the machine hosts concurrently.
	MaxJobs uint32 `json:"maxJobs"`

	// TotalDiskMB and TotalRAMMB are the machine's full capacity.
	TotalDiskMB uint32 `json:"totalDiskMB"`
	TotalRAMMB  uint32 `json:"totalRAMMB"`

	availDiskMB uint32
	availRAMMB  uint32

	jobs map[uint32]*job.Job
}

// New creates a machine with all resources available.
func New(name string, maxJobs, diskMB, ramMB uint32) *Machine {
	return &Machine{
		Name:        name,
		MaxJobs:     maxJobs,
		TotalDiskMB: diskMB,
		TotalRAMMB:  ramMB,
		availDiskMB: diskMB,
		availRAMMB:  ramMB,
		jobs:        make(map[uint32]*job.Job),
	}
}

// AddJob performs the machine's capacity check and, when the job is accepted,
// debits resources and records it. It refuses a nil job, a duplicate job id,
// an exhausted job slot, or insufficient disk/RAM.
func (m *Machine) AddJob(aJob *job.Job) bool {
	if aJob == nil {
		return false
	}
	if _, exists := m.jobs[aJob.ID]; exists {
		return false
	}
	if uint32(len(m.jobs)) >= m.MaxJobs {
		return false
	}
	if aJob.DiskMB > m.availDiskMB || aJob.RAMMB > m.availRAMMB {
		return false
	}
	m.availDiskMB -= aJob.DiskMB
	m.availRAMMB -= aJob.RAMMB
	m.jobs[aJob.ID] = aJob
	return true
}

// RemoveJob releases the job's resources and drops it from the machine.
func (m *Machine) RemoveJob(id uint32) bool {
	aJob, ok := m.jobs[id]
	if !ok {
		return false
	}
	m.availDiskMB += aJob.DiskMB
	m.availRAMMB += aJob.RAMMB
	delete(m.jobs, id)
	return true
}

// Update advances every hosted job by the elapsed wall-clock time. Jobs whose
// requested duration has been reached complete and release their resources.
func (m *Machine) Update(elapsed time.Duration) {
	var done []uint32
	for id, aJob := range m.jobs {
		aJob.Advance(elapsed)
		if aJob.Done() {
			done = append(done, id)
		}
	}
	for _, id := range done {
		m.RemoveJob(id)
	}
}

// CurrentJobs returns the number of jobs the machine currently hosts.
func (m *Machine) CurrentJobs() uint32 {
	return uint32(len(m.jobs))
}

// AvailableDiskMB returns the unreserved disk space.
func (m *Machine) AvailableDiskMB() uint32 {
	return m.availDiskMB
}

// AvailableRAMMB returns the unreserved RAM.
func (m *Machine) AvailableRAMMB() uint32 {
	return m.availRAMMB
}

// Job returns a hosted job by id, or nil.
func (m *Machine) Job(id uint32) *job.Job {
	return m.jobs[id]
}

// Jobs returns the hosted jobs in ascending job-id order.
func (m *Machine) Jobs() []*job.Job {
	out := make([]*job.Job, 0, len(m.jobs))
	for _, aJob := range m.jobs {
		out = append(out, aJob)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Encode appends the machine's wire representation, including its hosted
// jobs and remaining capacity, to the writer.
func (m *Machine) Encode(w *wire.Writer) {
	w.PutUint32(m.ID)
	w.PutString(m.Name)
	w.PutUint32(m.MaxJobs)
	w.PutUint32(m.TotalDiskMB)
	w.PutUint32(m.TotalRAMMB)
	w.PutUint32(m.availDiskMB)
	w.PutUint32(m.availRAMMB)
	jobs := m.Jobs()
	w.PutUint32(uint32(len(jobs)))
	for _, aJob := range jobs {
		aJob.Encode(w)
	}
}

// Decode reads a single machine record, including hosted jobs, from the
// reader.
func Decode(r *wire.Reader) (*Machine, error) {
	var (
		m   Machine
		err error
	)
	if m.ID, err = r.Uint32(); err != nil {
		return nil, err
	}
	if m.Name, err = r.String(); err != nil {
		return nil, err
	}
	if m.MaxJobs, err = r.Uint32(); err != nil {
		return nil, err
	}
	if m.TotalDiskMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	if m.TotalRAMMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	if m.availDiskMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	if m.availRAMMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	// The count is untrusted input; never size an allocation from it.
	m.jobs = make(map[uint32]*job.Job)
	for i := uint32(0); i < count; i++ {
		aJob, err := job.Decode(r)
		if err != nil {
			return nil, err
		}
		m.jobs[aJob.ID] = aJob
	}
	return &m, nil
}
