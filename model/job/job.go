// Package job defines the unit of work placed on grid machines.
package job

import (
	"time"

	"github.com/viant/grid/internal/wire"
)

// Job represents a schedulable unit of work. Resource requirements are opaque
// to the scheduler; only the hosting machine inspects them when deciding
// whether to accept the job.
type Job struct {
	// ID is assigned by the submitter; zero is not a valid id.
	ID   uint32 `json:"id"`
	Name string `json:"name"`

	// DiskMB and RAMMB are the resources the job holds while hosted.
	DiskMB uint32 `json:"diskMB"`
	RAMMB  uint32 `json:"ramMB"`

	// Duration is the requested runtime; zero means the job runs until
	// explicitly removed.
	Duration time.Duration `json:"duration"`

	// Elapsed is the runtime accumulated so far by the hosting machine.
	Elapsed time.Duration `json:"elapsed"`
}

// New creates a job with the supplied id and requirements.
func New(id uint32, name string, diskMB, ramMB uint32, duration time.Duration) *Job {
	return &Job{
		ID:       id,
		Name:     name,
		DiskMB:   diskMB,
		RAMMB:    ramMB,
		Duration: duration,
	}
}

// Advance accumulates elapsed runtime.
func (j *Job) Advance(elapsed time.Duration) {
	j.Elapsed += elapsed
}

// Done reports whether the job's requested duration has been reached.
// Jobs without a duration never finish on their own.
func (j *Job) Done() bool {
	return j.Duration > 0 && j.Elapsed >= j.Duration
}

// Encode appends the job's wire representation to the writer.
func (j *Job) Encode(w *wire.Writer) {
	w.PutUint32(j.ID)
	w.PutString(j.Name)
	w.PutUint32(j.DiskMB)
	w.PutUint32(j.RAMMB)
	w.PutUint64(uint64(j.Duration / time.Millisecond))
	w.PutUint64(uint64(j.Elapsed / time.Millisecond))
}

// Decode reads a single job record from the reader.
func Decode(r *wire.Reader) (*Job, error) {
	var (
		j   Job
		err error
	)
	if j.ID, err = r.Uint32(); err != nil {
		return nil, err
	}
	if j.Name, err = r.String(); err != nil {
		return nil, err
	}
	if j.DiskMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	if j.RAMMB, err = r.Uint32(); err != nil {
		return nil, err
	}
	durationMs, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	elapsedMs, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	j.Duration = time.Duration(durationMs) * time.Millisecond
	j.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &j, nil
}
