// Package user defines the grid user collaborator consumed by the scheduler's
// authorization gate.
package user

import (
	"github.com/viant/grid/internal/wire"
	"github.com/viant/grid/model/job"
)

// User represents a grid user. The id is assigned by the registry on first
// add; zero means not yet assigned.
type User struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`

	// MaxJobs caps how many jobs the user may create; zero means unlimited.
	MaxJobs uint32 `json:"maxJobs"`

	// createdJobs records the ids of jobs this user created, in creation order.
	createdJobs []uint32
}

// New creates a user with the supplied quota. The registry assigns the id.
func New(name string, maxJobs uint32) *User {
	return &User{Name: name, MaxJobs: maxJobs}
}

// CanCreateJob reports whether the user is authorized to create the job.
func (u *User) CanCreateJob(aJob *job.Job) bool {
	if aJob == nil {
		return false
	}
	return u.MaxJobs == 0 || uint32(len(u.createdJobs)) < u.MaxJobs
}

// CreatedJob records ownership of a successfully placed job.
func (u *User) CreatedJob(aJob *job.Job) {
	if aJob == nil {
		return
	}
	u.createdJobs = append(u.createdJobs, aJob.ID)
}

// CreatedJobs returns the ids of jobs the user created, in creation order.
func (u *User) CreatedJobs() []uint32 {
	out := make([]uint32, len(u.createdJobs))
	copy(out, u.createdJobs)
	return out
}

// Encode appends the user's wire representation to the writer.
func (u *User) Encode(w *wire.Writer) {
	w.PutUint32(u.ID)
	w.PutString(u.Name)
	w.PutUint32(u.MaxJobs)
	w.PutUint32(uint32(len(u.createdJobs)))
	for _, id := range u.createdJobs {
		w.PutUint32(id)
	}
}

// Decode reads a single user record from the reader.
func Decode(r *wire.Reader) (*User, error) {
	var (
		u   User
		err error
	)
	if u.ID, err = r.Uint32(); err != nil {
		return nil, err
	}
	if u.Name, err = r.String(); err != nil {
		return nil, err
	}
	if u.MaxJobs, err = r.Uint32(); err != nil {
		return nil, err
	}
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		id, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		u.createdJobs = append(u.createdJobs, id)
	}
	return &u, nil
}
