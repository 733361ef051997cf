// Package registry implements the owning collection of grid users and
// machines plus their id counters.
//
// Single-writer model: the registry is not internally synchronized. Callers
// must externally serialize all mutation, e.g. by confining every entry point
// to one control goroutine. The tick loop and the scheduler in this module
// are wired that way by the root service.
package registry

import (
	"sort"

	"github.com/viant/grid/model/job"
	"github.com/viant/grid/model/machine"
	"github.com/viant/grid/model/user"
)

// Service owns users and machines keyed by auto-incrementing ids. Ids are
// strictly positive once assigned, assigned exactly once and never reused,
// even after removal.
type Service struct {
	lastUserID    uint32
	lastMachineID uint32
	users         map[uint32]*user.User
	machines      map[uint32]*machine.Machine
}

// New creates an empty registry with both counters at zero.
func New() *Service {
	return &Service{
		users:    make(map[uint32]*user.User),
		machines: make(map[uint32]*machine.Machine),
	}
}

// AddUser inserts the user and returns its id, or 0 for a nil user. A user
// carrying a non-zero id is inserted under that id verbatim (last write
// wins); this is the restore path and the only way to insert out of order.
// Otherwise the user counter is incremented and assigned.
func (s *Service) AddUser(aUser *user.User) uint32 {
	if aUser == nil {
		return 0
	}
	if aUser.ID != 0 {
		s.users[aUser.ID] = aUser
		if aUser.ID > s.lastUserID {
			s.lastUserID = aUser.ID
		}
		return aUser.ID
	}
	s.lastUserID++
	aUser.ID = s.lastUserID
	s.users[aUser.ID] = aUser
	return aUser.ID
}

// AddMachine inserts the machine and returns its id, or 0 for a nil machine.
// Id semantics match AddUser.
func (s *Service) AddMachine(aMachine *machine.Machine) uint32 {
	if aMachine == nil {
		return 0
	}
	if aMachine.ID != 0 {
		s.machines[aMachine.ID] = aMachine
		if aMachine.ID > s.lastMachineID {
			s.lastMachineID = aMachine.ID
		}
		return aMachine.ID
	}
	s.lastMachineID++
	aMachine.ID = s.lastMachineID
	s.machines[aMachine.ID] = aMachine
	return aMachine.ID
}

// RemoveUser drops the user with the given id. Absence is not an error, just
// false.
func (s *Service) RemoveUser(id uint32) bool {
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

// RemoveUserRef drops the user found by identity, scanning all entries.
func (s *Service) RemoveUserRef(aUser *user.User) bool {
	for id, candidate := range s.users {
		if candidate == aUser {
			delete(s.users, id)
			return true
		}
	}
	return false
}

// RemoveMachine drops the machine with the given id.
func (s *Service) RemoveMachine(id uint32) bool {
	if _, ok := s.machines[id]; !ok {
		return false
	}
	delete(s.machines, id)
	return true
}

// RemoveMachineRef drops the machine found by identity, scanning all entries.
func (s *Service) RemoveMachineRef(aMachine *machine.Machine) bool {
	for id, candidate := range s.machines {
		if candidate == aMachine {
			delete(s.machines, id)
			return true
		}
	}
	return false
}

// GetUser returns the user with the given id, or nil.
func (s *Service) GetUser(id uint32) *user.User {
	return s.users[id]
}

// GetMachine returns the machine with the given id, or nil.
func (s *Service) GetMachine(id uint32) *machine.Machine {
	return s.machines[id]
}

// Users returns all users in ascending id order.
func (s *Service) Users() []*user.User {
	return s.FindUsers(nil)
}

// Machines returns all machines in ascending id order.
func (s *Service) Machines() []*machine.Machine {
	return s.FindMachines(nil)
}

// FindUsers returns every user matching the predicate in ascending id order.
// A nil predicate matches all.
func (s *Service) FindUsers(predicate func(*user.User) bool) []*user.User {
	ids := make([]uint32, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if candidate := s.users[id]; predicate == nil || predicate(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// FindMachines returns every machine matching the predicate in ascending id
// order. A nil predicate matches all.
func (s *Service) FindMachines(predicate func(*machine.Machine) bool) []*machine.Machine {
	ids := make([]uint32, 0, len(s.machines))
	for id := range s.machines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*machine.Machine, 0, len(ids))
	for _, id := range ids {
		if candidate := s.machines[id]; predicate == nil || predicate(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// FindJobs returns every hosted job matching the predicate. Jobs are not
// stored at registry level; the query flattens across machines in ascending
// machine-id order, then ascending job-id within each machine. A nil
// predicate matches all.
func (s *Service) FindJobs(predicate func(*job.Job) bool) []*job.Job {
	var out []*job.Job
	for _, aMachine := range s.Machines() {
		for _, aJob := range aMachine.Jobs() {
			if predicate == nil || predicate(aJob) {
				out = append(out, aJob)
			}
		}
	}
	return out
}

// UserCount returns the number of registered users.
func (s *Service) UserCount() int {
	return len(s.users)
}

// MachineCount returns the number of registered machines.
func (s *Service) MachineCount() int {
	return len(s.machines)
}

// LastUserID returns the user id counter.
func (s *Service) LastUserID() uint32 {
	return s.lastUserID
}

// LastMachineID returns the machine id counter.
func (s *Service) LastMachineID() uint32 {
	return s.lastMachineID
}

// RestoreCounters overwrites both id counters with values recorded at save
// time. Used by the snapshot codec before entities are re-inserted so future
// auto-assignment cannot collide with restored entities.
func (s *Service) RestoreCounters(lastUserID, lastMachineID uint32) {
	s.lastUserID = lastUserID
	s.lastMachineID = lastMachineID
}
