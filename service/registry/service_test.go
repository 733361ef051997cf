package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/grid/model/job"
	"github.com/viant/grid/model/machine"
	"github.com/viant/grid/model/user"
)

func TestAddUserAssignsSequentialIDs(t *testing.T) {
	service := New()
	for i := 1; i <= 5; i++ {
		id := service.AddUser(user.New("u", 0))
		assert.Equal(t, uint32(i), id)
	}
	assert.Equal(t, 5, service.UserCount())
	assert.Equal(t, uint32(5), service.LastUserID())
}

func TestAddNil(t *testing.T) {
	service := New()
	assert.Equal(t, uint32(0), service.AddUser(nil))
	assert.Equal(t, uint32(0), service.AddMachine(nil))
	assert.Equal(t, 0, service.UserCount())
	assert.Equal(t, 0, service.MachineCount())
}

func TestAddUserExplicitID(t *testing.T) {
	service := New()

	restored := user.New("restored", 0)
	restored.ID = 7
	assert.Equal(t, uint32(7), service.AddUser(restored))
	assert.Equal(t, uint32(7), service.LastUserID(), "counter advanced to explicit id")

	// auto-assignment continues past the restored id
	assert.Equal(t, uint32(8), service.AddUser(user.New("next", 0)))

	// last write wins on id collision
	replacement := user.New("replacement", 0)
	replacement.ID = 7
	assert.Equal(t, uint32(7), service.AddUser(replacement))
	assert.Same(t, replacement, service.GetUser(7))
	assert.Equal(t, uint32(8), service.LastUserID(), "counter not regressed")
}

func TestIDsNeverReused(t *testing.T) {
	service := New()
	id := service.AddMachine(machine.New("m1", 1, 1, 1))
	assert.True(t, service.RemoveMachine(id))
	next := service.AddMachine(machine.New("m2", 1, 1, 1))
	assert.Equal(t, id+1, next)
}

func TestRemoveIdempotence(t *testing.T) {
	service := New()
	id := service.AddUser(user.New("u", 0))
	assert.Equal(t, 1, service.UserCount())

	assert.True(t, service.RemoveUser(id))
	assert.False(t, service.RemoveUser(id))
	assert.Equal(t, 0, service.UserCount())
}

func TestRemoveByIdentity(t *testing.T) {
	service := New()
	aUser := user.New("u", 0)
	service.AddUser(aUser)

	other := user.New("u", 0) // equal fields, different identity
	other.ID = aUser.ID
	assert.False(t, service.RemoveUserRef(user.New("stranger", 0)))
	assert.True(t, service.RemoveUserRef(aUser))
	assert.False(t, service.RemoveUserRef(aUser))

	aMachine := machine.New("m", 1, 1, 1)
	service.AddMachine(aMachine)
	assert.True(t, service.RemoveMachineRef(aMachine))
	assert.False(t, service.RemoveMachineRef(aMachine))
}

func TestGetUnknownID(t *testing.T) {
	service := New()
	assert.Nil(t, service.GetUser(99))
	assert.Nil(t, service.GetMachine(99))
}

func TestFindUsersOrderingAndPredicate(t *testing.T) {
	service := New()
	// out-of-order explicit ids via the restore path
	for _, id := range []uint32{4, 1, 3} {
		aUser := user.New("u", uint32(id))
		aUser.ID = id
		service.AddUser(aUser)
	}

	var ids []uint32
	for _, aUser := range service.FindUsers(nil) {
		ids = append(ids, aUser.ID)
	}
	assert.Equal(t, []uint32{1, 3, 4}, ids)

	matched := service.FindUsers(func(u *user.User) bool { return u.ID > 2 })
	assert.Equal(t, 2, len(matched))
	assert.Equal(t, uint32(3), matched[0].ID)
}

func TestFindJobsFlattening(t *testing.T) {
	service := New()

	first := machine.New("m1", 8, 1000, 1000)
	assert.True(t, first.AddJob(job.New(5, "j5", 1, 1, 0)))
	assert.True(t, first.AddJob(job.New(3, "j3", 1, 1, 0)))
	service.AddMachine(first)

	second := machine.New("m2", 8, 1000, 1000)
	assert.True(t, second.AddJob(job.New(7, "j7", 1, 1, 0)))
	service.AddMachine(second)

	var ids []uint32
	for _, aJob := range service.FindJobs(nil) {
		ids = append(ids, aJob.ID)
	}
	assert.Equal(t, []uint32{3, 5, 7}, ids, "machine-ascending then job-ascending")

	matched := service.FindJobs(func(j *job.Job) bool { return j.ID >= 5 })
	assert.Equal(t, 2, len(matched))
}

func TestCountersIndependentPerInstance(t *testing.T) {
	first := New()
	second := New()
	first.AddUser(user.New("a", 0))
	first.AddUser(user.New("b", 0))
	assert.Equal(t, uint32(1), second.AddUser(user.New("c", 0)), "registries do not share counters")
}

func TestRestoreCounters(t *testing.T) {
	service := New()
	service.RestoreCounters(10, 20)
	assert.Equal(t, uint32(11), service.AddUser(user.New("u", 0)))
	assert.Equal(t, uint32(21), service.AddMachine(machine.New("m", 1, 1, 1)))
}
