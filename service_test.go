package grid_test

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/grid"
	"github.com/viant/grid/model/job"
	"github.com/viant/grid/model/machine"
	"github.com/viant/grid/model/user"
	"github.com/viant/grid/service/ticker"
)

func TestServicePlacement(t *testing.T) {
	srv := grid.New()
	ctx := context.Background()

	aUser := user.New("alice", 0)
	require.Equal(t, uint32(1), srv.AddUser(aUser))

	weak := machine.New("weak", 1, 10, 10)
	strong := machine.New("strong", 8, 4096, 8192)
	require.Equal(t, uint32(1), srv.AddMachine(weak))
	require.Equal(t, uint32(2), srv.AddMachine(strong))

	assert.True(t, srv.AddJobByUser(ctx, aUser, job.New(1, "render", 512, 1024, 0)))
	assert.Equal(t, uint32(1), strong.CurrentJobs())
	assert.Equal(t, []uint32{1}, aUser.CreatedJobs())

	// placement decision event is observable on the queue
	message, err := srv.Events().Consume(ctx)
	require.NoError(t, err)
	decision := message.T().Data
	assert.Equal(t, uint32(1), decision.JobID)
	assert.Equal(t, strong.ID, decision.MachineID)

	jobs := srv.FindJobs(nil)
	require.Equal(t, 1, len(jobs))
	assert.Equal(t, "render", jobs[0].Name)
}

func TestServiceSnapshotRoundTrip(t *testing.T) {
	URL := path.Join(t.TempDir(), "grid.snapshot")
	srv := grid.New(grid.WithConfig(&grid.Config{
		Snapshot: grid.SnapshotConfig{URL: URL},
	}))
	ctx := context.Background()

	srv.AddUser(user.New("alice", 3))
	aMachine := machine.New("node-1", 4, 500, 300)
	srv.AddMachine(aMachine)
	require.True(t, srv.AddJob(ctx, job.New(5, "render", 100, 50, 0)))

	require.NoError(t, srv.Save(ctx))

	restored := grid.New(grid.WithConfig(&grid.Config{
		Snapshot: grid.SnapshotConfig{URL: URL},
	}))
	require.NoError(t, restored.Restore(ctx))

	reg := restored.Registry()
	assert.Equal(t, 1, reg.UserCount())
	assert.Equal(t, 1, reg.MachineCount())
	assert.Equal(t, uint32(1), reg.GetMachine(1).CurrentJobs())

	// the restored control plane keeps scheduling against the new registry
	assert.True(t, restored.AddJob(ctx, job.New(6, "encode", 50, 50, 0)))
	assert.Equal(t, uint32(2), reg.GetMachine(1).CurrentJobs())
}

func TestServiceRestoreRequiresIdleTicker(t *testing.T) {
	URL := path.Join(t.TempDir(), "grid.snapshot")
	srv := grid.New(grid.WithTickInterval(5 * time.Millisecond))
	ctx := context.Background()
	require.NoError(t, srv.SaveTo(ctx, URL))

	go func() {
		_ = srv.Start(ctx)
	}()
	require.Eventually(t, func() bool { return srv.TickerState() == ticker.StateRunning }, time.Second, time.Millisecond)
	defer srv.Shutdown()

	assert.Error(t, srv.RestoreFrom(ctx, URL))
}

func TestServiceTickLoop(t *testing.T) {
	srv := grid.New(grid.WithTickInterval(5 * time.Millisecond))
	ctx := context.Background()

	aMachine := machine.New("node-1", 4, 100, 100)
	srv.AddMachine(aMachine)
	require.True(t, srv.AddJob(ctx, job.New(1, "short", 10, 10, 20*time.Millisecond)))

	go func() {
		_ = srv.Start(ctx)
	}()
	time.Sleep(100 * time.Millisecond)
	srv.Shutdown()
	require.Eventually(t, func() bool { return srv.TickerState() == ticker.StateStopped }, time.Second, time.Millisecond)

	assert.Nil(t, aMachine.Job(1), "expired job completed by the tick loop")
	assert.Equal(t, uint32(100), aMachine.AvailableDiskMB())
}

func TestServiceRemoval(t *testing.T) {
	srv := grid.New()
	id := srv.AddUser(user.New("alice", 0))

	assert.True(t, srv.RemoveUser(id))
	assert.False(t, srv.RemoveUser(id))
	assert.Nil(t, srv.GetUser(id))

	machineID := srv.AddMachine(machine.New("m", 1, 1, 1))
	assert.True(t, srv.RemoveMachine(machineID))
	assert.False(t, srv.RemoveMachine(machineID))
}
