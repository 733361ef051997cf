// Package grid provides the control-plane core of a small grid/cluster
// manager: it tracks a pool of worker machines and users, places jobs on the
// best willing machine using a capacity-based heuristic, persists the whole
// state to a binary snapshot and advances machine state on a periodic tick.
//
// The package is organised in pluggable service layers:
//
//   - registry  – ownership of users and machines and their id lifecycle
//   - scheduler – machine ranking and job placement
//   - snapshot  – fixed-schema binary state persistence
//   - ticker    – the periodic update loop
//
// Grid is designed to be embedded in host applications. End-users typically
// interact via the high-level Service façade exposed by the root package:
//
//	srv := grid.New()
//	srv.AddMachine(machine.New("node-1", 8, 4096, 8192))
//	ok := srv.AddJob(ctx, job.New(1, "render", 512, 1024, time.Minute))
//	go srv.Start(ctx)
//	defer srv.Shutdown()
//
// For more details see the individual sub-packages.
package grid
