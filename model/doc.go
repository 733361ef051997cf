// Package model contains the in-memory representation of grid entities.
//
// The `user`, `machine` and `job` sub-packages define the entities the
// registry tracks and the scheduler places work on.  Each entity carries its
// own binary encoding so that a registry snapshot can be assembled from the
// entity encoders alone.  The root model package simply aggregates those
// building blocks so that they can be referenced from other parts of the
// code base with a single import.
package model
