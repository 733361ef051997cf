// Package clock wraps the wall clock so the tick loop's elapsed-time
// computation can be stubbed in tests.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Since returns the elapsed time between t and Now.
func Since(t time.Time) time.Duration { return Now().Sub(t) }
