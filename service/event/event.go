// Package event publishes control-plane events (placement decisions, drops)
// to a messaging queue so external consumers, e.g. the console, can observe
// scheduling outcomes without coupling to the scheduler.
package event

import "time"

// Context carries the scheduling coordinates of an event.
type Context struct {
	JobID       uint32 `json:"jobID"`
	MachineID   uint32 `json:"machineID,omitempty"`
	UserID      uint32 `json:"userID,omitempty"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

// Event pairs a typed payload with its scheduling context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event for the supplied context and payload.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
