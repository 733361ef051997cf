package grid

import (
	"time"

	"github.com/viant/grid/service/event"
	"github.com/viant/grid/service/messaging"
	"github.com/viant/grid/service/registry"
	"github.com/viant/grid/service/scheduler"
	"github.com/viant/grid/service/snapshot"
)

// Option customises the control-plane service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithRegistry sets the entity registry, e.g. one restored from a snapshot.
func WithRegistry(reg *registry.Service) Option {
	return func(s *Service) { s.registry = reg }
}

// WithEventQueue sets the queue receiving placement decision events.
func WithEventQueue(queue messaging.Queue[event.Event[scheduler.Decision]]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithSnapshotStore sets the snapshot store.
func WithSnapshotStore(store *snapshot.Store) Option {
	return func(s *Service) { s.store = store }
}

// WithTickInterval overrides the update loop interval.
func WithTickInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.config.Ticker.IntervalMs = int(interval / time.Millisecond)
	}
}
