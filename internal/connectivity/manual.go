package connectivity

import (
	"context"
	"sync"
)

// Manual is a monitor whose state is set explicitly.
type Manual struct {
	mu     sync.RWMutex
	online bool
	bcast  broadcaster
}

// NewManual returns a Manual monitor in the given initial state.
func NewManual(online bool) *Manual {
	return &Manual{online: online}
}

func (m *Manual) Status(_ context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *Manual) Subscribe(fn func(online bool)) func() {
	return m.bcast.subscribe(fn)
}

// Set changes the state. Subscribers are notified only on a transition.
func (m *Manual) Set(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()

	if changed {
		m.bcast.notify(online)
	}
}
