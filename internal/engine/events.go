package engine

import "sync"

// EventKind identifies a manager notification.
type EventKind int

const (
	// EventLoaded follows a successful fetch of the collection.
	EventLoaded EventKind = iota
	// EventLoadFailed follows the last scheduled load retry failing.
	EventLoadFailed
	// EventQueueChanged follows a change of the queue snapshot.
	EventQueueChanged
	// EventItemsChanged follows any change of the exposed entities.
	EventItemsChanged
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventLoadFailed:
		return "load_failed"
	case EventQueueChanged:
		return "queue_changed"
	case EventItemsChanged:
		return "items_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. Err is set for EventLoadFailed.
type Event struct {
	Kind     EventKind
	Resource string
	Err      error
}

type subscribers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(Event)
}

func (s *subscribers) add(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(Event))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// emit calls subscribers synchronously, outside the lock.
func (s *subscribers) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
