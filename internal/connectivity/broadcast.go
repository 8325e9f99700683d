package connectivity

import "sync"

// broadcaster fans a state transition out to subscribers. Callbacks run
// synchronously on the notifying goroutine, outside the lock.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(online bool)
}

func (b *broadcaster) subscribe(fn func(online bool)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(bool))
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *broadcaster) notify(online bool) {
	b.mu.Lock()
	fns := make([]func(bool), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}
