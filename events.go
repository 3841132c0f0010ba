package main

import "sync"

// Broadcaster is a zero-payload synchronous event fan-out. Subscribers are
// invoked on the goroutine that calls Notify. Registration is mutex-guarded
// so a session can tear down from an HTTP handler while its loop is mid-run.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func())}
}

// Subscription is the handle returned by Subscribe. Owning it explicitly
// makes teardown deterministic.
type Subscription struct {
	b  *Broadcaster
	id int

	once sync.Once
}

// Subscribe registers fn and returns its subscription handle.
func (b *Broadcaster) Subscribe(fn func()) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return &Subscription{b: b, id: id}
}

// Notify invokes all current subscribers synchronously.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Count returns the number of active subscribers.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Unsubscribe removes the subscriber. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s.id)
		s.b.mu.Unlock()
	})
}
