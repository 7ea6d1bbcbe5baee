package services

import (
	"sort"
	"sync"

	"bar-website/models"
)

// SessionWatcher delivers sign-in and sign-out events to subscribers. It is
// passed explicitly to whoever needs session transitions.
type SessionWatcher struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(models.SessionEvent)
}

func NewSessionWatcher() *SessionWatcher {
	return &SessionWatcher{subs: make(map[int]func(models.SessionEvent))}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (w *SessionWatcher) Subscribe(fn func(models.SessionEvent)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

// Publish calls every subscriber in subscription order on the caller's goroutine.
func (w *SessionWatcher) Publish(ev models.SessionEvent) {
	w.mu.Lock()
	ids := make([]int, 0, len(w.subs))
	for id := range w.subs {
		ids = append(ids, id)
	}
	fns := make([]func(models.SessionEvent), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, w.subs[id])
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
