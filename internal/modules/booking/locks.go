package booking

import "sync"

// eventLocks serializes booking and cancellation per event. Validation and
// seat mutation for one event must not interleave across requests, so each
// event gets its own mutex for the duration of validate+reserve.
type eventLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for eventID and returns the unlock func.
func (l *eventLocks) lock(eventID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
