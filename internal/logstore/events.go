package logstore

import "discipline/internal/core"

// EventType names a store mutation.
type EventType string

const (
	EventAdded EventType = "added"
	EventReset EventType = "reset"
)

// Event describes a completed mutation. Record is set for EventAdded only.
// Count is the collection size after the mutation.
type Event struct {
	Type   EventType
	Record core.Record
	Count  int
}

// Subscribe registers fn to be called after every mutation, on the caller's
// goroutine and outside the store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// subscriberList must be called with s.mu held.
func (s *Store) subscriberList() []func(Event) {
	out := make([]func(Event), 0, len(s.subscribers))
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(Event), e Event) {
	for _, fn := range subs {
		fn(e)
	}
}
