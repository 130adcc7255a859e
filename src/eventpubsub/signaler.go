package eventpubsub

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler receives one committed mutation.
type Handler func(Signal)

type listener struct {
	id   int
	mask SignalType
	fn   Handler
}

// Signaler is a synchronous publish/subscribe hub. Delivery happens on the
// calling goroutine, in subscription order, after the mutation has been
// committed. A subscriber that panics is logged and skipped; it never
// suppresses delivery to the remaining subscribers.
type Signaler struct {
	mu        sync.Mutex
	name      string
	listeners []listener
	nextID    int
}

// Subscription is an explicit handle revoked with Cancel. Cancel is safe to
// call more than once.
type Subscription struct {
	signaler *Signaler
	id       int
}

func (s *Subscription) Cancel() {
	if s.signaler == nil {
		return
	}

	s.signaler.unsubscribe(s.id)
	s.signaler = nil
}

// Subscribe registers fn for the signal types set in mask.
func (s *Signaler) Subscribe(mask SignalType, fn Handler) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.listeners = append(s.listeners, listener{id: s.nextID, mask: mask, fn: fn})

	return &Subscription{signaler: s, id: s.nextID}
}

func (s *Signaler) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Signaler) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.listeners)
}

// emit delivers sig to every matching listener in subscription order. The
// listener snapshot is taken under the lock so a handler may cancel its own
// subscription without corrupting iteration.
func (s *Signaler) emit(sig Signal) {
	s.mu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		if l.mask&sig.Type == 0 {
			continue
		}

		s.deliver(l, sig)
	}
}

func (s *Signaler) deliver(l listener, sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Signaler.deliver: listener %d panicked on %s signal from %s: %v", l.id, sig.Type, s.name, r)
		}
	}()

	l.fn(sig)
}
