package liaison

import (
	"sync"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"
)

// SessionStatus is the connection state pushed by the trading server
// session. Only StatusReady and StatusReceiving permit trade requests.
type SessionStatus int

const (
	StatusDisconnected SessionStatus = iota
	StatusConnecting
	StatusReady
	StatusSending
	StatusReceiving
	StatusReconnecting
	StatusDisconnecting
)

func (s SessionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusReady:
		return "ready"
	case StatusSending:
		return "sending"
	case StatusReceiving:
		return "receiving"
	case StatusReconnecting:
		return "reconnecting"
	case StatusDisconnecting:
		return "disconnecting"
	}

	return "unknown"
}

// CanTrade reports whether a trade request may be sent in this state.
func (s SessionStatus) CanTrade() bool {
	return s == StatusReady || s == StatusReceiving
}

// EventSessionStatus is the topic carrying SessionStatus payloads on the
// session's emitter.
const EventSessionStatus events.EventName = "session.status"

var allowedTransitions = map[SessionStatus][]SessionStatus{
	StatusDisconnected:  {StatusConnecting},
	StatusConnecting:    {StatusReady, StatusDisconnected},
	StatusReady:         {StatusSending, StatusReceiving, StatusReconnecting, StatusDisconnecting},
	StatusSending:       {StatusReady, StatusReceiving, StatusDisconnected},
	StatusReceiving:     {StatusReady, StatusSending, StatusDisconnected},
	StatusReconnecting:  {StatusReady, StatusDisconnected},
	StatusDisconnecting: {StatusDisconnected},
}

// Session tracks the current status and fans status changes out to every
// registered observer before Transition returns.
type Session struct {
	mu      sync.Mutex
	status  SessionStatus
	emitter events.EventEmmiter
}

func NewSession() *Session {
	return &Session{
		status:  StatusDisconnected,
		emitter: events.New(),
	}
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// OnStatus registers fn for status changes.
func (s *Session) OnStatus(fn func(status SessionStatus)) {
	s.emitter.On(EventSessionStatus, func(payload ...interface{}) {
		if len(payload) == 0 {
			return
		}

		if status, ok := payload[0].(SessionStatus); ok {
			fn(status)
		}
	})
}

// Transition moves the session to next if the state machine allows it.
// Observers are notified synchronously, so dependent state (trade action
// gating included) is consistent by the time Transition returns.
func (s *Session) Transition(next SessionStatus) bool {
	s.mu.Lock()

	if !transitionAllowed(s.status, next) {
		log.Warnf("Session.Transition: illegal transition %s -> %s ignored", s.status, next)
		s.mu.Unlock()
		return false
	}

	s.status = next
	s.mu.Unlock()

	s.emitter.Emit(EventSessionStatus, next)
	return true
}

func transitionAllowed(from, to SessionStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
