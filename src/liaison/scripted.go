package liaison

import (
	"fmt"
	"sync"
)

// ScriptedLiaison is an in-memory transport used by the demo terminal and by
// tests: it records every request it accepts and can be told to fail
// specific tickets or whole request kinds.
type ScriptedLiaison struct {
	mu          sync.Mutex
	session     *Session
	sent        []Request
	failTickets map[string]error
	failKinds   map[string]error
}

func NewScriptedLiaison(session *Session) *ScriptedLiaison {
	return &ScriptedLiaison{
		session:     session,
		failTickets: make(map[string]error),
		failKinds:   make(map[string]error),
	}
}

func (l *ScriptedLiaison) Status() SessionStatus {
	return l.session.Status()
}

// FailTicket makes any ClosePosition or SetOrResetStopLimit request for the
// ticket come back with a LiaisonError.
func (l *ScriptedLiaison) FailTicket(ticket string, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failTickets[ticket] = fmt.Errorf("%s", reason)
}

// FailKind makes every request of the kind come back with a LiaisonError.
func (l *ScriptedLiaison) FailKind(kind string, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failKinds[kind] = fmt.Errorf("%s", reason)
}

func (l *ScriptedLiaison) SendRequest(req Request) error {
	if err := ValidateRequest(req); err != nil {
		return &LiaisonError{Kind: req.Kind(), Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err, ok := l.failKinds[req.Kind()]; ok {
		return &LiaisonError{Kind: req.Kind(), Err: err}
	}

	if ticket := requestTicket(req); ticket != "" {
		if err, ok := l.failTickets[ticket]; ok {
			return &LiaisonError{Kind: req.Kind(), Err: err}
		}
	}

	l.sent = append(l.sent, req)
	return nil
}

// Sent returns the accepted requests in send order.
func (l *ScriptedLiaison) Sent() []Request {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Request, len(l.sent))
	copy(out, l.sent)
	return out
}

func (l *ScriptedLiaison) SentKinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	kinds := make([]string, 0, len(l.sent))
	for _, req := range l.sent {
		kinds = append(kinds, req.Kind())
	}

	return kinds
}

func requestTicket(req Request) string {
	switch r := req.(type) {
	case ClosePositionRequest:
		return r.Ticket
	case SetOrResetStopLimitRequest:
		return r.Ticket
	case RemoveEntryOrderRequest:
		return r.OrderID
	case UpdateEntryOrderRequest:
		return r.OrderID
	}

	return ""
}
