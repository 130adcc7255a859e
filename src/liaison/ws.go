package liaison

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const wsReadDeadline = 30 * time.Second

// WSLiaison speaks the server's JSON push protocol over a websocket. Inbound
// envelopes are handed to the applier on the read goroutine; outbound
// requests are serialized through a write lock.
type WSLiaison struct {
	url     string
	session *Session
	applier Applier

	// writeMu guards conn: SendRequest reads it and the connect/reconnect
	// paths swap it, possibly while a send is in flight.
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func NewWSLiaison(url string, session *Session, applier Applier) *WSLiaison {
	return &WSLiaison{
		url:     url,
		session: session,
		applier: applier,
	}
}

func (l *WSLiaison) Status() SessionStatus {
	return l.session.Status()
}

// Connect dials the server and starts the read loop. The loop owns the
// session status transitions for connectivity.
func (l *WSLiaison) Connect(ctx context.Context) error {
	l.session.Transition(StatusConnecting)

	conn, err := l.dial()
	if err != nil {
		l.session.Transition(StatusDisconnected)
		return fmt.Errorf("WSLiaison.Connect: %w", err)
	}

	l.setConn(conn)
	l.session.Transition(StatusReady)

	go l.readLoop(ctx)
	return nil
}

func (l *WSLiaison) setConn(conn *websocket.Conn) *websocket.Conn {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	old := l.conn
	l.conn = conn
	return old
}

func (l *WSLiaison) dial() (*websocket.Conn, error) {
	log.Infof("connecting to %s", l.url)

	conn, _, err := websocket.DefaultDialer.Dial(l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("WSLiaison.dial: %w", err)
	}

	return conn, nil
}

func (l *WSLiaison) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.session.Transition(StatusDisconnecting)
			if err := l.conn.Close(); err != nil {
				log.Errorf("WSLiaison.readLoop: error closing connection: %v", err)
			}
			l.session.Transition(StatusDisconnected)
			return
		default:
			if err := l.conn.SetReadDeadline(time.Now().UTC().Add(wsReadDeadline)); err != nil {
				log.Errorf("WSLiaison.readLoop: failed to set read deadline: %v", err)
			}
			_, message, err := l.conn.ReadMessage()
			if err != nil {
				log.Errorf("WSLiaison.readLoop: read failed: %v", err)

				if !l.reconnect() {
					return
				}
				continue
			}

			var update Update
			if err := json.Unmarshal(message, &update); err != nil {
				log.Errorf("WSLiaison.readLoop: failed to unmarshal update: %v", err)
				continue
			}

			l.session.Transition(StatusReceiving)
			if err := l.applier.Apply(update); err != nil {
				log.Errorf("WSLiaison.readLoop: failed to apply %s/%s update: %v", update.Collection, update.Action, err)
			}
			l.session.Transition(StatusReady)
		}
	}
}

func (l *WSLiaison) reconnect() bool {
	l.session.Transition(StatusReconnecting)

	newConn, err := l.dial()
	if err != nil {
		log.Errorf("WSLiaison.reconnect: %v", err)
		l.session.Transition(StatusDisconnected)
		return false
	}

	if old := l.setConn(newConn); old != nil {
		if err := old.Close(); err != nil {
			log.Errorf("WSLiaison.reconnect: error closing old connection: %v", err)
		}
	}

	l.session.Transition(StatusReady)
	return true
}

// SendRequest validates and writes one request frame. Failures come back as
// *LiaisonError; the request is never retried here.
func (l *WSLiaison) SendRequest(req Request) error {
	if err := ValidateRequest(req); err != nil {
		return &LiaisonError{Kind: req.Kind(), Err: err}
	}

	if !l.session.Status().CanTrade() {
		return &LiaisonError{Kind: req.Kind(), Err: fmt.Errorf("session is %s", l.session.Status())}
	}

	frame := struct {
		Kind    string  `json:"kind"`
		Request Request `json:"request"`
	}{Kind: req.Kind(), Request: req}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if l.conn == nil {
		return &LiaisonError{Kind: req.Kind(), Err: fmt.Errorf("not connected")}
	}

	if err := l.conn.WriteJSON(frame); err != nil {
		return &LiaisonError{Kind: req.Kind(), Err: err}
	}

	log.Infof("WSLiaison.SendRequest: sent %s request %s", req.Kind(), req.RequestID())
	return nil
}
