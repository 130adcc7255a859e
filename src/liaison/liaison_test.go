package liaison

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTransitions(t *testing.T) {
	t.Run("legal path", func(t *testing.T) {
		s := NewSession()
		assert.True(t, s.Transition(StatusConnecting))
		assert.True(t, s.Transition(StatusReady))
		assert.True(t, s.Transition(StatusReceiving))
		assert.True(t, s.Transition(StatusReady))
		assert.True(t, s.Transition(StatusDisconnecting))
		assert.True(t, s.Transition(StatusDisconnected))
	})

	t.Run("illegal transition ignored", func(t *testing.T) {
		s := NewSession()
		assert.False(t, s.Transition(StatusReady))
		assert.Equal(t, StatusDisconnected, s.Status())
	})

	t.Run("observers see the change before transition returns", func(t *testing.T) {
		s := NewSession()

		var observed []SessionStatus
		s.OnStatus(func(status SessionStatus) {
			observed = append(observed, status)
			assert.Equal(t, status, s.Status())
		})

		s.Transition(StatusConnecting)
		s.Transition(StatusReady)

		assert.Equal(t, []SessionStatus{StatusConnecting, StatusReady}, observed)
	})
}

func TestCanTrade(t *testing.T) {
	assert.True(t, StatusReady.CanTrade())
	assert.True(t, StatusReceiving.CanTrade())
	assert.False(t, StatusSending.CanTrade())
	assert.False(t, StatusDisconnected.CanTrade())
	assert.False(t, StatusDisconnecting.CanTrade())
	assert.False(t, StatusReconnecting.CanTrade())
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid close position", func(t *testing.T) {
		req := ClosePositionRequest{
			RequestHeader: NewRequestHeader(),
			Ticket:        "T1",
			Amount:        10000,
		}
		assert.NoError(t, ValidateRequest(req))
	})

	t.Run("missing ticket rejected", func(t *testing.T) {
		req := ClosePositionRequest{RequestHeader: NewRequestHeader(), Amount: 10000}
		assert.Error(t, ValidateRequest(req))
	})

	t.Run("bad side rejected", func(t *testing.T) {
		req := CreateEntryOrderRequest{
			RequestHeader: NewRequestHeader(),
			Symbol:        "EUR/USD",
			Account:       "demo",
			Side:          "X",
			Rate:          1.1,
			Amount:        10000,
		}
		assert.Error(t, ValidateRequest(req))
	})

	t.Run("short password rejected", func(t *testing.T) {
		req := ChangePasswordRequest{
			RequestHeader: NewRequestHeader(),
			OldPassword:   "old-secret",
			NewPassword:   "abc",
		}
		assert.Error(t, ValidateRequest(req))
	})
}

// Concurrent senders race the reconnect path's connection swap; both go
// through writeMu, so this passes under the race detector.
func TestWSLiaisonConcurrentSendAndSwap(t *testing.T) {
	session := NewSession()
	require.True(t, session.Transition(StatusConnecting))
	require.True(t, session.Transition(StatusReady))

	l := NewWSLiaison("ws://127.0.0.1:0/feed", session, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				// never connected: every send fails, none may crash or race
				err := l.SendRequest(RemoveEntryOrderRequest{RequestHeader: NewRequestHeader(), OrderID: "O1"})
				assert.Error(t, err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 200; j++ {
			l.setConn(nil)
		}
	}()

	wg.Wait()

	var lerr *LiaisonError
	err := l.SendRequest(RemoveEntryOrderRequest{RequestHeader: NewRequestHeader(), OrderID: "O1"})
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "RemoveEntryOrder", lerr.Kind)
}

func TestScriptedLiaison(t *testing.T) {
	session := NewSession()
	l := NewScriptedLiaison(session)

	t.Run("records accepted requests", func(t *testing.T) {
		req := RemoveEntryOrderRequest{RequestHeader: NewRequestHeader(), OrderID: "O1"}
		require.NoError(t, l.SendRequest(req))
		assert.Equal(t, []string{"RemoveEntryOrder"}, l.SentKinds())
	})

	t.Run("failed ticket surfaces a LiaisonError", func(t *testing.T) {
		l.FailTicket("T1", "rejected by dealer")

		err := l.SendRequest(ClosePositionRequest{RequestHeader: NewRequestHeader(), Ticket: "T1", Amount: 100})
		require.Error(t, err)

		var lerr *LiaisonError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, "ClosePosition", lerr.Kind)
	})
}
