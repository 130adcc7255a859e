package actions

import (
	"errors"
	"sync"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/services"
)

// ErrUnavailable marks tickets rejected because the action was not effective
// when the batch was performed. Nothing reaches the session in that case.
var ErrUnavailable = errors.New("action is not available")

// ClosePositionAction closes the selected open position, or a batch of them.
// Eligible while the position's account is clear of margin call, the close
// price is live, and the position is not already being closed.
type ClosePositionAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu       sync.Mutex
	selected string
}

func NewClosePositionAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *ClosePositionAction {
	a := &ClosePositionAction{
		base:    newBase("close-position", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Positions.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Accounts.Subscribe(eventpubsub.SignalChange|eventpubsub.SignalRemove, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

// Select targets the action at one ticket. An empty ticket clears the
// selection.
func (a *ClosePositionAction) Select(ticket string) {
	a.mu.Lock()
	a.selected = ticket
	a.mu.Unlock()

	a.refresh()
}

func (a *ClosePositionAction) selectedTicket() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.selected
}

func (a *ClosePositionAction) refresh() {
	a.setEnabled(a.eligible(a.selectedTicket()))
}

func (a *ClosePositionAction) eligible(ticket string) bool {
	pos := a.desk.PositionByTicket(ticket)
	if pos == nil {
		return false
	}

	if pos.IsBeingClosed() || pos.Close() <= 0 {
		return false
	}

	acct := a.desk.AccountByName(pos.AccountName())
	if acct == nil || acct.IsUnderMarginCall() {
		return false
	}

	return true
}

// Perform sends one close request for the selected ticket. A call while the
// action is not effective is a silent no-op, never forwarded to the session.
func (a *ClosePositionAction) Perform(amount int64, comment string, atMarket bool) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	ticket := a.selectedTicket()
	pos := a.desk.PositionByTicket(ticket)
	if pos == nil {
		return nil
	}

	req := liaison.ClosePositionRequest{
		RequestHeader: liaison.NewRequestHeader(),
		Ticket:        ticket,
		Amount:        resolveAmount(pos, amount),
		Comment:       comment,
		AtMarket:      atMarket,
	}

	if err := a.liaison.SendRequest(req); err != nil {
		return err
	}

	markBeingClosed(a.desk, ticket)
	return nil
}

// PerformBatch closes several tickets in one gesture. Every ticket's amount
// is resolved independently and every request is attempted: one ticket's
// failure never aborts the rest. Failures come back per ticket; a batch
// performed while the action is not effective reports ErrUnavailable for
// every ticket instead of reading as an all-success empty map.
func (a *ClosePositionAction) PerformBatch(tickets []string, amounts map[string]int64, comment string) map[string]error {
	failures := make(map[string]error)

	if !a.EffectiveEnabled() {
		for _, ticket := range tickets {
			failures[ticket] = ErrUnavailable
		}
		return failures
	}

	for _, ticket := range tickets {
		if !a.eligible(ticket) {
			log.Infof("ClosePositionAction.PerformBatch: skipping ineligible ticket %s", ticket)
			continue
		}

		pos := a.desk.PositionByTicket(ticket)
		req := liaison.ClosePositionRequest{
			RequestHeader: liaison.NewRequestHeader(),
			Ticket:        ticket,
			Amount:        resolveAmount(pos, amounts[ticket]),
			Comment:       comment,
		}

		if err := a.liaison.SendRequest(req); err != nil {
			log.Errorf("ClosePositionAction.PerformBatch: close %s failed: %v", ticket, err)
			failures[ticket] = err
			continue
		}

		markBeingClosed(a.desk, ticket)
	}

	return failures
}

// resolveAmount picks the lot size to close. Anything unusable (zero,
// negative, more than the open amount) falls back to the full position.
func resolveAmount(pos *models.Position, requested int64) int64 {
	if requested <= 0 || requested > pos.Amount() {
		return pos.Amount()
	}

	return requested
}

func markBeingClosed(desk *services.Desk, ticket string) {
	err := desk.Positions.Update(ticket, func(item models.Keyed) {
		item.(*models.Position).SetBeingClosed(true)
	})
	if err != nil {
		log.Errorf("markBeingClosed: %v", err)
	}
}
