package actions

import (
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/services"
)

// SetStopLimitPositionAction attaches or clears stop/limit rates on the
// selected open position. Shares the close-position predicate: a position
// already on its way out cannot take new protective rates.
type SetStopLimitPositionAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu       sync.Mutex
	selected string
}

func NewSetStopLimitPositionAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *SetStopLimitPositionAction {
	a := &SetStopLimitPositionAction{
		base:    newBase("set-stop-limit-position", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Positions.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Accounts.Subscribe(eventpubsub.SignalChange|eventpubsub.SignalRemove, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

func (a *SetStopLimitPositionAction) Select(ticket string) {
	a.mu.Lock()
	a.selected = ticket
	a.mu.Unlock()

	a.refresh()
}

func (a *SetStopLimitPositionAction) refresh() {
	a.mu.Lock()
	ticket := a.selected
	a.mu.Unlock()

	pos := a.desk.PositionByTicket(ticket)
	if pos == nil || pos.IsBeingClosed() || pos.Close() <= 0 {
		a.setEnabled(false)
		return
	}

	acct := a.desk.AccountByName(pos.AccountName())
	a.setEnabled(acct != nil && !acct.IsUnderMarginCall())
}

func (a *SetStopLimitPositionAction) Perform(stop, limit *float64, trailingStop int) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	ticket := a.selected
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.SetOrResetStopLimitRequest{
		RequestHeader: liaison.NewRequestHeader(),
		Ticket:        ticket,
		Stop:          stop,
		Limit:         limit,
		TrailingStop:  trailingStop,
	})
}

// SetStopLimitOrderAction attaches stop/limit rates to the selected working
// order. Eligible only for entry orders whose instrument currently quotes
// tradable.
type SetStopLimitOrderAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu       sync.Mutex
	selected string
}

func NewSetStopLimitOrderAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *SetStopLimitOrderAction {
	a := &SetStopLimitOrderAction{
		base:    newBase("set-stop-limit-order", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Orders.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Offers.Subscribe(eventpubsub.SignalChange, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

func (a *SetStopLimitOrderAction) Select(orderID string) {
	a.mu.Lock()
	a.selected = orderID
	a.mu.Unlock()

	a.refresh()
}

func (a *SetStopLimitOrderAction) refresh() {
	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	a.setEnabled(entryOrderTradable(a.desk, orderID))
}

func (a *SetStopLimitOrderAction) Perform(stop, limit *float64, trailingStop int) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.SetOrResetStopLimitRequest{
		RequestHeader: liaison.NewRequestHeader(),
		Ticket:        orderID,
		Stop:          stop,
		Limit:         limit,
		TrailingStop:  trailingStop,
	})
}

// entryOrderTradable is the shared predicate for order-scoped operations:
// the order must be a conditional entry order and its instrument's quote
// must currently be tradable.
func entryOrderTradable(desk *services.Desk, orderID string) bool {
	order := desk.OrderByID(orderID)
	if order == nil || !order.IsEntryOrder() {
		return false
	}

	offer := desk.OfferBySymbol(order.Symbol())
	return offer != nil && offer.IsTradable()
}
