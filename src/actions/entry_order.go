package actions

import (
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/models"
	"github.com/quantfx/fxterm/src/services"
)

// anyAccountClear reports whether at least one account is free of margin
// call, the common gate for operations that open new exposure.
func anyAccountClear(desk *services.Desk) bool {
	clear := false
	desk.Accounts.Each(func(_ int, item models.Keyed) bool {
		if !item.(*models.Account).IsUnderMarginCall() {
			clear = true
			return false
		}
		return true
	})

	return clear
}

// CreateEntryOrderAction places a new conditional order on the selected
// instrument. Eligible while some account can trade and the instrument
// quotes tradable.
type CreateEntryOrderAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu      sync.Mutex
	symbol  string
	account string
}

func NewCreateEntryOrderAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *CreateEntryOrderAction {
	a := &CreateEntryOrderAction{
		base:    newBase("create-entry-order", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Accounts.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Offers.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

// Select targets the action at one instrument and account.
func (a *CreateEntryOrderAction) Select(symbol, account string) {
	a.mu.Lock()
	a.symbol = symbol
	a.account = account
	a.mu.Unlock()

	a.refresh()
}

func (a *CreateEntryOrderAction) refresh() {
	a.mu.Lock()
	symbol := a.symbol
	a.mu.Unlock()

	offer := a.desk.OfferBySymbol(symbol)
	a.setEnabled(offer != nil && offer.IsTradable() && anyAccountClear(a.desk))
}

func (a *CreateEntryOrderAction) Perform(side models.Side, rate float64, amount int64, comment string) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	symbol, account := a.symbol, a.account
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.CreateEntryOrderRequest{
		RequestHeader: liaison.NewRequestHeader(),
		Symbol:        symbol,
		Account:       account,
		Side:          string(side),
		Rate:          rate,
		Amount:        amount,
		Comment:       comment,
	})
}

// UpdateEntryOrderAction amends the rate/amount of the selected entry order.
type UpdateEntryOrderAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu       sync.Mutex
	selected string
}

func NewUpdateEntryOrderAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *UpdateEntryOrderAction {
	a := &UpdateEntryOrderAction{
		base:    newBase("update-entry-order", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Orders.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Offers.Subscribe(eventpubsub.SignalChange, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

func (a *UpdateEntryOrderAction) Select(orderID string) {
	a.mu.Lock()
	a.selected = orderID
	a.mu.Unlock()

	a.refresh()
}

func (a *UpdateEntryOrderAction) refresh() {
	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	a.setEnabled(entryOrderTradable(a.desk, orderID))
}

func (a *UpdateEntryOrderAction) Perform(rate float64, amount int64, comment string) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.UpdateEntryOrderRequest{
		RequestHeader: liaison.NewRequestHeader(),
		OrderID:       orderID,
		Rate:          rate,
		Amount:        amount,
		Comment:       comment,
	})
}

// RemoveEntryOrderAction cancels the selected entry order. Cancellation does
// not need a tradable quote, only an existing entry order.
type RemoveEntryOrderAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu       sync.Mutex
	selected string
}

func NewRemoveEntryOrderAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *RemoveEntryOrderAction {
	a := &RemoveEntryOrderAction{
		base:    newBase("remove-entry-order", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Orders.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

func (a *RemoveEntryOrderAction) Select(orderID string) {
	a.mu.Lock()
	a.selected = orderID
	a.mu.Unlock()

	a.refresh()
}

func (a *RemoveEntryOrderAction) refresh() {
	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	order := a.desk.OrderByID(orderID)
	a.setEnabled(order != nil && order.IsEntryOrder())
}

func (a *RemoveEntryOrderAction) Perform() error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	orderID := a.selected
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.RemoveEntryOrderRequest{
		RequestHeader: liaison.NewRequestHeader(),
		OrderID:       orderID,
	})
}
