package actions

import (
	"io"
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/services"
)

// RequestForQuoteAction asks the dealer for a firm quote on the selected
// instrument. Shares the create-entry gate: some account clear of margin
// call and a tradable instrument.
type RequestForQuoteAction struct {
	base

	desk    *services.Desk
	liaison liaison.Liaison

	mu      sync.Mutex
	symbol  string
	account string
}

func NewRequestForQuoteAction(desk *services.Desk, l liaison.Liaison, bus EventBus.Bus) *RequestForQuoteAction {
	a := &RequestForQuoteAction{
		base:    newBase("request-for-quote", bus),
		desk:    desk,
		liaison: l,
	}

	a.track(desk.Accounts.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))
	a.track(desk.Offers.Subscribe(eventpubsub.SignalAll, func(eventpubsub.Signal) { a.refresh() }))

	return a
}

func (a *RequestForQuoteAction) Select(symbol, account string) {
	a.mu.Lock()
	a.symbol = symbol
	a.account = account
	a.mu.Unlock()

	a.refresh()
}

func (a *RequestForQuoteAction) refresh() {
	a.mu.Lock()
	symbol := a.symbol
	a.mu.Unlock()

	offer := a.desk.OfferBySymbol(symbol)
	a.setEnabled(offer != nil && offer.IsTradable() && anyAccountClear(a.desk))
}

func (a *RequestForQuoteAction) Perform(amount int64) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	a.mu.Lock()
	symbol, account := a.symbol, a.account
	a.mu.Unlock()

	return a.liaison.SendRequest(liaison.CreateRequestForQuoteRequest{
		RequestHeader: liaison.NewRequestHeader(),
		Account:       account,
		Symbol:        symbol,
		Amount:        amount,
	})
}

// ReportWriter renders the account report for the report action. The
// concrete renderer lives in the report package; the indirection keeps this
// package free of presentation concerns.
type ReportWriter func(w io.Writer, desk *services.Desk) error

// ReportAction produces the account/activity report. Eligible as soon as at
// least one account exists; it sends nothing to the session.
type ReportAction struct {
	base

	desk   *services.Desk
	render ReportWriter
}

func NewReportAction(desk *services.Desk, render ReportWriter, bus EventBus.Bus) *ReportAction {
	a := &ReportAction{
		base:   newBase("report", bus),
		desk:   desk,
		render: render,
	}

	a.track(desk.Accounts.Subscribe(eventpubsub.SignalAdd|eventpubsub.SignalRemove, func(eventpubsub.Signal) { a.refresh() }))
	a.refresh()

	return a
}

func (a *ReportAction) refresh() {
	a.setEnabled(a.desk.Accounts.Len() > 0)
}

func (a *ReportAction) Perform(w io.Writer) error {
	if !a.EffectiveEnabled() {
		return nil
	}

	return a.render(w, a.desk)
}
