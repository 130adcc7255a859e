package actions

import (
	"github.com/asaskevich/EventBus"

	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/services"
)

// Registry owns one instance of every trade action. It is constructed once
// at startup and handed to every consumer; session status transitions gate
// all actions through it before the transition call returns.
type Registry struct {
	bus EventBus.Bus

	ClosePosition        *ClosePositionAction
	SetStopLimitPosition *SetStopLimitPositionAction
	SetStopLimitOrder    *SetStopLimitOrderAction
	CreateEntryOrder     *CreateEntryOrderAction
	UpdateEntryOrder     *UpdateEntryOrderAction
	RemoveEntryOrder     *RemoveEntryOrderAction
	RequestForQuote      *RequestForQuoteAction
	Report               *ReportAction
}

func NewRegistry(desk *services.Desk, l liaison.Liaison, session *liaison.Session, render ReportWriter) *Registry {
	bus := EventBus.New()

	r := &Registry{
		bus:                  bus,
		ClosePosition:        NewClosePositionAction(desk, l, bus),
		SetStopLimitPosition: NewSetStopLimitPositionAction(desk, l, bus),
		SetStopLimitOrder:    NewSetStopLimitOrderAction(desk, l, bus),
		CreateEntryOrder:     NewCreateEntryOrderAction(desk, l, bus),
		UpdateEntryOrder:     NewUpdateEntryOrderAction(desk, l, bus),
		RemoveEntryOrder:     NewRemoveEntryOrderAction(desk, l, bus),
		RequestForQuote:      NewRequestForQuoteAction(desk, l, bus),
		Report:               NewReportAction(desk, render, bus),
	}

	canAct := session.Status().CanTrade()
	for _, a := range r.All() {
		a.SetCanAct(canAct)
	}

	session.OnStatus(func(status liaison.SessionStatus) {
		permitted := status.CanTrade()
		for _, a := range r.All() {
			a.SetCanAct(permitted)
		}
	})

	return r
}

// Stop revokes every action's collection subscriptions. The registry is done
// after Stop; desk mutations no longer reach any action.
func (r *Registry) Stop() {
	for _, a := range r.All() {
		a.Stop()
	}
}

func (r *Registry) All() []Action {
	return []Action{
		r.ClosePosition,
		r.SetStopLimitPosition,
		r.SetStopLimitOrder,
		r.CreateEntryOrder,
		r.UpdateEntryOrder,
		r.RemoveEntryOrder,
		r.RequestForQuote,
		r.Report,
	}
}
