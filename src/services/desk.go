package services

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/eventpubsub"
	"github.com/quantfx/fxterm/src/liaison"
	"github.com/quantfx/fxterm/src/models"
)

// Desk owns the per-kind entity collections and is the single apply point
// for session snapshots and streaming updates. All server data enters the
// terminal through Apply; everything downstream reacts to signals.
type Desk struct {
	Accounts  *eventpubsub.SignalVector
	Offers    *eventpubsub.SignalVector
	Orders    *eventpubsub.SignalVector
	Positions *eventpubsub.SignalVector
	Messages  *eventpubsub.SignalVector
	Summaries *eventpubsub.SignalVector
	Bars      *eventpubsub.SignalVector
}

func NewDesk() *Desk {
	d := &Desk{
		Accounts:  eventpubsub.NewSignalVector(liaison.CollectionAccounts),
		Offers:    eventpubsub.NewSignalVector(liaison.CollectionOffers),
		Orders:    eventpubsub.NewSignalVector(liaison.CollectionOrders),
		Positions: eventpubsub.NewSignalVector(liaison.CollectionPositions),
		Messages:  eventpubsub.NewSignalVector(liaison.CollectionMessages),
		Summaries: eventpubsub.NewSignalVector("summaries"),
		Bars:      eventpubsub.NewSignalVector("bars"),
	}

	d.Summaries.EnableTotalRow(summaryTotal)

	return d
}

// OfferBySymbol is a convenience typed lookup.
func (d *Desk) OfferBySymbol(symbol string) *models.Offer {
	if item := d.Offers.GetByKey(symbol); item != nil {
		return item.(*models.Offer)
	}

	return nil
}

func (d *Desk) AccountByName(name string) *models.Account {
	if item := d.Accounts.GetByKey(name); item != nil {
		return item.(*models.Account)
	}

	return nil
}

func (d *Desk) PositionByTicket(ticket string) *models.Position {
	if item := d.Positions.GetByKey(ticket); item != nil {
		return item.(*models.Position)
	}

	return nil
}

func (d *Desk) OrderByID(orderID string) *models.Order {
	if item := d.Orders.GetByKey(orderID); item != nil {
		return item.(*models.Order)
	}

	return nil
}

// Apply routes one update envelope to its collection.
func (d *Desk) Apply(update liaison.Update) error {
	switch update.Collection {
	case liaison.CollectionAccounts:
		return d.applyAccount(update)
	case liaison.CollectionOffers:
		return d.applyOffer(update)
	case liaison.CollectionOrders:
		return d.applyOrder(update)
	case liaison.CollectionPositions:
		return d.applyPosition(update)
	case liaison.CollectionMessages:
		return d.applyMessage(update)
	}

	return fmt.Errorf("Desk.Apply: unknown collection %q", update.Collection)
}

func (d *Desk) applyAccount(update liaison.Update) error {
	var dto liaison.AccountDTO
	if err := json.Unmarshal(update.Payload, &dto); err != nil {
		return fmt.Errorf("Desk.applyAccount: failed to decode payload: %w", err)
	}

	switch update.Action {
	case liaison.ActionAdd:
		a := models.NewAccount(dto.Name)
		applyAccountDTO(a, dto)
		return d.Accounts.Add(a)
	case liaison.ActionChange:
		return d.Accounts.Update(dto.Name, func(item models.Keyed) {
			applyAccountDTO(item.(*models.Account), dto)
		})
	case liaison.ActionRemove:
		return d.Accounts.Remove(dto.Name)
	}

	return fmt.Errorf("Desk.applyAccount: unknown action %q", update.Action)
}

func applyAccountDTO(a *models.Account, dto liaison.AccountDTO) {
	a.SetBalance(dto.Balance)
	a.SetEquity(dto.Equity)
	a.SetUsedMargin(dto.UsedMargin)
	a.SetUsableMargin(dto.UsableMargin)
	a.SetGrossPL(dto.GrossPL)
	a.SetMarginCall(dto.MarginCall)
	a.SetHedging(dto.Hedging)
}

func (d *Desk) applyOffer(update liaison.Update) error {
	var dto liaison.OfferDTO
	if err := json.Unmarshal(update.Payload, &dto); err != nil {
		return fmt.Errorf("Desk.applyOffer: failed to decode payload: %w", err)
	}

	switch update.Action {
	case liaison.ActionAdd:
		o := models.NewOffer(dto.OfferID, dto.Symbol, dto.PointSize, dto.Digits)
		applyOfferDTO(o, dto)
		return d.Offers.Add(o)
	case liaison.ActionChange:
		return d.Offers.Update(dto.Symbol, func(item models.Keyed) {
			applyOfferDTO(item.(*models.Offer), dto)
		})
	case liaison.ActionRemove:
		return d.Offers.Remove(dto.Symbol)
	}

	return fmt.Errorf("Desk.applyOffer: unknown action %q", update.Action)
}

func applyOfferDTO(o *models.Offer, dto liaison.OfferDTO) {
	o.SetBid(dto.Bid)
	o.SetAsk(dto.Ask)
	o.SetHigh(dto.High)
	o.SetLow(dto.Low)
	o.SetTradable(dto.BidTradable, dto.AskTradable)
	if !dto.QuoteTime.IsZero() {
		o.SetQuoteTime(dto.QuoteTime)
	}
}

func (d *Desk) applyOrder(update liaison.Update) error {
	var dto liaison.OrderDTO
	if err := json.Unmarshal(update.Payload, &dto); err != nil {
		return fmt.Errorf("Desk.applyOrder: failed to decode payload: %w", err)
	}

	switch update.Action {
	case liaison.ActionAdd:
		o := models.NewOrder(dto.OrderID, dto.Account, dto.Symbol, models.Side(dto.Side), models.OrderType(dto.Type))
		if offer := d.OfferBySymbol(dto.Symbol); offer != nil {
			o.SetPrecision(offer.PointSize(), offer.Digits())
		}
		applyOrderDTO(o, dto)
		return d.Orders.Add(o)
	case liaison.ActionChange:
		return d.Orders.Update(dto.OrderID, func(item models.Keyed) {
			applyOrderDTO(item.(*models.Order), dto)
		})
	case liaison.ActionRemove:
		return d.Orders.Remove(dto.OrderID)
	}

	return fmt.Errorf("Desk.applyOrder: unknown action %q", update.Action)
}

func applyOrderDTO(o *models.Order, dto liaison.OrderDTO) {
	o.SetTradeID(dto.TradeID)
	o.SetStatus(dto.Status)
	o.SetAmount(dto.Amount)
	o.SetRate(dto.Rate)
	o.SetStop(dto.Stop)
	o.SetLimit(dto.Limit)
	o.SetTrailStep(dto.TrailStep)
	o.SetConditional(dto.Conditional)
	if !dto.OrderTime.IsZero() {
		o.SetOrderTime(dto.OrderTime)
	}
}

func (d *Desk) applyPosition(update liaison.Update) error {
	var dto liaison.PositionDTO
	if err := json.Unmarshal(update.Payload, &dto); err != nil {
		return fmt.Errorf("Desk.applyPosition: failed to decode payload: %w", err)
	}

	switch update.Action {
	case liaison.ActionAdd:
		p := models.NewPosition(dto.TradeID, dto.Account, dto.Symbol, models.Side(dto.Side))
		if offer := d.OfferBySymbol(dto.Symbol); offer != nil {
			p.SetPrecision(offer.PointSize(), offer.Digits())
		}
		applyPositionDTO(p, dto)
		return d.Positions.Add(p)
	case liaison.ActionChange:
		return d.Positions.Update(dto.TradeID, func(item models.Keyed) {
			applyPositionDTO(item.(*models.Position), dto)
		})
	case liaison.ActionRemove:
		return d.Positions.Remove(dto.TradeID)
	}

	return fmt.Errorf("Desk.applyPosition: unknown action %q", update.Action)
}

func applyPositionDTO(p *models.Position, dto liaison.PositionDTO) {
	if dto.Stage != "" {
		p.SetStage(models.Stage(dto.Stage))
	}
	p.SetAmount(dto.Amount)
	p.SetOpen(dto.Open)
	p.SetClose(dto.Close)
	p.SetStop(dto.Stop)
	p.SetLimit(dto.Limit)
	p.SetGrossPL(dto.GrossPL)
	p.SetCommission(dto.Commission)
	p.SetInterest(dto.Interest)
	if !dto.OpenTime.IsZero() {
		p.SetOpenTime(dto.OpenTime)
	}
	if !dto.CloseTime.IsZero() {
		p.SetCloseTime(dto.CloseTime)
	}
}

func (d *Desk) applyMessage(update liaison.Update) error {
	var dto liaison.MessageDTO
	if err := json.Unmarshal(update.Payload, &dto); err != nil {
		return fmt.Errorf("Desk.applyMessage: failed to decode payload: %w", err)
	}

	switch update.Action {
	case liaison.ActionAdd:
		return d.Messages.Add(models.NewMessage(dto.Time, dto.Text))
	case liaison.ActionRemove:
		return d.Messages.Remove(models.NewMessage(dto.Time, "").Key())
	}

	log.Warnf("Desk.applyMessage: ignoring %s action on messages", update.Action)
	return nil
}
