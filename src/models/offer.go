package models

import (
	"time"

	"github.com/quantfx/fxterm/src/fields"
)

// Offer field ordinals.
const (
	OfferFieldSymbol = iota
	OfferFieldBid
	OfferFieldAsk
	OfferFieldSpread
	OfferFieldHigh
	OfferFieldLow
	OfferFieldAverage
	OfferFieldTime
	OfferFieldTradable
)

var offerSchema = fields.Schema{
	{Name: "Symbol", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Sell", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Buy", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Spread", Type: fields.FieldTypeDouble, Format: "0.0", Alignment: fields.AlignRight, Visible: true},
	{Name: "High", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Low", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Avg", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "Time", Type: fields.FieldTypeDate, Format: "15:04:05", Alignment: fields.AlignCenter, Visible: true},
	{Name: "Tradable", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: false},
}

// Offer is the live quote for one instrument. Spread and average are derived
// from bid/ask inside the setters so they can never go stale.
type Offer struct {
	Entity

	offerID     string
	symbol      string
	bid         float64
	ask         float64
	high        float64
	low         float64
	spread      float64
	average     float64
	pointSize   float64
	digits      int
	bidTradable bool
	askTradable bool
	quoteTime   time.Time
}

func NewOffer(offerID, symbol string, pointSize float64, digits int) *Offer {
	o := &Offer{
		Entity:      newEntity(offerSchema),
		offerID:     offerID,
		pointSize:   pointSize,
		digits:      digits,
		bidTradable: true,
		askTradable: true,
	}

	o.setSymbol(symbol)
	o.applyPrecision()
	o.SetFieldValue(OfferFieldTradable, fields.StringValue("T"))

	return o
}

// applyPrecision recomposes the price masks from the instrument's digits.
// Safe to call more than once: composition always starts from the base mask.
func (o *Offer) applyPrecision() {
	for _, ordinal := range []int{OfferFieldBid, OfferFieldAsk, OfferFieldHigh, OfferFieldLow, OfferFieldAverage} {
		if f := o.Field(ordinal); f != nil {
			f.ApplyPrecision(o.digits)
		}
	}
}

func (o *Offer) Key() string {
	return o.symbol
}

func (o *Offer) OfferID() string {
	return o.offerID
}

func (o *Offer) Symbol() string {
	return o.symbol
}

func (o *Offer) setSymbol(symbol string) {
	o.symbol = symbol
	o.SetFieldValue(OfferFieldSymbol, fields.StringValue(symbol))
}

func (o *Offer) PointSize() float64 {
	return o.pointSize
}

func (o *Offer) Digits() int {
	return o.digits
}

func (o *Offer) Bid() float64 {
	return o.bid
}

func (o *Offer) SetBid(v float64) {
	o.bid = v
	o.SetFieldValue(OfferFieldBid, fields.DoubleValue(v))
	o.recalculate()
}

func (o *Offer) Ask() float64 {
	return o.ask
}

func (o *Offer) SetAsk(v float64) {
	o.ask = v
	o.SetFieldValue(OfferFieldAsk, fields.DoubleValue(v))
	o.recalculate()
}

func (o *Offer) High() float64 {
	return o.high
}

func (o *Offer) SetHigh(v float64) {
	o.high = v
	o.SetFieldValue(OfferFieldHigh, fields.DoubleValue(v))
}

func (o *Offer) Low() float64 {
	return o.low
}

func (o *Offer) SetLow(v float64) {
	o.low = v
	o.SetFieldValue(OfferFieldLow, fields.DoubleValue(v))
}

func (o *Offer) QuoteTime() time.Time {
	return o.quoteTime
}

func (o *Offer) SetQuoteTime(t time.Time) {
	o.quoteTime = t
	o.SetFieldValue(OfferFieldTime, fields.DateValue(t))
}

func (o *Offer) Spread() float64 {
	return o.spread
}

func (o *Offer) Average() float64 {
	return o.average
}

// recalculate refreshes spread and average from bid/ask. A zero point size
// yields a zero spread rather than a division fault.
func (o *Offer) recalculate() {
	if o.pointSize != 0 {
		o.spread = fields.RoundTo((o.ask-o.bid)/o.pointSize, 1)
	} else {
		o.spread = 0
	}
	o.average = (o.ask + o.bid) / 2

	o.SetFieldValue(OfferFieldSpread, fields.DoubleValue(o.spread))
	o.SetFieldValue(OfferFieldAverage, fields.DoubleValue(o.average))
}

func (o *Offer) BidTradable() bool {
	return o.bidTradable
}

func (o *Offer) AskTradable() bool {
	return o.askTradable
}

func (o *Offer) SetTradable(bid, ask bool) {
	o.bidTradable = bid
	o.askTradable = ask

	flag := "F"
	if o.IsTradable() {
		flag = "T"
	}
	o.SetFieldValue(OfferFieldTradable, fields.StringValue(flag))
}

// IsTradable reports whether a trade request may currently reference this
// instrument. Both sides must be quoted as tradable.
func (o *Offer) IsTradable() bool {
	return o.bidTradable && o.askTradable
}

// OpenPrice is the rate at which a new position on the given side would open:
// buys lift the ask, sells hit the bid.
func (o *Offer) OpenPrice(side Side) float64 {
	if side == SideBuy {
		return o.ask
	}

	return o.bid
}

// ClosePrice is the rate at which an open position on the given side would
// close out.
func (o *Offer) ClosePrice(side Side) float64 {
	if side == SideBuy {
		return o.bid
	}

	return o.ask
}

func (o *Offer) Clone() *Offer {
	cp := *o
	o.cloneFields(&cp.Entity)
	return &cp
}
