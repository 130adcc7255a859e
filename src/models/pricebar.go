package models

import (
	"fmt"
	"time"

	"github.com/quantfx/fxterm/src/fields"
)

// Interval is a chart bar period.
type Interval string

const (
	IntervalTick Interval = "T"
	IntervalM1   Interval = "m1"
	IntervalM5   Interval = "m5"
	IntervalM15  Interval = "m15"
	IntervalM30  Interval = "m30"
	IntervalH1   Interval = "H1"
	IntervalH4   Interval = "H4"
	IntervalD1   Interval = "D1"
	IntervalW1   Interval = "W1"
	IntervalMN   Interval = "MN"
)

// Duration is the wall-clock length of one bar. Tick bars have no fixed
// length and report zero.
func (i Interval) Duration() time.Duration {
	switch i {
	case IntervalM1:
		return time.Minute
	case IntervalM5:
		return 5 * time.Minute
	case IntervalM15:
		return 15 * time.Minute
	case IntervalM30:
		return 30 * time.Minute
	case IntervalH1:
		return time.Hour
	case IntervalH4:
		return 4 * time.Hour
	case IntervalD1:
		return 24 * time.Hour
	case IntervalW1:
		return 7 * 24 * time.Hour
	case IntervalMN:
		return 30 * 24 * time.Hour
	}

	return 0
}

// PriceBar field ordinals.
const (
	BarFieldSymbol = iota
	BarFieldInterval
	BarFieldStart
	BarFieldAskOpen
	BarFieldAskHigh
	BarFieldAskLow
	BarFieldAskClose
	BarFieldBidOpen
	BarFieldBidHigh
	BarFieldBidLow
	BarFieldBidClose
)

var priceBarSchema = fields.Schema{
	{Name: "Symbol", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Interval", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Start", Type: fields.FieldTypeDate, Format: "2006-01-02 15:04", Alignment: fields.AlignCenter, Visible: true},
	{Name: "Ask Open", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Ask High", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Ask Low", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Ask Close", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Bid Open", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "Bid High", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "Bid Low", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "Bid Close", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
}

// BarSide holds one side's OHLC plus its derived prices. Median, typical and
// weighted are refreshed whenever high, low or close moves.
type BarSide struct {
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Median   float64
	Typical  float64
	Weighted float64
}

func (s *BarSide) recalculate() {
	s.Median = (s.High + s.Low) / 2
	s.Typical = (s.High + s.Low + s.Close) / 3
	s.Weighted = (s.High + s.Low + 2*s.Close) / 4
}

func (s *BarSide) update(price float64) {
	if price > s.High {
		s.High = price
	}

	if price < s.Low {
		s.Low = price
	}

	s.Close = price
	s.recalculate()
}

// PriceBar is one chart bar: symbol + interval + start time with ask and bid
// OHLC. Natural ordering is by start time.
type PriceBar struct {
	Entity

	symbol   string
	interval Interval
	start    time.Time
	ask      BarSide
	bid      BarSide
}

func NewPriceBar(symbol string, interval Interval, start time.Time) *PriceBar {
	b := &PriceBar{
		Entity:   newEntity(priceBarSchema),
		symbol:   symbol,
		interval: interval,
	}

	b.SetFieldValue(BarFieldSymbol, fields.StringValue(symbol))
	b.SetFieldValue(BarFieldInterval, fields.StringValue(string(interval)))
	b.setStart(start)

	return b
}

// NewPriceBarFromOffer opens a bar at the offer's current quote.
func NewPriceBarFromOffer(offer *Offer, interval Interval, start time.Time) *PriceBar {
	b := NewPriceBar(offer.Symbol(), interval, start)

	ask, bid := offer.Ask(), offer.Bid()
	b.ask = BarSide{Open: ask, High: ask, Low: ask, Close: ask}
	b.bid = BarSide{Open: bid, High: bid, Low: bid, Close: bid}
	b.ask.recalculate()
	b.bid.recalculate()
	b.refresh()

	return b
}

func (b *PriceBar) Key() string {
	return fmt.Sprintf("%s/%s/%d", b.symbol, b.interval, b.start.Unix())
}

func (b *PriceBar) Symbol() string {
	return b.symbol
}

func (b *PriceBar) Interval() Interval {
	return b.interval
}

func (b *PriceBar) Start() time.Time {
	return b.start
}

func (b *PriceBar) setStart(start time.Time) {
	b.start = start
	b.SetFieldValue(BarFieldStart, fields.DateValue(start))
}

// Before orders bars by start time.
func (b *PriceBar) Before(other *PriceBar) bool {
	return b.start.Before(other.start)
}

func (b *PriceBar) Ask() BarSide {
	return b.ask
}

func (b *PriceBar) Bid() BarSide {
	return b.bid
}

func (b *PriceBar) SetAsk(open, high, low, close float64) {
	b.ask = BarSide{Open: open, High: high, Low: low, Close: close}
	b.ask.recalculate()
	b.refresh()
}

func (b *PriceBar) SetBid(open, high, low, close float64) {
	b.bid = BarSide{Open: open, High: high, Low: low, Close: close}
	b.bid.recalculate()
	b.refresh()
}

// UpdateByOffer folds a live tick into the bar: close tracks the latest
// quote, high/low keep the running extrema.
func (b *PriceBar) UpdateByOffer(offer *Offer) {
	b.ask.update(offer.Ask())
	b.bid.update(offer.Bid())
	b.refresh()
}

// Contains reports whether ts falls inside this bar's period.
func (b *PriceBar) Contains(ts time.Time) bool {
	d := b.interval.Duration()
	if d == 0 {
		return false
	}

	return !ts.Before(b.start) && ts.Before(b.start.Add(d))
}

func (b *PriceBar) refresh() {
	b.SetFieldValue(BarFieldAskOpen, fields.DoubleValue(b.ask.Open))
	b.SetFieldValue(BarFieldAskHigh, fields.DoubleValue(b.ask.High))
	b.SetFieldValue(BarFieldAskLow, fields.DoubleValue(b.ask.Low))
	b.SetFieldValue(BarFieldAskClose, fields.DoubleValue(b.ask.Close))
	b.SetFieldValue(BarFieldBidOpen, fields.DoubleValue(b.bid.Open))
	b.SetFieldValue(BarFieldBidHigh, fields.DoubleValue(b.bid.High))
	b.SetFieldValue(BarFieldBidLow, fields.DoubleValue(b.bid.Low))
	b.SetFieldValue(BarFieldBidClose, fields.DoubleValue(b.bid.Close))
}

func (b *PriceBar) Clone() *PriceBar {
	cp := *b
	b.cloneFields(&cp.Entity)
	return &cp
}
