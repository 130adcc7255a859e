package models

import (
	"github.com/quantfx/fxterm/src/fields"
)

// Summary field ordinals.
const (
	SummaryFieldSymbol = iota
	SummaryFieldAmountBuy
	SummaryFieldAmountSell
	SummaryFieldAmount
	SummaryFieldAvgBuy
	SummaryFieldAvgSell
	SummaryFieldBuyPL
	SummaryFieldSellPL
	SummaryFieldGrossPL
	SummaryFieldNetPL
	SummaryFieldCount
)

var summarySchema = fields.Schema{
	{Name: "Symbol", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Amount Buy", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
	{Name: "Amount Sell", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
	{Name: "Amount", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
	{Name: "Avg Buy", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Avg Sell", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Buy P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Sell P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Gross P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Net P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Positions", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
}

// Summary is the per-symbol aggregate of open positions. The net amount is
// derived from the buy and sell amounts inside their setters.
type Summary struct {
	Entity

	symbol     string
	amountBuy  int64
	amountSell int64
	amount     int64
	avgBuy     float64
	avgSell    float64
	buyPL      float64
	sellPL     float64
	grossPL    float64
	netPL      float64
	count      int64
}

func NewSummary(symbol string) *Summary {
	s := &Summary{Entity: newEntity(summarySchema)}
	s.setSymbol(symbol)
	return s
}

func (s *Summary) Key() string {
	return s.symbol
}

func (s *Summary) Symbol() string {
	return s.symbol
}

func (s *Summary) setSymbol(symbol string) {
	s.symbol = symbol
	s.SetFieldValue(SummaryFieldSymbol, fields.StringValue(symbol))
}

func (s *Summary) AmountBuy() int64 {
	return s.amountBuy
}

func (s *Summary) SetAmountBuy(v int64) {
	s.amountBuy = v
	s.SetFieldValue(SummaryFieldAmountBuy, fields.IntValue(v))
	s.recalculateAmount()
}

func (s *Summary) AmountSell() int64 {
	return s.amountSell
}

func (s *Summary) SetAmountSell(v int64) {
	s.amountSell = v
	s.SetFieldValue(SummaryFieldAmountSell, fields.IntValue(v))
	s.recalculateAmount()
}

func (s *Summary) Amount() int64 {
	return s.amount
}

func (s *Summary) recalculateAmount() {
	s.amount = s.amountBuy - s.amountSell
	s.SetFieldValue(SummaryFieldAmount, fields.IntValue(s.amount))
}

func (s *Summary) AvgBuy() float64 {
	return s.avgBuy
}

func (s *Summary) SetAvgBuy(v float64) {
	s.avgBuy = v
	s.SetFieldValue(SummaryFieldAvgBuy, fields.DoubleValue(v))
}

func (s *Summary) AvgSell() float64 {
	return s.avgSell
}

func (s *Summary) SetAvgSell(v float64) {
	s.avgSell = v
	s.SetFieldValue(SummaryFieldAvgSell, fields.DoubleValue(v))
}

func (s *Summary) BuyPL() float64 {
	return s.buyPL
}

func (s *Summary) SetBuyPL(v float64) {
	s.buyPL = v
	s.SetFieldValue(SummaryFieldBuyPL, fields.DoubleValue(v))
}

func (s *Summary) SellPL() float64 {
	return s.sellPL
}

func (s *Summary) SetSellPL(v float64) {
	s.sellPL = v
	s.SetFieldValue(SummaryFieldSellPL, fields.DoubleValue(v))
}

func (s *Summary) GrossPL() float64 {
	return s.grossPL
}

func (s *Summary) SetGrossPL(v float64) {
	s.grossPL = v
	s.SetFieldValue(SummaryFieldGrossPL, fields.DoubleValue(v))
}

func (s *Summary) NetPL() float64 {
	return s.netPL
}

func (s *Summary) SetNetPL(v float64) {
	s.netPL = v
	s.SetFieldValue(SummaryFieldNetPL, fields.DoubleValue(v))
}

func (s *Summary) PositionCount() int64 {
	return s.count
}

func (s *Summary) SetPositionCount(v int64) {
	s.count = v
	s.SetFieldValue(SummaryFieldCount, fields.IntValue(v))
}

func (s *Summary) Clone() *Summary {
	cp := *s
	s.cloneFields(&cp.Entity)
	return &cp
}
