package models

import (
	"time"

	"github.com/quantfx/fxterm/src/fields"
)

// Order field ordinals.
const (
	OrderFieldID = iota
	OrderFieldAccount
	OrderFieldSymbol
	OrderFieldType
	OrderFieldStatus
	OrderFieldSide
	OrderFieldAmount
	OrderFieldSellPrice
	OrderFieldBuyPrice
	OrderFieldStop
	OrderFieldLimit
	OrderFieldTime
)

var orderSchema = fields.Schema{
	{Name: "Order", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Account", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Symbol", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Type", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Status", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "B/S", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Amount", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
	{Name: "Sell", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Buy", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Stop", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Limit", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Time", Type: fields.FieldTypeDate, Format: "01/02 15:04:05", Alignment: fields.AlignCenter, Visible: true},
}

// Order is a working order row. The rate lands in the buy or sell price
// column depending on side, which is how the grid renders a single rate
// under two headings.
type Order struct {
	Entity

	orderID     string
	accountName string
	symbol      string
	tradeID     string
	orderType   OrderType
	status      string
	side        Side
	amount      int64
	rate        float64
	stop        float64
	limit       float64
	trailStep   int
	conditional bool
	pointSize   float64
	digits      int
	orderTime   time.Time
}

func NewOrder(orderID, accountName, symbol string, side Side, orderType OrderType) *Order {
	o := &Order{
		Entity:    newEntity(orderSchema),
		orderID:   orderID,
		orderType: orderType,
		pointSize: 0.0001,
		digits:    5,
	}

	o.SetFieldValue(OrderFieldID, fields.StringValue(orderID))
	o.setAccountName(accountName)
	o.setSymbol(symbol)
	o.SetSide(side)
	o.SetFieldValue(OrderFieldType, fields.StringValue(string(orderType)))

	return o
}

func (o *Order) Key() string {
	return o.orderID
}

func (o *Order) OrderID() string {
	return o.orderID
}

func (o *Order) AccountName() string {
	return o.accountName
}

func (o *Order) setAccountName(name string) {
	o.accountName = name
	o.SetFieldValue(OrderFieldAccount, fields.StringValue(name))
}

func (o *Order) Symbol() string {
	return o.symbol
}

func (o *Order) setSymbol(symbol string) {
	o.symbol = symbol
	o.SetFieldValue(OrderFieldSymbol, fields.StringValue(symbol))
}

// SetPrecision assigns the instrument's point size and digits, recomposing
// the price masks. Composition restarts from the base mask each call.
func (o *Order) SetPrecision(pointSize float64, digits int) {
	o.pointSize = pointSize
	o.digits = digits

	for _, ordinal := range []int{OrderFieldSellPrice, OrderFieldBuyPrice, OrderFieldStop, OrderFieldLimit} {
		if f := o.Field(ordinal); f != nil {
			f.ApplyPrecision(digits)
		}
	}
}

func (o *Order) TradeID() string {
	return o.tradeID
}

func (o *Order) SetTradeID(id string) {
	o.tradeID = id
}

func (o *Order) Type() OrderType {
	return o.orderType
}

func (o *Order) IsEntryOrder() bool {
	return o.orderType.IsEntry()
}

func (o *Order) Status() string {
	return o.status
}

func (o *Order) SetStatus(status string) {
	o.status = status
	o.SetFieldValue(OrderFieldStatus, fields.StringValue(status))
}

func (o *Order) Side() Side {
	return o.side
}

func (o *Order) SetSide(side Side) {
	o.side = side
	o.SetFieldValue(OrderFieldSide, fields.StringValue(string(side)))
	o.refreshRate()
}

func (o *Order) Amount() int64 {
	return o.amount
}

func (o *Order) SetAmount(v int64) {
	o.amount = v
	o.SetFieldValue(OrderFieldAmount, fields.IntValue(v))
}

func (o *Order) Rate() float64 {
	return o.rate
}

func (o *Order) SetRate(v float64) {
	o.rate = v
	o.refreshRate()
}

// refreshRate writes the rate into the side's price column and clears the
// opposite one.
func (o *Order) refreshRate() {
	if o.side == SideBuy {
		o.SetFieldValue(OrderFieldBuyPrice, fields.DoubleValue(o.rate))
		o.SetFieldValue(OrderFieldSellPrice, fields.Value{})
	} else {
		o.SetFieldValue(OrderFieldSellPrice, fields.DoubleValue(o.rate))
		o.SetFieldValue(OrderFieldBuyPrice, fields.Value{})
	}
}

func (o *Order) Stop() float64 {
	return o.stop
}

func (o *Order) SetStop(v float64) {
	o.stop = v
	o.SetFieldValue(OrderFieldStop, fields.DoubleValue(v))
}

func (o *Order) Limit() float64 {
	return o.limit
}

func (o *Order) SetLimit(v float64) {
	o.limit = v
	o.SetFieldValue(OrderFieldLimit, fields.DoubleValue(v))
}

// TrailStep is the trailing-stop distance in points, zero when the stop does
// not trail.
func (o *Order) TrailStep() int {
	return o.trailStep
}

func (o *Order) SetTrailStep(step int) {
	o.trailStep = step
}

func (o *Order) IsConditional() bool {
	return o.conditional
}

func (o *Order) SetConditional(conditional bool) {
	o.conditional = conditional
}

func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

func (o *Order) SetOrderTime(t time.Time) {
	o.orderTime = t
	o.SetFieldValue(OrderFieldTime, fields.DateValue(t))
}

func (o *Order) Clone() *Order {
	cp := *o
	o.cloneFields(&cp.Entity)
	return &cp
}

// OrderSelect is the selection descriptor consumed by the history store.
const OrderSelect = "SELECT order_id, account, symbol, type, status, side, amount, rate, stop, lmt, order_time FROM orders"

// HydrateOrder builds an Order from one row of OrderSelect.
func HydrateOrder(row RowScanner) (*Order, error) {
	var (
		orderID   string
		account   string
		symbol    string
		orderType string
		status    string
		side      string
		amount    int64
		rate      float64
		stop      float64
		limit     float64
		orderTime time.Time
	)

	if err := row.Scan(&orderID, &account, &symbol, &orderType, &status, &side, &amount, &rate, &stop, &limit, &orderTime); err != nil {
		return nil, err
	}

	o := NewOrder(orderID, account, symbol, Side(side), OrderType(orderType))
	o.SetStatus(status)
	o.SetAmount(amount)
	o.SetRate(rate)
	o.SetStop(stop)
	o.SetLimit(limit)
	o.SetOrderTime(orderTime)

	return o, nil
}
