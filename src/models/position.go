package models

import (
	"time"

	"github.com/quantfx/fxterm/src/fields"
)

// Position field ordinals.
const (
	PositionFieldTradeID = iota
	PositionFieldAccount
	PositionFieldSymbol
	PositionFieldSide
	PositionFieldAmount
	PositionFieldOpen
	PositionFieldClose
	PositionFieldStop
	PositionFieldLimit
	PositionFieldHigh
	PositionFieldLow
	PositionFieldPL
	PositionFieldGrossPL
	PositionFieldCommission
	PositionFieldInterest
	PositionFieldNetPL
	PositionFieldOpenTime
	PositionFieldCloseTime
)

var positionSchema = fields.Schema{
	{Name: "Ticket", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Account", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "Symbol", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
	{Name: "B/S", Type: fields.FieldTypeString, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Amount", Type: fields.FieldTypeInt, Alignment: fields.AlignRight, Visible: true},
	{Name: "Open", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Close", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Stop", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Limit", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: true},
	{Name: "High", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "Low", Type: fields.FieldTypeDouble, Format: "0", Alignment: fields.AlignRight, Visible: false},
	{Name: "PL", Type: fields.FieldTypeDouble, Format: "0.0", Alignment: fields.AlignRight, Visible: true},
	{Name: "Gross P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Com", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Interest", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Net P/L", Type: fields.FieldTypeDouble, Format: "#,##0.00", Alignment: fields.AlignRight, Visible: true},
	{Name: "Open Time", Type: fields.FieldTypeDate, Format: "01/02 15:04:05", Alignment: fields.AlignCenter, Visible: true},
	{Name: "Close Time", Type: fields.FieldTypeDate, Format: "01/02 15:04:05", Alignment: fields.AlignCenter, Visible: false},
}

// Position is one open or closed trade. Net P/L and pip P/L are derived and
// recomputed synchronously inside the setters of their source fields.
type Position struct {
	Entity

	tradeID       string
	accountName   string
	symbol        string
	side          Side
	stage         Stage
	amount        int64
	open          float64
	close         float64
	stop          float64
	limit         float64
	high          float64
	low           float64
	pl            float64
	grossPL       float64
	commission    float64
	interest      float64
	netPL         float64
	trailStep     int
	pointSize     float64
	digits        int
	isBeingClosed bool
	openTime      time.Time
	closeTime     time.Time
}

func NewPosition(tradeID, accountName, symbol string, side Side) *Position {
	p := &Position{
		Entity:    newEntity(positionSchema),
		tradeID:   tradeID,
		stage:     StageOpen,
		pointSize: 0.0001,
		digits:    5,
	}

	p.SetFieldValue(PositionFieldTradeID, fields.StringValue(tradeID))
	p.setAccountName(accountName)
	p.setSymbol(symbol)
	p.setSide(side)

	return p
}

func (p *Position) Key() string {
	return p.tradeID
}

func (p *Position) TradeID() string {
	return p.tradeID
}

func (p *Position) AccountName() string {
	return p.accountName
}

func (p *Position) setAccountName(name string) {
	p.accountName = name
	p.SetFieldValue(PositionFieldAccount, fields.StringValue(name))
}

func (p *Position) Symbol() string {
	return p.symbol
}

func (p *Position) setSymbol(symbol string) {
	p.symbol = symbol
	p.SetFieldValue(PositionFieldSymbol, fields.StringValue(symbol))
}

func (p *Position) Side() Side {
	return p.side
}

func (p *Position) setSide(side Side) {
	p.side = side
	p.SetFieldValue(PositionFieldSide, fields.StringValue(string(side)))
}

// SetPrecision assigns the instrument's point size and digits, recomposing
// the price masks from their base.
func (p *Position) SetPrecision(pointSize float64, digits int) {
	p.pointSize = pointSize
	p.digits = digits

	for _, ordinal := range []int{PositionFieldOpen, PositionFieldClose, PositionFieldStop, PositionFieldLimit, PositionFieldHigh, PositionFieldLow} {
		if f := p.Field(ordinal); f != nil {
			f.ApplyPrecision(digits)
		}
	}
}

func (p *Position) PointSize() float64 {
	return p.pointSize
}

func (p *Position) Stage() Stage {
	return p.stage
}

func (p *Position) SetStage(stage Stage) {
	p.stage = stage
}

func (p *Position) IsBeingClosed() bool {
	return p.isBeingClosed
}

func (p *Position) SetBeingClosed(closing bool) {
	p.isBeingClosed = closing
}

func (p *Position) Amount() int64 {
	return p.amount
}

func (p *Position) SetAmount(v int64) {
	p.amount = v
	p.SetFieldValue(PositionFieldAmount, fields.IntValue(v))
}

func (p *Position) Open() float64 {
	return p.open
}

func (p *Position) SetOpen(v float64) {
	p.open = v
	p.SetFieldValue(PositionFieldOpen, fields.DoubleValue(v))
	p.recalculatePips()
}

func (p *Position) Close() float64 {
	return p.close
}

func (p *Position) SetClose(v float64) {
	p.close = v
	p.SetFieldValue(PositionFieldClose, fields.DoubleValue(v))
	p.recalculatePips()
}

func (p *Position) Stop() float64 {
	return p.stop
}

func (p *Position) SetStop(v float64) {
	p.stop = v
	p.SetFieldValue(PositionFieldStop, fields.DoubleValue(v))
}

func (p *Position) Limit() float64 {
	return p.limit
}

func (p *Position) SetLimit(v float64) {
	p.limit = v
	p.SetFieldValue(PositionFieldLimit, fields.DoubleValue(v))
}

func (p *Position) High() float64 {
	return p.high
}

func (p *Position) SetHigh(v float64) {
	p.high = v
	p.SetFieldValue(PositionFieldHigh, fields.DoubleValue(v))
}

func (p *Position) Low() float64 {
	return p.low
}

func (p *Position) SetLow(v float64) {
	p.low = v
	p.SetFieldValue(PositionFieldLow, fields.DoubleValue(v))
}

func (p *Position) TrailStep() int {
	return p.trailStep
}

func (p *Position) SetTrailStep(step int) {
	p.trailStep = step
}

// PL is the pip-denominated P/L: the favorable price distance divided by
// point size, rounded to a tenth of a pip.
func (p *Position) PL() float64 {
	return p.pl
}

func (p *Position) GrossPL() float64 {
	return p.grossPL
}

func (p *Position) SetGrossPL(v float64) {
	p.grossPL = v
	p.SetFieldValue(PositionFieldGrossPL, fields.DoubleValue(v))
	p.recalculateNet()
}

func (p *Position) Commission() float64 {
	return p.commission
}

func (p *Position) SetCommission(v float64) {
	p.commission = v
	p.SetFieldValue(PositionFieldCommission, fields.DoubleValue(v))
	p.recalculateNet()
}

func (p *Position) Interest() float64 {
	return p.interest
}

func (p *Position) SetInterest(v float64) {
	p.interest = v
	p.SetFieldValue(PositionFieldInterest, fields.DoubleValue(v))
	p.recalculateNet()
}

func (p *Position) NetPL() float64 {
	return p.netPL
}

func (p *Position) OpenTime() time.Time {
	return p.openTime
}

func (p *Position) SetOpenTime(t time.Time) {
	p.openTime = t
	p.SetFieldValue(PositionFieldOpenTime, fields.DateValue(t))
}

func (p *Position) CloseTime() time.Time {
	return p.closeTime
}

func (p *Position) SetCloseTime(t time.Time) {
	p.closeTime = t
	p.SetFieldValue(PositionFieldCloseTime, fields.DateValue(t))
}

func (p *Position) recalculateNet() {
	p.netPL = p.grossPL - p.commission + p.interest
	p.SetFieldValue(PositionFieldNetPL, fields.DoubleValue(p.netPL))
}

func (p *Position) recalculatePips() {
	if p.pointSize == 0 {
		p.pl = 0
		p.SetFieldValue(PositionFieldPL, fields.DoubleValue(0))
		return
	}

	diff := p.close - p.open
	if p.side == SideSell {
		diff = p.open - p.close
	}

	p.pl = fields.RoundTo(diff/p.pointSize, 1)
	p.SetFieldValue(PositionFieldPL, fields.DoubleValue(p.pl))
}

func (p *Position) Clone() *Position {
	cp := *p
	p.cloneFields(&cp.Entity)
	return &cp
}

// PositionSelect is the selection descriptor consumed by the history store.
const PositionSelect = "SELECT trade_id, account, symbol, side, stage, amount, open_rate, close_rate, stop, lmt, gross_pl, commission, interest, open_time, close_time FROM positions"

// HydratePosition builds a Position from one row of PositionSelect.
func HydratePosition(row RowScanner) (*Position, error) {
	var (
		tradeID    string
		account    string
		symbol     string
		side       string
		stage      string
		amount     int64
		open       float64
		close      float64
		stop       float64
		limit      float64
		grossPL    float64
		commission float64
		interest   float64
		openTime   time.Time
		closeTime  time.Time
	)

	if err := row.Scan(&tradeID, &account, &symbol, &side, &stage, &amount, &open, &close, &stop, &limit, &grossPL, &commission, &interest, &openTime, &closeTime); err != nil {
		return nil, err
	}

	p := NewPosition(tradeID, account, symbol, Side(side))
	p.SetStage(Stage(stage))
	p.SetAmount(amount)
	p.SetOpen(open)
	p.SetClose(close)
	p.SetStop(stop)
	p.SetLimit(limit)
	p.SetGrossPL(grossPL)
	p.SetCommission(commission)
	p.SetInterest(interest)
	p.SetOpenTime(openTime)
	p.SetCloseTime(closeTime)

	return p, nil
}
