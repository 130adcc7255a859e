package models

// Side is the buy/sell direction of an order or position.
type Side string

const (
	SideBuy  Side = "B"
	SideSell Side = "S"
)

func (s Side) String() string {
	return string(s)
}

// Stage is the lifecycle stage of a position.
type Stage string

const (
	StageOpen   Stage = "O"
	StageClosed Stage = "C"
)

// OrderType mirrors the server's order type codes.
type OrderType string

const (
	OrderTypeStopEntry  OrderType = "SE"
	OrderTypeLimitEntry OrderType = "LE"
	OrderTypeStop       OrderType = "S"
	OrderTypeLimit      OrderType = "L"
	OrderTypeMarket     OrderType = "M"
	OrderTypeClose      OrderType = "C"
	OrderTypeRangeEntry OrderType = "RE"
)

// IsEntry reports whether the type is a conditional entry order, i.e. one
// that opens a position only when its trigger rate is reached.
func (t OrderType) IsEntry() bool {
	switch t {
	case OrderTypeStopEntry, OrderTypeLimitEntry, OrderTypeRangeEntry:
		return true
	}

	return false
}
