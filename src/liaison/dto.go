package liaison

import (
	"time"
)

// Collection names used in Update envelopes.
const (
	CollectionAccounts  = "accounts"
	CollectionOffers    = "offers"
	CollectionOrders    = "orders"
	CollectionPositions = "positions"
	CollectionMessages  = "messages"
)

type AccountDTO struct {
	Name         string  `json:"name"`
	Balance      float64 `json:"balance"`
	Equity       float64 `json:"equity"`
	UsedMargin   float64 `json:"usedMargin"`
	UsableMargin float64 `json:"usableMargin"`
	GrossPL      float64 `json:"grossPL"`
	MarginCall   string  `json:"marginCall"`
	Hedging      bool    `json:"hedging"`
}

type OfferDTO struct {
	OfferID     string    `json:"offerID"`
	Symbol      string    `json:"symbol"`
	Bid         float64   `json:"bid"`
	Ask         float64   `json:"ask"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	PointSize   float64   `json:"pointSize"`
	Digits      int       `json:"digits"`
	BidTradable bool      `json:"bidTradable"`
	AskTradable bool      `json:"askTradable"`
	QuoteTime   time.Time `json:"quoteTime"`
}

type OrderDTO struct {
	OrderID     string    `json:"orderID"`
	Account     string    `json:"account"`
	Symbol      string    `json:"symbol"`
	TradeID     string    `json:"tradeID"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Side        string    `json:"side"`
	Amount      int64     `json:"amount"`
	Rate        float64   `json:"rate"`
	Stop        float64   `json:"stop"`
	Limit       float64   `json:"limit"`
	TrailStep   int       `json:"trailStep"`
	Conditional bool      `json:"conditional"`
	OrderTime   time.Time `json:"orderTime"`
}

type PositionDTO struct {
	TradeID    string    `json:"tradeID"`
	Account    string    `json:"account"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Stage      string    `json:"stage"`
	Amount     int64     `json:"amount"`
	Open       float64   `json:"open"`
	Close      float64   `json:"close"`
	Stop       float64   `json:"stop"`
	Limit      float64   `json:"limit"`
	GrossPL    float64   `json:"grossPL"`
	Commission float64   `json:"commission"`
	Interest   float64   `json:"interest"`
	OpenTime   time.Time `json:"openTime"`
	CloseTime  time.Time `json:"closeTime"`
}

type MessageDTO struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}
