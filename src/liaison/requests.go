package liaison

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Request is one trade instruction handed to the Liaison for transport.
type Request interface {
	RequestID() uuid.UUID
	Kind() string
}

var validate = validator.New()

// ValidateRequest checks the request's field constraints before it is handed
// to the transport.
func ValidateRequest(req Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("ValidateRequest: %s request is invalid: %w", req.Kind(), err)
	}

	return nil
}

// RequestHeader carries the id shared by every request kind.
type RequestHeader struct {
	ID uuid.UUID `json:"requestID" validate:"required"`
}

func NewRequestHeader() RequestHeader {
	return RequestHeader{ID: uuid.New()}
}

func (h RequestHeader) RequestID() uuid.UUID {
	return h.ID
}

type ChangePasswordRequest struct {
	RequestHeader
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (r ChangePasswordRequest) Kind() string { return "ChangePassword" }

type ClosePositionRequest struct {
	RequestHeader
	Ticket   string `json:"ticket" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
	Comment  string `json:"comment"`
	AtMarket bool   `json:"atMarket"`
}

func (r ClosePositionRequest) Kind() string { return "ClosePosition" }

type CreateEntryOrderRequest struct {
	RequestHeader
	Symbol  string  `json:"symbol" validate:"required"`
	Account string  `json:"account" validate:"required"`
	Side    string  `json:"side" validate:"oneof=B S"`
	Rate    float64 `json:"rate" validate:"gt=0"`
	Amount  int64   `json:"amount" validate:"gt=0"`
	Comment string  `json:"comment"`
}

func (r CreateEntryOrderRequest) Kind() string { return "CreateEntryOrder" }

type CreateRequestForQuoteRequest struct {
	RequestHeader
	Account string `json:"account" validate:"required"`
	Symbol  string `json:"symbol" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
}

func (r CreateRequestForQuoteRequest) Kind() string { return "CreateRequestForQuote" }

type RemoveEntryOrderRequest struct {
	RequestHeader
	OrderID string `json:"orderID" validate:"required"`
}

func (r RemoveEntryOrderRequest) Kind() string { return "RemoveEntryOrder" }

// SetOrResetStopLimitRequest updates or clears the stop/limit rates of a
// position or working order. Nil means leave untouched, zero means reset.
type SetOrResetStopLimitRequest struct {
	RequestHeader
	Ticket       string   `json:"ticket" validate:"required"`
	Stop         *float64 `json:"stop,omitempty"`
	Limit        *float64 `json:"limit,omitempty"`
	TrailingStop int      `json:"trailingStop" validate:"gte=0"`
}

func (r SetOrResetStopLimitRequest) Kind() string { return "SetOrResetStopLimit" }

type UpdateEntryOrderRequest struct {
	RequestHeader
	OrderID string  `json:"orderID" validate:"required"`
	Rate    float64 `json:"rate" validate:"gt=0"`
	Amount  int64   `json:"amount" validate:"gt=0"`
	Comment string  `json:"comment"`
}

func (r UpdateEntryOrderRequest) Kind() string { return "UpdateEntryOrder" }
