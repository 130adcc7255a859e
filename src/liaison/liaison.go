package liaison

import (
	"encoding/json"
	"fmt"
)

// Liaison is the transport boundary to the trading server. Requests are
// fire-and-forget: a request is either accepted for sending or rejected up
// front; timeouts and retries are the transport's own concern.
type Liaison interface {
	Status() SessionStatus
	SendRequest(req Request) error
}

// LiaisonError is the per-request failure surfaced by SendRequest.
type LiaisonError struct {
	Kind string
	Err  error
}

func (e *LiaisonError) Error() string {
	return fmt.Sprintf("liaison: %s request failed: %v", e.Kind, e.Err)
}

func (e *LiaisonError) Unwrap() error {
	return e.Err
}

// UpdateAction mirrors the server's incremental update verbs.
type UpdateAction string

const (
	ActionAdd    UpdateAction = "add"
	ActionChange UpdateAction = "change"
	ActionRemove UpdateAction = "remove"
)

// Update is one push envelope from the server: which collection it touches,
// the verb, and the raw payload for the applier to decode.
type Update struct {
	Collection string          `json:"collection"`
	Action     UpdateAction    `json:"action"`
	Payload    json.RawMessage `json:"payload"`
}

// Applier consumes snapshot and streaming updates, applying them to the
// per-kind collections.
type Applier interface {
	Apply(update Update) error
}
