package models

import (
	"time"

	"github.com/quantfx/fxterm/src/fields"
)

// Message field ordinals.
const (
	MessageFieldTime = iota
	MessageFieldText
)

const messageTimeFormat = "2006-01-02 15:04:05.000"

var messageSchema = fields.Schema{
	{Name: "Time", Type: fields.FieldTypeDate, Format: messageTimeFormat, Alignment: fields.AlignCenter, Visible: true},
	{Name: "Message", Type: fields.FieldTypeString, Alignment: fields.AlignLeft, Visible: true},
}

// Message is a timestamped server notification. The formatted timestamp is
// the business key.
type Message struct {
	Entity

	time time.Time
	text string
}

func NewMessage(ts time.Time, text string) *Message {
	m := &Message{Entity: newEntity(messageSchema)}
	m.setTime(ts)
	m.SetText(text)
	return m
}

func (m *Message) Key() string {
	return m.time.Format(messageTimeFormat)
}

func (m *Message) Time() time.Time {
	return m.time
}

func (m *Message) setTime(ts time.Time) {
	m.time = ts
	m.SetFieldValue(MessageFieldTime, fields.DateValue(ts))
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) SetText(text string) {
	m.text = text
	m.SetFieldValue(MessageFieldText, fields.StringValue(text))
}

func (m *Message) Clone() *Message {
	cp := *m
	m.cloneFields(&cp.Entity)
	return &cp
}

// MessageSelect is the selection descriptor consumed by the history store.
const MessageSelect = "SELECT received_at, body FROM messages"

// HydrateMessage builds a Message from one row of MessageSelect.
func HydrateMessage(row RowScanner) (*Message, error) {
	var (
		receivedAt time.Time
		body       string
	)

	if err := row.Scan(&receivedAt, &body); err != nil {
		return nil, err
	}

	return NewMessage(receivedAt, body), nil
}
