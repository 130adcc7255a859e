package eventpubsub

import (
	"github.com/quantfx/fxterm/src/models"
)

// SignalType is a bitmask so a listener can subscribe to a subset of
// mutation kinds with one registration.
type SignalType int

const (
	SignalAdd SignalType = 1 << iota
	SignalChange
	SignalRemove

	SignalAll = SignalAdd | SignalChange | SignalRemove
)

func (t SignalType) String() string {
	switch t {
	case SignalAdd:
		return "add"
	case SignalChange:
		return "change"
	case SignalRemove:
		return "remove"
	}

	return "mixed"
}

// Signal is an immutable description of one committed mutation: the kind of
// change, the structural index it happened at, and the affected entity.
type Signal struct {
	Type  SignalType
	Index int
	Item  models.Keyed
}
