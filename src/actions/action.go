package actions

import (
	"sync"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/eventpubsub"
)

// Action is one user-initiated trading operation with a live eligibility
// state. canAct tracks session connectivity, enabled tracks the operation's
// own predicate; a bound UI control only fires while both hold.
type Action interface {
	Name() string
	Enabled() bool
	CanAct() bool
	EffectiveEnabled() bool
	SetCanAct(canAct bool)
	OnEffectiveEnabled(fn func(enabled bool))
	Stop()
}

const enabledTopicPrefix = "action.enabled."

// base carries the shared eligibility state. Effective-state changes are
// published on the registry bus so any number of UI triggers can bind to one
// action.
type base struct {
	name string
	bus  EventBus.Bus

	mu        sync.Mutex
	canAct    bool
	enabled   bool
	effective bool
	subs      []*eventpubsub.Subscription
}

func newBase(name string, bus EventBus.Bus) base {
	return base{name: name, bus: bus}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.enabled
}

func (b *base) CanAct() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.canAct
}

func (b *base) EffectiveEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.effective
}

func (b *base) SetCanAct(canAct bool) {
	b.mu.Lock()
	b.canAct = canAct
	b.mu.Unlock()

	b.propagate()
}

func (b *base) setEnabled(enabled bool) {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()

	b.propagate()
}

// propagate recomputes the effective state and publishes it when it flips.
func (b *base) propagate() {
	b.mu.Lock()
	next := b.canAct && b.enabled
	changed := next != b.effective
	b.effective = next
	b.mu.Unlock()

	if changed {
		b.bus.Publish(enabledTopicPrefix+b.name, next)
	}
}

// track retains a collection subscription so Stop can revoke it.
func (b *base) track(sub *eventpubsub.Subscription) {
	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
}

// Stop revokes the collection subscriptions feeding the action's
// eligibility. The action keeps whatever effective state it last had.
func (b *base) Stop() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

// OnEffectiveEnabled binds a control to the action's effective state.
// Delivery is synchronous on the goroutine that caused the flip.
func (b *base) OnEffectiveEnabled(fn func(enabled bool)) {
	if err := b.bus.Subscribe(enabledTopicPrefix+b.name, fn); err != nil {
		log.Errorf("Action.OnEffectiveEnabled: failed to subscribe to %s: %v", b.name, err)
	}
}
