package eventpubsub

import (
	"fmt"
	"sync"

	"github.com/quantfx/fxterm/src/models"
)

// TotalFunc recomputes the synthetic aggregate row from all members.
type TotalFunc func(items []models.Keyed) models.Keyed

// SignalVector is an ordered, keyed collection of entities of one kind and
// the single source of truth for that kind. Every committed mutation is
// announced through the embedded Signaler.
//
// Mutation methods are serialized internally, but the collection expects a
// single logical mutator (the session update path): listeners observe one
// total order of signals consistent with commit order. Delivery happens on
// the mutating goroutine once the state change is committed.
type SignalVector struct {
	Signaler

	mu      sync.Mutex
	name    string
	items   []models.Keyed
	index   map[string]int
	totalFn TotalFunc
	total   models.Keyed
}

func NewSignalVector(name string) *SignalVector {
	v := &SignalVector{
		name:  name,
		index: make(map[string]int),
	}
	v.Signaler.name = name

	return v
}

func (v *SignalVector) Name() string {
	return v.name
}

// EnableTotalRow turns on the synthetic aggregate row. Consumers must treat
// the last row index as the total, not as a member.
func (v *SignalVector) EnableTotalRow(fn TotalFunc) {
	v.mu.Lock()
	v.totalFn = fn
	v.total = fn(v.items)
	v.mu.Unlock()
}

func (v *SignalVector) IsTotalRowEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.totalFn != nil
}

// Add appends the entity, assigns it the next structural index and emits an
// add signal. The business key must be unique within the collection.
func (v *SignalVector) Add(item models.Keyed) error {
	v.mu.Lock()

	key := item.Key()
	if _, ok := v.index[key]; ok {
		v.mu.Unlock()
		return fmt.Errorf("SignalVector.Add: %s already contains key %q", v.name, key)
	}

	idx := len(v.items)
	v.items = append(v.items, item)
	v.index[key] = idx
	v.refreshTotal()
	v.mu.Unlock()

	v.emit(Signal{Type: SignalAdd, Index: idx, Item: item})
	return nil
}

// Update applies mutate to the entity stored under key and, once the
// mutation has returned (i.e. is committed), emits a change signal.
func (v *SignalVector) Update(key string, mutate func(item models.Keyed)) error {
	v.mu.Lock()

	idx, ok := v.index[key]
	if !ok {
		v.mu.Unlock()
		return fmt.Errorf("SignalVector.Update: %s has no key %q", v.name, key)
	}

	item := v.items[idx]
	mutate(item)
	v.refreshTotal()
	v.mu.Unlock()

	v.emit(Signal{Type: SignalChange, Index: idx, Item: item})
	return nil
}

// Remove deletes the entity stored under key and emits a remove signal
// carrying the removed entity and its former index.
func (v *SignalVector) Remove(key string) error {
	v.mu.Lock()

	idx, ok := v.index[key]
	if !ok {
		v.mu.Unlock()
		return fmt.Errorf("SignalVector.Remove: %s has no key %q", v.name, key)
	}

	item := v.items[idx]
	v.items = append(v.items[:idx], v.items[idx+1:]...)
	delete(v.index, key)
	for i := idx; i < len(v.items); i++ {
		v.index[v.items[i].Key()] = i
	}
	v.refreshTotal()
	v.mu.Unlock()

	v.emit(Signal{Type: SignalRemove, Index: idx, Item: item})
	return nil
}

// Get returns the entity at the structural index, nil when out of range.
// With the total row enabled, the last index resolves to the aggregate.
func (v *SignalVector) Get(idx int) models.Keyed {
	v.mu.Lock()
	defer v.mu.Unlock()

	if idx >= 0 && idx < len(v.items) {
		return v.items[idx]
	}

	if v.totalFn != nil && idx == len(v.items) {
		return v.total
	}

	return nil
}

func (v *SignalVector) GetByKey(key string) models.Keyed {
	v.mu.Lock()
	defer v.mu.Unlock()

	if idx, ok := v.index[key]; ok {
		return v.items[idx]
	}

	return nil
}

func (v *SignalVector) Contains(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok := v.index[key]
	return ok
}

// Size counts member rows plus the total row when enabled.
func (v *SignalVector) Size() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := len(v.items)
	if v.totalFn != nil {
		n++
	}

	return n
}

// Len counts member rows only.
func (v *SignalVector) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.items)
}

// Each visits the member rows in structural order. Return false to stop.
// The total row is not visited.
func (v *SignalVector) Each(fn func(idx int, item models.Keyed) bool) {
	v.mu.Lock()
	snapshot := make([]models.Keyed, len(v.items))
	copy(snapshot, v.items)
	v.mu.Unlock()

	for i, item := range snapshot {
		if !fn(i, item) {
			return
		}
	}
}

func (v *SignalVector) refreshTotal() {
	if v.totalFn != nil {
		v.total = v.totalFn(v.items)
	}
}
