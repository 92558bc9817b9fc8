package bank

import (
	"sync"
)

// Cloneable is the constraint of values that can hand out deep copies of themselves.
type Cloneable[T any] interface {
	Clone() T
}

// Guarded is a value behind a read/write lock. Readers never see the guarded value itself but an owned copy that is
// taken while holding the read lock, so no lock outlives a call.
type Guarded[T Cloneable[T]] struct {
	value T
	mutex sync.RWMutex
}

// NewGuarded creates a Guarded for the given value.
func NewGuarded[T Cloneable[T]](value T) *Guarded[T] {
	return &Guarded[T]{
		value: value,
	}
}

// Read returns an owned copy of the guarded value.
func (g *Guarded[T]) Read() T {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.value.Clone()
}

// Update replaces the guarded value with the result of the given function while holding the write lock.
func (g *Guarded[T]) Update(update func(value T) T) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.value = update(g.value)
}

// UpdateIf runs the given check while holding the write lock and only replaces the guarded value if the check passes.
func (g *Guarded[T]) UpdateIf(check func() error, update func(value T) T) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if err := check(); err != nil {
		return err
	}
	g.value = update(g.value)

	return nil
}
