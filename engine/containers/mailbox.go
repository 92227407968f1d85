package containers

import "sync/atomic"

/**
 * @brief A single-slot mailbox with latest-wins semantics. Any number of
 * goroutines may Post; one consumer Takes. A Post that lands before the
 * previous value was taken replaces it, so the mailbox never holds more than
 * one value and never blocks either side.
 */
type Mailbox[T any] struct {
	slot atomic.Pointer[T]
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{}
}

// Post stores v, replacing any value not yet taken.
func (m *Mailbox[T]) Post(v T) {
	m.slot.Store(&v)
}

// Take removes and returns the pending value, if there is one.
func (m *Mailbox[T]) Take() (T, bool) {
	p := m.slot.Swap(nil)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Pending reports whether a value is waiting to be taken.
func (m *Mailbox[T]) Pending() bool {
	return m.slot.Load() != nil
}
