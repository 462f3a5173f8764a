// Package observe provides a minimal observable value used to bridge core
// state changes to whatever reactive primitive the presentation layer uses.
// The core only ever publishes immutable snapshot values through it.
package observe

import "sync"

// Value holds the latest value of type T and notifies subscribers on change.
// Notifications are delivered synchronously on the goroutine calling Set, in
// subscription order; subscribers must not block.
type Value[T any] struct {
	mu    sync.Mutex
	cur   T
	valid bool
	subs  map[int]func(T)
	next  int
}

func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]func(T))}
}

// Set stores v and notifies every current subscriber.
func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	o.cur = v
	o.valid = true
	fns := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Get returns the latest value, if one has been set.
func (o *Value[T]) Get() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cur, o.valid
}

// Subscribe registers fn for future changes and returns a cancel func.
// If a value is already present, fn is invoked immediately with it.
func (o *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	cur, valid := o.cur, o.valid
	o.mu.Unlock()

	if valid {
		fn(cur)
	}
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
