// Package viewmodel holds the screen controllers. Each controller owns one
// state snapshot that consumers read with State and follow with Subscribe.
package viewmodel

import "sync"

type subscription[T any] struct {
	id int
	fn func(T)
}

// Observable stores a snapshot and notifies listeners when it changes.
// Listeners run synchronously in subscription order on the goroutine that
// made the change. Snapshots are values; slices inside them are never
// modified after publication.
type Observable[T any] struct {
	mu        sync.Mutex
	state     T
	nextID    int
	listeners []subscription[T]
}

func newObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{state: initial}
}

// State returns the current snapshot.
func (o *Observable[T]) State() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.listeners = append(o.listeners, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, l := range o.listeners {
				if l.id == id {
					o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// update replaces the snapshot with fn(current) and publishes it.
func (o *Observable[T]) update(fn func(T) T) T {
	o.mu.Lock()
	next := fn(o.state)
	o.state = next
	listeners := append([]subscription[T](nil), o.listeners...)
	o.mu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
	return next
}
