// Package stream provides the single-writer, multi-reader broadcast primitives
// used for the published auth state, the session-active signal and the session
// event feed.
package stream

import "sync"

// Value holds the latest value of a level-triggered signal. Store replaces the
// current value and notifies every watcher. Watchers that have fallen behind
// lose the intermediate value rather than blocking the writer.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[int]chan T
	nextID  int
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

// Load returns the current value.
func (v *Value[T]) Load() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Store replaces the current value and broadcasts it to all watchers.
func (v *Value[T]) Store(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = val
	for _, ch := range v.subs {
		select {
		case ch <- val:
		default:
			// Replace the stale pending value so the watcher always
			// observes the most recent one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- val:
			default:
			}
		}
	}
}

// Watch registers a watcher. The returned channel receives the current value
// immediately, then every subsequent Store. The cancel function must be called
// to release the watcher.
func (v *Value[T]) Watch() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	ch := make(chan T, 1)
	ch <- v.current
	v.subs[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
	return ch, cancel
}

// Feed is an edge-triggered broadcast. Each subscriber gets a one-slot buffer;
// a subscriber that is not keeping up drops older notifications.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
}

// NewFeed creates an empty Feed.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan T)}
}

// Publish delivers val to every subscriber without blocking.
func (f *Feed[T]) Publish(val T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- val:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- val:
			default:
			}
		}
	}
}

// Subscribe registers a subscriber. The cancel function must be called to
// release it.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan T, 1)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
	return ch, cancel
}
