// ABOUTME: Hot multicast subjects with synchronous, ordered delivery
// ABOUTME: BehaviorSubject adds a current value that is replayed to new subscribers

package reactive

import (
	"sync"
	"sync/atomic"
)

// Signal is the payload of streams that carry no data, such as a load trigger.
type Signal = struct{}

// Observable is a source of values that can be subscribed to.
type Observable[T any] interface {
	Subscribe(fn func(T)) Subscription
}

// Sink accepts values pushed by a producer.
type Sink[T any] interface {
	Emit(value T)
}

// ObservableFunc adapts a subscribe function to the Observable interface.
type ObservableFunc[T any] func(fn func(T)) Subscription

// Subscribe calls f.
func (f ObservableFunc[T]) Subscribe(fn func(T)) Subscription {
	return f(fn)
}

type observer[T any] struct {
	fn     func(T)
	active atomic.Bool
}

// Subject is a hot observable that is also a Sink. Values are delivered to
// the subscribers registered at the time of the Emit call, in subscription
// order. Subscribe, Emit and Dispose are safe for concurrent use; callers
// that emit from several goroutines must serialize those calls themselves
// if they care about ordering.
type Subject[T any] struct {
	mu        sync.RWMutex
	observers []*observer[T]
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers fn for future emissions.
func (s *Subject[T]) Subscribe(fn func(T)) Subscription {
	o := &observer[T]{fn: fn}
	o.active.Store(true)

	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	return NewSubscription(func() {
		o.active.Store(false)
		s.remove(o)
	})
}

// Emit delivers value to every active subscriber before returning.
func (s *Subject[T]) Emit(value T) {
	s.mu.RLock()
	snapshot := make([]*observer[T], len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	for _, o := range snapshot {
		// A subscriber disposed by an earlier handler in this loop must not
		// see the value.
		if o.active.Load() {
			o.fn(value)
		}
	}
}

// SubscriberCount reports how many subscriptions are currently active.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

func (s *Subject[T]) remove(target *observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == target {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// BehaviorSubject is a Subject that holds a current value. Subscribers
// receive the current value immediately on Subscribe, then every later
// emission.
//
// Emit and the replay in Subscribe are serialized, so a subscriber racing
// an Emit sees either the old value followed by the new one or the new value
// alone, never the old value last. A handler must not Emit to, or Subscribe
// to, the subject that is delivering to it.
type BehaviorSubject[T any] struct {
	subject Subject[T]

	// delivery is held while a value is fanned out or replayed
	delivery sync.Mutex

	mu    sync.RWMutex
	value T
}

// NewBehaviorSubject creates a behavior subject seeded with initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// Value returns the current value. It is safe to call from a handler.
func (b *BehaviorSubject[T]) Value() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Emit replaces the current value and delivers it to subscribers.
func (b *BehaviorSubject[T]) Emit(value T) {
	b.delivery.Lock()
	defer b.delivery.Unlock()

	b.mu.Lock()
	b.value = value
	b.mu.Unlock()

	b.subject.Emit(value)
}

// Subscribe registers fn and immediately replays the current value to it.
func (b *BehaviorSubject[T]) Subscribe(fn func(T)) Subscription {
	b.delivery.Lock()
	defer b.delivery.Unlock()

	sub := b.subject.Subscribe(fn)
	fn(b.Value())
	return sub
}

// SubscriberCount reports how many subscriptions are currently active.
func (b *BehaviorSubject[T]) SubscriberCount() int {
	return b.subject.SubscriberCount()
}
