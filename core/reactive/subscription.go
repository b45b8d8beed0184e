// ABOUTME: Subscription handles and a dispose bag for grouped teardown
// ABOUTME: Dispose is idempotent so handles can be released from several owners

package reactive

import "sync"

// Subscription is a handle to an active subscription.
type Subscription interface {
	// Dispose stops delivery to the subscriber. Calling it more than once is a no-op.
	Dispose()
}

type funcSubscription struct {
	once sync.Once
	fn   func()
}

// NewSubscription returns a Subscription that runs fn on the first Dispose.
func NewSubscription(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

func (s *funcSubscription) Dispose() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}

// Bag collects subscriptions so they can be disposed together.
// The zero value is ready to use.
type Bag struct {
	mu       sync.Mutex
	subs     []Subscription
	disposed bool
}

// Add registers sub with the bag. Adding to an already disposed bag disposes
// sub immediately.
func (b *Bag) Add(subs ...Subscription) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		for _, sub := range subs {
			sub.Dispose()
		}
		return
	}
	b.subs = append(b.subs, subs...)
	b.mu.Unlock()
}

// Dispose disposes every subscription in the bag in reverse order of addition.
func (b *Bag) Dispose() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.disposed = true
	b.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Dispose()
	}
}
