// ABOUTME: Lazy stream operators: map, filter, combine-latest, merge, distinct
// ABOUTME: Each subscription wires its own upstream subscriptions and tears them down on Dispose

package reactive

import "sync"

// Map transforms every value of src with fn.
func Map[T, U any](src Observable[T], fn func(T) U) Observable[U] {
	return ObservableFunc[U](func(next func(U)) Subscription {
		return src.Subscribe(func(v T) {
			next(fn(v))
		})
	})
}

// Filter forwards only the values of src for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return ObservableFunc[T](func(next func(T)) Subscription {
		return src.Subscribe(func(v T) {
			if keep(v) {
				next(v)
			}
		})
	})
}

// DistinctUntilChanged drops values equal to the previously forwarded one.
// Forwarding happens under a lock, so the last value seen downstream is the
// one compared against.
func DistinctUntilChanged[T comparable](src Observable[T]) Observable[T] {
	return ObservableFunc[T](func(next func(T)) Subscription {
		var (
			mu   sync.Mutex
			last T
			seen bool
		)
		return src.Subscribe(func(v T) {
			mu.Lock()
			defer mu.Unlock()
			if seen && last == v {
				return
			}
			last, seen = v, true
			next(v)
		})
	})
}

// CombineLatest emits combine(a, b) once both a and b have produced a value
// and again every time either of them emits. Updates from a and b are
// combined and delivered one at a time, so the last value delivered always
// reflects the latest of both sides. A handler must not emit into a or b.
func CombineLatest[A, B, R any](a Observable[A], b Observable[B], combine func(A, B) R) Observable[R] {
	return ObservableFunc[R](func(next func(R)) Subscription {
		var (
			mu         sync.Mutex
			latestA    A
			latestB    B
			hasA, hasB bool
		)

		// emit runs with mu held
		emit := func() {
			if hasA && hasB {
				next(combine(latestA, latestB))
			}
		}

		var bag Bag
		bag.Add(a.Subscribe(func(v A) {
			mu.Lock()
			defer mu.Unlock()
			latestA, hasA = v, true
			emit()
		}))
		bag.Add(b.Subscribe(func(v B) {
			mu.Lock()
			defer mu.Unlock()
			latestB, hasB = v, true
			emit()
		}))
		return &bag
	})
}

// Merge forwards the values of every source as they arrive.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return ObservableFunc[T](func(next func(T)) Subscription {
		var bag Bag
		for _, src := range sources {
			bag.Add(src.Subscribe(next))
		}
		return &bag
	})
}

// Discard maps every value of src to a Signal.
func Discard[T any](src Observable[T]) Observable[Signal] {
	return Map(src, func(T) Signal { return Signal{} })
}
