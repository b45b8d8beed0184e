// Package reactive provides a small push-based stream toolkit used by the
// view-models: hot subjects, a replaying behavior subject and a handful of
// lazy operators.
//
// Delivery is synchronous. A value passed to Emit has reached every current
// subscriber, in subscription order, before Emit returns. There is no
// scheduler and no goroutine hop anywhere in the package.
//
// Example usage:
//
//	filter := reactive.NewBehaviorSubject("")
//	upper := reactive.Map[string, string](filter, strings.ToUpper)
//
//	var bag reactive.Bag
//	bag.Add(upper.Subscribe(func(s string) { fmt.Println(s) }))
//	filter.Emit("go") // prints "GO"
//	bag.Dispose()
package reactive
