package reactive

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	src := NewSubject[string]()

	var got []string
	Map[string, string](src, strings.ToUpper).Subscribe(func(v string) { got = append(got, v) })
	src.Emit("go")

	assert.Equal(t, []string{"GO"}, got)
}

func TestFilter(t *testing.T) {
	src := NewSubject[int]()

	var got []int
	Filter[int](src, func(v int) bool { return v%2 == 0 }).Subscribe(func(v int) { got = append(got, v) })
	for i := 1; i <= 5; i++ {
		src.Emit(i)
	}

	assert.Equal(t, []int{2, 4}, got)
}

func TestDistinctUntilChanged(t *testing.T) {
	src := NewSubject[bool]()

	var got []bool
	DistinctUntilChanged[bool](src).Subscribe(func(v bool) { got = append(got, v) })
	for _, v := range []bool{false, false, true, true, false} {
		src.Emit(v)
	}

	assert.Equal(t, []bool{false, true, false}, got)
}

func TestCombineLatest_WaitsForBothSides(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[string]()

	var got []string
	combined := CombineLatest[int, string, string](a, b, func(n int, s string) string {
		return strings.Repeat(s, n)
	})
	sub := combined.Subscribe(func(v string) { got = append(got, v) })

	a.Emit(2)
	assert.Empty(t, got)

	b.Emit("x")
	a.Emit(3)
	b.Emit("y")

	assert.Equal(t, []string{"xx", "xxx", "yyy"}, got)

	sub.Dispose()
	assert.Equal(t, 0, a.SubscriberCount())
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestCombineLatest_WithBehaviorSubjectsEmitsOnSubscribe(t *testing.T) {
	a := NewBehaviorSubject(1)
	b := NewBehaviorSubject("z")

	var got []string
	CombineLatest[int, string, string](a, b, func(n int, s string) string {
		return strings.Repeat(s, n)
	}).Subscribe(func(v string) { got = append(got, v) })

	assert.Equal(t, []string{"z"}, got)
}

func TestMerge(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()

	var got []int
	sub := Merge[int](a, b).Subscribe(func(v int) { got = append(got, v) })
	a.Emit(1)
	b.Emit(2)
	a.Emit(3)
	sub.Dispose()
	b.Emit(4)

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDiscard(t *testing.T) {
	src := NewSubject[[]int]()

	count := 0
	Discard[[]int](src).Subscribe(func(Signal) { count++ })
	src.Emit(nil)
	src.Emit([]int{1})

	assert.Equal(t, 2, count)
}

func TestCombineLatest_ConcurrentSidesEndOnLatestPair(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a := NewBehaviorSubject(0)
		b := NewBehaviorSubject(0)

		var (
			mu   sync.Mutex
			last [2]int
		)
		CombineLatest[int, int, [2]int](a, b, func(x, y int) [2]int { return [2]int{x, y} }).
			Subscribe(func(v [2]int) {
				mu.Lock()
				last = v
				mu.Unlock()
			})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); a.Emit(1) }()
		go func() { defer wg.Done(); b.Emit(2) }()
		wg.Wait()

		require.Equal(t, [2]int{1, 2}, last, "iteration %d", i)
	}
}
