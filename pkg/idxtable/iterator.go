package idxtable

import (
	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
)

// Iterator walks the ids of an interval set in ascending order without
// expanding them up front.
type Iterator[T any] struct {
	intervals []interval.Interval[int64]
	// idx is the interval holding current, -1 before the first Next.
	idx     int
	current int64
	prev    int64
	table   map[int64]T
}

func newIterator[T any](ids intervalset.IntervalSet[int64], table map[int64]T) *Iterator[T] {
	return &Iterator[T]{
		intervals: ids.Intervals(),
		idx:       -1,
		table:     table,
	}
}

// Value returns the data of the current id, the zero value for a free id.
func (r *Iterator[T]) Value() T {
	return r.table[r.current]
}

func (r *Iterator[T]) ID() int64 {
	return r.current
}

func (r *Iterator[T]) Entry() Entry[T] {
	return NewEntry(r.current, r.Value())
}

func (r *Iterator[T]) Next() bool {
	if r.idx >= len(r.intervals) {
		return false
	}
	if r.idx >= 0 {
		r.prev = r.current
		if r.current < r.intervals[r.idx].Upper() {
			r.current++
			return true
		}
	}
	r.idx++
	if r.idx >= len(r.intervals) {
		return false
	}
	r.current = r.intervals[r.idx].Lower()
	return true
}

// IsConsecutive reports whether the current id directly follows the
// previous one.
func (r *Iterator[T]) IsConsecutive() bool {
	if r.idx < 0 || (r.idx == 0 && r.current == r.intervals[0].Lower()) {
		return false
	}
	return r.prev == r.current-1
}
