// Package intervalset implements sets of integers stored as a canonical list
// of closed intervals, e.g. [1..2] U [5..6] is stored as {[1..2][5..6]}.
//
// An IntervalSet is a plain value: every operation except Extend returns a
// new set and never modifies its operands. The zero value is the empty set.
// An IntervalSet is not safe for concurrent mutation through Extend; share
// snapshots or guard it with a lock.
//
// The minimum and maximum values of the bound type, as returned by
// interval.MinValue and interval.MaxValue, stand for -infinity and
// +infinity.
package intervalset

import (
	"fmt"
	"iter"
	"slices"

	"github.com/henderiw/intervalset/pkg/interval"
)

type IntervalSet[B interval.Bound] struct {
	// intervals is sorted by lower bound, holds no empty interval and no two
	// joinable intervals (overlapping or adjacent). All operations rely on
	// this property.
	intervals []interval.Interval[B]
	// size is the sum of the sizes of intervals. It is only updated by push
	// and pop.
	size uint64
}

// Empty returns the empty set.
func Empty[B interval.Bound]() IntervalSet[B] {
	return IntervalSet[B]{}
}

// New returns the set [lb..ub]. lb must not be greater than ub, use Empty
// to build an empty set. Both bounds must lie between interval.MinValue and
// interval.MaxValue; release builds clamp them into that range.
func New[B interval.Bound](lb, ub B) IntervalSet[B] {
	if debug {
		if lb > ub {
			panic("intervalset: cannot build a set from an inverted range, use Empty")
		}
		checkRange(lb)
		checkRange(ub)
	}
	return fromInterval(interval.New(lb, ub))
}

// Singleton returns the set {v}. v must lie between interval.MinValue and
// interval.MaxValue.
func Singleton[B interval.Bound](v B) IntervalSet[B] {
	if debug {
		checkRange(v)
	}
	return fromInterval(interval.Singleton(v))
}

// Whole returns the set of every value between interval.MinValue and
// interval.MaxValue.
func Whole[B interval.Bound]() IntervalSet[B] {
	return fromInterval(interval.Whole[B]())
}

// fromInterval returns the set of the values of i that lie between the
// sentinels.
func fromInterval[B interval.Bound](i interval.Interval[B]) IntervalSet[B] {
	i = clampInterval(i)
	var s IntervalSet[B]
	if !i.IsEmpty() {
		s.push(i)
	}
	return s
}

// IsEmpty reports whether s holds no value.
func (s IntervalSet[B]) IsEmpty() bool { return len(s.intervals) == 0 }

// IsSingleton reports whether s holds exactly one value.
func (s IntervalSet[B]) IsSingleton() bool { return s.size == 1 }

// Size returns the number of values in s.
func (s IntervalSet[B]) Size() uint64 { return s.size }

// IntervalCount returns the number of disjoint intervals of s.
func (s IntervalSet[B]) IntervalCount() int { return len(s.intervals) }

// Intervals returns a copy of the canonical intervals of s.
func (s IntervalSet[B]) Intervals() []interval.Interval[B] {
	return slices.Clone(s.intervals)
}

// All returns an iterator over the canonical intervals of s, in ascending
// order.
func (s IntervalSet[B]) All() iter.Seq[interval.Interval[B]] {
	return func(yield func(interval.Interval[B]) bool) {
		for _, i := range s.intervals {
			if !yield(i) {
				return
			}
		}
	}
}

// Clone returns a copy of s that shares no memory with it.
func (s IntervalSet[B]) Clone() IntervalSet[B] {
	return IntervalSet[B]{intervals: slices.Clone(s.intervals), size: s.size}
}

// Lower returns the smallest value of s. s must not be empty.
func (s IntervalSet[B]) Lower() B {
	return s.front().Lower()
}

// Upper returns the largest value of s. s must not be empty.
func (s IntervalSet[B]) Upper() B {
	return s.back().Upper()
}

// Span returns the interval from the smallest to the largest value of s.
func (s IntervalSet[B]) Span() interval.Interval[B] {
	if s.IsEmpty() {
		return interval.Empty[B]()
	}
	return s.spanSlice(0, s.backIdx())
}

// Equal reports whether s and other hold the same values. Canonical form
// makes this a comparison of the interval lists.
func (s IntervalSet[B]) Equal(other IntervalSet[B]) bool {
	return s.size == other.size && slices.Equal(s.intervals, other.intervals)
}

func (s IntervalSet[B]) front() interval.Interval[B] {
	if debug && s.IsEmpty() {
		panic("intervalset: cannot access the first interval of an empty set")
	}
	return s.intervals[0]
}

func (s IntervalSet[B]) backIdx() int {
	return len(s.intervals) - 1
}

func (s IntervalSet[B]) back() interval.Interval[B] {
	if debug && s.IsEmpty() {
		panic("intervalset: cannot access the last interval of an empty set")
	}
	return s.intervals[s.backIdx()]
}

func (s IntervalSet[B]) spanSlice(left, right int) interval.Interval[B] {
	return interval.New(s.intervals[left].Lower(), s.intervals[right].Upper())
}

// push appends i at the back. The caller must already have resolved merging:
// i is not empty and not joinable with the last interval.
func (s *IntervalSet[B]) push(i interval.Interval[B]) {
	if debug {
		if i.IsEmpty() {
			panic("intervalset: cannot push an empty interval")
		}
		checkRange(i.Lower())
		checkRange(i.Upper())
		if !s.IsEmpty() && (s.back().Lower() > i.Lower() || joinable(s.back(), i)) {
			panic("intervalset: intervals must be ordered and not joinable, use Union for a safe push")
		}
	}
	s.size += i.Size()
	s.intervals = append(s.intervals, i)
}

func (s *IntervalSet[B]) pop() (interval.Interval[B], bool) {
	if s.IsEmpty() {
		return interval.Empty[B](), false
	}
	i := s.intervals[s.backIdx()]
	s.intervals = s.intervals[:s.backIdx()]
	s.size -= i.Size()
	return i, true
}

// joinOrPush appends i at the back, merging it with the last interval when
// they are joinable. i must not start before the last interval.
func (s *IntervalSet[B]) joinOrPush(i interval.Interval[B]) {
	if s.IsEmpty() {
		s.push(i)
		return
	}
	if debug {
		if i.IsEmpty() {
			panic("intervalset: cannot push an empty interval")
		}
		if s.back().Lower() > i.Lower() {
			panic("intervalset: joinOrPush only appends at the back of the set")
		}
	}
	if joinable(s.back(), i) {
		last, _ := s.pop()
		i = last.Hull(i)
	}
	s.push(i)
}

// extendAtBack joinOrPushes every interval of ii, which must be sorted by
// lower bound and start after the last interval of s.
func (s *IntervalSet[B]) extendAtBack(ii []interval.Interval[B]) {
	for _, i := range ii {
		s.joinOrPush(i)
	}
}

// joinable reports whether second, which starts at or after first, overlaps
// or touches first. Nothing can follow an interval ending at MaxValue.
func joinable[B interval.Bound](first, second interval.Interval[B]) bool {
	if first.Upper() >= interval.MaxValue[B]() {
		return true
	}
	return first.Upper()+1 >= second.Lower()
}

func clampInterval[B interval.Bound](i interval.Interval[B]) interval.Interval[B] {
	return i.Intersection(interval.Whole[B]())
}

func checkRange[B interval.Bound](v B) {
	if !interval.InRange(v) {
		panic(fmt.Sprintf("intervalset: %d is outside %s", v, interval.Whole[B]()))
	}
}

// verify re-checks the canonical form of s. It is only meant for tests.
func (s IntervalSet[B]) verify() error {
	var size uint64
	for idx, i := range s.intervals {
		if i.IsEmpty() {
			return errInvariant("empty interval at %d", idx)
		}
		if !interval.InRange(i.Lower()) || !interval.InRange(i.Upper()) {
			return errInvariant("interval %d %s exceeds %s", idx, i, interval.Whole[B]())
		}
		if idx > 0 {
			prev := s.intervals[idx-1]
			if prev.Lower() >= i.Lower() {
				return errInvariant("interval %d %s does not start after %s", idx, i, prev)
			}
			if joinable(prev, i) {
				return errInvariant("interval %d %s is joinable with %s", idx, i, prev)
			}
		}
		size += i.Size()
	}
	if size != s.size {
		return errInvariant("cached size %d, want %d", s.size, size)
	}
	return nil
}
