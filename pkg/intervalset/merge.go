package intervalset

import "github.com/henderiw/intervalset/pkg/interval"

// The binary operations below walk both canonical interval lists in lock
// step. a and b are the remaining (not yet consumed) intervals of each side;
// a[0] and b[0] are the current ones.

// advanceLower consumes the current interval with the smallest lower bound.
func advanceLower[B interval.Bound](a, b []interval.Interval[B]) (interval.Interval[B], []interval.Interval[B], []interval.Interval[B]) {
	if a[0].Lower() < b[0].Lower() {
		return a[0], a[1:], b
	}
	return b[0], a, b[1:]
}

// advanceLowestUpper drops the current interval with the smallest upper bound.
func advanceLowestUpper[B interval.Bound](a, b []interval.Interval[B]) ([]interval.Interval[B], []interval.Interval[B]) {
	if a[0].Upper() < b[0].Upper() {
		return a[1:], b
	}
	return a, b[1:]
}

// advanceToFirstOverlapping drops intervals until a[0] and b[0] overlap. It
// returns false when one side runs out first.
func advanceToFirstOverlapping[B interval.Bound](a, b []interval.Interval[B]) ([]interval.Interval[B], []interval.Interval[B], bool) {
	for len(a) > 0 && len(b) > 0 {
		if a[0].Overlap(b[0]) {
			return a, b, true
		}
		_, a, b = advanceLower(a, b)
	}
	return a, b, false
}

// Union returns the set of values in s or in other.
func (s IntervalSet[B]) Union(other IntervalSet[B]) IntervalSet[B] {
	a, b := s.intervals, other.intervals
	var res IntervalSet[B]
	var lower interval.Interval[B]
	for len(a) > 0 && len(b) > 0 {
		lower, a, b = advanceLower(a, b)
		res.joinOrPush(lower)
	}
	// at most one side is left, every interval in it starts after the last
	// interval of res.
	res.extendAtBack(a)
	res.extendAtBack(b)
	return res
}

// UnionValue returns s with v added.
func (s IntervalSet[B]) UnionValue(v B) IntervalSet[B] {
	return s.Union(Singleton(v))
}

// Intersection returns the set of values in both s and other.
func (s IntervalSet[B]) Intersection(other IntervalSet[B]) IntervalSet[B] {
	a, b := s.intervals, other.intervals
	var res IntervalSet[B]
	var ok bool
	for {
		if a, b, ok = advanceToFirstOverlapping(a, b); !ok {
			return res
		}
		// two consecutive overlaps are always separated by a gap of one of
		// the operands, so they never need a join.
		res.push(a[0].Intersection(b[0]))
		a, b = advanceLowestUpper(a, b)
	}
}

// IntersectionValue returns {v} if v is in s, the empty set otherwise.
func (s IntervalSet[B]) IntersectionValue(v B) IntervalSet[B] {
	return s.Intersection(Singleton(v))
}

// Overlap reports whether s and other share at least one value.
func (s IntervalSet[B]) Overlap(other IntervalSet[B]) bool {
	_, _, ok := advanceToFirstOverlapping(s.intervals, other.intervals)
	return ok
}

// OverlapValue reports whether v is in s. It is the same as Contains.
func (s IntervalSet[B]) OverlapValue(v B) bool {
	return s.Contains(v)
}

// OverlapOptional reports whether v is set and in s. A nil v never
// overlaps.
func (s IntervalSet[B]) OverlapOptional(v *B) bool {
	return v != nil && s.OverlapValue(*v)
}

// IsDisjoint reports whether s and other share no value.
func (s IntervalSet[B]) IsDisjoint(other IntervalSet[B]) bool {
	return !s.Overlap(other)
}

// ValueOverlaps reports whether v is in s. It mirrors OverlapValue for
// callers holding the scalar.
func ValueOverlaps[B interval.Bound](v B, s IntervalSet[B]) bool {
	return s.OverlapValue(v)
}
