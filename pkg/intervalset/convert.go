package intervalset

import (
	"sort"

	"github.com/henderiw/intervalset/pkg/interval"
)

// FromIntervals returns the set of values held by any of ii. ii may be in any
// order and may overlap; empty intervals are ignored. Values outside
// [interval.MinValue..interval.MaxValue] are dropped.
func FromIntervals[B interval.Bound](ii ...interval.Interval[B]) IntervalSet[B] {
	var s IntervalSet[B]
	s.extendAtBack(sortIntervals(ii))
	return s
}

// FromPairs returns the set of values held by any of the [lower, upper]
// pairs. Pairs with lower > upper are empty and ignored, and values outside
// [interval.MinValue..interval.MaxValue] are dropped.
func FromPairs[B interval.Bound](pairs [][2]B) IntervalSet[B] {
	return FromIntervals(pairIntervals(pairs)...)
}

// Extend adds every value of ii to s.
func (s *IntervalSet[B]) Extend(ii ...interval.Interval[B]) {
	*s = s.Union(FromIntervals(ii...))
}

// ExtendPairs adds every value of the [lower, upper] pairs to s.
func (s *IntervalSet[B]) ExtendPairs(pairs [][2]B) {
	s.Extend(pairIntervals(pairs)...)
}

// Pairs returns the canonical intervals of s as [lower, upper] pairs.
func (s IntervalSet[B]) Pairs() [][2]B {
	pairs := make([][2]B, 0, len(s.intervals))
	for _, i := range s.intervals {
		pairs = append(pairs, [2]B{i.Lower(), i.Upper()})
	}
	return pairs
}

func pairIntervals[B interval.Bound](pairs [][2]B) []interval.Interval[B] {
	ii := make([]interval.Interval[B], 0, len(pairs))
	for _, p := range pairs {
		ii = append(ii, interval.New(p[0], p[1]))
	}
	return ii
}

// sortIntervals returns a copy of ii clamped to the sentinels, without empty
// intervals and sorted by lower bound.
func sortIntervals[B interval.Bound](ii []interval.Interval[B]) []interval.Interval[B] {
	out := make([]interval.Interval[B], 0, len(ii))
	for _, i := range ii {
		if i = clampInterval(i); !i.IsEmpty() {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lower() < out[j].Lower() })
	return out
}
