package intervalset

import "github.com/henderiw/intervalset/pkg/interval"

// forAllPairs unions f(i, j) over every pair of intervals of s and other.
// The cost is quadratic in the interval counts, which are expected to stay
// small.
func (s IntervalSet[B]) forAllPairs(other IntervalSet[B], f func(i, j interval.Interval[B]) interval.Interval[B]) IntervalSet[B] {
	var res IntervalSet[B]
	for _, i := range s.intervals {
		for _, j := range other.intervals {
			res = res.Union(fromInterval(f(i, j)))
		}
	}
	return res
}

// monotoneMap applies f to every interval, from the back when reverse is
// set. f must be monotone in that order: saturation may squeeze intervals
// together at the sentinels, so the results are joined, never just pushed.
func (s IntervalSet[B]) monotoneMap(reverse bool, f func(i interval.Interval[B]) interval.Interval[B]) IntervalSet[B] {
	res := IntervalSet[B]{intervals: make([]interval.Interval[B], 0, len(s.intervals))}
	for n := range s.intervals {
		idx := n
		if reverse {
			idx = s.backIdx() - n
		}
		res.joinOrPush(f(s.intervals[idx]))
	}
	return res
}

// Add returns {x + y | x in s, y in other}.
func (s IntervalSet[B]) Add(other IntervalSet[B]) IntervalSet[B] {
	return s.forAllPairs(other, interval.Interval[B].Add)
}

// Sub returns {x - y | x in s, y in other}.
func (s IntervalSet[B]) Sub(other IntervalSet[B]) IntervalSet[B] {
	return s.forAllPairs(other, interval.Interval[B].Sub)
}

// Mul returns a superset of {x * y | x in s, y in other}: each pair of
// intervals contributes the hull of its products.
func (s IntervalSet[B]) Mul(other IntervalSet[B]) IntervalSet[B] {
	return s.forAllPairs(other, interval.Interval[B].Mul)
}

// AddValue returns s shifted by v. Values pushed past a sentinel saturate,
// so the size is kept unless the shift reaches interval.MinValue or
// interval.MaxValue.
func (s IntervalSet[B]) AddValue(v B) IntervalSet[B] {
	return s.monotoneMap(false, func(i interval.Interval[B]) interval.Interval[B] { return i.AddValue(v) })
}

// SubValue returns s shifted by -v.
func (s IntervalSet[B]) SubValue(v B) IntervalSet[B] {
	return s.monotoneMap(false, func(i interval.Interval[B]) interval.Interval[B] { return i.SubValue(v) })
}

// MulValue returns s with every interval scaled by v.
func (s IntervalSet[B]) MulValue(v B) IntervalSet[B] {
	switch {
	case s.IsEmpty():
		return Empty[B]()
	case v == 0:
		return Singleton[B](0)
	case v == 1:
		return s.Clone()
	}
	// scaling by a negative value reverses the order of the intervals.
	return s.monotoneMap(v < 0, func(i interval.Interval[B]) interval.Interval[B] { return i.MulValue(v) })
}
