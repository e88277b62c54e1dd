package intervalset

import "github.com/henderiw/intervalset/pkg/interval"

// Complement returns every value between interval.MinValue and
// interval.MaxValue that is not in s. Complement is its own inverse.
func (s IntervalSet[B]) Complement() IntervalSet[B] {
	if s.IsEmpty() {
		return Whole[B]()
	}
	minV, maxV := interval.MinValue[B](), interval.MaxValue[B]()

	var res IntervalSet[B]
	if first := s.front(); first.Lower() > minV {
		res.push(interval.New(minV, first.Lower()-1))
	}
	for idx := 1; idx < len(s.intervals); idx++ {
		prev, cur := s.intervals[idx-1], s.intervals[idx]
		res.push(interval.New(prev.Upper()+1, cur.Lower()-1))
	}
	if last := s.back(); last.Upper() < maxV {
		res.push(interval.New(last.Upper()+1, maxV))
	}
	return res
}

// Difference returns the values of s that are not in other.
func (s IntervalSet[B]) Difference(other IntervalSet[B]) IntervalSet[B] {
	return s.Intersection(other.Complement())
}

// DifferenceValue returns s without v.
func (s IntervalSet[B]) DifferenceValue(v B) IntervalSet[B] {
	return s.Difference(Singleton(v))
}

// SymmetricDifference returns the values that are in exactly one of s and
// other.
func (s IntervalSet[B]) SymmetricDifference(other IntervalSet[B]) IntervalSet[B] {
	return s.Union(other).Difference(s.Intersection(other))
}

// SymmetricDifferenceValue removes v from s if present, adds it otherwise.
func (s IntervalSet[B]) SymmetricDifferenceValue(v B) IntervalSet[B] {
	return s.SymmetricDifference(Singleton(v))
}
