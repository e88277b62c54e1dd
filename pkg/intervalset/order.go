package intervalset

import "github.com/henderiw/intervalset/pkg/interval"

// Kleene is a three-valued truth value.
type Kleene int8

const (
	Unknown Kleene = iota
	True
	False
)

func (k Kleene) String() string {
	switch k {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalText encodes k as its name.
func (k Kleene) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsSubset reports whether every value of s is in other. The empty set is a
// subset of every set.
func (s IntervalSet[B]) IsSubset(other IntervalSet[B]) bool {
	if s.IsEmpty() {
		return true
	}
	if s.size > other.size || !s.Span().IsSubset(other.Span()) {
		return false
	}
	// the intervals of s are ascending, so the index found for one interval
	// is a lower bound of the search window of the next one.
	left, right := 0, other.backIdx()
	for _, i := range s.intervals {
		l, r := other.findIntervalBetween(i.Lower(), left, right)
		if l != r || !i.IsSubset(other.intervals[l]) {
			return false
		}
		left = l
	}
	return true
}

// IsProperSubset reports whether s is a subset of other and other holds at
// least one value that is not in s.
func (s IntervalSet[B]) IsProperSubset(other IntervalSet[B]) bool {
	return s.IsSubset(other) && s.size != other.size
}

// Entail returns True when s is a subset of other, False when other is a
// subset of s, and Unknown otherwise.
func (s IntervalSet[B]) Entail(other IntervalSet[B]) Kleene {
	switch {
	case s.IsSubset(other):
		return True
	case other.IsSubset(s):
		return False
	default:
		return Unknown
	}
}

// Join returns the lattice join of s and other. The lattice is ordered by
// information: the intersection is the more constrained domain.
func (s IntervalSet[B]) Join(other IntervalSet[B]) IntervalSet[B] {
	return s.Intersection(other)
}

// Meet returns the lattice meet of s and other, their union.
func (s IntervalSet[B]) Meet(other IntervalSet[B]) IntervalSet[B] {
	return s.Union(other)
}

// Top returns the top of the lattice, the empty set.
func Top[B interval.Bound]() IntervalSet[B] {
	return Empty[B]()
}

// Bottom returns the bottom of the lattice, the whole set.
func Bottom[B interval.Bound]() IntervalSet[B] {
	return Whole[B]()
}

// ShrinkLeft returns the values of s greater than or equal to lb.
func (s IntervalSet[B]) ShrinkLeft(lb B) IntervalSet[B] {
	left, _, ok := s.findInterval(lb)
	if !ok {
		if s.IsEmpty() || lb > s.Upper() {
			return Empty[B]()
		}
		return s.Clone()
	}
	var res IntervalSet[B]
	if i := s.intervals[left]; i.Upper() >= lb {
		res.push(interval.New(lb, i.Upper()))
	}
	for _, i := range s.intervals[left+1:] {
		res.push(i)
	}
	return res
}

// ShrinkRight returns the values of s less than or equal to ub.
func (s IntervalSet[B]) ShrinkRight(ub B) IntervalSet[B] {
	_, right, ok := s.findInterval(ub)
	if !ok {
		if s.IsEmpty() || ub < s.Lower() {
			return Empty[B]()
		}
		return s.Clone()
	}
	var res IntervalSet[B]
	for _, i := range s.intervals[:right] {
		res.push(i)
	}
	if i := s.intervals[right]; i.Lower() <= ub {
		res.push(interval.New(i.Lower(), ub))
	}
	return res
}
