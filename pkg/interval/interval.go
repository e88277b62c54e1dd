package interval

import "fmt"

// Interval is a closed range [lb..ub] of B. An interval with lb > ub is
// empty.
//
// Note that the zero Interval is the singleton 0, use Empty to get an empty
// interval.
type Interval[B Bound] struct {
	lb B
	ub B
}

// New returns [lb..ub]. If lb > ub the interval is empty.
func New[B Bound](lb, ub B) Interval[B] {
	if lb > ub {
		return Empty[B]()
	}
	return Interval[B]{lb: lb, ub: ub}
}

// Singleton returns [v..v].
func Singleton[B Bound](v B) Interval[B] {
	return Interval[B]{lb: v, ub: v}
}

// Whole returns [MinValue..MaxValue].
func Whole[B Bound]() Interval[B] {
	return Interval[B]{lb: MinValue[B](), ub: MaxValue[B]()}
}

// Empty returns the canonical empty interval.
func Empty[B Bound]() Interval[B] {
	return Interval[B]{lb: 1, ub: 0}
}

// Lower returns the lower bound of r. It is meaningless for an empty r.
func (r Interval[B]) Lower() B { return r.lb }

// Upper returns the upper bound of r. It is meaningless for an empty r.
func (r Interval[B]) Upper() B { return r.ub }

func (r Interval[B]) IsEmpty() bool { return r.lb > r.ub }

func (r Interval[B]) IsSingleton() bool { return r.lb == r.ub }

// Size returns the number of values in r.
func (r Interval[B]) Size() uint64 {
	if r.IsEmpty() {
		return 0
	}
	return distance(r.lb, r.ub) + 1
}

// Contains reports whether v lies in r.
func (r Interval[B]) Contains(v B) bool {
	return r.lb <= v && v <= r.ub
}

// Overlap reports whether r and other share at least one value.
func (r Interval[B]) Overlap(other Interval[B]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.lb <= other.ub && other.lb <= r.ub
}

// Intersection returns the values held by both r and other.
func (r Interval[B]) Intersection(other Interval[B]) Interval[B] {
	return New(max(r.lb, other.lb), min(r.ub, other.ub))
}

// Hull returns the smallest interval containing both r and other.
func (r Interval[B]) Hull(other Interval[B]) Interval[B] {
	switch {
	case r.IsEmpty():
		return other
	case other.IsEmpty():
		return r
	}
	return Interval[B]{lb: min(r.lb, other.lb), ub: max(r.ub, other.ub)}
}

// IsSubset reports whether every value of r is in other. The empty interval
// is a subset of every interval.
func (r Interval[B]) IsSubset(other Interval[B]) bool {
	if r.IsEmpty() {
		return true
	}
	if other.IsEmpty() {
		return false
	}
	return other.lb <= r.lb && r.ub <= other.ub
}

// Equal reports whether r and other hold the same values.
func (r Interval[B]) Equal(other Interval[B]) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.IsEmpty() == other.IsEmpty()
	}
	return r == other
}

// String returns "[lb..ub]", or "{}" for an empty interval.
func (r Interval[B]) String() string {
	if r.IsEmpty() {
		return "{}"
	}
	return fmt.Sprintf("[%d..%d]", r.lb, r.ub)
}
