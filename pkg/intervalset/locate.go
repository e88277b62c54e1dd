package intervalset

// findInterval returns the indexes of the intervals around v. If v lies in
// an interval, left == right is its index. If v falls in a gap, left and
// right are the intervals just below and just above the gap. ok is false
// when v is outside the span of s.
func (s IntervalSet[B]) findInterval(v B) (left, right int, ok bool) {
	if !s.Span().Contains(v) {
		return 0, 0, false
	}
	left, right = s.findIntervalBetween(v, 0, s.backIdx())
	return left, right, true
}

// findIntervalBetween is the binary search of findInterval restricted to
// the window [left, right]. v must lie in the span of that window.
func (s IntervalSet[B]) findIntervalBetween(v B, left, right int) (int, int) {
	if debug {
		if left > right || right >= len(s.intervals) {
			panic("intervalset: invalid search window")
		}
		if !s.spanSlice(left, right).Contains(v) {
			panic("intervalset: value outside of the search window")
		}
	}
	for left <= right {
		mid := left + (right-left)/2
		switch i := s.intervals[mid]; {
		case i.Lower() > v:
			right = mid - 1
		case i.Upper() < v:
			left = mid + 1
		default:
			return mid, mid
		}
	}
	// the search crossed over: right is the interval below the gap and left
	// the one above it.
	return right, left
}

// Contains reports whether v is in s.
func (s IntervalSet[B]) Contains(v B) bool {
	left, right, ok := s.findInterval(v)
	return ok && left == right
}
