package interval

// Arithmetic saturates: a result below MinValue or above MaxValue is
// replaced by the sentinel, so the operators stay monotone and never wrap.

// Add returns {x + y | x in r, y in other}.
func (r Interval[B]) Add(other Interval[B]) Interval[B] {
	if r.IsEmpty() || other.IsEmpty() {
		return Empty[B]()
	}
	return New(addSat(r.lb, other.lb), addSat(r.ub, other.ub))
}

// Sub returns {x - y | x in r, y in other}.
func (r Interval[B]) Sub(other Interval[B]) Interval[B] {
	if r.IsEmpty() || other.IsEmpty() {
		return Empty[B]()
	}
	return New(subSat(r.lb, other.ub), subSat(r.ub, other.lb))
}

// Mul returns the convex hull of {x * y | x in r, y in other}. The result
// may hold values that are not the product of any x and y, e.g.
// [2..3]*[2..2] = [4..6].
func (r Interval[B]) Mul(other Interval[B]) Interval[B] {
	if r.IsEmpty() || other.IsEmpty() {
		return Empty[B]()
	}
	p1, p2 := mulSat(r.lb, other.lb), mulSat(r.lb, other.ub)
	p3, p4 := mulSat(r.ub, other.lb), mulSat(r.ub, other.ub)
	return New(min(p1, p2, p3, p4), max(p1, p2, p3, p4))
}

// AddValue returns r shifted by v.
func (r Interval[B]) AddValue(v B) Interval[B] {
	if r.IsEmpty() {
		return r
	}
	return New(addSat(r.lb, v), addSat(r.ub, v))
}

// SubValue returns r shifted by -v.
func (r Interval[B]) SubValue(v B) Interval[B] {
	if r.IsEmpty() {
		return r
	}
	return New(subSat(r.lb, v), subSat(r.ub, v))
}

// MulValue returns the hull of r scaled by v.
func (r Interval[B]) MulValue(v B) Interval[B] {
	return r.Mul(Singleton(v))
}

// addSat returns a+b clamped to [MinValue..MaxValue].
func addSat[B Bound](a, b B) B {
	a, b = clamp(a), clamp(b)
	r := a + b
	switch {
	case b > 0 && r < a:
		return MaxValue[B]()
	case b < 0 && r > a:
		return MinValue[B]()
	}
	return clamp(r)
}

// subSat returns a-b clamped to [MinValue..MaxValue].
func subSat[B Bound](a, b B) B {
	a, b = clamp(a), clamp(b)
	r := a - b
	switch {
	case b > 0 && r > a:
		return MinValue[B]()
	case b < 0 && r < a:
		return MaxValue[B]()
	}
	return clamp(r)
}

// mulSat returns a*b clamped to [MinValue..MaxValue].
func mulSat[B Bound](a, b B) B {
	a, b = clamp(a), clamp(b)
	if a == 0 || b == 0 {
		return 0
	}
	r := a * b
	if r/b != a {
		if (a < 0) != (b < 0) {
			return MinValue[B]()
		}
		return MaxValue[B]()
	}
	return clamp(r)
}
