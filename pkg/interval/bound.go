package interval

import "unsafe"

// Bound is the set of fixed-width integer types an interval can be built on.
type Bound interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BitSize returns the width of B in bits.
func BitSize[B Bound]() int {
	var zero B
	return int(unsafe.Sizeof(zero)) * 8
}

// Signed reports whether B is a signed integer type.
func Signed[B Bound]() bool {
	var zero B
	return ^zero < 0
}

// MaxValue returns the largest value an interval over B may hold. It stands
// for +infinity.
//
// For unsigned types this is the type maximum minus one, for signed types the
// type maximum, so the whole range always holds 2^W-1 values and its size
// fits in a uint64.
func MaxValue[B Bound]() B {
	if Signed[B]() {
		return B(uint64(1)<<(BitSize[B]()-1) - 1)
	}
	return ^B(0) - 1
}

// MinValue returns the smallest value an interval over B may hold. It stands
// for -infinity.
func MinValue[B Bound]() B {
	if Signed[B]() {
		return -MaxValue[B]()
	}
	return 0
}

// distance returns ub-lb computed in 64 bit two's complement, which is exact
// for any lb <= ub of a type of at most 64 bits.
func distance[B Bound](lb, ub B) uint64 {
	return uint64(ub) - uint64(lb)
}

// InRange reports whether v lies between MinValue and MaxValue.
func InRange[B Bound](v B) bool {
	return MinValue[B]() <= v && v <= MaxValue[B]()
}

func clamp[B Bound](v B) B {
	return min(max(v, MinValue[B]()), MaxValue[B]())
}
