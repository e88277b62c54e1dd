package intervalset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/intervalset/pkg/interval"
)

// String returns the single interval of s, e.g. "[3..5]", or the brace
// delimited list of its intervals, e.g. "{[4..4][8..9]}" and "{}".
func (s IntervalSet[B]) String() string {
	if len(s.intervals) == 1 {
		return s.intervals[0].String()
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for _, i := range s.intervals {
		sb.WriteString(i.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Parse parses the text form produced by String. Whitespace and commas
// between intervals are ignored, and the intervals may be in any order.
func Parse[B interval.Bound](s string) (IntervalSet[B], error) {
	in := strings.TrimSpace(s)
	if strings.HasPrefix(in, "{") {
		if !strings.HasSuffix(in, "}") {
			return Empty[B](), fmt.Errorf("%w: missing closing brace in %q", ErrInvalidFormat, s)
		}
		in = in[1 : len(in)-1]
	}

	var ii []interval.Interval[B]
	for {
		in = strings.TrimLeft(in, " \t\n,")
		if in == "" {
			break
		}
		if in[0] != '[' {
			return Empty[B](), fmt.Errorf("%w: expected '[' in %q", ErrInvalidFormat, s)
		}
		end := strings.IndexByte(in, ']')
		if end == -1 {
			return Empty[B](), fmt.Errorf("%w: missing ']' in %q", ErrInvalidFormat, s)
		}
		i, err := parseInterval[B](in[1:end])
		if err != nil {
			return Empty[B](), fmt.Errorf("%w in %q", err, s)
		}
		ii = append(ii, i)
		in = in[end+1:]
	}
	return FromIntervals(ii...), nil
}

// parseInterval parses "lb..ub" or a single value.
func parseInterval[B interval.Bound](s string) (interval.Interval[B], error) {
	from, to, found := strings.Cut(s, "..")
	if !found {
		to = from
	}
	lb, err := ParseBound[B](from)
	if err != nil {
		return interval.Empty[B](), err
	}
	ub, err := ParseBound[B](to)
	if err != nil {
		return interval.Empty[B](), err
	}
	if lb > ub {
		return interval.Empty[B](), fmt.Errorf("%w: inverted range [%s]", ErrInvalidFormat, s)
	}
	return interval.New(lb, ub), nil
}

// ParseBound parses a single decimal value of type B. The value must lie
// between interval.MinValue and interval.MaxValue.
func ParseBound[B interval.Bound](s string) (B, error) {
	s = strings.TrimSpace(s)
	var v B
	if interval.Signed[B]() {
		n, err := strconv.ParseInt(s, 10, interval.BitSize[B]())
		if err != nil {
			return 0, fmt.Errorf("%w: invalid bound %q", ErrInvalidFormat, s)
		}
		v = B(n)
	} else {
		n, err := strconv.ParseUint(s, 10, interval.BitSize[B]())
		if err != nil {
			return 0, fmt.Errorf("%w: invalid bound %q", ErrInvalidFormat, s)
		}
		v = B(n)
	}
	if !interval.InRange(v) {
		return 0, fmt.Errorf("%w: bound %s is outside %s", ErrInvalidFormat, s, interval.Whole[B]())
	}
	return v, nil
}
