package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/henderiw/intervalset/pkg/interval"
	"github.com/henderiw/intervalset/pkg/intervalset"
)

type kind int

const (
	// unary operations take one set.
	unary kind = iota
	// binary operations take two sets.
	binary
	// scalar operations take a set and a value.
	scalar
)

type operands[B interval.Bound] struct {
	a, b intervalset.IntervalSet[B]
	v    B
}

type operation[B interval.Bound] struct {
	kind kind
	help string
	fn   func(o operands[B]) (any, error)
}

var errEmptySet = errors.New("the set is empty")

func setResult[B interval.Bound](f func(o operands[B]) intervalset.IntervalSet[B]) func(o operands[B]) (any, error) {
	return func(o operands[B]) (any, error) { return f(o), nil }
}

func operations[B interval.Bound]() map[string]operation[B] {
	return map[string]operation[B]{
		"normalize": {unary, "print the canonical form of A", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a })},
		"complement": {unary, "values not in A", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Complement() })},
		"size": {unary, "number of values in A", func(o operands[B]) (any, error) { return o.a.Size(), nil }},
		"count": {unary, "number of intervals in A", func(o operands[B]) (any, error) { return o.a.IntervalCount(), nil }},
		"span": {unary, "smallest interval holding A", setResult(func(o operands[B]) intervalset.IntervalSet[B] {
			return intervalset.FromIntervals(o.a.Span())
		})},
		"lower": {unary, "smallest value of A", func(o operands[B]) (any, error) {
			if o.a.IsEmpty() {
				return nil, errEmptySet
			}
			return o.a.Lower(), nil
		}},
		"upper": {unary, "largest value of A", func(o operands[B]) (any, error) {
			if o.a.IsEmpty() {
				return nil, errEmptySet
			}
			return o.a.Upper(), nil
		}},
		"is-empty":     {unary, "whether A is empty", func(o operands[B]) (any, error) { return o.a.IsEmpty(), nil }},
		"is-singleton": {unary, "whether A holds one value", func(o operands[B]) (any, error) { return o.a.IsSingleton(), nil }},

		"union":                {binary, "A ∪ B", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Union(o.b) })},
		"intersection":         {binary, "A ∩ B", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Intersection(o.b) })},
		"difference":           {binary, "A - B", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Difference(o.b) })},
		"symmetric-difference": {binary, "values in exactly one of A and B", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.SymmetricDifference(o.b) })},
		"join":                 {binary, "lattice join, the intersection", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Join(o.b) })},
		"meet":                 {binary, "lattice meet, the union", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Meet(o.b) })},
		"add":                  {binary, "{x + y}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Add(o.b) })},
		"sub":                  {binary, "{x - y}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Sub(o.b) })},
		"mul":                  {binary, "hull based {x * y}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.Mul(o.b) })},
		"equal":                {binary, "whether A and B hold the same values", func(o operands[B]) (any, error) { return o.a.Equal(o.b), nil }},
		"overlap":              {binary, "whether A and B share a value", func(o operands[B]) (any, error) { return o.a.Overlap(o.b), nil }},
		"disjoint":             {binary, "whether A and B share no value", func(o operands[B]) (any, error) { return o.a.IsDisjoint(o.b), nil }},
		"subset":               {binary, "whether A ⊆ B", func(o operands[B]) (any, error) { return o.a.IsSubset(o.b), nil }},
		"proper-subset":        {binary, "whether A ⊂ B", func(o operands[B]) (any, error) { return o.a.IsProperSubset(o.b), nil }},
		"entail":               {binary, "three-valued entailment of B by A", func(o operands[B]) (any, error) { return o.a.Entail(o.b), nil }},

		"contains":                   {scalar, "whether v is in A", func(o operands[B]) (any, error) { return o.a.Contains(o.v), nil }},
		"union-value":                {scalar, "A ∪ {v}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.UnionValue(o.v) })},
		"intersection-value":         {scalar, "A ∩ {v}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.IntersectionValue(o.v) })},
		"difference-value":           {scalar, "A - {v}", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.DifferenceValue(o.v) })},
		"symmetric-difference-value": {scalar, "A with v toggled", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.SymmetricDifferenceValue(o.v) })},
		"add-value":                  {scalar, "A shifted by v", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.AddValue(o.v) })},
		"sub-value":                  {scalar, "A shifted by -v", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.SubValue(o.v) })},
		"mul-value":                  {scalar, "A scaled by v", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.MulValue(o.v) })},
		"shrink-left":                {scalar, "values of A >= v", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.ShrinkLeft(o.v) })},
		"shrink-right":               {scalar, "values of A <= v", setResult(func(o operands[B]) intervalset.IntervalSet[B] { return o.a.ShrinkRight(o.v) })},
	}
}

// operationNames returns the sorted names of the supported operations.
func operationNames() []string {
	ops := operations[int64]()
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func evaluate[B interval.Bound](op string, args []string) (any, error) {
	o, ok := operations[B]()[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	want := 2
	if o.kind == unary {
		want = 1
	}
	if len(args) != want {
		return nil, fmt.Errorf("operation %s takes %d operands, got %d", op, want, len(args))
	}

	var in operands[B]
	var err error
	if in.a, err = intervalset.Parse[B](args[0]); err != nil {
		return nil, err
	}
	switch o.kind {
	case binary:
		in.b, err = intervalset.Parse[B](args[1])
	case scalar:
		in.v, err = intervalset.ParseBound[B](args[1])
	}
	if err != nil {
		return nil, err
	}
	return o.fn(in)
}

// evaluateConfig evaluates op with the bound type selected by c.
func evaluateConfig(c *Config, op string, args []string) (any, error) {
	switch {
	case c.Bits == 8 && c.Unsigned:
		return evaluate[uint8](op, args)
	case c.Bits == 8:
		return evaluate[int8](op, args)
	case c.Bits == 16 && c.Unsigned:
		return evaluate[uint16](op, args)
	case c.Bits == 16:
		return evaluate[int16](op, args)
	case c.Bits == 32 && c.Unsigned:
		return evaluate[uint32](op, args)
	case c.Bits == 32:
		return evaluate[int32](op, args)
	case c.Bits == 64 && c.Unsigned:
		return evaluate[uint64](op, args)
	case c.Bits == 64:
		return evaluate[int64](op, args)
	}
	return nil, fmt.Errorf("invalid bits %d", c.Bits)
}
