package intervalset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/henderiw/intervalset/pkg/interval"
	"gopkg.in/yaml.v3"
)

// A set is encoded as a sequence of [lower, upper] pairs in ascending
// order. The empty set is encoded as null rather than as an empty sequence.
// Decoding accepts both forms for the empty set and re-canonicalizes any
// sequence of pairs, so touching or unsorted pairs decode to the right set.
// A bound outside [interval.MinValue..interval.MaxValue] is rejected with
// ErrInvalidFormat.

// MarshalJSON implements json.Marshaler.
func (s IntervalSet[B]) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(s.Pairs())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *IntervalSet[B]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Empty[B]()
		return nil
	}
	var pairs [][2]B
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("decode interval set: %w", err)
	}
	if err := checkPairs(pairs); err != nil {
		return err
	}
	*s = Empty[B]()
	s.ExtendPairs(pairs)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s IntervalSet[B]) MarshalYAML() (interface{}, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	nodes := make([]*yaml.Node, 0, len(s.intervals))
	for _, p := range s.Pairs() {
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		if err := n.Encode(p); err != nil {
			return nil, err
		}
		n.Style = yaml.FlowStyle
		nodes = append(nodes, n)
	}
	return &yaml.Node{Kind: yaml.SequenceNode, Content: nodes}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *IntervalSet[B]) UnmarshalYAML(value *yaml.Node) error {
	*s = Empty[B]()
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	var pairs [][2]B
	if err := value.Decode(&pairs); err != nil {
		return fmt.Errorf("decode interval set: %w", err)
	}
	if err := checkPairs(pairs); err != nil {
		return err
	}
	s.ExtendPairs(pairs)
	return nil
}

func checkPairs[B interval.Bound](pairs [][2]B) error {
	for _, p := range pairs {
		for _, v := range p {
			if !interval.InRange(v) {
				return fmt.Errorf("decode interval set: %w: bound %d is outside %s", ErrInvalidFormat, v, interval.Whole[B]())
			}
		}
	}
	return nil
}
