// Package weights maintains named percentage weights that always sum to a
// fixed total, redistributing the remainder when one of them is adjusted.
package weights

import (
	"fmt"
	"math"
)

// Total is the fixed sum every WeightSet holds.
const Total = 100

// Weight is a single named percentage.
type Weight struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// WeightSet is an ordered set of weights. The order is fixed at construction
// and decides which key absorbs rounding error.
type WeightSet []Weight

// NewWeightSet validates and copies the given weights.
func NewWeightSet(ws ...Weight) (WeightSet, error) {
	if len(ws) < 2 {
		return nil, fmt.Errorf("weight set needs at least 2 keys, got %d", len(ws))
	}

	seen := make(map[string]bool, len(ws))
	sum := 0
	for _, w := range ws {
		if w.Key == "" {
			return nil, fmt.Errorf("weight key is empty")
		}
		if seen[w.Key] {
			return nil, fmt.Errorf("duplicate weight key: %s", w.Key)
		}
		if w.Value < 0 || w.Value > Total {
			return nil, fmt.Errorf("weight %s out of range: %d", w.Key, w.Value)
		}
		seen[w.Key] = true
		sum += w.Value
	}
	if sum != Total {
		return nil, fmt.Errorf("weights sum to %d, must sum to %d", sum, Total)
	}

	return WeightSet(ws).Clone(), nil
}

// Clone returns an independent copy.
func (s WeightSet) Clone() WeightSet {
	out := make(WeightSet, len(s))
	copy(out, s)
	return out
}

// Keys returns the keys in iteration order.
func (s WeightSet) Keys() []string {
	keys := make([]string, len(s))
	for i, w := range s {
		keys[i] = w.Key
	}
	return keys
}

// Value returns the weight for key and whether it exists.
func (s WeightSet) Value(key string) (int, bool) {
	i := s.index(key)
	if i < 0 {
		return 0, false
	}
	return s[i].Value, true
}

// Sum returns the total of all weights.
func (s WeightSet) Sum() int {
	sum := 0
	for _, w := range s {
		sum += w.Value
	}
	return sum
}

// Fractions returns each weight as a share of Total, the form the similarity
// search sends to the backend.
func (s WeightSet) Fractions() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, w := range s {
		out[w.Key] = float64(w.Value) / Total
	}
	return out
}

func (s WeightSet) index(key string) int {
	for i, w := range s {
		if w.Key == key {
			return i
		}
	}
	return -1
}

// Reset returns a fresh copy of defaults.
func Reset(defaults WeightSet) WeightSet {
	return defaults.Clone()
}

// SetWeight returns a new WeightSet with key set to newValue and the other
// weights rebalanced so the total stays at Total. Out-of-range values are
// clamped; an unknown key yields an unchanged copy.
func SetWeight(current WeightSet, key string, newValue int) WeightSet {
	next := current.Clone()
	idx := next.index(key)
	if idx < 0 {
		return next
	}

	newValue = clamp(newValue, 0, Total)

	others := make([]int, 0, len(next)-1)
	otherTotal := 0
	for i, w := range next {
		if i == idx {
			continue
		}
		others = append(others, i)
		otherTotal += w.Value
	}

	next[idx].Value = newValue
	if newValue+otherTotal == Total || len(others) == 0 {
		return next
	}

	remaining := Total - newValue

	if otherTotal > 0 {
		for _, i := range others {
			share := float64(current[i].Value) / float64(otherTotal)
			next[i].Value = int(math.Round(share * float64(remaining)))
		}
	} else {
		base := remaining / len(others)
		extra := remaining % len(others)
		for n, i := range others {
			next[i].Value = base
			if n < extra {
				next[i].Value++
			}
		}
	}

	delta := Total - next.Sum()
	absorbDelta(next, others, delta)

	return next
}

// absorbDelta adds the rounding delta to the first other key. Whatever would
// push that key outside [0, Total] carries on to the next one.
func absorbDelta(s WeightSet, others []int, delta int) {
	for _, i := range others {
		if delta == 0 {
			return
		}
		v := clamp(s[i].Value+delta, 0, Total)
		delta -= v - s[i].Value
		s[i].Value = v
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
