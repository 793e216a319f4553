package grid

import (
	"slices"

	"github.com/matzehuels/circlet/pkg/pattern"
)

// Triggers counts how often each tile has been regenerated.
type Triggers struct {
	counts []int
	gen    *pattern.Generator
}

// NewTriggers returns n zeroed counters drawing randomness from gen.
func NewTriggers(n int, gen *pattern.Generator) *Triggers {
	if gen == nil {
		gen = pattern.NewGenerator(nil)
	}
	return &Triggers{counts: make([]int, n), gen: gen}
}

// Len is the number of counters.
func (t *Triggers) Len() int { return len(t.counts) }

// Count returns the counter of tile i.
func (t *Triggers) Count(i int) int { return t.counts[i] }

// Counts returns a copy of all counters.
func (t *Triggers) Counts() []int { return slices.Clone(t.counts) }

// Fire increments the counter of a random tile among those with the lowest
// count and returns its index. It returns -1 when there are no tiles.
func (t *Triggers) Fire() int {
	if len(t.counts) == 0 {
		return -1
	}
	low := slices.Min(t.counts)

	var candidates []int
	for i, c := range t.counts {
		if c == low {
			candidates = append(candidates, i)
		}
	}
	i := candidates[t.gen.Int(len(candidates), 0)]
	t.counts[i]++
	return i
}

// Reset resizes to n counters, all zero.
func (t *Triggers) Reset(n int) {
	t.counts = make([]int, n)
}
