// Package subsets addresses subsets of a word group by bitmask.
//
// Bit i of a Pattern is set when the word at position i of the group is a
// member. Probabilities for a group of n words live in a dense slice of
// length 1<<n indexed directly by Pattern.
package subsets

import (
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

// MaxGroupSize bounds the group length so 1<<n stays allocatable.
const MaxGroupSize = 24

// Pattern is a subset bitmask over the positions of a word group.
type Pattern uint32

// Singleton returns the pattern containing only position i.
func Singleton(i int) Pattern {
	return Pattern(1) << uint(i)
}

// PairOf returns the pattern containing positions i and j.
func PairOf(i, j int) Pattern {
	return Singleton(i) | Singleton(j)
}

// Slots returns the length of a probability array for a group of n words.
func Slots(n int) int {
	return 1 << uint(n)
}

// Full returns the pattern containing every position of a group of n words.
func Full(n int) Pattern {
	return Pattern(Slots(n) - 1)
}

// Size returns the number of members.
func (p Pattern) Size() int {
	return bits.OnesCount32(uint32(p))
}

// Has reports whether position i is a member.
func (p Pattern) Has(i int) bool {
	return p&Singleton(i) != 0
}

// Members returns the member positions in ascending order.
func (p Pattern) Members() []int {
	out := make([]int, 0, p.Size())
	for rest := uint32(p); rest != 0; rest &= rest - 1 {
		out = append(out, bits.TrailingZeros32(rest))
	}
	return out
}

// String renders the pattern as a binary literal, most significant bit first.
func (p Pattern) String() string {
	return fmt.Sprintf("0b%b", uint32(p))
}

// Definition records which subset probabilities a caller needs for one group.
type Definition struct {
	n         int
	requested *bitset.BitSet
}

// NewDefinition creates a definition for a group of n words requesting the given patterns.
func NewDefinition(n int, patterns ...Pattern) Definition {
	size := uint(0)
	if n > 0 && n <= MaxGroupSize {
		size = uint(Slots(n))
	}
	d := Definition{n: n, requested: bitset.New(size)}
	for _, p := range patterns {
		d.requested.Set(uint(p))
	}
	return d
}

// FullDefinition requests every non-empty pattern of a group of n words.
func FullDefinition(n int) Definition {
	d := NewDefinition(n)
	if n <= 0 || n > MaxGroupSize {
		return d
	}
	for p := 1; p < Slots(n); p++ {
		d.requested.Set(uint(p))
	}
	return d
}

// GroupSize returns the group length the definition was built for.
func (d Definition) GroupSize() int { return d.n }

// Contains reports whether p was requested.
func (d Definition) Contains(p Pattern) bool {
	return d.requested != nil && d.requested.Test(uint(p))
}

// Requested returns the requested patterns in ascending order.
func (d Definition) Requested() []Pattern {
	if d.requested == nil {
		return nil
	}
	out := make([]Pattern, 0, d.requested.Count())
	for i, ok := d.requested.NextSet(0); ok; i, ok = d.requested.NextSet(i + 1) {
		out = append(out, Pattern(i))
	}
	return out
}

// Validate checks the definition against a group of n words.
func (d Definition) Validate(n int) error {
	if n <= 0 || n > MaxGroupSize {
		return fmt.Errorf("group size %d outside 1..%d: %w", n, MaxGroupSize, internalerr.ErrInvalidInput)
	}
	if d.n != n {
		return fmt.Errorf("definition built for %d words, group has %d: %w", d.n, n, internalerr.ErrInvalidInput)
	}
	for _, p := range d.Requested() {
		if p == 0 || int(p) >= Slots(n) {
			return fmt.Errorf("pattern %s outside 1..%d: %w", p, Slots(n)-1, internalerr.ErrInvalidInput)
		}
	}
	return nil
}

// Needed returns the requested patterns plus every singleton and pair they
// contain. Those are the only slots a bigram estimate can support.
func (d Definition) Needed() *bitset.BitSet {
	needed := bitset.New(uint(Slots(d.n)))
	for _, p := range d.Requested() {
		needed.Set(uint(p))
		members := p.Members()
		for a, i := range members {
			needed.Set(uint(Singleton(i)))
			for _, j := range members[a+1:] {
				needed.Set(uint(PairOf(i, j)))
			}
		}
	}
	return needed
}

// Probabilities holds the estimate for one group.
type Probabilities struct {
	Words      []string
	Definition Definition
	Values     []float64
}

// At returns the probability stored for p, or 0 when p is outside the array.
func (sp Probabilities) At(p Pattern) float64 {
	if int(p) >= len(sp.Values) {
		return 0
	}
	return sp.Values[p]
}
