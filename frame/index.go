package frame

import (
	"iter"
	"math/bits"
)

// Index is the canonical integer encoding of a proposition.
// Bit i is set when the label at frame position i is a member.
type Index uint32

// Empty is the index of the empty proposition.
const Empty Index = 0

// Intersect returns the index of the intersection of both propositions.
func (i Index) Intersect(j Index) Index { return i & j }

// Union returns the index of the union of both propositions.
func (i Index) Union(j Index) Index { return i | j }

// SubsetOf reports whether i is a (not necessarily proper) subset of j.
func (i Index) SubsetOf(j Index) bool { return i&^j == 0 }

// Intersects reports whether both propositions share at least one label.
func (i Index) Intersects(j Index) bool { return i&j != 0 }

// IsEmpty reports whether i is the empty proposition.
func (i Index) IsEmpty() bool { return i == Empty }

// Len returns the number of labels in the proposition.
func (i Index) Len() int { return bits.OnesCount32(uint32(i)) }

// Submasks iterates every subset of i, including i itself and Empty.
// Subsets are yielded in descending numeric order, ending with Empty.
func Submasks(i Index) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for s := i; ; s = (s - 1) & i {
			if !yield(s) {
				return
			}
			if s == 0 {
				return
			}
		}
	}
}
