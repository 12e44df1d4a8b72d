package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// IndexSet is a sorted set of uint32 indexes backed by roaring.
// It is not safe for concurrent mutation.
type IndexSet struct {
	rb *roaring.Bitmap
}

// New creates an empty IndexSet.
func New() *IndexSet {
	return &IndexSet{rb: roaring.New()}
}

// Add inserts i. It reports whether i was newly added.
func (s *IndexSet) Add(i uint32) bool {
	return s.rb.CheckedAdd(i)
}

// Remove deletes i. It reports whether i was present.
func (s *IndexSet) Remove(i uint32) bool {
	return s.rb.CheckedRemove(i)
}

// Contains reports whether i is in the set.
func (s *IndexSet) Contains(i uint32) bool {
	return s.rb.Contains(i)
}

// Len returns the number of indexes in the set.
func (s *IndexSet) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set holds no index.
func (s *IndexSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clear removes all indexes.
func (s *IndexSet) Clear() {
	s.rb.Clear()
}

// Clone returns a deep copy of the set.
func (s *IndexSet) Clone() *IndexSet {
	return &IndexSet{rb: s.rb.Clone()}
}

// All iterates the indexes in ascending order.
func (s *IndexSet) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToSlice returns the indexes in ascending order.
func (s *IndexSet) ToSlice() []uint32 {
	return s.rb.ToArray()
}
