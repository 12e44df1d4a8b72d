package mass

import (
	"iter"
	"maps"

	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/internal/bitmap"
)

// Store is the DSVector: a sparse map from proposition index to mass.
// A Store is not safe for concurrent mutation.
type Store struct {
	values map[frame.Index]float64
	keys   *bitmap.IndexSet
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		values: make(map[frame.Index]float64),
		keys:   bitmap.New(),
	}
}

// Set overwrites the mass at i. No range validation is performed.
// A value of exactly 0 removes the entry.
func (s *Store) Set(i frame.Index, v float64) {
	if v == 0 {
		if s.keys.Remove(uint32(i)) {
			delete(s.values, i)
		}
		return
	}
	s.values[i] = v
	s.keys.Add(uint32(i))
}

// Get returns the mass at i, or 0 when absent.
func (s *Store) Get(i frame.Index) float64 {
	return s.values[i]
}

// Has reports whether i carries a stored mass.
func (s *Store) Has(i frame.Index) bool {
	return s.keys.Contains(uint32(i))
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.values)
}

// NormalizingConstant returns the sum of all stored masses.
func (s *Store) NormalizingConstant() float64 {
	var sum float64
	for _, v := range s.All() {
		sum += v
	}
	return sum
}

// Normalized returns Get(i) divided by the normalizing constant.
func (s *Store) Normalized(i frame.Index) (float64, error) {
	k := s.NormalizingConstant()
	if k == 0 {
		return 0, &DegenerateMassError{Entries: s.Len()}
	}
	return s.Get(i) / k, nil
}

// Normalize returns a copy whose masses sum to 1.
// An empty store normalizes to an empty store.
func (s *Store) Normalize() (*Store, error) {
	out := New()
	if s.Len() == 0 {
		return out, nil
	}
	k := s.NormalizingConstant()
	if k == 0 {
		return nil, &DegenerateMassError{Entries: s.Len()}
	}
	for i, v := range s.All() {
		out.Set(i, v/k)
	}
	return out, nil
}

// All iterates the stored entries in ascending index order.
func (s *Store) All() iter.Seq2[frame.Index, float64] {
	return func(yield func(frame.Index, float64) bool) {
		for k := range s.keys.All() {
			i := frame.Index(k)
			if !yield(i, s.values[i]) {
				return
			}
		}
	}
}

// Indexes returns the stored indexes in ascending order.
func (s *Store) Indexes() []frame.Index {
	keys := s.keys.ToSlice()
	out := make([]frame.Index, len(keys))
	for j, k := range keys {
		out[j] = frame.Index(k)
	}
	return out
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	return &Store{
		values: maps.Clone(s.values),
		keys:   s.keys.Clone(),
	}
}
