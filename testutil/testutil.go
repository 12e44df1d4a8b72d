package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/mass"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Labels returns n distinct labels s0, s1, ...
func Labels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("s%d", i)
	}
	return labels
}

// Frame returns a frame of n generated labels.
func (r *RNG) Frame(n int) *frame.Frame {
	return frame.MustNew(Labels(n)...)
}

// Masses draws up to focal distinct non-empty propositions of f and gives
// each a positive, unnormalized mass in (0, 1].
func (r *RNG) Masses(f *frame.Frame, focal int) map[frame.Index]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := int(f.Theta())
	focal = min(focal, span)

	out := make(map[frame.Index]float64, focal)
	for len(out) < focal {
		i := frame.Index(1 + r.rand.Intn(span))
		if _, ok := out[i]; ok {
			continue
		}
		out[i] = 1 - r.rand.Float64()
	}
	return out
}

// Store is like Masses but returns a populated mass.Store.
func (r *RNG) Store(f *frame.Frame, focal int) *mass.Store {
	s := mass.New()
	for i, v := range r.Masses(f, focal) {
		s.Set(i, v)
	}
	return s
}

// ApproxMasses compares float64 values with an absolute tolerance.
func ApproxMasses(eps float64) cmp.Option {
	return cmpopts.EquateApprox(0, eps)
}
