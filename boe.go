package unsure

import (
	"fmt"

	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/mass"
)

// BOE is a body of evidence: a frame plus an unnormalized mass vector.
//
// Combination methods never modify their operands. Update and UpdateStream
// are the only methods that change a BOE after it has been populated; like
// the setters, they need exclusive access to the receiver.
type BOE struct {
	frame *frame.Frame
	store *mass.Store
	opts  options
}

// New creates an empty BOE over the given labels.
func New(labels []string, optFns ...Option) (*BOE, error) {
	f, err := frame.New(labels...)
	if err != nil {
		return nil, err
	}
	return NewWithFrame(f, optFns...), nil
}

// NewWithFrame creates an empty BOE over an existing frame. f must not be nil.
func NewWithFrame(f *frame.Frame, optFns ...Option) *BOE {
	if f == nil {
		panic("unsure: nil frame")
	}
	return &BOE{
		frame: f,
		store: mass.New(),
		opts:  applyOptions(optFns),
	}
}

// derive returns an empty BOE sharing the frame and options of b.
func (b *BOE) derive() *BOE {
	return &BOE{frame: b.frame, store: mass.New(), opts: b.opts}
}

// Frame returns the frame of discernment.
func (b *BOE) Frame() *frame.Frame { return b.frame }

// Clone returns an independent copy.
func (b *BOE) Clone() *BOE {
	return &BOE{frame: b.frame, store: b.store.Clone(), opts: b.opts}
}

// SetMass overwrites the unnormalized mass of a proposition.
// Values are not validated or normalized.
func (b *BOE) SetMass(proposition []string, value float64) error {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return err
	}
	b.store.Set(i, value)
	return nil
}

// SetMassAt overwrites the mass stored at an index.
func (b *BOE) SetMassAt(i frame.Index, value float64) error {
	if !b.frame.Contains(i) {
		return frame.ErrIndexOutOfRange
	}
	b.store.Set(i, value)
	return nil
}

// SetMassTheta sets the mass of the whole frame.
func (b *BOE) SetMassTheta(value float64) {
	b.store.Set(b.frame.Theta(), value)
}

// SetMasses assigns masses keyed by textual propositions such as "['a', 'b']".
// Every key is parsed and encoded before any mass is written, so a bad key
// leaves the BOE untouched.
func (b *BOE) SetMasses(masses map[string]float64) error {
	parsed := make(map[frame.Index]float64, len(masses))
	for key, v := range masses {
		i, err := b.frame.ParseIndex(key)
		if err != nil {
			return fmt.Errorf("mass key %q: %w", key, err)
		}
		if _, dup := parsed[i]; dup {
			return fmt.Errorf("mass key %q: %w: proposition assigned twice", key, ErrMalformedProposition)
		}
		parsed[i] = v
	}
	for i, v := range parsed {
		b.store.Set(i, v)
	}
	return nil
}

// LoadMasses decodes a mass document with the configured codec and applies
// it with SetMasses.
func (b *BOE) LoadMasses(data []byte) error {
	var doc map[string]float64
	if err := b.opts.codec.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s mass document: %w", b.opts.codec.Name(), err)
	}
	return b.SetMasses(doc)
}

// MarshalMasses encodes Masses with the configured codec.
func (b *BOE) MarshalMasses() ([]byte, error) {
	return b.opts.codec.Marshal(b.Masses())
}

// Mass returns the unnormalized mass of a proposition, 0 when unset.
func (b *BOE) Mass(proposition []string) (float64, error) {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return 0, err
	}
	return b.store.Get(i), nil
}

// MassAt returns the unnormalized mass stored at an index.
func (b *BOE) MassAt(i frame.Index) float64 {
	return b.store.Get(i)
}

// NormalizingConstant returns the sum of all stored masses.
func (b *BOE) NormalizingConstant() float64 {
	return b.store.NormalizingConstant()
}

// NormalizedMass returns the mass of a proposition divided by the normalizing constant.
func (b *BOE) NormalizedMass(proposition []string) (float64, error) {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return 0, err
	}
	return b.store.Normalized(i)
}

// Masses returns every focal element, keyed by its textual form, with its
// unnormalized mass.
func (b *BOE) Masses() map[string]float64 {
	return b.textual(b.store)
}

// NormalizedMasses is like Masses with normalized values.
func (b *BOE) NormalizedMasses() (map[string]float64, error) {
	n, err := b.store.Normalize()
	if err != nil {
		return nil, err
	}
	return b.textual(n), nil
}

// NormalizedVector returns a normalized copy of the mass vector.
func (b *BOE) NormalizedVector() (*mass.Store, error) {
	return b.store.Normalize()
}

// Core returns the focal elements in ascending index order.
func (b *BOE) Core() [][]string {
	core := make([][]string, 0, b.store.Len())
	for i := range b.store.All() {
		core = append(core, b.labels(i))
	}
	return core
}

func (b *BOE) textual(s *mass.Store) map[string]float64 {
	out := make(map[string]float64, s.Len())
	for i, v := range s.All() {
		out[frame.Format(b.labels(i))] = v
	}
	return out
}

// labels decodes an index known to belong to the frame.
func (b *BOE) labels(i frame.Index) []string {
	l, err := b.frame.PropositionOf(i)
	if err != nil {
		panic(fmt.Sprintf("unsure: stored index %d outside frame: %v", i, err))
	}
	return l
}
