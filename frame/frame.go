package frame

import (
	"iter"
	"slices"
	"strings"
)

// MaxLabels is the largest supported frame. Indexes are 32 bits wide.
const MaxLabels = 32

// Frame is an immutable, ordered set of distinct labels.
type Frame struct {
	labels []string
	pos    map[string]int
}

// New creates a frame from labels. Labels are lower-cased; their order
// defines the index weights.
func New(labels ...string) (*Frame, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyFrame
	}
	if len(labels) > MaxLabels {
		return nil, ErrFrameTooLarge
	}

	f := &Frame{
		labels: make([]string, len(labels)),
		pos:    make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		l = normalize(l)
		if l == "" {
			return nil, ErrEmptyLabel
		}
		if _, dup := f.pos[l]; dup {
			return nil, ErrDuplicateLabel
		}
		f.labels[i] = l
		f.pos[l] = i
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed frames.
func MustNew(labels ...string) *Frame {
	f, err := New(labels...)
	if err != nil {
		panic(err)
	}
	return f
}

func normalize(label string) string {
	return strings.ToLower(label)
}

// Len returns the number of labels.
func (f *Frame) Len() int { return len(f.labels) }

// Labels returns a copy of the labels in frame order.
func (f *Frame) Labels() []string { return slices.Clone(f.labels) }

// Label returns the label at position i.
func (f *Frame) Label(i int) string { return f.labels[i] }

// Theta returns the index of the whole frame.
func (f *Frame) Theta() Index {
	return Index(uint64(1)<<len(f.labels) - 1)
}

// Size returns the number of propositions, 2^Len().
func (f *Frame) Size() uint64 {
	return uint64(1) << len(f.labels)
}

// Contains reports whether i encodes a subset of the frame.
func (f *Frame) Contains(i Index) bool {
	return i.SubsetOf(f.Theta())
}

// Equal reports whether both frames have the same labels in the same order.
func (f *Frame) Equal(other *Frame) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	return slices.Equal(f.labels, other.labels)
}

// String renders the frame in the textual proposition form.
func (f *Frame) String() string {
	return Format(f.labels)
}

// IndexOf encodes a proposition. Labels match case-insensitively and in any
// order; repeated labels count once. An unknown label is an error.
func (f *Frame) IndexOf(labels ...string) (Index, error) {
	var idx Index
	for _, l := range labels {
		p, ok := f.pos[normalize(l)]
		if !ok {
			return 0, &UnknownLabelError{Label: l, Frame: f.Labels()}
		}
		idx |= 1 << p
	}
	return idx, nil
}

// PropositionOf decodes an index into its labels, in frame order.
func (f *Frame) PropositionOf(i Index) ([]string, error) {
	if !f.Contains(i) {
		return nil, ErrIndexOutOfRange
	}
	labels := make([]string, 0, i.Len())
	for p := range f.labels {
		if i&(1<<p) != 0 {
			labels = append(labels, f.labels[p])
		}
	}
	return labels, nil
}

// FormatIndex renders the proposition encoded by i in textual form.
func (f *Frame) FormatIndex(i Index) (string, error) {
	labels, err := f.PropositionOf(i)
	if err != nil {
		return "", err
	}
	return Format(labels), nil
}

// ParseIndex parses a textual proposition and encodes it against the frame.
func (f *Frame) ParseIndex(s string) (Index, error) {
	labels, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return f.IndexOf(labels...)
}

// Powerset iterates all 2^n propositions in ascending index order.
// The sequence is lazy and may be ranged over any number of times.
func (f *Frame) Powerset() iter.Seq[Index] {
	size := f.Size()
	return func(yield func(Index) bool) {
		for i := uint64(0); i < size; i++ {
			if !yield(Index(i)) {
				return
			}
		}
	}
}
