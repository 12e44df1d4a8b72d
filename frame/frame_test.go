package frame

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("NormalizesCase", func(t *testing.T) {
		f, err := New("A", "b", "Car")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "car"}, f.Labels())
		assert.Equal(t, 3, f.Len())
		assert.Equal(t, Index(7), f.Theta())
		assert.Equal(t, uint64(8), f.Size())
	})

	t.Run("Rejects", func(t *testing.T) {
		_, err := New()
		assert.ErrorIs(t, err, ErrEmptyFrame)

		_, err = New("a", "A")
		assert.ErrorIs(t, err, ErrDuplicateLabel)

		_, err = New("a", "")
		assert.ErrorIs(t, err, ErrEmptyLabel)

		labels := make([]string, MaxLabels+1)
		for i := range labels {
			labels[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
		}
		_, err = New(labels...)
		assert.ErrorIs(t, err, ErrFrameTooLarge)

		f, err := New(labels[:MaxLabels]...)
		require.NoError(t, err)
		assert.Equal(t, Index(0xFFFFFFFF), f.Theta())
	})

	t.Run("LabelsIsACopy", func(t *testing.T) {
		f := MustNew("a", "b")
		l := f.Labels()
		l[0] = "z"
		assert.Equal(t, "a", f.Label(0))
	})
}

func TestFrame_Equal(t *testing.T) {
	f := MustNew("a", "b", "c")
	assert.True(t, f.Equal(f))
	assert.True(t, f.Equal(MustNew("A", "B", "C")))
	assert.False(t, f.Equal(MustNew("b", "a", "c")))
	assert.False(t, f.Equal(MustNew("a", "b")))
	assert.False(t, f.Equal(nil))
}

func TestFrame_IndexOf(t *testing.T) {
	f := MustNew("a", "b", "c", "d")

	tests := []struct {
		name   string
		labels []string
		want   Index
	}{
		{"Empty", nil, 0},
		{"Singleton", []string{"c"}, 4},
		{"Pair", []string{"a", "b"}, 3},
		{"OrderIndependent", []string{"d", "a"}, 9},
		{"CaseInsensitive", []string{"D", "A"}, 9},
		{"DuplicatesCollapse", []string{"b", "b"}, 2},
		{"Theta", []string{"a", "b", "c", "d"}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.IndexOf(tt.labels...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("UnknownLabel", func(t *testing.T) {
		_, err := f.IndexOf("a", "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownLabel)

		var ule *UnknownLabelError
		require.True(t, errors.As(err, &ule))
		assert.Equal(t, "x", ule.Label)
		assert.Equal(t, f.Labels(), ule.Frame)
	})
}

func TestFrame_RoundTrip(t *testing.T) {
	f := MustNew("a", "b", "c", "d", "e")

	for i := range f.Powerset() {
		labels, err := f.PropositionOf(i)
		require.NoError(t, err)
		assert.Equal(t, i.Len(), len(labels))

		got, err := f.IndexOf(labels...)
		require.NoError(t, err)
		assert.Equal(t, i, got)

		// Reversed input must encode identically.
		slices.Reverse(labels)
		got, err = f.IndexOf(labels...)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}

	_, err := f.PropositionOf(32)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestFrame_Powerset(t *testing.T) {
	f := MustNew("x", "y", "z")

	first := slices.Collect(f.Powerset())
	second := slices.Collect(f.Powerset())
	assert.Equal(t, []Index{0, 1, 2, 3, 4, 5, 6, 7}, first)
	assert.Equal(t, first, second)

	var n int
	for range f.Powerset() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestIndex_SetAlgebra(t *testing.T) {
	a := Index(0b0011)
	b := Index(0b0110)

	assert.Equal(t, Index(0b0010), a.Intersect(b))
	assert.Equal(t, Index(0b0111), a.Union(b))
	assert.True(t, a.Intersects(b))
	assert.False(t, Index(0b0001).Intersects(Index(0b1000)))
	assert.True(t, Index(0b0010).SubsetOf(a))
	assert.True(t, Empty.SubsetOf(a))
	assert.False(t, b.SubsetOf(a))
	assert.True(t, Empty.IsEmpty())
	assert.Equal(t, 2, b.Len())
}

func TestSubmasks(t *testing.T) {
	got := slices.Collect(Submasks(0b101))
	assert.Equal(t, []Index{0b101, 0b100, 0b001, 0}, got)

	assert.Equal(t, []Index{0}, slices.Collect(Submasks(Empty)))

	// Every submask of the complement is disjoint from the target and the
	// count is 2^(n - |target|).
	f := MustNew("a", "b", "c", "d")
	target := Index(0b0101)
	var n int
	for q := range Submasks(f.Theta() &^ target) {
		assert.False(t, q.Intersects(target))
		n++
	}
	assert.Equal(t, 4, n)
}

func TestFrame_FormatAndParseIndex(t *testing.T) {
	f := MustNew("a", "b", "c")

	s, err := f.FormatIndex(5)
	require.NoError(t, err)
	assert.Equal(t, "['a', 'c']", s)

	i, err := f.ParseIndex("['c', 'A']")
	require.NoError(t, err)
	assert.Equal(t, Index(5), i)

	_, err = f.ParseIndex("['q']")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = f.ParseIndex("a, c")
	assert.ErrorIs(t, err, ErrMalformedProposition)

	assert.Equal(t, "['a', 'b', 'c']", f.String())
}
