package unsure

import (
	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/mass"
)

// Interval is the uncertainty interval [Belief, Plausibility] of a proposition.
type Interval struct {
	Belief       float64 `json:"belief"`
	Plausibility float64 `json:"plausibility"`
}

// Width returns Plausibility - Belief, the ignorance about the proposition.
func (iv Interval) Width() float64 {
	return iv.Plausibility - iv.Belief
}

// Belief returns the normalized mass committed to subsets of the proposition.
func (b *BOE) Belief(proposition []string) (float64, error) {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return 0, err
	}
	return b.beliefAt(i)
}

// Plausibility returns the normalized mass of focal elements overlapping the proposition.
func (b *BOE) Plausibility(proposition []string) (float64, error) {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return 0, err
	}
	return b.plausibilityAt(i)
}

// Uncertainty returns [Belief, Plausibility] for the proposition.
func (b *BOE) Uncertainty(proposition []string) (Interval, error) {
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return Interval{}, err
	}
	return b.uncertaintyAt(i)
}

// Uncertainties returns the interval of every focal element, keyed by its textual form.
func (b *BOE) Uncertainties() (map[string]Interval, error) {
	out := make(map[string]Interval, b.store.Len())
	for i := range b.store.All() {
		iv, err := b.uncertaintyAt(i)
		if err != nil {
			return nil, err
		}
		out[frame.Format(b.labels(i))] = iv
	}
	return out, nil
}

// ConditionalMass returns m(B|A) = m(B) / (m(B) + Pl(A)).
//
// m(B) is the unnormalized mass of B. Pl(A) is taken over A itself, not over
// A minus B, and only when A is non-empty. The result is 0 when m(B) is 0.
func (b *BOE) ConditionalMass(propB, propA []string) (float64, error) {
	ib, err := b.frame.IndexOf(propB...)
	if err != nil {
		return 0, err
	}
	ia, err := b.frame.IndexOf(propA...)
	if err != nil {
		return 0, err
	}
	return b.conditionalMassAt(ib, ia)
}

func (b *BOE) beliefAt(target frame.Index) (float64, error) {
	k, err := b.constant()
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, v := range b.store.All() {
		if i.SubsetOf(target) {
			sum += v
		}
	}
	return sum / k, nil
}

func (b *BOE) plausibilityAt(target frame.Index) (float64, error) {
	k, err := b.constant()
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, v := range b.store.All() {
		if i.Intersects(target) {
			sum += v
		}
	}
	return sum / k, nil
}

func (b *BOE) uncertaintyAt(i frame.Index) (Interval, error) {
	bel, err := b.beliefAt(i)
	if err != nil {
		return Interval{}, err
	}
	pl, err := b.plausibilityAt(i)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Belief: bel, Plausibility: pl}, nil
}

func (b *BOE) conditionalMassAt(ib, ia frame.Index) (float64, error) {
	mb := b.store.Get(ib)
	if mb == 0 {
		return 0, nil
	}
	var pl float64
	if !ia.IsEmpty() {
		var err error
		if pl, err = b.plausibilityAt(ia); err != nil {
			return 0, err
		}
	}
	if mb+pl == 0 {
		return 0, &mass.DegenerateMassError{Entries: b.store.Len()}
	}
	return mb / (mb + pl), nil
}

func (b *BOE) constant() (float64, error) {
	k := b.store.NormalizingConstant()
	if k == 0 {
		return 0, &mass.DegenerateMassError{Entries: b.store.Len()}
	}
	return k, nil
}
