package unsure

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/unsure/frame"
	"github.com/hupe1980/unsure/mass"
)

// minParallelSize is the smallest power set split across workers.
const minParallelSize = 64

type focal struct {
	idx frame.Index
	m   float64
}

// pair holds two normalized operands and every table a rule query needs.
//
// The conjunctive, disjunctive and Dubois-Prade tables are filled in one pass
// over the F1 x F2 focal pairs. Each cell receives its products in the same
// order as a per-proposition scan would, so sums are bit-identical to
// evaluating the definitions directly. A pair is read-only once built and
// may be shared between goroutines.
type pair struct {
	theta       frame.Index
	left, right *mass.Store

	conj     map[frame.Index]float64
	disj     map[frame.Index]float64
	conflict map[frame.Index]float64 // union -> mass of disjoint pairs

	k     float64
	total bool
}

func newPair(a, b *BOE) (*pair, error) {
	if err := checkFrames(a, b); err != nil {
		return nil, err
	}
	left, err := a.store.Normalize()
	if err != nil {
		return nil, err
	}
	right, err := b.store.Normalize()
	if err != nil {
		return nil, err
	}

	p := &pair{
		theta:    a.frame.Theta(),
		left:     left,
		right:    right,
		conj:     make(map[frame.Index]float64),
		disj:     make(map[frame.Index]float64),
		conflict: make(map[frame.Index]float64),
	}

	rs := focals(right)
	for i, mi := range left.All() {
		for _, r := range rs {
			prod := mi * r.m
			inter := i.Intersect(r.idx)
			union := i.Union(r.idx)
			p.conj[inter] += prod
			p.disj[union] += prod
			if inter.IsEmpty() {
				p.conflict[union] += prod
			}
		}
	}

	p.k = p.conj[frame.Empty]
	p.total = math.Abs(1-p.k) <= a.opts.tolerance
	return p, nil
}

func focals(s *mass.Store) []focal {
	out := make([]focal, 0, s.Len())
	for i, m := range s.All() {
		out = append(out, focal{idx: i, m: m})
	}
	return out
}

// conjunctive sums m1(Q1)*m2(Q2) over focal pairs with Q1 ∩ Q2 == target.
func (p *pair) conjunctive(target frame.Index) float64 {
	return p.conj[target]
}

// disjunctive sums m1(Q1)*m2(Q2) over focal pairs with Q1 ∪ Q2 == target.
func (p *pair) disjunctive(target frame.Index) float64 {
	return p.disj[target]
}

func (p *pair) dempster(target frame.Index) (float64, error) {
	if target.IsEmpty() {
		return 0, nil
	}
	if p.total {
		return 0, &TotalConflictError{Conflict: p.k}
	}
	return p.conjunctive(target) / (1 - p.k), nil
}

func (p *pair) yager(target frame.Index) float64 {
	if target.IsEmpty() {
		return 0
	}
	if target == p.theta {
		return p.conjunctive(target) + p.k
	}
	return p.conjunctive(target)
}

func (p *pair) duboisPrade(target frame.Index) float64 {
	if target.IsEmpty() {
		return 0
	}
	return p.conjunctive(target) + p.conflict[target]
}

// pcr5 adds gamma(target, Q) for every Q of the power set disjoint from
// target. Those are exactly the subsets of the complement of target.
func (p *pair) pcr5(target frame.Index) float64 {
	if target.IsEmpty() {
		return 0
	}
	var redistributed float64
	for q := range frame.Submasks(p.theta &^ target) {
		redistributed += p.gamma(target, q)
	}
	return p.conjunctive(target) + redistributed
}

// gamma returns the share of the partial conflicts between b and c that
// flows back to b:
//
//	m1(b)²·m2(c) / (m1(b)+m2(c))  +  m2(b)²·m1(c) / (m2(b)+m1(c))
//
// Each ratio is 0 when its denominator is 0.
func (p *pair) gamma(b, c frame.Index) float64 {
	m1b, m2c := p.left.Get(b), p.right.Get(c)
	m2b, m1c := p.right.Get(b), p.left.Get(c)

	var r1, r2 float64
	if d := m1b + m2c; d != 0 {
		r1 = m1b * m1b * m2c / d
	}
	if d := m2b + m1c; d != 0 {
		r2 = m2b * m2b * m1c / d
	}
	return r1 + r2
}

func (p *pair) evaluate(rule Rule, target frame.Index) (float64, error) {
	switch rule {
	case RuleConjunctive:
		return p.conjunctive(target), nil
	case RuleDisjunctive:
		return p.disjunctive(target), nil
	case RuleDempster:
		return p.dempster(target)
	case RuleYager:
		return p.yager(target), nil
	case RuleDuboisPrade:
		return p.duboisPrade(target), nil
	case RulePCR5:
		return p.pcr5(target), nil
	default:
		return 0, ErrUnknownRule
	}
}

// evaluateRange writes rule(offset+j) into dst[j].
func (p *pair) evaluateRange(rule Rule, dst []float64, offset int) error {
	for j := range dst {
		v, err := p.evaluate(rule, frame.Index(offset+j))
		if err != nil {
			return err
		}
		dst[j] = v
	}
	return nil
}

// evaluateAll writes rule(i) into dst[i] for the whole power set, spreading
// contiguous index ranges over up to workers goroutines.
func (p *pair) evaluateAll(ctx context.Context, rule Rule, dst []float64, workers int) error {
	if workers <= 1 || len(dst) < minParallelSize {
		return p.evaluateRange(rule, dst, 0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (len(dst) + workers - 1) / workers
	for lo := 0; lo < len(dst); lo += chunk {
		hi := min(lo+chunk, len(dst))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return p.evaluateRange(rule, dst[lo:hi], lo)
		})
	}
	return g.Wait()
}
