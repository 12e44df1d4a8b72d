package unsure

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/unsure/frame"
)

// Conjunctive returns the conjunctive form m12(P): the product mass of all
// focal pairs whose intersection is exactly P.
func (b *BOE) Conjunctive(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RuleConjunctive, other, proposition)
}

// Disjunctive returns the product mass of all focal pairs whose union is exactly P.
func (b *BOE) Disjunctive(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RuleDisjunctive, other, proposition)
}

// DCR evaluates Dempster's rule of combination at P.
// It returns ErrTotalConflict when the sources are in total conflict.
func (b *BOE) DCR(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RuleDempster, other, proposition)
}

// Yager evaluates Yager's rule at P. The conflict is added to the whole frame.
func (b *BOE) Yager(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RuleYager, other, proposition)
}

// DuboisPrade evaluates the Dubois-Prade rule at P.
func (b *BOE) DuboisPrade(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RuleDuboisPrade, other, proposition)
}

// PCR5 evaluates the Proportional Conflict Redistribution rule no. 5 at P.
func (b *BOE) PCR5(other *BOE, proposition []string) (float64, error) {
	return b.Combine(RulePCR5, other, proposition)
}

// Conflict returns K, the conjunctive mass of the empty set.
// Conflict is symmetric in its operands.
func (b *BOE) Conflict(other *BOE) (float64, error) {
	ctx := context.Background()
	start := time.Now()

	p, err := newPair(b, other)
	if err != nil {
		b.opts.metricsCollector.RecordConflict(time.Since(start), false, err)
		b.opts.logger.LogConflict(ctx, 0, false, err)
		return 0, err
	}
	b.opts.metricsCollector.RecordConflict(time.Since(start), p.total, nil)
	b.opts.logger.LogConflict(ctx, p.k, p.total, nil)
	return p.k, nil
}

// Combine evaluates rule at a proposition. Frames must be equal.
func (b *BOE) Combine(rule Rule, other *BOE, proposition []string) (float64, error) {
	if err := checkFrames(b, other); err != nil {
		return b.finishCombine(rule, frame.Format(proposition), time.Now(), 0, err)
	}
	i, err := b.frame.IndexOf(proposition...)
	if err != nil {
		return b.finishCombine(rule, frame.Format(proposition), time.Now(), 0, err)
	}
	return b.CombineAt(rule, other, i)
}

// CombineAt evaluates rule at the proposition encoded by i.
func (b *BOE) CombineAt(rule Rule, other *BOE, i frame.Index) (float64, error) {
	start := time.Now()
	label := fmt.Sprintf("#%d", i)

	if !rule.valid() {
		return b.finishCombine(rule, label, start, 0, fmt.Errorf("%w: %d", ErrUnknownRule, int(rule)))
	}
	if !b.frame.Contains(i) {
		return b.finishCombine(rule, label, start, 0, frame.ErrIndexOutOfRange)
	}
	label = frame.Format(b.labels(i))

	p, err := newPair(b, other)
	if err != nil {
		return b.finishCombine(rule, label, start, 0, err)
	}
	if p.total {
		b.opts.logger.LogConflict(context.Background(), p.k, true, nil)
	}
	v, err := p.evaluate(rule, i)
	return b.finishCombine(rule, label, start, v, err)
}

func (b *BOE) finishCombine(rule Rule, proposition string, start time.Time, v float64, err error) (float64, error) {
	b.opts.metricsCollector.RecordCombine(rule, time.Since(start), err)
	b.opts.logger.LogCombine(context.Background(), rule, proposition, v, err)
	if err != nil {
		return 0, err
	}
	return v, nil
}
