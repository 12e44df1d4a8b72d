package unsure

import (
	"context"
	"fmt"
	"time"
)

// CombineMultisource folds others into b, left to right, with a pairwise rule.
//
// Each step evaluates the rule at every proposition of the power set and
// stores the results in a fresh BOE, which becomes the left operand of the
// next step. This is not an N-ary rule: PCR5 in particular is neither
// associative nor idempotent, so the order of others matters and fusing a
// BOE with itself does not return it unchanged.
//
// b is never modified. With no others the result is a clone of b.
// A failing step is reported as a *SourceError.
func (b *BOE) CombineMultisource(ctx context.Context, rule Rule, others ...*BOE) (*BOE, error) {
	start := time.Now()
	logger := b.opts.logger.WithRule(rule).WithFrame(b.frame.Labels())
	fused, err := b.fold(ctx, logger, rule, others)

	b.opts.metricsCollector.RecordFusion(rule, len(others), time.Since(start), err)
	focal := 0
	if fused != nil {
		focal = fused.store.Len()
	}
	b.opts.logger.LogFusion(ctx, rule, len(others), focal, err)

	return fused, err
}

// ConjunctiveMultisource folds others into b with the conjunctive form.
func (b *BOE) ConjunctiveMultisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RuleConjunctive, others...)
}

// DisjunctiveMultisource folds others into b with the disjunctive form.
func (b *BOE) DisjunctiveMultisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RuleDisjunctive, others...)
}

// DCRMultisource folds others into b with Dempster's rule.
func (b *BOE) DCRMultisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RuleDempster, others...)
}

// YagerMultisource folds others into b with Yager's rule.
func (b *BOE) YagerMultisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RuleYager, others...)
}

// DuboisPradeMultisource folds others into b with the Dubois-Prade rule.
func (b *BOE) DuboisPradeMultisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RuleDuboisPrade, others...)
}

// PCR5Multisource folds others into b with PCR5.
func (b *BOE) PCR5Multisource(ctx context.Context, others ...*BOE) (*BOE, error) {
	return b.CombineMultisource(ctx, RulePCR5, others...)
}

func (b *BOE) fold(ctx context.Context, logger *Logger, rule Rule, others []*BOE) (*BOE, error) {
	if !rule.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(rule))
	}

	acc := b.Clone()
	for i, other := range others {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := acc.fuse(ctx, logger.WithCount(i), rule, other)
		if err != nil {
			return nil, &SourceError{Index: i, cause: err}
		}
		acc = next
	}
	return acc, nil
}

// fuse runs one step of the fold.
func (b *BOE) fuse(ctx context.Context, logger *Logger, rule Rule, other *BOE) (*BOE, error) {
	p, err := newPair(b, other)
	if err != nil {
		return nil, err
	}
	if p.total {
		logger.LogConflict(ctx, p.k, true, nil)
	}

	ctrl := b.opts.controller
	if err := ctrl.AcquireFusion(ctx); err != nil {
		return nil, err
	}
	defer ctrl.ReleaseFusion()

	size := b.frame.Size()
	bytes := int64(size) * 8
	if err := ctrl.AcquireMemory(ctx, bytes); err != nil {
		return nil, err
	}
	defer ctrl.ReleaseMemory(bytes)

	values := make([]float64, size)
	if err := p.evaluateAll(ctx, rule, values, b.opts.workers); err != nil {
		return nil, err
	}

	out := b.derive()
	for i := range b.frame.Powerset() {
		out.store.Set(i, values[i])
	}
	return out, nil
}
