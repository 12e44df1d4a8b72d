package unsure

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Update applies the CUE (conditionally updated evidence) rule in place.
//
// For every focal element B of other:
//
//	total(B) = Σ m_other(B|A) · m̂_other(A)   over focal A ⊆ B
//	m(B)     = alpha · m̂_prior(B) + (1 - alpha) · total(B)
//
// where m̂ is normalized mass. Focal elements B are visited in ascending index
// order and each new m(B) is written before the next B is read, so
// m̂_prior(B) is normalized against the masses already rewritten in this call.
// An empty receiver has a prior of 0. Entries of b that are not focal in other
// keep their stored value. alpha weights the evidence already accumulated in b
// and must lie within [0, 1].
//
// Update mutates b and needs exclusive access to it. If the receiver's
// normalizing constant drops to 0 midway, the entries written so far stay.
func (b *BOE) Update(other *BOE, alpha float64) error {
	start := time.Now()
	err := b.update(other, alpha)
	b.opts.metricsCollector.RecordUpdate(time.Since(start), err)
	return err
}

// UpdateStream applies Update for each BOE in order. It stops at the first
// failure and reports it as a *SourceError; earlier steps stay applied.
// The uncertainty intervals after each step are logged at debug level.
func (b *BOE) UpdateStream(ctx context.Context, alpha float64, others ...*BOE) error {
	logger := b.opts.logger.WithFrame(b.frame.Labels())
	debug := logger.Enabled(ctx, slog.LevelDebug)

	for i, other := range others {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Update(other, alpha); err != nil {
			logger.LogUpdate(ctx, i, nil, err)
			return &SourceError{Index: i, cause: err}
		}
		if debug {
			intervals, err := b.Uncertainties()
			logger.LogUpdate(ctx, i, intervals, err)
		}
	}
	return nil
}

func (b *BOE) update(other *BOE, alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return ErrInvalidAlpha
	}
	if err := checkFrames(b, other); err != nil {
		return err
	}

	incoming, err := other.store.Normalize()
	if err != nil {
		return err
	}

	for ib := range incoming.All() {
		var total float64
		for ia, ma := range incoming.All() {
			if !ia.SubsetOf(ib) {
				continue
			}
			cm, err := other.conditionalMassAt(ib, ia)
			if err != nil {
				return err
			}
			total += cm * ma
		}

		var prior float64
		if b.store.Len() > 0 {
			if prior, err = b.store.Normalized(ib); err != nil {
				return err
			}
		}
		b.store.Set(ib, alpha*prior+(1-alpha)*total)
	}
	return nil
}
