package unsure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/unsure/resource"
	"github.com/hupe1980/unsure/testutil"
)

// Smarandache & Dezert (2005), section 11.4.
func elaborateSources(t *testing.T, optFns ...Option) (*BOE, *BOE, *BOE) {
	t.Helper()
	boe1 := newBOE(t, ab, map[string]float64{"['a']": 0.6, "['b']": 0.3, "['a', 'b']": 0.1}, optFns...)
	boe2 := newBOE(t, ab, map[string]float64{"['a']": 0.2, "['b']": 0.3, "['a', 'b']": 0.5})
	boe3 := newBOE(t, ab, map[string]float64{"['a']": 0.4, "['b']": 0.4, "['a', 'b']": 0.2})
	return boe1, boe2, boe3
}

func pairwise(t *testing.T, rule Rule, left, right *BOE) *BOE {
	t.Helper()
	out, err := New(left.Frame().Labels())
	require.NoError(t, err)
	for i := range left.Frame().Powerset() {
		v, err := left.CombineAt(rule, right, i)
		require.NoError(t, err)
		require.NoError(t, out.SetMassAt(i, v))
	}
	return out
}

func TestMultisource_Elaborate(t *testing.T) {
	boe1, boe2, boe3 := elaborateSources(t)

	boe12 := pairwise(t, RulePCR5, boe1, boe2)
	m12 := boe12.Masses()
	assert.InDelta(t, 0.584, m12["['a']"], 1e-9)
	assert.InDelta(t, 0.366, m12["['b']"], 1e-9)
	assert.InDelta(t, 0.05, m12["['a', 'b']"], 1e-9)

	boe123 := pairwise(t, RulePCR5, boe12, boe3)
	m123 := boe123.Masses()
	assert.InDelta(t, 0.5, m123["['a']"], threshold)
	assert.InDelta(t, 0.4, m123["['b']"], threshold)
	assert.InDelta(t, 0.01, m123["['a', 'b']"], threshold)

	fused, err := boe1.PCR5Multisource(context.Background(), boe2, boe3)
	require.NoError(t, err)
	if diff := cmp.Diff(m123, fused.Masses(), testutil.ApproxMasses(1e-12)); diff != "" {
		t.Errorf("multisource differs from pairwise fold (-want +got):\n%s", diff)
	}
}

func TestMultisource_AllRulesMatchPairwiseFold(t *testing.T) {
	rng := testutil.NewRNG(7)
	f := rng.Frame(3)

	sources := make([]*BOE, 4)
	for j := range sources {
		sources[j] = NewWithFrame(f)
		for i, v := range rng.Masses(f, 4) {
			require.NoError(t, sources[j].SetMassAt(i, v))
		}
	}

	for _, rule := range []Rule{RuleConjunctive, RuleDisjunctive, RuleYager, RuleDuboisPrade, RulePCR5} {
		t.Run(rule.String(), func(t *testing.T) {
			want := sources[0]
			for _, s := range sources[1:] {
				want = pairwise(t, rule, want, s)
			}

			got, err := sources[0].CombineMultisource(context.Background(), rule, sources[1:]...)
			require.NoError(t, err)
			if diff := cmp.Diff(want.Masses(), got.Masses(), testutil.ApproxMasses(1e-12)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestMultisource_Variants(t *testing.T) {
	boe1, boe2, boe3 := elaborateSources(t)
	ctx := context.Background()

	variants := map[Rule]func(context.Context, ...*BOE) (*BOE, error){
		RuleConjunctive: boe1.ConjunctiveMultisource,
		RuleDisjunctive: boe1.DisjunctiveMultisource,
		RuleDempster:    boe1.DCRMultisource,
		RuleYager:       boe1.YagerMultisource,
		RuleDuboisPrade: boe1.DuboisPradeMultisource,
		RulePCR5:        boe1.PCR5Multisource,
	}
	for rule, fn := range variants {
		want, err := boe1.CombineMultisource(ctx, rule, boe2, boe3)
		require.NoError(t, err)
		got, err := fn(ctx, boe2, boe3)
		require.NoError(t, err)
		assert.Equal(t, want.Masses(), got.Masses(), rule.String())
	}
}

func TestMultisource_NoSources(t *testing.T) {
	boe1, _, _ := elaborateSources(t)

	fused, err := boe1.PCR5Multisource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, boe1.Masses(), fused.Masses())

	require.NoError(t, fused.SetMass([]string{"a"}, 0.9))
	m, _ := boe1.Mass([]string{"a"})
	assert.Equal(t, 0.6, m, "result is independent of the receiver")
}

func TestMultisource_ReceiverUnchanged(t *testing.T) {
	boe1, boe2, boe3 := elaborateSources(t)
	before := boe1.Masses()

	_, err := boe1.DCRMultisource(context.Background(), boe2, boe3)
	require.NoError(t, err)
	assert.Equal(t, before, boe1.Masses())
}

func TestMultisource_NotIdempotent(t *testing.T) {
	boe := newBOE(t, ab, map[string]float64{"['a']": 0.7, "['b']": 0.3})

	fused, err := boe.PCR5Multisource(context.Background(), boe)
	require.NoError(t, err)

	// 0.49 + 2 * 0.7^2 * 0.3 / (0.7 + 0.3)
	a, _ := fused.Mass([]string{"a"})
	assert.InDelta(t, 0.784, a, 1e-9)
	assert.NotEqual(t, boe.Masses(), fused.Masses())
}

func TestMultisource_OrderMatters(t *testing.T) {
	boe1, boe2, boe3 := elaborateSources(t)
	ctx := context.Background()

	fwd, err := boe1.PCR5Multisource(ctx, boe2, boe3)
	require.NoError(t, err)
	rev, err := boe3.PCR5Multisource(ctx, boe2, boe1)
	require.NoError(t, err)

	a1, _ := fwd.Mass([]string{"a"})
	a2, _ := rev.Mass([]string{"a"})
	assert.NotEqual(t, a1, a2)
}

func TestMultisource_TotalConflict(t *testing.T) {
	boe1 := newBOE(t, abcd, map[string]float64{"['a']": 0.3, "['c']": 0.7})
	boe2 := newBOE(t, abcd, map[string]float64{"['a']": 1})
	boe3 := newBOE(t, abcd, map[string]float64{"['b']": 0.4, "['d']": 0.6})

	_, err := boe1.DCRMultisource(context.Background(), boe2, boe3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTotalConflict)

	var se *SourceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)

	// Yager stays defined: {a .3, theta .7} after the first step.
	fused, err := boe1.YagerMultisource(context.Background(), boe2, boe3)
	require.NoError(t, err)
	m := fused.Masses()
	assert.InDelta(t, 0.28, m["['b']"], 1e-9)
	assert.InDelta(t, 0.42, m["['d']"], 1e-9)
	assert.InDelta(t, 0.3, m["['a', 'b', 'c', 'd']"], 1e-9)
}

func TestMultisource_IncompatibleFrame(t *testing.T) {
	boe1, boe2, _ := elaborateSources(t)
	other := newBOE(t, abc, map[string]float64{"['a']": 1})

	_, err := boe1.PCR5Multisource(context.Background(), boe2, other)
	assert.ErrorIs(t, err, ErrIncompatibleFrame)

	var se *SourceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)
}

func TestMultisource_UnknownRule(t *testing.T) {
	boe1, boe2, _ := elaborateSources(t)
	_, err := boe1.CombineMultisource(context.Background(), Rule(9), boe2)
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func TestMultisource_ContextCanceled(t *testing.T) {
	boe1, boe2, boe3 := elaborateSources(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := boe1.PCR5Multisource(ctx, boe2, boe3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMultisource_ParallelMatchesSequential(t *testing.T) {
	rng := testutil.NewRNG(99)
	f := rng.Frame(7)

	build := func(optFns ...Option) []*BOE {
		rng.Reset()
		out := make([]*BOE, 3)
		for j := range out {
			out[j] = NewWithFrame(f, optFns...)
			for i, v := range rng.Masses(f, 12) {
				require.NoError(t, out[j].SetMassAt(i, v))
			}
		}
		return out
	}

	seq := build()
	par := build(WithWorkers(4))

	for _, rule := range []Rule{RulePCR5, RuleDuboisPrade, RuleConjunctive} {
		want, err := seq[0].CombineMultisource(context.Background(), rule, seq[1:]...)
		require.NoError(t, err)
		got, err := par[0].CombineMultisource(context.Background(), rule, par[1:]...)
		require.NoError(t, err)
		assert.Equal(t, want.Masses(), got.Masses(), rule.String())
	}
}

func TestMultisource_ResourceController(t *testing.T) {
	t.Run("OverBudget", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 16})
		boe1 := newBOE(t, abc, map[string]float64{"['a']": 1}, WithResourceController(ctrl))
		boe2 := newBOE(t, abc, map[string]float64{"['b']": 1})

		_, err := boe1.ConjunctiveMultisource(context.Background(), boe2)
		require.Error(t, err)
		assert.ErrorIs(t, err, resource.ErrOverBudget)

		var se *SourceError
		assert.True(t, errors.As(err, &se))
		assert.Zero(t, ctrl.MemoryUsage())
	})

	t.Run("SharedAcrossGoroutines", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64, MaxConcurrentFusions: 2})
		boe1, boe2, boe3 := elaborateSources(t, WithResourceController(ctrl), WithWorkers(2))

		want, err := boe1.PCR5Multisource(context.Background(), boe2, boe3)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]map[string]float64, 8)
		errs := make([]error, len(results))
		for j := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fused, err := boe1.PCR5Multisource(context.Background(), boe2, boe3)
				errs[j] = err
				if err == nil {
					results[j] = fused.Masses()
				}
			}()
		}
		wg.Wait()

		for j := range results {
			require.NoError(t, errs[j])
			assert.Equal(t, want.Masses(), results[j])
		}
		assert.Zero(t, ctrl.MemoryUsage())
	})
}

func TestMultisource_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	boe1, boe2, boe3 := elaborateSources(t, WithMetricsCollector(metrics))

	_, err := boe1.PCR5Multisource(context.Background(), boe2, boe3)
	require.NoError(t, err)
	_, err = boe1.CombineMultisource(context.Background(), Rule(9), boe2)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.FusionCount)
	assert.Equal(t, int64(3), stats.FusionSources)
	assert.Equal(t, int64(1), stats.FusionErrors)
}

func TestMultisource_LoggingContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	boe1 := newBOE(t, abcd, map[string]float64{"['a']": 0.3, "['c']": 0.7}, WithLogger(logger))
	boe2 := newBOE(t, abcd, map[string]float64{"['a']": 1})
	boe3 := newBOE(t, abcd, map[string]float64{"['b']": 0.4, "['d']": 0.6})

	_, err := boe1.DCRMultisource(context.Background(), boe2, boe3)
	require.ErrorIs(t, err, ErrTotalConflict)

	var warn struct {
		Msg   string   `json:"msg"`
		Rule  string   `json:"rule"`
		Frame []string `json:"frame"`
		Count int      `json:"count"`
	}
	line, _, _ := strings.Cut(buf.String(), "\n")
	require.NoError(t, json.Unmarshal([]byte(line), &warn))
	assert.Equal(t, "total conflict between sources", warn.Msg)
	assert.Equal(t, "dempster", warn.Rule)
	assert.Equal(t, abcd, warn.Frame)
	assert.Equal(t, 1, warn.Count)
}
