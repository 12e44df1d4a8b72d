package unsure

import (
	"log/slog"

	"github.com/hupe1980/unsure/codec"
	"github.com/hupe1980/unsure/resource"
)

// DefaultTolerance is the distance from 1 within which a conflict counts as total.
const DefaultTolerance = 1e-9

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	tolerance        float64
	workers          int
	controller       *resource.Controller
}

// Option configures a BOE. Combination results inherit the options of the
// receiving BOE.
type Option func(*options)

// WithCodec configures the codec used by LoadMasses and MarshalMasses.
//
// If nil is passed, codec.Default (go-json) is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &unsure.BasicMetricsCollector{}
//	boe, _ := unsure.New([]string{"a", "b"}, unsure.WithMetricsCollector(metrics))
//	// ... combine ...
//	stats := metrics.GetStats()
//	fmt.Printf("Combinations: %d\n", stats.CombineCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := unsure.NewJSONLogger(slog.LevelInfo)
//	boe, _ := unsure.New(labels, unsure.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTolerance sets how close to 1 a conflict must be to count as total.
// Negative values are ignored.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		if eps >= 0 {
			o.tolerance = eps
		}
	}
}

// WithWorkers sets how many goroutines evaluate the power set during
// multisource fusion. Values <= 1 evaluate sequentially.
//
// Every proposition of a fusion step is independent, so the result does not
// depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController bounds concurrent fusion steps and the memory held
// by their power-set buffers. A nil controller means no limits.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		tolerance:        DefaultTolerance,
		workers:          1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
