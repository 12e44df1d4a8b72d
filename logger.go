package unsure

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with evidence-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRule adds a rule field to the logger.
func (l *Logger) WithRule(rule Rule) *Logger {
	return &Logger{
		Logger: l.Logger.With("rule", rule.String()),
	}
}

// WithFrame adds the frame labels to the logger.
func (l *Logger) WithFrame(labels []string) *Logger {
	return &Logger{
		Logger: l.Logger.With("frame", labels),
	}
}

// WithCount adds a count field to the logger. Multisource fusion uses it for
// the position of the source being folded in.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogCombine logs a pairwise rule evaluation.
func (l *Logger) LogCombine(ctx context.Context, rule Rule, proposition string, value float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "combination failed",
			"rule", rule.String(),
			"proposition", proposition,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "combination completed",
			"rule", rule.String(),
			"proposition", proposition,
			"mass", value,
		)
	}
}

// LogConflict logs the conflict between two sources.
// Total conflict is reported as a warning since Dempster's rule is undefined there.
func (l *Logger) LogConflict(ctx context.Context, k float64, total bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "conflict computation failed",
			"operation", "conflict",
			"error", err,
		)
	case total:
		l.WarnContext(ctx, "total conflict between sources",
			"conflict", k,
		)
	default:
		l.DebugContext(ctx, "conflict computed",
			"conflict", k,
		)
	}
}

// LogFusion logs a multisource fusion.
func (l *Logger) LogFusion(ctx context.Context, rule Rule, sources, focal int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "multisource fusion failed",
			"rule", rule.String(),
			"sources", sources,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "multisource fusion completed",
			"rule", rule.String(),
			"sources", sources,
			"focal_elements", focal,
		)
	}
}

// LogUpdate logs one CUE update step together with the resulting intervals.
func (l *Logger) LogUpdate(ctx context.Context, step int, intervals map[string]Interval, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"step", step,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update completed",
			"step", step,
			"uncertainties", intervals,
		)
	}
}
