// Package logging wraps log/slog with the field names used across kquant.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with quantizer-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler on stderr at info level.
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

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger that writes JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// New builds a logger from command line style names. format is "text" or
// "json"; level is debug, info, warn or error.
func New(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextLogger(w, lvl), nil
	case "json":
		return NewJSONLogger(w, lvl), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// WithK adds the cluster count.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithMetric adds the metric name and exponent.
func (l *Logger) WithMetric(metric string, p float64) *Logger {
	return &Logger{Logger: l.Logger.With("metric", metric, "p", p)}
}

// LogInit logs centroid seeding.
func (l *Logger) LogInit(ctx context.Context, pixels int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "init failed", "pixels", pixels, "error", err)
		return
	}
	l.DebugContext(ctx, "centroids seeded", "pixels", pixels, "elapsed", elapsed)
}

// LogIteration logs one refinement pass.
func (l *Logger) LogIteration(ctx context.Context, iteration, empty int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "iteration failed", "iteration", iteration, "error", err)
		return
	}
	if empty > 0 {
		l.WarnContext(ctx, "iteration left clusters empty",
			"iteration", iteration,
			"empty", empty,
			"elapsed", elapsed,
		)
		return
	}
	l.DebugContext(ctx, "iteration completed", "iteration", iteration, "elapsed", elapsed)
}

// LogRender logs rendering.
func (l *Logger) LogRender(ctx context.Context, mode string, width, height int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "render failed", "mode", mode, "error", err)
		return
	}
	l.InfoContext(ctx, "render completed",
		"mode", mode,
		"width", width,
		"height", height,
		"elapsed", elapsed,
	)
}

// LogRun logs a whole clustering run.
func (l *Logger) LogRun(ctx context.Context, pixels, iterations int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed", "pixels", pixels, "error", err)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"pixels", pixels,
		"iterations", iterations,
		"elapsed", elapsed,
	)
}
