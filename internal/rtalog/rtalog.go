// Package rtalog wraps log/slog with the ability to fan a single logger out
// to several handlers at once, the way the teacher's pkg/log/multislogger
// lets the CLI entrypoint attach a text handler on stderr while a test
// harness attaches an in-memory handler for assertions.
package rtalog

import (
	"context"
	"log/slog"
)

// MultiSlogger is a slog.Handler that forwards every record to a set of
// delegate handlers, plus a *slog.Logger built on top of it. Handlers can be
// added after construction, e.g. once verbosity is known.
type MultiSlogger struct {
	Logger   *slog.Logger
	handlers []slog.Handler
}

// New creates a MultiSlogger with no handlers attached. Logging calls are
// silently dropped until a handler is added via AddHandler.
func New() *MultiSlogger {
	m := &MultiSlogger{}
	m.Logger = slog.New(m)
	return m
}

// AddHandler attaches another handler that will receive every future record.
func (m *MultiSlogger) AddHandler(h slog.Handler) {
	m.handlers = append(m.handlers, h)
}

func (m *MultiSlogger) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiSlogger) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSlogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &MultiSlogger{}
	for _, h := range m.handlers {
		clone.handlers = append(clone.handlers, h.WithAttrs(attrs))
	}
	return clone
}

func (m *MultiSlogger) WithGroup(name string) slog.Handler {
	clone := &MultiSlogger{}
	for _, h := range m.handlers {
		clone.handlers = append(clone.handlers, h.WithGroup(name))
	}
	return clone
}

// Level returns slog.LevelDebug when verbose is true, else slog.LevelInfo --
// the two verbosity levels spec.md's error-handling design calls for.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
