// Package logging provides slog helpers: a fan-out handler and a
// context-carried request logger.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Fanout combines several slog handlers into one. Nil handlers are skipped;
// with no usable handler the result discards everything.
func Fanout(handlers ...slog.Handler) slog.Handler {
	usable := make(fanout, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			usable = append(usable, h)
		}
	}
	if len(usable) == 0 {
		return slog.NewTextHandler(io.Discard, nil)
	}
	return usable
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var err error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		err = errors.Join(err, h.Handle(ctx, record.Clone()))
	}
	return err
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
