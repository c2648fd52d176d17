// Package log carries the slog logger of a render through its context. The CLI installs
// one writing to stderr and mcdlib names it "compile" before logging skipped legs and
// mode counts through it.
package log

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"testing"
	"time"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"cdr.dev/slog/sloggers/slogtest"

	"oss.terrastruct.com/mcd/lib/env"
)

var _default = slog.Make(sloghuman.Sink(os.Stderr)).Named("default")

type loggerKey struct{}

func from(ctx context.Context) slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(slog.Logger)
	if !ok {
		_default.Warn(ctx, "missing slog.Logger in context, see lib/log.With", slog.F("stack", string(debug.Stack())))
		return _default
	}
	return l
}

// With returns ctx carrying l. Every helper in this package logs to the logger of its ctx.
func With(ctx context.Context, l slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Make returns a human readable logger writing to w, at debug level when debug is set.
// mcd -d turns on debug so the per-association layout details show up.
func Make(w io.Writer, debug bool) slog.Logger {
	l := slog.Make(sloghuman.Sink(w))
	if debug {
		l = l.Leveled(slog.LevelDebug)
	}
	return l
}

// WithTB calls With with the result of slogtest.Make. DEBUG raises it to debug level.
func WithTB(ctx context.Context, t testing.TB, opts *slogtest.Options) context.Context {
	l := slogtest.Make(t, opts)
	if env.Debug() {
		l = l.Leveled(slog.LevelDebug)
	}
	return With(ctx, l)
}

func Debug(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Debug(ctx, msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Info(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Warn(ctx, msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	from(ctx).Error(ctx, msg, fields...)
}

// Named prefixes every later entry with name, e.g. the pipeline stage that logged it.
func Named(ctx context.Context, name string) context.Context {
	return With(ctx, from(ctx).Named(name))
}

func Leveled(ctx context.Context, level slog.Level) context.Context {
	return With(ctx, from(ctx).Leveled(level))
}

// WithTimeout bounds a single render. MCD_TIMEOUT, in seconds, overrides timeout and a
// non positive result means no deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	t := timeout
	if seconds, has := env.Timeout(); has {
		t = time.Duration(seconds) * time.Second
	}
	if t <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, t)
}
