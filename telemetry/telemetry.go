// Package telemetry provides the simulator's optional structured-logging
// seam: a small Logger interface every kernel package accepts, a no-op
// default, and a production implementation backed by logiface and its
// stumpy zero-allocation JSON encoder.
//
// Logging is never on the correctness path (spec errors propagate by
// returning/raising, not by being logged) — it exists purely for observing
// a run, so a nil Logger or NoOp() must always be safe to use.
package telemetry

import (
	"io"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

// Level mirrors the small set of severities the kernel actually emits.
// It maps onto logiface's syslog-style levels in NewLogiface.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns a short uppercase name for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field is a single structured key/value pair attached to a log event.
type Field struct {
	Key   string
	Value any
}

// F is a convenience constructor for Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Logger is the structured-logging seam accepted by schedule, wire, and
// sram. Category groups related events the way the teacher's
// eventloop.LogEntry.Category does ("scheduler", "net", "sram").
//
// The WithLogger options of schedule, wire, and sram ignore a nil Logger and
// keep NoOp(), so callers never need to supply one.
type Logger interface {
	// Enabled reports whether an event at level would be recorded. Callers
	// use this to skip building expensive field lists.
	Enabled(level Level) bool

	// Event records one structured log entry.
	Event(level Level, category, message string, fields ...Field)
}

// noopLogger discards everything; it is the default when no Logger is
// configured, so instrumentation never has a nil-check cost at call sites
// beyond a single interface method call.
type noopLogger struct{}

func (noopLogger) Enabled(Level) bool { return false }

func (noopLogger) Event(Level, string, string, ...Field) {}

// NoOp returns the zero-overhead default Logger.
func NoOp() Logger { return noopLogger{} }

// logifaceLogger adapts a logiface.Logger[*stumpy.Event] to Logger.
type logifaceLogger struct {
	inner *logiface.Logger[*stumpy.Event]
}

// NewLogiface returns a Logger that writes newline-delimited JSON to w using
// the pack's own logiface + stumpy structured-logging stack.
func NewLogiface(w io.Writer) Logger {
	return &logifaceLogger{
		inner: logiface.New[*stumpy.Event](
			stumpy.WithStumpy(stumpy.WithWriter(w)),
		),
	}
}

func toLogifaceLevel(level Level) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

func (l *logifaceLogger) Enabled(level Level) bool {
	return toLogifaceLevel(level) <= l.inner.Level()
}

func (l *logifaceLogger) Event(level Level, category, message string, fields ...Field) {
	var b *logiface.Builder[*stumpy.Event]
	switch level {
	case LevelDebug:
		b = l.inner.Debug()
	case LevelWarn:
		b = l.inner.Warning()
	case LevelError:
		b = l.inner.Err()
	default:
		b = l.inner.Info()
	}
	b = b.Str("category", category)
	for _, f := range fields {
		b = b.Field(f.Key, f.Value)
	}
	b.Log(message)
}
