package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps zl.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return NewZerologLogger(zerolog.Nop())
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) { l.emit(l.zl.Debug(), msg, fields) }

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) { l.emit(l.zl.Info(), msg, fields) }

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) { l.emit(l.zl.Warn(), msg, fields) }

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) { l.emit(l.zl.Error(), msg, fields) }

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(pairs(fields)).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

// WarnFunc returns a function suitable for errors.SetZerologWarnFunc.
// Warnings that implement zerolog.LogObjectMarshaler are embedded as objects.
func (l *ZerologLogger) WarnFunc() func(error) {
	return func(w error) {
		e := l.zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			e = e.EmbedObject(m)
		}
		e.Msg(w.Error())
	}
}

func (l *ZerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = withError(e, err)
			fields = fields[1:]
		}
	}
	e.Fields(pairs(fields)).Msg(msg)
}

func withError(e *zerolog.Event, err error) *zerolog.Event {
	e = e.AnErr(ErrorKey, err)
	var m zerolog.LogObjectMarshaler
	if errors.As(err, &m) {
		e = e.Object("error.detail", m)
	}
	if st := extractStacktrace(err); st != "" {
		e = e.Str(StacktraceKey, st)
	}
	return e
}

// pairs drops a trailing key without a value, which zerolog would reject.
func pairs(fields []any) []any {
	if len(fields)%2 != 0 {
		return fields[:len(fields)-1]
	}
	return fields
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q", s)
	}
}

// ZerologProvider implements LoggerProvider on top of a shared zerolog writer.
type ZerologProvider struct {
	mu   sync.RWMutex
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing JSON lines to w.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{
		base: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.base)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.base.With().Str(ComponentKey, name).Logger())
}

// SetLevel implements LoggerProvider.SetLevel. Loggers handed out earlier
// keep their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(toZerologLevel(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelInfo)
)

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger of the process-wide provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component logger of the process-wide provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
