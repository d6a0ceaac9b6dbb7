// Package logging provides a thin leveled wrapper around zap used by every
// solver, model and tuner in nanogo.
package logging

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors the four levels the rest of the toolkit cares about.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// LevelFromString parses the canonical and a couple of forgiving spellings.
func LevelFromString(s string) (Level, error) {
	switch s {
	case "Debug", "debug", "DEBUG":
		return DEBUG, nil
	case "Info", "info", "INFO":
		return INFO, nil
	case "Warn", "warn", "WARN", "Warning", "warning", "WARNING":
		return WARN, nil
	case "Error", "error", "ERROR":
		return ERROR, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
}

// MarshalJSON satisfies json.Marshaler.
func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON satisfies json.Unmarshaler.
func (l *Level) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("logging: level must be a JSON string, got %q", data)
	}
	parsed, err := LevelFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Logger is the interface every nanogo component accepts. Solver and
// constrained-driver Minimize methods replace a nil Logger with
// NopLogger(), the zero-config, silently-discarding default.
type Logger interface {
	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)
	Sublogger(name string) Logger
}

type zapLogger struct {
	z *zap.SugaredLogger
}

// NewLogger builds a production Logger named name, logging at INFO and above.
func NewLogger(name string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	z, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op core rather than panicking from a logging
		// constructor.
		z = zap.NewNop()
	}
	return &zapLogger{z: z.Named(name).Sugar()}
}

// NewTestLogger builds a DEBUG-level Logger with zap's development config
// (writing to stderr) and syncs it when t finishes.
func NewTestLogger(t testing.TB) Logger {
	z := zap.NewNop()
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	if built, err := cfg.Build(); err == nil {
		z = built
	}
	l := &zapLogger{z: z.Sugar()}
	t.Cleanup(func() { _ = z.Sync() })
	return l
}

// NopLogger discards everything; the default when no Logger is supplied.
func NopLogger() Logger {
	return &zapLogger{z: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugw(msg string, kv ...any) { l.z.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...any)  { l.z.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...any)  { l.z.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...any) { l.z.Errorw(msg, kv...) }

func (l *zapLogger) Sublogger(name string) Logger {
	return &zapLogger{z: l.z.Named(name)}
}
