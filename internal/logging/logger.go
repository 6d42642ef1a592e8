// Package logging provides structured logging for go-dramsim, backed by zerolog.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the available log levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
	// JSON selects raw JSON-lines output instead of the human-readable
	// console writer. Batch runs that pipe stats elsewhere want JSON.
	JSON bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger wraps a zerolog.Logger with the key-value call shape the rest
// of the codebase uses: Info(msg, "k1", v1, "k2", v2, ...).
type Logger struct {
	zl    zerolog.Logger
	mu    sync.Mutex
	level LogLevel
}

// NewLogger creates a new logger from the given config (nil uses defaults).
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	var w io.Writer = output
	if !config.JSON {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(w).Level(config.Level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl, level: config.Level}
}

func (l *Logger) event(level LogLevel, msg string, kv []any) {
	var ev *zerolog.Event
	switch level {
	case LevelDebug:
		ev = l.zl.Debug()
	case LevelWarn:
		ev = l.zl.Warn()
	case LevelError:
		ev = l.zl.Error()
	default:
		ev = l.zl.Info()
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}

func (l *Logger) Debug(msg string, kv ...any) { l.event(LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.event(LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.event(LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.event(LevelError, msg, kv) }

// With returns a child logger with the given key-value pairs attached
// to every subsequent event, e.g. per-channel or per-rank loggers.
func (l *Logger) With(kv ...any) *Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, kv[i+1])
	}
	return &Logger{zl: ctx.Logger(), level: l.level}
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// Default returns the package default logger, creating it lazily.
func Default() *Logger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defer defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault sets the package default logger.
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

func Debug(msg string, kv ...any) { Default().Debug(msg, kv...) }
func Info(msg string, kv ...any)  { Default().Info(msg, kv...) }
func Warn(msg string, kv ...any)  { Default().Warn(msg, kv...) }
func Error(msg string, kv ...any) { Default().Error(msg, kv...) }
