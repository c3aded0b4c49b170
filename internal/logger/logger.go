package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog.Logger with additional functionality
type Logger struct {
	zerolog.Logger
	level zerolog.Level
	runID string
}

// Config represents logger configuration
type Config struct {
	// Log level (debug, info, warn, error)
	Level string `toml:"level"`

	// Output destination: stderr, stdout, discard, or a file path.
	// stdout is allowed but collides with the picker result.
	Output string `toml:"output"`

	// Colored console output (stdout/stderr only)
	Color bool `toml:"color"`

	// Enable timestamp in logs
	Timestamp bool `toml:"timestamp"`

	// Enable caller information (file:line)
	Caller bool `toml:"caller"`

	// Rotation settings, file output only
	MaxSize    int  `toml:"max_size_mb"`
	MaxBackups int  `toml:"max_backups"`
	MaxAge     int  `toml:"max_age_days"`
	Compress   bool `toml:"compress"`
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      "error",
		Output:     "discard",
		Color:      false,
		Timestamp:  true,
		Caller:     false,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
	rotator      *lumberjack.Logger
)

// Init initializes the global logger with the provided configuration
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}

	output, fileOut, err := openOutput(config)
	if err != nil {
		return err
	}

	if !fileOut && config.Color && output != io.Discard {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	runID := uuid.NewString()
	zl := zerolog.New(output).Level(level).With().Str("run_id", runID).Logger()
	if config.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if config.Caller {
		zl = zl.With().Caller().Logger()
	}

	globalMu.Lock()
	globalLogger = &Logger{Logger: zl, level: level, runID: runID}
	globalMu.Unlock()

	log.Logger = zl
	return nil
}

func openOutput(config *Config) (io.Writer, bool, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	switch config.Output {
	case "", "discard":
		return io.Discard, false, nil
	case "stdout":
		return os.Stdout, false, nil
	case "stderr":
		return os.Stderr, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(config.Output), 0755); err != nil {
		return nil, false, fmt.Errorf("failed to create log directory: %w", err)
	}
	rotator = &lumberjack.Logger{
		Filename:   config.Output,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
	return rotator, true, nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.Lock()
	l := globalLogger
	globalMu.Unlock()
	if l == nil {
		_ = Init(DefaultConfig())
		globalMu.Lock()
		l = globalLogger
		globalMu.Unlock()
	}
	return l
}

// AddHook attaches h to the global logger. A nil hook is ignored.
func AddHook(h zerolog.Hook) {
	if h == nil {
		return
	}
	l := GetLogger()

	globalMu.Lock()
	hooked := &Logger{Logger: l.Logger.Hook(h), level: l.level, runID: l.runID}
	globalLogger = hooked
	globalMu.Unlock()

	log.Logger = hooked.Logger
}

// RunID identifies this process in log lines and error reports.
func (l *Logger) RunID() string { return l.runID }

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With().Interface(key, value).Logger(),
		level:  l.level,
		runID:  l.runID,
	}
}

// WithError adds an error field to the logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With().Err(err).Logger(),
		level:  l.level,
		runID:  l.runID,
	}
}

// WithComponent adds a component field for structured logging
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With().Str("component", component).Logger(),
		level:  l.level,
		runID:  l.runID,
	}
}

// Performance logs how long an operation took.
func (l *Logger) Performance(operation string, duration time.Duration, fields map[string]interface{}) {
	evt := l.Debug().
		Str("perf_operation", operation).
		Dur("duration", duration)

	for key, value := range fields {
		evt = evt.Interface(key, value)
	}
	evt.Msg("performance metric")
}

// WithComponent returns the global logger tagged with component.
func WithComponent(component string) *Logger {
	return GetLogger().WithComponent(component)
}

// WithError returns the global logger carrying err.
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
