// Package logs configures the process logger: a console core on stderr and,
// when a file is configured, a rotated JSON core written through lumberjack.
package logs

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, colour and file rotation.
type Config struct {
	Level      string // debug|info|warn|error, default info
	File       string // empty disables the file core
	MaxSize    int    // megabytes, at least 1
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Color      bool
	Dev        bool
	// Console overrides stderr, mainly for tests.
	Console io.Writer
}

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// New builds a logger named name from cfg.
func New(name string, cfg Config) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.Color {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	var console io.Writer = os.Stderr
	if cfg.Console != nil {
		console = cfg.Console
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(console)), atomicLevel)

	// the file never receives ANSI colour codes
	if cfg.File != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotated), atomicLevel))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	return zap.New(core, opts...).Named(name), nil
}

// Init builds a logger and installs it as the package logger.
func Init(name string, cfg Config) error {
	l, err := New(name, cfg)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set installs l as the package logger; nil installs a no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	if prev := current.Swap(l); prev != nil {
		_ = prev.Sync() //nolint:errcheck
	}
}

// L returns the package logger.
func L() *zap.Logger { return current.Load() }

// Sync flushes the package logger.
func Sync() error { return L().Sync() }

// Debug logs at debug level on the package logger.
func Debug(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

// Info logs at info level on the package logger.
func Info(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

// Warn logs at warn level on the package logger.
func Warn(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

// Error logs at error level on the package logger.
func Error(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}
