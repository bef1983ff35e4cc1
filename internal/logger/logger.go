// Package logger provides the process-wide structured logger.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
)

var (
	mu  sync.RWMutex
	log = newLogger(Options{})
)

// Options configures the process logger.
type Options struct {
	// Level is the minimum level to emit: debug, info, warn, or error.
	// Defaults to info.
	Level string

	// File is an optional log file; when set, output also goes to a
	// size-rotated file instead of stderr only.
	File string

	// MaxSizeMB and MaxBackups tune file rotation.
	MaxSizeMB  int
	MaxBackups int
}

// Initialize replaces the default logger with one built from the options.
func Initialize(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(opts)
}

func newLogger(opts Options) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	level := parseLevel(opts.Level)

	// stderr keeps stdout clean for commands that print data.
	sink := zapcore.Lock(os.Stderr)

	cores := []zapcore.Core{zapcore.NewCore(encoder, sink, level)}
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = defaultMaxBackups
		}
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		})
		cores = append(cores, zapcore.NewCore(encoder, rotated, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCallerSkip(1)).Sugar()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync flushes buffered log entries.
func Sync() error {
	return current().Sync()
}

// Debug logs a message at debug level.
func Debug(args ...any) { current().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { current().Debugf(format, args...) }

// Info logs a message at info level.
func Info(args ...any) { current().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { current().Infof(format, args...) }

// Warn logs a message at warn level.
func Warn(args ...any) { current().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) { current().Warnf(format, args...) }

// Error logs a message at error level.
func Error(args ...any) { current().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { current().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }
