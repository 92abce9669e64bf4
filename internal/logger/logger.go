package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

type implLogger struct {
	logger *logrus.Logger
}

// New creates a Logger writing to stdout
func New(level string) Logger {
	return newLogger(level, os.Stdout)
}

// NewWithFile creates a Logger writing to stdout and to a rotated log file
func NewWithFile(level, path string) (Logger, error) {
	if path == "" {
		return New(level), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	return newLogger(level, io.MultiWriter(os.Stdout, file)), nil
}

func newLogger(level string, out io.Writer) *implLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	impl := &implLogger{logger: l}
	impl.SetLevel(level)
	return impl
}

// WithFields returns a context whose log lines carry the given fields
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	merged := logrus.Fields{}
	if existing, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, merged)
}

// SetLevel changes the minimum level; unknown names mean info
func (l *implLogger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.logger.SetLevel(lvl)
}

func (l *implLogger) entry(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if fields, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
			return l.logger.WithFields(fields)
		}
	}
	return logrus.NewEntry(l.logger)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx).Errorf(msg, args...)
}
