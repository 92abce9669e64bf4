package logger

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.level))
		})
	}
}

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    logrus.Level
		enabled     bool
	}{
		{"debug logs at debug level", "debug", logrus.DebugLevel, true},
		{"info logs at debug level", "debug", logrus.InfoLevel, true},
		{"debug doesn't log at info level", "info", logrus.DebugLevel, false},
		{"info logs at info level", "info", logrus.InfoLevel, true},
		{"error always logs", "debug", logrus.ErrorLevel, true},
		{"invalid config level defaults to info", "bogus", logrus.DebugLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			assert.Equal(t, tt.enabled, log.logger.IsLevelEnabled(tt.logLevel))
		})
	}
}

func TestSetLevel(t *testing.T) {
	log := New("info").(*implLogger)
	require.False(t, log.logger.IsLevelEnabled(logrus.DebugLevel))

	log.SetLevel("debug")
	assert.True(t, log.logger.IsLevelEnabled(logrus.DebugLevel))
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("info", &buf)

	ctx := WithFields(context.Background(), map[string]interface{}{"id": "aud_3f9a21bc_20250601"})
	ctx = WithFields(ctx, map[string]interface{}{"stage": "transcribe"})
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	assert.Contains(t, out, "formatted message: test 123")
	assert.Contains(t, out, "id=aud_3f9a21bc_20250601")
	assert.Contains(t, out, "stage=transcribe")
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "digest.log")

	log, err := NewWithFile("info", path)
	require.NoError(t, err)
	log.Info(context.Background(), "hello file")

	assert.FileExists(t, path)
}
