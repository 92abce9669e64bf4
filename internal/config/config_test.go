package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "gemini backend",
			config:  Config{Summarizer: SummarizerConfig{Backend: "Gemini"}},
			wantErr: false,
		},
		{
			name:    "unknown backend",
			config:  Config{Summarizer: SummarizerConfig{Backend: "carrier-pigeon"}},
			wantErr: true,
		},
		{
			name:    "negative max chars",
			config:  Config{Summarizer: SummarizerConfig{MaxChars: -1}},
			wantErr: true,
		},
		{
			name:    "negative threads",
			config:  Config{Whisper: WhisperConfig{Threads: -4}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tt.config.Whisper.BinaryPath)
			assert.Equal(t, 50000, tt.config.Summarizer.MaxChars)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendClaude, cfg.Summarizer.Backend)
	assert.Equal(t, ".", cfg.Paths.Base)
	assert.Equal(t, 10*time.Second, cfg.Detect.ProbeTimeout)
	assert.NotEmpty(t, cfg.Profile.Role)
	assert.True(t, cfg.Profile.Formatting.IncludeRating)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
paths:
  base: "data"

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"
  threads: 4

summarizer:
  backend: gemini
  max_chars: 1200

profile:
  role: "staff engineer"
  interests: ["distributed systems", "databases"]
  formatting:
    include_rating: false

detect:
  probe_timeout: 3s

logging:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.Base)
	assert.Equal(t, "models/test.bin", cfg.Whisper.ModelPath)
	assert.Equal(t, 4, cfg.Whisper.Threads)
	assert.Equal(t, BackendGemini, cfg.Summarizer.Backend)
	assert.Equal(t, 1200, cfg.Summarizer.MaxChars)
	assert.Equal(t, "staff engineer", cfg.Profile.Role)
	assert.Equal(t, []string{"distributed systems", "databases"}, cfg.Profile.Interests)
	assert.False(t, cfg.Profile.Formatting.IncludeRating)
	assert.Equal(t, 3*time.Second, cfg.Detect.ProbeTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched sections keep their defaults
	assert.Equal(t, "yt-dlp", cfg.YtDlp.BinaryPath)
	assert.NotEmpty(t, cfg.Profile.Goals)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "whisper: [unclosed\n  model_path: x"},
		{"wrong type", "whisper:\n  threads: many\n"},
		{"invalid value", "summarizer:\n  backend: carrier-pigeon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			require.NotNil(t, cfg)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(`
SMTP_SERVER=smtp.example.com
SMTP_PORT=2525
EMAIL_FROM="me@example.com"
EMAIL_PASSWORD='app-password'
EMAIL_TO=you@example.com
GEMINI_API_KEYS=key-one, key-two
`), 0644))

	for _, key := range []string{"SMTP_SERVER", "SMTP_PORT", "EMAIL_FROM", "EMAIL_PASSWORD", "EMAIL_TO", "GEMINI_API_KEYS", "GEMINI_API_KEY"} {
		unsetEnv(t, key)
	}

	cfg := Default()
	cfg.Paths.Env = envFile
	require.NoError(t, cfg.LoadEnv())

	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPServer)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
	assert.Equal(t, "me@example.com", cfg.Email.From)
	assert.Equal(t, "app-password", cfg.Email.Password)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.Summarizer.APIKeys)
}

func TestLoadEnvIncompleteDisablesEmail(t *testing.T) {
	for _, key := range []string{"SMTP_SERVER", "SMTP_PORT", "EMAIL_FROM", "EMAIL_PASSWORD", "EMAIL_TO"} {
		unsetEnv(t, key)
	}
	t.Setenv("SMTP_SERVER", "smtp.example.com")

	cfg := Default()
	cfg.Paths.Env = filepath.Join(t.TempDir(), "missing.env")
	require.NoError(t, cfg.LoadEnv())

	assert.False(t, cfg.Email.Enabled())
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

// unsetEnv clears key for the duration of the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
