package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	YtDlp      YtDlpConfig      `yaml:"ytdlp"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Profile    ProfileConfig    `yaml:"profile"`
	Detect     DetectConfig     `yaml:"detect"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`

	// Email is read from .env and the environment, never from the YAML file
	Email EmailConfig `yaml:"-"`
}

type PathsConfig struct {
	Base string `yaml:"base"`
	Env  string `yaml:"env_file"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type YtDlpConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioQuality string `yaml:"audio_quality"`
	SubLangs     string `yaml:"sub_langs"`
}

type SummarizerConfig struct {
	Backend    string   `yaml:"backend"`
	ClaudePath string   `yaml:"claude_path"`
	Model      string   `yaml:"model"`
	MaxChars   int      `yaml:"max_chars"`
	APIKeys    []string `yaml:"api_keys"`
}

// ProfileConfig describes the reader the summaries are written for
type ProfileConfig struct {
	Role       string          `yaml:"role"`
	Interests  []string        `yaml:"interests"`
	Goals      []string        `yaml:"goals"`
	Formatting FormattingPrefs `yaml:"formatting"`
}

type FormattingPrefs struct {
	KeyPoints     int    `yaml:"key_points"`
	Quotes        int    `yaml:"quotes"`
	Tone          string `yaml:"tone"`
	IncludeRating bool   `yaml:"include_rating"`
}

type DetectConfig struct {
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	From       string
	Password   string
	To         string
}

// Enabled reports whether every setting needed for delivery is present
func (e EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.From != "" && e.Password != "" && e.To != ""
}

const (
	BackendClaude = "claude"
	BackendGemini = "gemini"
)

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		Profile: ProfileConfig{
			Role:      "startup founder",
			Interests: []string{"technology", "entrepreneurship", "product strategy"},
			Goals:     []string{"find actionable tactics", "track notable people and companies"},
			Formatting: FormattingPrefs{
				IncludeRating: true,
			},
		},
	}
	// Validate only fills defaults on an empty config
	_ = cfg.Validate()
	return cfg
}

// Validate fills defaults for unset fields and rejects invalid values
func (c *Config) Validate() error {
	c.Summarizer.Backend = strings.ToLower(strings.TrimSpace(c.Summarizer.Backend))
	switch c.Summarizer.Backend {
	case "":
		c.Summarizer.Backend = BackendClaude
	case BackendClaude, BackendGemini:
	default:
		return fmt.Errorf("summarizer.backend must be %q or %q, got %q", BackendClaude, BackendGemini, c.Summarizer.Backend)
	}
	if c.Summarizer.MaxChars < 0 {
		return fmt.Errorf("summarizer.max_chars must not be negative")
	}
	if c.Whisper.Threads < 0 {
		return fmt.Errorf("whisper.threads must not be negative")
	}

	if c.Paths.Base == "" {
		c.Paths.Base = "."
	}
	if c.Paths.Env == "" {
		c.Paths.Env = ".env"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = "models/ggml-base.bin"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.AudioQuality == "" {
		c.YtDlp.AudioQuality = "192K"
	}
	if c.YtDlp.SubLangs == "" {
		c.YtDlp.SubLangs = "en.*,en"
	}
	if c.Summarizer.ClaudePath == "" {
		c.Summarizer.ClaudePath = "~/.claude/local/claude"
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "gemini-2.5-flash"
	}
	if c.Summarizer.MaxChars == 0 {
		c.Summarizer.MaxChars = 50000
	}
	if c.Profile.Formatting.KeyPoints == 0 {
		c.Profile.Formatting.KeyPoints = 8
	}
	if c.Profile.Formatting.Quotes == 0 {
		c.Profile.Formatting.Quotes = 5
	}
	if c.Profile.Formatting.Tone == "" {
		c.Profile.Formatting.Tone = "concise and specific"
	}
	if c.Detect.ProbeTimeout <= 0 {
		c.Detect.ProbeTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
