package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMalformed marks a configuration file that could not be used.
// Load still returns the built-in defaults alongside it.
var ErrMalformed = errors.New("malformed configuration")

// Load reads the YAML file at path over the defaults. A missing file yields the defaults and no
// error. An unreadable, unparsable or invalid file yields the defaults and an
// error wrapping ErrMalformed, which callers should log as a warning.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: read %s: %v", ErrMalformed, path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("%w: parse %s: %v", ErrMalformed, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	return cfg, nil
}

// LoadEnv loads the .env file (if present) into the process environment
// without overriding variables that are already set, then reads the email
// and API key settings.
func (c *Config) LoadEnv() error {
	if err := godotenv.Load(c.Paths.Env); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", c.Paths.Env, err)
	}

	c.Email = EmailConfig{
		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   envInt("SMTP_PORT", 587),
		From:       os.Getenv("EMAIL_FROM"),
		Password:   os.Getenv("EMAIL_PASSWORD"),
		To:         os.Getenv("EMAIL_TO"),
	}

	if keys := splitList(os.Getenv("GEMINI_API_KEYS")); len(keys) > 0 {
		c.Summarizer.APIKeys = keys
	} else if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		c.Summarizer.APIKeys = []string{key}
	}

	return nil
}

func envInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
