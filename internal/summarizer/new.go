package summarizer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor"
)

type implSummarizer struct {
	backend  backend
	profile  config.ProfileConfig
	maxChars int
	logger   logger.Logger
	now      func() time.Time
}

// New creates a Summarizer using the backend named in cfg.Summarizer
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Summarizer {
	var b backend
	switch cfg.Summarizer.Backend {
	case config.BackendGemini:
		b = newGeminiBackend(cfg.Summarizer.APIKeys, cfg.Summarizer.Model, log)
	default:
		b = newClaudeBackend(expandHome(cfg.Summarizer.ClaudePath), exec)
	}
	return newWithBackend(b, cfg, log)
}

func newWithBackend(b backend, cfg *config.Config, log logger.Logger) *implSummarizer {
	return &implSummarizer{
		backend:  b,
		profile:  cfg.Profile,
		maxChars: cfg.Summarizer.MaxChars,
		logger:   log,
		now:      time.Now,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
