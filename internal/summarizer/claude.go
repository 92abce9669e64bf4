package summarizer

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/digest-flow/pkg/executor"
)

// claudeBackend runs the desktop assistant CLI in non-interactive print mode
type claudeBackend struct {
	path     string
	executor executor.Executor
}

func newClaudeBackend(path string, exec executor.Executor) *claudeBackend {
	return &claudeBackend{path: path, executor: exec}
}

func (c *claudeBackend) Name() string {
	return "claude"
}

func (c *claudeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if _, err := c.executor.LookPath(c.path); err != nil {
		return "", fmt.Errorf("claude CLI unavailable: %w", err)
	}

	// prompts can exceed the kernel's per-argument limit, print mode reads stdin
	out, err := c.executor.ExecuteWithInput(ctx, prompt, c.path, "--print")
	if err != nil {
		return "", err
	}
	return out, nil
}
