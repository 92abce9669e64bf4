package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"google.golang.org/genai"
)

// geminiBackend calls the Gemini API, rotating through API keys on quota errors
type geminiBackend struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

func newGeminiBackend(apiKeys []string, model string, log logger.Logger) *geminiBackend {
	return &geminiBackend{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (g *geminiBackend) Name() string {
	return "gemini (" + g.model + ")"
}

func (g *geminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or GEMINI_API_KEYS)")
	}

	var lastErr error
	for range len(g.apiKeys) {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if text := responseText(result); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiBackend) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
