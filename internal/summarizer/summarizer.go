package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
)

// minLanguageSample is the shortest transcript worth running language detection on
const minLanguageSample = 40

// Summarize builds the prompt, calls the backend and prepends the metadata header
func (s *implSummarizer) Summarize(ctx context.Context, req Request) (string, error) {
	const op = "summarizer.Summarize"

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return "", apperrors.SummarizationFailed(op, nil, "transcript is empty")
	}

	truncated, cut := truncate(transcript, s.maxChars)
	if cut {
		s.logger.Warn(ctx, "Transcript truncated to %d characters for summarisation", s.maxChars)
	}

	language := detectLanguage(transcript)
	prompt := buildPrompt(s.profile, req.Kind, language, req.Instruction, truncated)

	s.logger.Info(ctx, "Generating summary with %s...", s.backend.Name())
	startTime := time.Now()

	answer, err := s.backend.Generate(ctx, prompt)
	if err != nil {
		return "", apperrors.SummarizationFailed(op, err, s.backend.Name()+" summarisation failed")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", apperrors.SummarizationFailed(op, nil, s.backend.Name()+" returned an empty summary")
	}

	s.logger.Info(ctx, "Summary generated in %s", time.Since(startTime).Round(time.Second))

	header := Header{
		ID:       req.ID,
		Source:   req.Source,
		Kind:     req.Kind.String(),
		Language: language,
		Date:     s.now(),
	}
	return header.Render() + answer + "\n", nil
}

// truncate keeps the first max runes of s; max <= 0 disables truncation
func truncate(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// detectLanguage returns the ISO 639-1 code of the transcript, "" if unsure
func detectLanguage(text string) string {
	if len(text) < minLanguageSample {
		return ""
	}
	sample, _ := truncate(text, 4000)
	info := whatlanggo.Detect(sample)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}

// Header is the front matter written above every summary
type Header struct {
	ID       string
	Source   string
	Kind     string
	Language string
	Date     time.Time
}

func (h Header) Render() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "ID: %s\n", h.ID)
	fmt.Fprintf(&b, "URL: %s\n", h.Source)
	if h.Kind != "" {
		fmt.Fprintf(&b, "Kind: %s\n", h.Kind)
	}
	if h.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", h.Language)
	}
	fmt.Fprintf(&b, "Date: %s\n", h.Date.Format("2006-01-02 15:04"))
	b.WriteString("---\n\n")
	return b.String()
}

// StripHeader removes the front matter from a rendered summary
func StripHeader(summary string) string {
	if !strings.HasPrefix(summary, "---\n") {
		return summary
	}
	rest := summary[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return summary
	}
	return strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
}
