package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor/executortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	prompts []string
	answer  string
	err     error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

const englishText = "Today we talk with the founder of a small software company about how they found " +
	"their first customers, why they decided not to raise venture capital, and what they learned " +
	"about hiring engineers during the first two years of running the business."

func newTestSummarizer(b backend, maxChars int) *implSummarizer {
	cfg := config.Default()
	cfg.Summarizer.MaxChars = maxChars
	s := newWithBackend(b, cfg, logger.New("error"))
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local) }
	return s
}

func TestSummarize(t *testing.T) {
	b := &fakeBackend{answer: "TITLE: Bootstrapping\n\n## Key Points\n- Customers first\n"}
	s := newTestSummarizer(b, 50000)

	out, err := s.Summarize(context.Background(), Request{
		ID:          "pod_b3780671_20250601",
		Source:      "https://pca.st/episode/abc",
		Kind:        content.Podcast,
		Transcript:  englishText,
		Instruction: "focus on hiring",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "---\nID: pod_b3780671_20250601\nURL: https://pca.st/episode/abc\nKind: podcast\n"))
	assert.Contains(t, out, "Date: 2025-06-01 09:30\n---\n\nTITLE: Bootstrapping")
	assert.True(t, strings.HasSuffix(out, "- Customers first\n"))

	require.Len(t, b.prompts, 1)
	assert.Contains(t, b.prompts[0], "podcast episode")
	assert.Contains(t, b.prompts[0], "Additional instruction: focus on hiring")
	assert.True(t, strings.HasSuffix(b.prompts[0], englishText))
}

func TestSummarizeTruncatesTranscript(t *testing.T) {
	b := &fakeBackend{answer: "ok"}
	s := newTestSummarizer(b, 10)

	_, err := s.Summarize(context.Background(), Request{ID: "x", Transcript: "0123456789abcdef"})
	require.NoError(t, err)
	require.Len(t, b.prompts, 1)
	assert.True(t, strings.HasSuffix(b.prompts[0], "Transcript:\n0123456789"))
}

func TestSummarizeFailures(t *testing.T) {
	tests := []struct {
		name       string
		backend    *fakeBackend
		transcript string
	}{
		{name: "empty transcript", backend: &fakeBackend{answer: "ok"}, transcript: "  \n "},
		{name: "backend error", backend: &fakeBackend{err: errors.New("boom")}, transcript: "hello"},
		{name: "empty answer", backend: &fakeBackend{answer: "\n\n"}, transcript: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer(tt.backend, 0)
			_, err := s.Summarize(context.Background(), Request{ID: "x", Transcript: tt.transcript})
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrSummarizationFailed)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
		cut  bool
	}{
		{"hello", 0, "hello", false},
		{"hello", 10, "hello", false},
		{"hello", 5, "hello", false},
		{"hello", 3, "hel", true},
		{"héllo wörld", 4, "héll", true},
		{"日本語のテキスト", 3, "日本語", true},
	}

	for _, tt := range tests {
		got, cut := truncate(tt.in, tt.max)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.cut, cut, tt.in)
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "", detectLanguage("too short"))
	assert.Equal(t, "en", detectLanguage(englishText))
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ID:     "art_1234abcd_20250601",
		Source: "https://example.com/post",
		Date:   time.Date(2025, 6, 1, 14, 5, 0, 0, time.UTC),
	}
	rendered := h.Render()
	assert.Equal(t, "---\nID: art_1234abcd_20250601\nURL: https://example.com/post\nDate: 2025-06-01 14:05\n---\n\n", rendered)
	assert.Equal(t, "## Summary\nbody\n", StripHeader(rendered+"## Summary\nbody\n"))
	assert.Equal(t, "no header here", StripHeader("no header here"))
	assert.Equal(t, "---\nunterminated", StripHeader("---\nunterminated"))
}

func TestBuildPrompt(t *testing.T) {
	profile := config.Default().Profile
	profile.Role = "startup founder"
	profile.Interests = []string{"AI", "hiring"}
	profile.Formatting.KeyPoints = 6
	profile.Formatting.Quotes = 3

	t.Run("with rating", func(t *testing.T) {
		profile.Formatting.IncludeRating = true
		p := buildPrompt(profile, content.Video, "de", "", "the transcript")
		assert.Contains(t, p, "Analyze this video")
		assert.Contains(t, p, "The reader is a startup founder.")
		assert.Contains(t, p, "Their interests: AI, hiring.")
		assert.Contains(t, p, `The transcript language is "de"`)
		assert.Contains(t, p, "## Key Points (6 specific points")
		assert.Contains(t, p, "## Notable Quotes (3 memorable quotes")
		assert.Contains(t, p, "## Insight Rating")
		for _, field := range []string{FieldSourceName, FieldTitle, FieldEpisode, FieldTwoLine} {
			assert.Contains(t, p, field)
		}
		assert.NotContains(t, p, "Additional instruction")
		assert.True(t, strings.HasSuffix(p, "Transcript:\nthe transcript"))
	})

	t.Run("without rating", func(t *testing.T) {
		profile.Formatting.IncludeRating = false
		p := buildPrompt(profile, content.Article, "", "  keep it short ", "body")
		assert.Contains(t, p, "Analyze this article")
		assert.NotContains(t, p, "## Insight Rating")
		assert.NotContains(t, p, "transcript language")
		assert.Contains(t, p, "Additional instruction: keep it short\n")
	})
}

func TestClaudeBackend(t *testing.T) {
	exec := executortest.New().On("/opt/claude", func(call executortest.Call) (string, error) {
		return "  summary text \n", nil
	})

	b := newClaudeBackend("/opt/claude", exec)
	out, err := b.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "  summary text \n", out)

	calls := exec.CallsTo("/opt/claude")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--print"}, calls[0].Args)
	assert.Equal(t, "the prompt", calls[0].Input)
}

func TestClaudeBackendMultibyteTranscriptAtLimit(t *testing.T) {
	exec := executortest.New().On("/opt/claude", func(call executortest.Call) (string, error) {
		return "TITLE: Tập mới\n", nil
	})
	s := newTestSummarizer(newClaudeBackend("/opt/claude", exec), 50000)
	transcript := strings.Repeat("ữ", 50000)

	_, err := s.Summarize(context.Background(), Request{ID: "pod_x_20250601", Kind: content.Podcast, Transcript: transcript})
	require.NoError(t, err)

	calls := exec.CallsTo("/opt/claude")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--print"}, calls[0].Args)
	assert.True(t, strings.HasSuffix(calls[0].Input, transcript))
	assert.Greater(t, len(calls[0].Input), 128*1024)
}

func TestClaudeBackendMissing(t *testing.T) {
	exec := executortest.New().Missing("/opt/claude")

	_, err := newClaudeBackend("/opt/claude", exec).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Empty(t, exec.Calls())
}

func TestGeminiBackendWithoutKeys(t *testing.T) {
	_, err := newGeminiBackend(nil, "gemini-2.5-flash", logger.New("error")).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Gemini API key")
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(errors.New("Error 429: too many requests")))
	assert.True(t, isQuotaError(errors.New("RESOURCE_EXHAUSTED")))
	assert.False(t, isQuotaError(errors.New("permission denied")))
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Summarizer.Backend = config.BackendGemini
	s := New(cfg, executortest.New(), logger.New("error")).(*implSummarizer)
	assert.IsType(t, &geminiBackend{}, s.backend)

	cfg.Summarizer.Backend = config.BackendClaude
	s = New(cfg, executortest.New(), logger.New("error")).(*implSummarizer)
	assert.IsType(t, &claudeBackend{}, s.backend)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude/local/claude"), expandHome("~/.claude/local/claude"))
	assert.Equal(t, "/usr/bin/claude", expandHome("/usr/bin/claude"))
}

func TestExportDocx(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summaries", "pod_x_20250601.md")
	transcriptPath := filepath.Join(dir, "transcripts", "pod_x_20250601.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(summaryPath), 0755))
	require.NoError(t, os.MkdirAll(filepath.Dir(transcriptPath), 0755))

	summary := Header{ID: "pod_x_20250601", Date: time.Now()}.Render() +
		"## Key Points\n- **Bold** point\n1. numbered\n"
	require.NoError(t, ExportDocx("Episode", summary, summaryPath, "line one\nline one\nline two\n", transcriptPath))

	assert.FileExists(t, filepath.Join(dir, "summaries", "pod_x_20250601.docx"))
	assert.FileExists(t, filepath.Join(dir, "transcripts", "pod_x_20250601.docx"))
}

func TestExportDocxSkipsEmptyTranscript(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "a.md")
	require.NoError(t, ExportDocx("A", "## Only\n", summaryPath, "", filepath.Join(dir, "a.txt")))

	assert.FileExists(t, filepath.Join(dir, "a.docx"))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt.docx"))
}
