package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor/executortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Whisper.ModelPath = filepath.Join(t.TempDir(), "ggml-base.bin")
	require.NoError(t, os.WriteFile(cfg.Whisper.ModelPath, []byte("model"), 0644))
	cfg.Whisper.Language = "en"
	cfg.Whisper.Prompt = "startups, venture capital"
	return cfg
}

func whisperWrites(text string) executortest.Handler {
	return func(call executortest.Call) (string, error) {
		return "", os.WriteFile(call.Flag("--output-file")+".txt", []byte(text), 0644)
	}
}

func ok(call executortest.Call) (string, error) { return "", nil }

func TestTranscribe(t *testing.T) {
	cfg := testConfig(t)
	exec := executortest.New().
		On("ffmpeg", ok).
		On("whisper-cli", whisperWrites("  Hello and welcome.\n\n  Today we talk about Go.  \n"))

	tr := New(cfg, t.TempDir(), exec, logger.New("error"))
	text, err := tr.Transcribe(context.Background(), "/media/episode.mp3")
	require.NoError(t, err)
	assert.Equal(t, "Hello and welcome.\nToday we talk about Go.", text)

	ffmpeg := exec.CallsTo("ffmpeg")
	require.Len(t, ffmpeg, 1)
	assert.Equal(t, "/media/episode.mp3", ffmpeg[0].Flag("-i"))
	assert.Equal(t, "16000", ffmpeg[0].Flag("-ar"))

	whisper := exec.CallsTo("whisper-cli")
	require.Len(t, whisper, 1)
	assert.Equal(t, cfg.Whisper.ModelPath, whisper[0].Flag("-m"))
	assert.Equal(t, ffmpeg[0].Args[len(ffmpeg[0].Args)-1], whisper[0].Flag("-f"))
	assert.Equal(t, "en", whisper[0].Flag("-l"))
	assert.Equal(t, "8", whisper[0].Flag("-t"))
	assert.Equal(t, "startups, venture capital", whisper[0].Flag("--prompt"))
	assert.True(t, whisper[0].Has("-otxt"))

	// work dir is removed afterwards
	assert.NoDirExists(t, filepath.Dir(whisper[0].Flag("-f")))
}

func TestTranscribeFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(cfg *config.Config, exec *executortest.Fake)
	}{
		{
			name: "whisper binary missing",
			setup: func(cfg *config.Config, exec *executortest.Fake) {
				exec.Missing("whisper-cli")
			},
		},
		{
			name: "model missing",
			setup: func(cfg *config.Config, exec *executortest.Fake) {
				cfg.Whisper.ModelPath = "/nonexistent/model.bin"
			},
		},
		{
			name: "ffmpeg fails",
			setup: func(cfg *config.Config, exec *executortest.Fake) {
				exec.On("ffmpeg", func(executortest.Call) (string, error) {
					return "", errors.New("command 'ffmpeg' failed: exit status 1")
				})
			},
		},
		{
			name: "whisper crashes",
			setup: func(cfg *config.Config, exec *executortest.Fake) {
				exec.On("whisper-cli", func(executortest.Call) (string, error) {
					return "", errors.New("command 'whisper-cli' failed: signal: killed")
				})
			},
		},
		{
			name: "empty transcript",
			setup: func(cfg *config.Config, exec *executortest.Fake) {
				exec.On("whisper-cli", whisperWrites("\n   \n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			exec := executortest.New().
				On("ffmpeg", ok).
				On("whisper-cli", whisperWrites("text"))
			tt.setup(cfg, exec)

			_, err := New(cfg, t.TempDir(), exec, logger.New("error")).Transcribe(context.Background(), "in.mp3")
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrTranscriptionFailed))
		})
	}
}
