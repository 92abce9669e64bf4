package transcriber

import (
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor"
)

type implTranscriber struct {
	whisper  config.WhisperConfig
	ffmpeg   config.FFmpegConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp backed Transcriber. Intermediate WAV files are
// written under tempDir ("" means the system temp directory).
func New(cfg *config.Config, tempDir string, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		whisper:  cfg.Whisper,
		ffmpeg:   cfg.FFmpeg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
