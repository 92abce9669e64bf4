package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
)

// Transcribe runs ffmpeg then whisper.cpp and returns the transcript text
func (t *implTranscriber) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	const op = "transcriber.Transcribe"
	startTime := time.Now()

	for _, bin := range []string{t.ffmpeg.BinaryPath, t.whisper.BinaryPath} {
		if _, err := t.executor.LookPath(bin); err != nil {
			return "", apperrors.TranscriptionFailed(op, err, "missing transcription dependency "+bin)
		}
	}
	if _, err := os.Stat(t.whisper.ModelPath); err != nil {
		return "", apperrors.TranscriptionFailed(op, err, "whisper model not available")
	}

	workDir, err := os.MkdirTemp(t.tempDir, "transcribe-*")
	if err != nil {
		return "", apperrors.TranscriptionFailed(op, err, "create work dir")
	}
	defer t.cleanup(ctx, workDir)

	audioPath, err := t.extractAudio(ctx, mediaPath, workDir)
	if err != nil {
		return "", apperrors.TranscriptionFailed(op, err, "audio conversion failed")
	}

	text, err := t.runWhisper(ctx, audioPath)
	if err != nil {
		return "", apperrors.TranscriptionFailed(op, err, "whisper failed")
	}

	t.logger.Info(ctx, "Transcription completed in %s (%d chars)", time.Since(startTime).Round(time.Second), len(text))
	return text, nil
}

// runWhisper invokes whisper.cpp with -otxt and reads the text file it writes
func (t *implTranscriber) runWhisper(ctx context.Context, audioPath string) (string, error) {
	// whisper.cpp appends .txt to the output prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Transcribing with %d threads (this may take a few minutes)...", t.whisper.Threads)

	// -bo 5: best of five candidates, -mc 0: unlimited context
	args := []string{
		"-m", t.whisper.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.whisper.Language,
		"-t", strconv.Itoa(t.whisper.Threads),
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if t.whisper.Prompt != "" {
		args = append(args, "--prompt", t.whisper.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := cleanTranscript(string(data))
	if text == "" {
		return "", fmt.Errorf("whisper produced an empty transcript")
	}
	return text, nil
}

// cleanTranscript trims each line and drops blank ones
func cleanTranscript(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// cleanup removes the work directory, logs warning if it fails
func (t *implTranscriber) cleanup(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", dir, err)
	} else {
		t.logger.Debug(ctx, "Cleaned up work dir: %s", dir)
	}
}
