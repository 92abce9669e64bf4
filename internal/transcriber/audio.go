package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
)

// extractAudio converts any audio or video file to 16kHz mono WAV,
// the input format whisper.cpp expects
func (t *implTranscriber) extractAudio(ctx context.Context, mediaPath, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, "audio.wav")

	t.logger.Info(ctx, "Normalising audio for whisper: %s", filepath.Base(mediaPath))

	// -vn: drop video, -ar 16000 -ac 1: 16kHz mono, pcm_s16le: 16-bit PCM
	args := []string{
		"-nostdin",
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
