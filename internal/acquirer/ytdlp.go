package acquirer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
)

var errNoCaptions = errors.New("no captions published")

// captions downloads the platform subtitle track as VTT and returns it as text
func (a *implAcquirer) captions(ctx context.Context, rawURL string) (string, error) {
	if _, err := a.executor.LookPath(a.ytdlp.BinaryPath); err != nil {
		return "", fmt.Errorf("yt-dlp not found: %w", err)
	}

	workDir, err := os.MkdirTemp(a.tempDir, "captions-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--sub-langs", a.ytdlp.SubLangs,
		"--no-playlist",
		"--quiet",
		"-o", filepath.Join(workDir, "captions.%(ext)s"),
		rawURL,
	}
	if _, err := a.executor.Execute(ctx, a.ytdlp.BinaryPath, args...); err != nil {
		return "", err
	}

	files, err := filepath.Glob(filepath.Join(workDir, "*.vtt"))
	if err != nil || len(files) == 0 {
		return "", errNoCaptions
	}
	// captions.en.vtt sorts before captions.en-orig.vtt and regional variants
	sort.Strings(files)
	a.logger.Debug(ctx, "Using caption track %q", captionLanguage(files[0]))

	data, err := os.ReadFile(files[0])
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}

	text := cleanVTT(string(data))
	if text == "" {
		return "", errNoCaptions
	}
	return text, nil
}

// ytdlpAudio extracts the best audio stream to mp3 and moves it into the cache
func (a *implAcquirer) ytdlpAudio(ctx context.Context, rawURL, id string) (Result, error) {
	const op = "acquirer.ytdlpAudio"

	if _, err := a.executor.LookPath(a.ytdlp.BinaryPath); err != nil {
		return Result{}, apperrors.AcquisitionFailed(op, err, "yt-dlp is not installed")
	}

	workDir, err := os.MkdirTemp(a.tempDir, "download-*")
	if err != nil {
		return Result{}, apperrors.AcquisitionFailed(op, err, "create work dir")
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", a.ytdlp.AudioQuality,
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"-o", filepath.Join(workDir, "audio.%(ext)s"),
		rawURL,
	}

	a.logger.Info(ctx, "Downloading audio with yt-dlp: %s", rawURL)
	if _, err := a.executor.Execute(ctx, a.ytdlp.BinaryPath, args...); err != nil {
		return Result{}, apperrors.AcquisitionFailed(op, err, "yt-dlp download failed")
	}

	audioPath := filepath.Join(workDir, "audio.mp3")
	if info, err := os.Stat(audioPath); err != nil || info.Size() == 0 {
		return Result{}, apperrors.AcquisitionFailed(op, err, "yt-dlp produced no audio for "+rawURL)
	}

	if err := a.store.Import(id, cache.Acquire, audioPath); err != nil {
		if !errors.Is(err, cache.ErrSourceKept) {
			return Result{}, apperrors.AcquisitionFailed(op, err, "store audio")
		}
		a.logger.Warn(ctx, "Audio stored but %v", err)
	}

	path := a.store.Path(id, cache.Acquire)
	a.logger.Info(ctx, "Audio saved: %s", path)
	return Result{Method: MethodYtDlp, AudioPath: path}, nil
}

func captionLanguage(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".vtt")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
