package content

import (
	"path/filepath"
	"slices"
	"strings"
)

var (
	audioExtensions      = []string{".mp3", ".m4a", ".wav", ".aac", ".flac", ".ogg", ".opus", ".wma"}
	videoExtensions      = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}
	transcriptExtensions = []string{".txt", ".md"}
)

// KindForExtension maps a file extension to a kind. ok is false for unknown extensions.
func KindForExtension(ext string) (Kind, bool) {
	ext = strings.ToLower(ext)
	switch {
	case slices.Contains(audioExtensions, ext):
		return Audio, true
	case slices.Contains(videoExtensions, ext):
		return Video, true
	case slices.Contains(transcriptExtensions, ext):
		return Transcript, true
	}
	return 0, false
}

// IsSupportedFile reports whether path has a recognised media or text extension
func IsSupportedFile(path string) bool {
	_, ok := KindForExtension(filepath.Ext(path))
	return ok
}

// SupportedExtensions lists every recognised extension
func SupportedExtensions() []string {
	all := make([]string, 0, len(audioExtensions)+len(videoExtensions)+len(transcriptExtensions))
	all = append(all, audioExtensions...)
	all = append(all, videoExtensions...)
	return append(all, transcriptExtensions...)
}
