package acquirer

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// Method names how an acquisition obtained its content
type Method string

const (
	MethodCaptions    Method = "captions"
	MethodYtDlp       Method = "yt-dlp"
	MethodPocketCasts Method = "pocketcasts"
	MethodFeed        Method = "feed"
	MethodDownload    Method = "download"
	MethodArticle     Method = "article"
	MethodText        Method = "text"
)

// Result is the outcome of one acquisition: either an audio artifact written
// to the cache or text that can be used as the transcript directly.
type Result struct {
	Method    Method
	Title     string
	Text      string
	AudioPath string
}

// HasText reports whether the source yielded its transcript without transcription
func (r Result) HasText() bool {
	return r.Text != ""
}

// Acquirer fetches remote content for a detected kind
type Acquirer interface {
	Acquire(ctx context.Context, ref content.Reference, kind content.Kind, id string) (Result, error)
}
