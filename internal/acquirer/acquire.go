package acquirer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// Acquire fetches ref according to kind. Audio lands in the cache under id;
// text sources are returned in Result.Text for the caller to persist.
func (a *implAcquirer) Acquire(ctx context.Context, ref content.Reference, kind content.Kind, id string) (Result, error) {
	const op = "acquirer.Acquire"

	if ref.IsLocal() {
		return Result{}, apperrors.AcquisitionFailed(op, nil, "local file "+ref.Path+" needs no acquisition")
	}

	rawURL := ref.URL.String()
	a.logger.Info(ctx, "Acquiring %s as %s", rawURL, kind)

	switch kind {
	case content.Video:
		return a.acquireVideo(ctx, rawURL, id)
	case content.Podcast:
		return a.acquirePodcast(ctx, ref, id)
	case content.Audio:
		return a.download(ctx, rawURL, id, MethodDownload)
	case content.Article:
		return a.acquireArticle(ctx, ref)
	case content.Transcript:
		return a.acquireText(ctx, rawURL)
	}
	return Result{}, apperrors.AcquisitionFailed(op, nil, "no acquisition strategy for "+kind.String())
}

// acquireVideo prefers the platform's own captions and falls back to audio
func (a *implAcquirer) acquireVideo(ctx context.Context, rawURL, id string) (Result, error) {
	text, err := a.captions(ctx, rawURL)
	if err == nil {
		a.logger.Info(ctx, "Using platform captions (%d characters)", len(text))
		return Result{Method: MethodCaptions, Text: text}, nil
	}
	a.logger.Info(ctx, "No usable captions (%v), downloading audio", err)
	return a.ytdlpAudio(ctx, rawURL, id)
}

// acquirePodcast tries a direct episode file first (Pocket Casts page or
// feed enclosure) and lets yt-dlp handle everything else.
func (a *implAcquirer) acquirePodcast(ctx context.Context, ref content.Reference, id string) (Result, error) {
	rawURL := ref.URL.String()

	if a.isPocketCasts(ref) {
		audioURL, title, err := a.pocketCastsAudio(ctx, rawURL)
		if err == nil {
			a.logger.Info(ctx, "Found direct episode audio: %s", audioURL)
			res, err := a.download(ctx, audioURL, id, MethodPocketCasts)
			if err == nil {
				res.Title = title
				return res, nil
			}
			a.logger.Warn(ctx, "Direct episode download failed: %v", err)
		} else {
			a.logger.Warn(ctx, "Pocket Casts extraction failed: %v", err)
		}
	} else if _, known := content.MatchHost(ref); !known {
		audioURL, title, err := a.feedEnclosure(ctx, rawURL)
		if err == nil {
			a.logger.Info(ctx, "Newest feed episode: %s", title)
			res, err := a.download(ctx, audioURL, id, MethodFeed)
			if err == nil {
				res.Title = title
				return res, nil
			}
			a.logger.Warn(ctx, "Feed enclosure download failed: %v", err)
		} else {
			a.logger.Debug(ctx, "Not a readable feed: %v", err)
		}
	}

	return a.ytdlpAudio(ctx, rawURL, id)
}

func (a *implAcquirer) acquireText(ctx context.Context, rawURL string) (Result, error) {
	const op = "acquirer.acquireText"

	body, _, err := a.fetch(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return Result{}, apperrors.AcquisitionFailed(op, nil, "remote text file "+rawURL+" is empty")
	}
	return Result{Method: MethodText, Text: text}, nil
}

func (a *implAcquirer) isPocketCasts(ref content.Reference) bool {
	host := strings.TrimPrefix(ref.Host(), "www.")
	for _, h := range a.pocketCastsHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
