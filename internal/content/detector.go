package content

import (
	"context"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

type hostRule struct {
	domain     string
	pathPrefix []string
	kind       Kind
}

var hostRules = []hostRule{
	{domain: "youtube.com", kind: Video},
	{domain: "youtu.be", kind: Video},
	{domain: "vimeo.com", kind: Video},
	{domain: "dailymotion.com", kind: Video},
	{domain: "twitch.tv", kind: Video},
	{domain: "tiktok.com", kind: Video},
	{domain: "loom.com", kind: Video},

	{domain: "pca.st", kind: Podcast},
	{domain: "pocketcasts.com", kind: Podcast},
	{domain: "podcasts.apple.com", kind: Podcast},
	{domain: "open.spotify.com", pathPrefix: []string{"/episode/", "/show/"}, kind: Podcast},
	{domain: "overcast.fm", kind: Podcast},
	{domain: "castbox.fm", kind: Podcast},
	{domain: "podbean.com", kind: Podcast},
	{domain: "anchor.fm", kind: Podcast},
	{domain: "simplecast.com", kind: Podcast},
	{domain: "buzzsprout.com", kind: Podcast},
	{domain: "transistor.fm", kind: Podcast},
	{domain: "libsyn.com", kind: Podcast},
}

// Prober reads the Content-Type of a remote resource
type Prober interface {
	Probe(ctx context.Context, rawURL string) (string, error)
}

// Detector classifies references into a Kind
type Detector struct {
	prober Prober
	logger logger.Logger
}

// NewDetector creates a Detector that falls back to prober for unknown URLs
func NewDetector(prober Prober, log logger.Logger) *Detector {
	return &Detector{
		prober: prober,
		logger: log,
	}
}

// Detect returns the kind of ref. A non-zero override is returned as is.
func (d *Detector) Detect(ctx context.Context, ref Reference, override Kind) (Kind, error) {
	const op = "content.Detect"

	if override != 0 {
		d.logger.Debug(ctx, "Content kind forced by mode flag: %s", override)
		return override, nil
	}

	if ref.IsLocal() {
		ext := filepath.Ext(ref.Path)
		kind, ok := KindForExtension(ext)
		if !ok {
			return 0, apperrors.UnsupportedFileType(op, nil, "unsupported file type: "+displayExt(ext))
		}
		return kind, nil
	}

	if kind, ok := MatchHost(ref); ok {
		d.logger.Debug(ctx, "Matched platform pattern for %s: %s", ref.Host(), kind)
		return kind, nil
	}

	if kind, ok := KindForExtension(path.Ext(ref.URL.Path)); ok {
		d.logger.Debug(ctx, "Classified %s by URL extension: %s", ref.URL.Path, kind)
		return kind, nil
	}

	contentType, err := d.prober.Probe(ctx, ref.URL.String())
	if err != nil {
		d.logger.Warn(ctx, "Content-Type probe failed, treating as article: %v", err)
		return Article, nil
	}

	if kind, ok := KindForContentType(contentType); ok {
		d.logger.Debug(ctx, "Probed Content-Type %q: %s", contentType, kind)
		return kind, nil
	}

	d.logger.Debug(ctx, "Unrecognised Content-Type %q, treating as article", contentType)
	return Article, nil
}

// KindForContentType maps a Content-Type header value to a kind
func KindForContentType(contentType string) (Kind, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	switch {
	case strings.HasPrefix(mediaType, "audio/"):
		return Audio, true
	case strings.HasPrefix(mediaType, "video/"):
		return Video, true
	case mediaType == "application/rss+xml", mediaType == "application/atom+xml",
		mediaType == "application/xml", mediaType == "text/xml":
		return Podcast, true
	case mediaType == "text/plain", mediaType == "text/markdown":
		return Transcript, true
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return Article, true
	}
	return 0, false
}

// MatchHost reports the kind implied by a known platform hostname
func MatchHost(ref Reference) (Kind, bool) {
	host := strings.TrimPrefix(ref.Host(), "www.")
	for _, rule := range hostRules {
		if host != rule.domain && !strings.HasSuffix(host, "."+rule.domain) {
			continue
		}
		if len(rule.pathPrefix) == 0 {
			return rule.kind, true
		}
		for _, prefix := range rule.pathPrefix {
			if strings.HasPrefix(ref.URL.Path, prefix) {
				return rule.kind, true
			}
		}
	}
	return 0, false
}

func displayExt(ext string) string {
	if ext == "" {
		return "(no extension)"
	}
	return ext
}
