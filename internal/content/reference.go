package content

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
)

// Reference is a parsed content reference: either a remote URL or a local path
type Reference struct {
	Raw  string
	URL  *url.URL
	Path string
}

// ParseReference splits a user-supplied string into a URL or a local path.
// Only http and https are fetched; file:// is treated as a local path.
func ParseReference(raw string) (Reference, error) {
	const op = "content.ParseReference"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reference{}, apperrors.UnreachableSource(op, nil, "empty content reference")
	}

	if !strings.Contains(raw, "://") {
		return Reference{Raw: raw, Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Reference{}, apperrors.UnreachableSource(op, err, "invalid URL")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return Reference{}, apperrors.UnreachableSource(op, nil, "URL must have a host")
		}
		return Reference{Raw: raw, URL: u}, nil
	case "file":
		return Reference{Raw: raw, Path: filepath.FromSlash(u.Path)}, nil
	}

	return Reference{}, apperrors.UnreachableSource(op, nil, "unsupported URL scheme "+u.Scheme)
}

// IsLocal reports whether the reference names a filesystem path
func (r Reference) IsLocal() bool {
	return r.URL == nil
}

// Host is the lower-cased hostname of a URL reference, "" for local paths
func (r Reference) Host() string {
	if r.URL == nil {
		return ""
	}
	return strings.ToLower(r.URL.Hostname())
}

func (r Reference) String() string {
	if r.IsLocal() {
		return r.Path
	}
	return r.URL.String()
}
