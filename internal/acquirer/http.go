package acquirer

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
)

func (a *implAcquirer) get(ctx context.Context, rawURL string) (*http.Response, error) {
	const op = "acquirer.get"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.UnreachableSource(op, err, "invalid URL "+rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.UnreachableSource(op, err, "cannot reach "+rawURL)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, apperrors.UnreachableSource(op, nil, fmt.Sprintf("%s returned HTTP %d", rawURL, resp.StatusCode))
	}
	return resp, nil
}

// fetch reads a whole page body, bounded by maxPageSize
func (a *implAcquirer) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	const op = "acquirer.fetch"

	resp, err := a.get(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, "", apperrors.AcquisitionFailed(op, err, "read "+rawURL)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// download streams a remote audio file into the cache
func (a *implAcquirer) download(ctx context.Context, rawURL, id string, method Method) (Result, error) {
	const op = "acquirer.download"

	resp, err := a.get(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); isTextType(ct) {
		return Result{}, apperrors.AcquisitionFailed(op, nil, fmt.Sprintf("%s served %s instead of audio", rawURL, ct))
	}

	if resp.ContentLength > 0 {
		a.logger.Info(ctx, "Downloading %.1f MB from %s", float64(resp.ContentLength)/(1<<20), rawURL)
	} else {
		a.logger.Info(ctx, "Downloading %s", rawURL)
	}

	if err := a.store.WriteFrom(id, cache.Acquire, resp.Body); err != nil {
		return Result{}, apperrors.AcquisitionFailed(op, err, "download "+rawURL)
	}

	path := a.store.Path(id, cache.Acquire)
	a.logger.Info(ctx, "Audio saved: %s", path)
	return Result{Method: method, AudioPath: path}, nil
}

// isTextType reports whether a Content-Type names a text document, such as
// the login or error page some hosts return with status 200
func isTextType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/")
}
