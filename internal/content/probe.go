package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "digest-flow/1.0 (+https://github.com/nguyentantai21042004/digest-flow)"

// HTTPProber reads Content-Type with a HEAD request, falling back to a
// single-byte ranged GET for servers that reject HEAD.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with the given request timeout
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, rawURL string) (string, error) {
	resp, err := p.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp, err = p.do(ctx, http.MethodGet, rawURL)
		if err != nil {
			return "", err
		}
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		resp.Body.Close()
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("probe %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Header.Get("Content-Type"), nil
}

func (p *HTTPProber) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return resp, nil
}
