package acquirer

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reMP3URL = regexp.MustCompile(`https?://[^"'\s<>]+\.mp3[^"'\s<>]*`)

// pocketCastsAudio scrapes an episode page for its audio file
func (a *implAcquirer) pocketCastsAudio(ctx context.Context, pageURL string) (string, string, error) {
	body, _, err := a.fetch(ctx, pageURL)
	if err != nil {
		return "", "", err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("parse page URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse episode page: %w", err)
	}

	audioURL := findAudioURL(doc, base)
	if audioURL == "" {
		// Players that build the <audio> element in script still embed the URL
		audioURL = reMP3URL.FindString(string(body))
	}
	if audioURL == "" {
		return "", "", fmt.Errorf("no audio URL on %s", pageURL)
	}
	return audioURL, pageTitle(doc), nil
}

// findAudioURL looks for the episode file in markup order of reliability
func findAudioURL(doc *goquery.Document, base *url.URL) string {
	candidates := []struct {
		selector string
		attr     string
	}{
		{"audio source[src]", "src"},
		{"audio[src]", "src"},
		{`meta[property="og:audio"]`, "content"},
		{`meta[property="og:audio:url"]`, "content"},
		{`meta[property="og:audio:secure_url"]`, "content"},
		{`a[href*=".mp3"]`, "href"},
	}

	for _, c := range candidates {
		val, ok := doc.Find(c.selector).First().Attr(c.attr)
		if !ok || strings.TrimSpace(val) == "" {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(val))
		if err != nil {
			continue
		}
		return base.ResolveReference(ref).String()
	}
	return ""
}

func pageTitle(doc *goquery.Document) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
