package acquirer

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// feedEnclosure parses an RSS or Atom feed and returns the audio enclosure
// of its newest episode
func (a *implAcquirer) feedEnclosure(ctx context.Context, feedURL string) (string, string, error) {
	body, _, err := a.fetch(ctx, feedURL)
	if err != nil {
		return "", "", err
	}

	feed, err := a.feeds.Parse(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("parse feed: %w", err)
	}

	item := newestItem(feed.Items)
	if item == nil {
		return "", "", fmt.Errorf("feed contains no episodes")
	}

	enclosure := audioEnclosure(item)
	if enclosure == "" {
		return "", "", fmt.Errorf("episode %q has no audio enclosure", item.Title)
	}
	return enclosure, item.Title, nil
}

// newestItem picks the most recently published item. Items without a
// parseable date lose to dated ones; ties keep feed order.
func newestItem(items []*gofeed.Item) *gofeed.Item {
	var newest *gofeed.Item
	for _, item := range items {
		if item == nil || len(item.Enclosures) == 0 {
			continue
		}
		if newest == nil {
			newest = item
			continue
		}
		if item.PublishedParsed == nil {
			continue
		}
		if newest.PublishedParsed == nil || item.PublishedParsed.After(*newest.PublishedParsed) {
			newest = item
		}
	}
	return newest
}

func audioEnclosure(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "audio/") {
			return enc.URL
		}
		if kind, ok := content.KindForExtension(path.Ext(urlPath(enc.URL))); ok && kind == content.Audio {
			return enc.URL
		}
	}
	return ""
}

func urlPath(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}
