package acquirer

import (
	"bytes"
	"context"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/nguyentantai21042004/digest-flow/internal/apperrors"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
)

// acquireArticle extracts the readable body of a web page as markdown
func (a *implAcquirer) acquireArticle(ctx context.Context, ref content.Reference) (Result, error) {
	const op = "acquirer.acquireArticle"
	rawURL := ref.URL.String()

	body, _, err := a.fetch(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}

	title, text := extractArticle(body, ref)
	if text == "" {
		return Result{}, apperrors.AcquisitionFailed(op, nil, "no readable text on "+rawURL)
	}

	a.logger.Info(ctx, "Extracted article %q (%d characters)", title, len(text))
	return Result{Method: MethodArticle, Title: title, Text: text}, nil
}

// extractArticle runs readability and converts the result to markdown. When
// readability finds nothing the visible body text is used instead.
func extractArticle(body []byte, ref content.Reference) (string, string) {
	var title, text string

	article, err := readability.FromReader(bytes.NewReader(body), ref.URL)
	if err == nil {
		title = strings.TrimSpace(article.Title)
		if md, err := htmltomarkdown.ConvertString(article.Content); err == nil {
			text = strings.TrimSpace(md)
		}
		if text == "" {
			text = strings.TrimSpace(article.TextContent)
		}
	}

	if title != "" && text != "" {
		return title, text
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return title, text
	}
	if title == "" {
		title = pageTitle(doc)
	}
	if text == "" {
		doc.Find("script, style, noscript, nav, header, footer, aside").Remove()
		sel := doc.Find("article, main").First()
		if sel.Length() == 0 {
			sel = doc.Find("body")
		}
		text = strings.Join(strings.Fields(sel.Text()), " ")
	}
	return title, text
}
