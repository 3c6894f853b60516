// ABOUTME: Builds a filterable document from an RSS, Atom or JSON feed
// ABOUTME: Each entry becomes one feed item rendered as an article element

package feeddoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/infrastructure/document/htmldoc"
	"linkoff-engine/pkg/utils/age"
)

// Entry markup hooks.
const (
	EntrySelector = "article.feed-entry"
	EntryIDAttr   = "data-entry-id"
)

// Fetch downloads the feed at url and builds a document from it. Entry
// ages are measured against now.
func Fetch(ctx context.Context, client interfaces.HTTPClient, url string, now time.Time) (*htmldoc.Document, error) {
	body, err := download(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return Parse(url, bytes.NewReader(body), now)
}

// FetchInto downloads the feed at url and loads it into doc, replacing
// whatever page doc held.
func FetchInto(ctx context.Context, client interfaces.HTTPClient, doc *htmldoc.Document, url string, now time.Time) error {
	body, err := download(ctx, client, url)
	if err != nil {
		return err
	}
	return Load(doc, url, bytes.NewReader(body), now)
}

// Parse reads a feed from r and builds a document addressed as url.
func Parse(url string, r io.Reader, now time.Time) (*htmldoc.Document, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return htmldoc.Parse(url, Render(feed, now), entryItems())
}

// Load reads a feed from r into doc.
func Load(doc *htmldoc.Document, url string, r io.Reader, now time.Time) error {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}
	return doc.Load(url, strings.NewReader(Render(feed, now)), entryItems())
}

func entryItems() htmldoc.Option {
	return htmldoc.WithItemSelector(domain.SurfaceFeed, EntrySelector, EntryIDAttr)
}

func download(ctx context.Context, client interfaces.HTTPClient, url string) ([]byte, error) {
	if client == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode())
	}
	return io.ReadAll(resp.Body())
}

// Render lays the feed out as an HTML page with one article per entry.
// Dated entries get an age label so the age rules see them; a zero now
// leaves the labels out.
func Render(feed *gofeed.Feed, now time.Time) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>")
	b.WriteString(html.EscapeString(feed.Title))
	b.WriteString("</title></head><body><main class=\"scaffold-layout__inner\"><div class=\"scaffold-finite-scroll__content\">\n")

	for i, item := range feed.Items {
		fmt.Fprintf(&b, "<article class=\"feed-entry\" %s=\"%s\">", EntryIDAttr, html.EscapeString(entryID(item, i)))
		author := authorName(item)
		published := publishedAt(item)
		if author != "" || (!now.IsZero() && !published.IsZero()) {
			b.WriteString("<header>")
			if author != "" {
				fmt.Fprintf(&b, "<span class=\"feed-entry__author\">%s</span>", html.EscapeString(author))
			}
			if !now.IsZero() && !published.IsZero() {
				fmt.Fprintf(&b, " <span class=\"feed-entry__age\">%s</span>", age.Label(published, now))
			}
			b.WriteString("</header>")
		}
		if item.Title != "" {
			fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(item.Title))
		}
		// Entry content is already HTML.
		content := item.Content
		if content == "" {
			content = item.Description
		}
		if content != "" {
			fmt.Fprintf(&b, "<div class=\"feed-entry__content\">%s</div>", content)
		}
		if item.Link != "" {
			fmt.Fprintf(&b, "<a href=\"%s\">%s</a>", html.EscapeString(item.Link), html.EscapeString(item.Link))
		}
		b.WriteString("</article>\n")
	}

	b.WriteString("</div></main></body></html>")
	return b.String()
}

func entryID(item *gofeed.Item, index int) string {
	switch {
	case item.GUID != "":
		return item.GUID
	case item.Link != "":
		return item.Link
	default:
		return fmt.Sprintf("entry-%d", index)
	}
}

func publishedAt(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return *item.PublishedParsed
	case item.UpdatedParsed != nil:
		return *item.UpdatedParsed
	case item.Published != "":
		return age.Parse(item.Published)
	}
	return age.Parse(item.Updated)
}

func authorName(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
