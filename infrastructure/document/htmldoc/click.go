// ABOUTME: Click and scroll support for the sort and unfollow-all commands
// ABOUTME: Clicking an unfollow button turns it into a follow button

package htmldoc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	stopFollowingLabel = "Click to stop following"
	followLabel        = "Click to follow"
)

// Click clicks up to limit elements matching selector (0 means all).
func (d *Document) Click(ctx context.Context, selector string, limit int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	clicked := 0
	var err error
	d.doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		click(s)
		clicked++
		return limit <= 0 || clicked < limit
	})
	d.clicks[selector] += clicked
	return clicked, err
}

// Count returns how many elements match selector.
func (d *Document) Count(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Find(selector).Length()
}

// Clicks returns how many times elements matching selector were clicked.
func (d *Document) Clicks(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clicks[selector]
}

// OnScroll sets the source of content loaded when the page is scrolled
// to the bottom. fn returns nil when nothing more is available.
func (d *Document) OnScroll(fn func() (io.Reader, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onScroll = fn
}

// ScrollToBottom appends the next page of content, if any.
func (d *Document) ScrollToBottom(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	next := d.onScroll
	d.mu.Unlock()
	if next == nil {
		return nil
	}

	r, err := next()
	if err != nil {
		return fmt.Errorf("load more: %w", err)
	}
	if r == nil {
		return nil
	}
	_, err = d.Append(r)
	return err
}

func click(s *goquery.Selection) {
	s.SetAttr("data-clicked", "true")
	if label, ok := s.Attr("aria-label"); ok && strings.HasPrefix(label, stopFollowingLabel) {
		s.SetAttr("aria-label", followLabel+strings.TrimPrefix(label, stopFollowingLabel))
	}
}
