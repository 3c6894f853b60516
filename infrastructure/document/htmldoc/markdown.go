// ABOUTME: Markdown excerpts of item markup for reports and the control API
// ABOUTME: Shares one html-to-markdown converter across every call

package htmldoc

import (
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"linkoff-engine/core/domain"
)

var (
	converterMu sync.Mutex
	converter   = md.NewConverter("", true, nil)
)

// Excerpt converts an item's markup to Markdown and cuts it to at most
// limit runes. It falls back to the rendered text when conversion fails.
func Excerpt(item *domain.Item, limit int) string {
	converterMu.Lock()
	out, err := converter.ConvertString(item.Markup)
	converterMu.Unlock()
	if err != nil || strings.TrimSpace(out) == "" {
		out = item.Text
	}
	out = strings.TrimSpace(out)

	runes := []rune(out)
	if limit > 0 && len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return out
}
