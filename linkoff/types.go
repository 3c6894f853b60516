// ABOUTME: Public types for the LinkOff library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package linkoff

import (
	"linkoff-engine/core/domain"
	"linkoff-engine/infrastructure/document/htmldoc"
)

// excerptLength bounds Item.Excerpt in runes.
const excerptLength = 280

// Item is one post or job card and its filtering decision
type Item struct {
	ID        string `json:"id"`
	Surface   string `json:"surface"`
	State     string `json:"state"`
	Revealed  bool   `json:"revealed"`
	MatchedBy string `json:"matched_by,omitempty"`
	Excerpt   string `json:"excerpt"`
}

// Setting is one settings key with its value and label
type Setting struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Report summarises the items of every surface
type Report struct {
	URL     string `json:"url"`
	Mode    string `json:"mode"`
	Items   []Item `json:"items"`
	Hidden  int    `json:"hidden"`
	Shown   int    `json:"shown"`
	Pending int    `json:"pending"`
}

func domainItemToPublic(surface domain.Surface, item domain.Item) Item {
	return Item{
		ID:        item.ID,
		Surface:   string(surface),
		State:     item.State.String(),
		Revealed:  item.Override,
		MatchedBy: item.MatchedBy,
		Excerpt:   htmldoc.Excerpt(&item, excerptLength),
	}
}

// Settings lists every key of snap in sorted order.
func Settings(snap domain.Snapshot) []Setting {
	keys := snap.Keys()
	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		v, _ := snap.Value(k)
		out = append(out, Setting{Key: k, Label: domain.Label(k), Value: v})
	}
	return out
}
