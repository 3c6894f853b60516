// ABOUTME: Item domain model for the posts and job cards being filtered
// ABOUTME: Tracks visibility state, user override and the rule that matched

package domain

// VisibilityState is the filtering state of one item.
type VisibilityState int

const (
	// Pristine items have not been evaluated yet (or were reset).
	Pristine VisibilityState = iota
	// Hidden items matched a rule and are hidden or dimmed.
	Hidden
	// Shown items were evaluated and are visible.
	Shown
)

// String returns the lowercase name of the state.
func (s VisibilityState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	default:
		return "pristine"
	}
}

// ParseVisibilityState is the inverse of String. Unknown input is Pristine.
func ParseVisibilityState(s string) VisibilityState {
	switch s {
	case "hidden":
		return Hidden
	case "shown":
		return Shown
	default:
		return Pristine
	}
}

// Item is one filterable unit of page content.
type Item struct {
	ID     string
	Markup string // raw structural markup
	Text   string // rendered visible text

	State    VisibilityState
	Override bool // set when the user revealed the item

	// MatchedBy is the original form of the rule that hid the item.
	MatchedBy string

	// Rendered and RenderedMode record the last presentation pushed to
	// the page, so unchanged items are not redrawn every tick.
	Rendered     VisibilityState
	RenderedMode VisualMode
}

// IsValid reports whether the item carries enough data to be classified.
func (i *Item) IsValid() bool {
	return i.ID != ""
}

// Clone returns a copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
