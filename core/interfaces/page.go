// ABOUTME: Page interfaces through which the engine observes and changes the document
// ABOUTME: Implemented by the HTML document adapter and by test doubles

package interfaces

import (
	"context"

	"linkoff-engine/core/domain"
)

// DocumentView gives the engine access to the filterable items of a page.
// Items returned by Items are owned by the view; the engine mutates their
// State, Override and MatchedBy fields in place and calls SetState to push
// the visual change.
type DocumentView interface {
	// URL returns the current page address.
	URL() string

	// Items returns the live items of a surface in document order.
	Items(surface domain.Surface) []*domain.Item

	// SetState presents an item according to its state and the mode.
	SetState(item *domain.Item, mode domain.VisualMode)
}

// ElementToggler hides and shows page chrome addressed by class name.
// Hidden elements use mode; showing ignores it.
type ElementToggler interface {
	SetHiddenByClass(class string, hidden bool, mode domain.VisualMode) int
	SetHiddenByClassIndex(class string, index int, hidden bool, mode domain.VisualMode) bool
	SetAncestorHiddenByChildClass(childClass, ancestorSelector string, hidden bool, mode domain.VisualMode) int

	// SetContainerHidden toggles the first element with class. It reports
	// false when no such element exists yet.
	SetContainerHidden(class string, hidden bool) bool
}

// Clicker drives interactive page commands.
type Clicker interface {
	// Click clicks every element matching selector, up to limit (0 means all).
	// Returns the number clicked.
	Click(ctx context.Context, selector string, limit int) (int, error)

	// Count returns how many elements match selector.
	Count(selector string) int

	// ScrollToBottom scrolls the page so more content loads.
	ScrollToBottom(ctx context.Context) error
}

// Appearance applies page-wide presentation preferences.
type Appearance interface {
	SetDarkMode(enabled bool)
	SetWideMode(enabled bool)
}

// Notifier shows a one-off message to the user.
type Notifier interface {
	Notify(msg string)
}
