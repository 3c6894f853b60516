// ABOUTME: Item state machine applying classification results and user overrides
// ABOUTME: Presents an item only when its visible state actually changes

package state

import (
	"linkoff-engine/core/classifier"
	"linkoff-engine/core/domain"
)

// Presenter pushes an item's state to the page.
type Presenter interface {
	SetState(item *domain.Item, mode domain.VisualMode)
}

// Transition describes one state change.
type Transition struct {
	From    domain.VisibilityState
	To      domain.VisibilityState
	Changed bool
}

// Machine owns every item state transition.
type Machine struct {
	presenter Presenter
}

// New creates a machine. A nil presenter makes it model-only.
func New(presenter Presenter) *Machine {
	return &Machine{presenter: presenter}
}

// Apply moves an item according to a classification result.
//
//	Pristine + match    -> Hidden
//	Pristine + no match -> Shown
//	Hidden   + no match -> Shown
//	Shown    + match    -> Hidden, unless the user revealed it
func (m *Machine) Apply(item *domain.Item, res classifier.Result, mode domain.VisualMode) Transition {
	from := item.State
	if item.Override && from == domain.Shown {
		m.present(item, mode)
		return Transition{From: from, To: from}
	}

	if res.Matched {
		item.State = domain.Hidden
		item.MatchedBy = res.Rule.String()
	} else {
		item.State = domain.Shown
		item.MatchedBy = ""
	}
	m.present(item, mode)
	return Transition{From: from, To: item.State, Changed: from != item.State}
}

// Reveal is the user override: a hidden item becomes shown and stays shown
// until the next forced reset. It reports whether the item was hidden.
func (m *Machine) Reveal(item *domain.Item, mode domain.VisualMode) bool {
	if item.State != domain.Hidden {
		return false
	}
	item.State = domain.Shown
	item.Override = true
	m.present(item, mode)
	return true
}

// Reset returns an item to Pristine without touching the page. User
// overrides survive unless force is set.
func (m *Machine) Reset(item *domain.Item, force bool) bool {
	if item.Override && !force {
		return false
	}
	changed := item.State != domain.Pristine || item.Override
	item.State = domain.Pristine
	item.Override = false
	item.MatchedBy = ""
	return changed
}

// Clear force-resets an item and removes every filter mark from the page.
func (m *Machine) Clear(item *domain.Item) {
	m.Reset(item, true)
	if m.presenter != nil && item.Rendered != domain.Pristine {
		m.presenter.SetState(item, item.RenderedMode)
		item.Rendered = domain.Pristine
	}
}

func (m *Machine) present(item *domain.Item, mode domain.VisualMode) {
	if m.presenter == nil {
		return
	}
	if item.Rendered == item.State && (item.State != domain.Hidden || item.RenderedMode == mode) {
		return
	}
	m.presenter.SetState(item, mode)
	item.Rendered = item.State
	item.RenderedMode = mode
}
