// ABOUTME: Dependencies container handed to the engine controller
// ABOUTME: Optional page controls fall back to no-ops

package interfaces

// Dependencies holds everything the controller talks to
type Dependencies struct {
	// Store persists settings
	Store SettingsStore

	// Document exposes the filterable page items
	Document DocumentView

	// Toggler hides page chrome; nil disables misc handling
	Toggler ElementToggler

	// Clicker runs page commands; nil disables sort and unfollow
	Clicker Clicker

	// Appearance applies dark and wide mode; optional
	Appearance Appearance

	// Notifier shows advisories; optional
	Notifier Notifier

	// Logger provides structured logging
	Logger Logger
}

// WithDefaults returns a copy where every optional page control is
// replaced by a no-op when absent.
func (d Dependencies) WithDefaults() Dependencies {
	if d.Toggler == nil {
		d.Toggler = NopToggler{}
	}
	if d.Clicker == nil {
		d.Clicker = NopClicker{}
	}
	if d.Appearance == nil {
		d.Appearance = NopAppearance{}
	}
	if d.Notifier == nil {
		d.Notifier = NopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = NopLogger{}
	}
	return d
}
