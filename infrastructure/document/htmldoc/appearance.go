// ABOUTME: Page appearance toggles for dark theme and full-width layout
// ABOUTME: Also records the notifications shown to the user

package htmldoc

const (
	darkThemeClass = "theme--dark"
	wideModeClass  = "wide-mode"
	layoutSelector = ".scaffold-layout__inner, main"
)

// SetDarkMode toggles the dark theme class on the root element.
func (d *Document) SetDarkMode(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dark = enabled
	root := d.doc.Find("html")
	if enabled {
		root.AddClass(darkThemeClass)
	} else {
		root.RemoveClass(darkThemeClass)
	}
}

// SetWideMode toggles the wide layout on the main column.
func (d *Document) SetWideMode(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wide = enabled
	layout := d.doc.Find(layoutSelector).First()
	if enabled {
		layout.AddClass(wideModeClass)
	} else {
		layout.RemoveClass(wideModeClass)
	}
}

// Appearance reports the last dark and wide mode values.
func (d *Document) Appearance() (dark, wide bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dark, d.wide
}

// Notify records a message for the user.
func (d *Document) Notify(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, msg)
}

// Notifications returns every recorded message.
func (d *Document) Notifications() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.notes...)
}
