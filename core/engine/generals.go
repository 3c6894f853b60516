// ABOUTME: Generals handler forwarding page-wide appearance settings
// ABOUTME: Runs first in every settings pass, before feed, jobs and misc

package engine

import (
	"linkoff-engine/core/domain"
	"linkoff-engine/core/settings"
)

// applyGenerals forwards page-wide appearance settings.
func (c *Controller) applyGenerals(gate settings.Gate) {
	snap := gate.New()
	if gate.Changed(domain.KeyDarkMode) {
		c.deps.Appearance.SetDarkMode(snap.Bool(domain.KeyDarkMode))
	}
	if gate.Changed(domain.KeyWideMode) {
		c.deps.Appearance.SetWideMode(snap.Bool(domain.KeyWideMode))
	}
}
