// ABOUTME: Misc handler hiding LinkedIn chrome such as ads, premium upsells and news
// ABOUTME: Enabled groups are re-hidden on a timer because the page re-renders them

package engine

import (
	"context"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/settings"
	"linkoff-engine/pkg/featureflags"
)

func (c *Controller) applyMisc(gate settings.Gate) {
	snap := gate.New()

	if gate.Toggled(domain.KeyMainToggle, false) {
		c.stopMisc()
		for _, g := range miscGroups {
			c.setGroupHidden(g, false, domain.ModeHide)
		}
		return
	}
	if !snap.Bool(domain.KeyMainToggle) {
		return
	}

	mode := snap.Mode()
	for _, g := range miscGroups {
		switch {
		case gate.Toggled(g.key, true):
			c.setGroupHidden(g, true, mode)
		case gate.Toggled(g.key, false):
			c.setGroupHidden(g, false, mode)
		}
	}

	if c.flags.IsEnabled(c.base, featureflags.MiscLoop) {
		c.startMisc(snap)
	}
}

// hideEnabledGroups re-applies every enabled group.
func (c *Controller) hideEnabledGroups(snap domain.Snapshot) int {
	hidden := 0
	mode := snap.Mode()
	for _, g := range miscGroups {
		if snap.Bool(g.key) {
			hidden += c.setGroupHidden(g, true, mode)
		}
	}
	return hidden
}

func (c *Controller) setGroupHidden(g miscGroup, hidden bool, mode domain.VisualMode) int {
	if g.alwaysHide {
		mode = domain.ModeHide
	}
	n := 0
	for _, class := range g.classes {
		n += c.deps.Toggler.SetHiddenByClass(class, hidden, mode)
	}
	for _, ix := range g.indexed {
		if c.deps.Toggler.SetHiddenByClassIndex(ix.class, ix.index, hidden, mode) {
			n++
		}
	}
	for _, a := range g.ancestors {
		n += c.deps.Toggler.SetAncestorHiddenByChildClass(a.child, a.selector, hidden, mode)
	}
	return n
}

func (c *Controller) startMisc(snap domain.Snapshot) {
	ctx, cancel := context.WithCancel(c.base)

	c.mu.Lock()
	if c.miscCancel != nil {
		c.miscCancel()
	}
	c.miscCancel = cancel
	c.mu.Unlock()

	go func() {
		ticker := c.clock.NewTicker(c.cfg.MiscPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			_ = c.executor.Do(ctx, func(ctx context.Context) {
				if ctx.Err() == nil {
					c.hideEnabledGroups(snap)
				}
			})
		}
	}()
}

func (c *Controller) stopMisc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.miscCancel != nil {
		c.miscCancel()
		c.miscCancel = nil
	}
}
