// ABOUTME: Feed handler reacting to feed settings on each pass
// ABOUTME: Starts the feed scan loop or hides the whole feed container

package engine

import (
	"context"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/scan"
	"linkoff-engine/core/settings"
)

func (c *Controller) applyFeed(gate settings.Gate) {
	snap := gate.New()

	if gate.Toggled(domain.KeyMainToggle, false) {
		c.feed.Stop()
		c.feedRules.Update(nil)
		c.clearSurface(domain.SurfaceFeed)
		c.toggleFeed(false)
		return
	}
	if !snap.Bool(domain.KeyMainToggle) {
		return
	}

	if gate.Toggled(domain.KeySortByRecent, true) {
		go c.sortByRecent(c.base)
	}

	list := c.compiler.Feed(snap)
	c.logger.Info("Current feed keywords", map[string]interface{}{
		"keywords": list.Strings(),
	})
	decision := c.feedRules.Update(list)

	if snap.Bool(domain.KeyHideWholeFeed) {
		c.feed.Stop()
		if gate.Changed(domain.KeyHideWholeFeed) {
			c.toggleFeed(true)
		}
		return
	}
	if gate.Changed(domain.KeyHideWholeFeed) {
		c.toggleFeed(false)
	}

	if len(list) == 0 {
		c.feed.Stop()
		c.clearSurface(domain.SurfaceFeed)
		return
	}

	// Hidden items are re-evaluated under the new rules; a relaxation also
	// drops user overrides.
	for _, item := range c.deps.Document.Items(domain.SurfaceFeed) {
		if decision.Reset {
			c.machine.Reset(item, true)
		} else if item.State == domain.Hidden {
			c.machine.Reset(item, false)
		}
	}
	if decision.Reset {
		c.logger.Debug("Feed rules relaxed, items reset", map[string]interface{}{
			"shrunk": decision.Shrunk,
		})
	}

	err := c.feed.Start(c.base, scan.Pass{
		Rules:            list,
		Mode:             snap.Mode(),
		SuppressAdvisory: snap.Bool(domain.KeyDisablePostCountPrompt),
	})
	if err != nil {
		c.logger.Warn("Feed loop not started", map[string]interface{}{"error": err.Error()})
		return
	}
	c.Rescan()
}

// toggleFeed hides or shows the feed container on the home feed. The
// container may not be rendered yet, so attempts are retried in the
// background and abandoned silently.
func (c *Controller) toggleFeed(hidden bool) {
	if !domain.IsHomeFeed(c.deps.Document.URL()) {
		return
	}

	c.mu.Lock()
	c.toggleGen++
	gen := c.toggleGen
	c.mu.Unlock()

	go func() {
		ok := retry(c.base, c.clock, c.cfg.RetryAttempts, c.cfg.RetryBase, c.cfg.RetryStep, func() bool {
			c.mu.Lock()
			stale := gen != c.toggleGen
			c.mu.Unlock()
			if stale {
				return true
			}

			var done bool
			_ = c.executor.Do(c.base, func(context.Context) {
				done = c.deps.Toggler.SetContainerHidden(FeedContainerClass, hidden)
			})
			return done
		})
		if ok {
			c.logger.Info("Feed visibility changed", map[string]interface{}{"hidden": hidden})
		} else {
			c.logger.Debug("Feed container not found", map[string]interface{}{"hidden": hidden})
		}
	}()
}

// sortByRecent opens the sort dropdown and picks the recent option.
func (c *Controller) sortByRecent(ctx context.Context) {
	if !domain.IsFeedLanding(c.deps.Document.URL()) {
		return
	}

	clickFirst := func(selector string) func() bool {
		return func() bool {
			var clicked int
			_ = c.executor.Do(ctx, func(ctx context.Context) {
				if c.deps.Clicker.Count(selector) == 0 {
					return
				}
				clicked, _ = c.deps.Clicker.Click(ctx, selector, 1)
			})
			return clicked > 0
		}
	}

	if !retry(ctx, c.clock, c.cfg.RetryAttempts, c.cfg.RetryBase, c.cfg.RetryStep, clickFirst(SortTriggerSelector)) {
		c.logger.Debug("Sort dropdown not found", nil)
		return
	}
	if !retry(ctx, c.clock, c.cfg.RetryAttempts, c.cfg.RetryBase, c.cfg.RetryStep, clickFirst(SortRecentSelector)) {
		c.logger.Debug("Sort option not found", nil)
		return
	}
	c.logger.Info("Feed sorted by recent", nil)
}
