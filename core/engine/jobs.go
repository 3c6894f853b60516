// ABOUTME: Jobs handler filtering job cards on the jobs pages
// ABOUTME: Also toggles the job guidance card and the AI button

package engine

import (
	"linkoff-engine/core/domain"
	"linkoff-engine/core/scan"
	"linkoff-engine/core/settings"
)

func (c *Controller) applyJobs(gate settings.Gate) {
	snap := gate.New()
	mode := snap.Mode()

	if gate.Toggled(domain.KeyMainToggle, false) {
		c.jobs.Stop()
		c.jobsRules.Update(nil)
		c.clearSurface(domain.SurfaceJobs)
		c.deps.Toggler.SetHiddenByClass(JobGuidanceClass, false, mode)
		c.deps.Toggler.SetHiddenByClass(JobAIButtonClass, false, mode)
		return
	}
	if !snap.Bool(domain.KeyMainToggle) {
		return
	}

	c.applyJobsToggle(gate, domain.KeyHideJobGuidance, JobGuidanceClass)
	c.applyJobsToggle(gate, domain.KeyHideAIButton, JobAIButtonClass)

	if !domain.IsJobsPage(c.deps.Document.URL()) {
		c.jobs.Stop()
		return
	}

	list := c.compiler.Jobs(snap)
	c.logger.Info("Current job keywords", map[string]interface{}{
		"keywords": list.Strings(),
	})
	decision := c.jobsRules.Update(list)

	if len(list) == 0 {
		c.jobs.Stop()
		c.clearSurface(domain.SurfaceJobs)
		return
	}
	if decision.Reset {
		for _, item := range c.deps.Document.Items(domain.SurfaceJobs) {
			c.machine.Reset(item, true)
		}
	}

	err := c.jobs.Start(c.base, scan.Pass{Rules: list, Mode: mode})
	if err != nil {
		c.logger.Warn("Jobs loop not started", map[string]interface{}{"error": err.Error()})
		return
	}
	c.Rescan()
}

func (c *Controller) applyJobsToggle(gate settings.Gate, key, class string) {
	mode := gate.New().Mode()
	switch {
	case gate.Toggled(key, true):
		c.deps.Toggler.SetHiddenByClass(class, true, mode)
	case gate.Toggled(key, false):
		c.deps.Toggler.SetHiddenByClass(class, false, mode)
	}
}
