// ABOUTME: Controller wiring settings, rule compilation and scan loops together
// ABOUTME: Applies each settings change in order: generals, feed, jobs, misc

package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/core/reconcile"
	"linkoff-engine/core/rules"
	"linkoff-engine/core/scan"
	"linkoff-engine/core/settings"
	"linkoff-engine/core/state"
	"linkoff-engine/core/workers"
	"linkoff-engine/pkg/clock"
	"linkoff-engine/pkg/featureflags"
)

// Config holds controller timings and policies.
type Config struct {
	Feed scan.Config
	Jobs scan.Config

	FeedPolicy reconcile.Policy
	JobsPolicy reconcile.Policy

	NavigationPoll time.Duration
	MiscPeriod     time.Duration

	// Retry schedule for elements that are not rendered yet.
	RetryAttempts int
	RetryBase     time.Duration
	RetryStep     time.Duration

	UnfollowPause     time.Duration
	UnfollowSettle    time.Duration
	UnfollowMaxPasses int
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		Feed:              scan.DefaultFeedConfig(),
		Jobs:              scan.DefaultJobsConfig(),
		FeedPolicy:        reconcile.ResetOnShrink,
		JobsPolicy:        reconcile.ResetOnAnyChange,
		NavigationPoll:    500 * time.Millisecond,
		MiscPeriod:        500 * time.Millisecond,
		RetryAttempts:     50,
		RetryBase:         100 * time.Millisecond,
		RetryStep:         10 * time.Millisecond,
		UnfollowPause:     100 * time.Millisecond,
		UnfollowSettle:    time.Second,
		UnfollowMaxPasses: 100,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithClock sets the clock used by every timer.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithExecutor sets the executor that serialises engine work.
func WithExecutor(e workers.Executor) Option {
	return func(c *Controller) { c.executor = e }
}

// WithFlags sets the feature flag manager.
func WithFlags(m featureflags.Manager) Option {
	return func(c *Controller) { c.flags = m }
}

// Controller reacts to settings and navigation changes.
type Controller struct {
	cfg      Config
	deps     interfaces.Dependencies
	clock    clock.Clock
	executor workers.Executor
	flags    featureflags.Manager
	logger   interfaces.Logger

	loader    *settings.Loader
	compiler  *rules.Compiler
	machine   *state.Machine
	feed      *scan.Loop
	jobs      *scan.Loop
	feedRules *reconcile.Reconciler
	jobsRules *reconcile.Reconciler

	base   context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	last       domain.Snapshot
	hasLast    bool
	passSeq    uint64
	landedSeq  uint64
	miscCancel context.CancelFunc
	toggleGen  int
}

// New creates a controller. Store and Document are required.
func New(deps interfaces.Dependencies, opts ...Option) (*Controller, error) {
	if deps.Store == nil {
		return nil, &coreerrors.ValidationError{Field: "Store", Message: "settings store is required"}
	}
	if deps.Document == nil {
		return nil, &coreerrors.ValidationError{Field: "Document", Message: "document view is required"}
	}

	c := &Controller{
		cfg:   DefaultConfig(),
		deps:  deps.WithDefaults(),
		clock: clock.Real(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.executor == nil {
		c.executor = workers.NewInline()
	}
	if c.flags == nil {
		c.flags = featureflags.NewStaticManager(featureflags.Defaults())
	}
	c.logger = c.deps.Logger

	ctx := context.Background()
	c.base, c.cancel = context.WithCancel(ctx)
	c.loader = settings.NewLoader(c.deps.Store, c.logger)
	c.compiler = &rules.Compiler{Patterns: c.flags.IsEnabled(ctx, featureflags.PatternRules)}
	c.machine = state.New(c.deps.Document)
	c.feedRules = reconcile.New(c.cfg.FeedPolicy)
	c.jobsRules = reconcile.New(c.cfg.JobsPolicy)

	feedCfg, jobsCfg := c.cfg.Feed, c.cfg.Jobs
	if !c.flags.IsEnabled(ctx, featureflags.PeriodicResync) {
		feedCfg.ResyncEvery, jobsCfg.ResyncEvery = 0, 0
	}
	loopDeps := scan.Deps{
		Document: c.deps.Document,
		Machine:  c.machine,
		Executor: c.executor,
		Clock:    c.clock,
		Notifier: c.deps.Notifier,
		Logger:   c.logger,
	}
	c.feed = scan.NewLoop(feedCfg, loopDeps)
	c.jobs = scan.NewLoop(jobsCfg, loopDeps)
	return c, nil
}

// Loop returns the scan loop of a surface.
func (c *Controller) Loop(surface domain.Surface) *scan.Loop {
	if surface == domain.SurfaceJobs {
		return c.jobs
	}
	return c.feed
}

// Snapshot returns the last applied snapshot.
func (c *Controller) Snapshot() (domain.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// Forget drops the last applied snapshot so the next Apply runs every
// handler as if all settings were new.
func (c *Controller) Forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = domain.Snapshot{}
	c.hasLast = false
}

// Refresh loads the settings store and applies the result. The store is
// read inside the pass so the newest stored state is what lands.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.pass(ctx, false, c.loader.Load)
}

// Reload discards the last applied snapshot and runs every handler
// against the stored settings, as after a navigation.
func (c *Controller) Reload(ctx context.Context) error {
	return c.pass(ctx, true, c.loader.Load)
}

// UpdateSettings validates and writes values to the store, then applies
// the merged result.
func (c *Controller) UpdateSettings(ctx context.Context, values map[string]any) (domain.Snapshot, error) {
	if err := c.loader.Save(ctx, values); err != nil {
		return domain.Snapshot{}, err
	}
	if err := c.Refresh(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	snap, _ := c.Snapshot()
	return snap, nil
}

// Apply runs one settings pass. A snapshot equal to the last applied one
// is a no-op.
func (c *Controller) Apply(ctx context.Context, snap domain.Snapshot) error {
	return c.pass(ctx, false, func(context.Context) (domain.Snapshot, error) {
		return snap, nil
	})
}

// pass diffs and applies a snapshot as one executor task. Passes are
// numbered when requested; one that reaches the executor after a newer
// pass has landed is dropped so the latest request always wins. A forced
// pass discards the last snapshot first and is never dropped.
func (c *Controller) pass(ctx context.Context, force bool, next func(context.Context) (domain.Snapshot, error)) error {
	c.mu.Lock()
	c.passSeq++
	seq := c.passSeq
	c.mu.Unlock()

	var passErr error
	err := c.executor.Do(ctx, func(ctx context.Context) {
		c.mu.Lock()
		if !force && seq < c.landedSeq {
			c.mu.Unlock()
			c.logger.Debug("Skipping superseded settings pass", map[string]interface{}{"pass": seq})
			return
		}
		if force {
			c.last = domain.Snapshot{}
			c.hasLast = false
		}
		c.mu.Unlock()

		snap, err := next(ctx)
		if err != nil {
			passErr = err
			return
		}

		c.mu.Lock()
		if c.hasLast && c.last.Equal(snap) {
			c.landedSeq = max(c.landedSeq, seq)
			c.mu.Unlock()
			return
		}
		prev := c.last
		c.mu.Unlock()

		gate := settings.Diff(prev, snap)
		c.logger.Debug("Applying settings", map[string]interface{}{
			"changed": gate.ChangedKeys(),
			"url":     c.deps.Document.URL(),
		})
		c.applyGenerals(gate)
		c.applyFeed(gate)
		c.applyJobs(gate)
		c.applyMisc(gate)

		c.mu.Lock()
		c.last = snap
		c.hasLast = true
		c.landedSeq = max(c.landedSeq, seq)
		c.mu.Unlock()
	})
	if err != nil {
		return coreerrors.WrapError(err, "apply settings")
	}
	return passErr
}

// Run loads the settings, follows store change notifications and polls
// the page address until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	lastURL := c.deps.Document.URL()
	if err := c.Refresh(ctx); err != nil {
		return err
	}

	if watcher, ok := c.deps.Store.(interfaces.SettingsWatcher); ok {
		unsubscribe := watcher.OnChanged(func(changes map[string]any) {
			c.logger.Debug("Settings changed", map[string]interface{}{
				"keys": len(changes),
			})
			if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("Failed to apply changed settings", map[string]interface{}{
					"error": err.Error(),
				})
			}
		})
		defer unsubscribe()
	}

	ticker := c.clock.NewTicker(c.cfg.NavigationPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		url := c.deps.Document.URL()
		if url == lastURL {
			continue
		}
		c.logger.Info("Navigation detected", map[string]interface{}{
			"from": lastURL,
			"to":   url,
		})
		lastURL = url
		if err := c.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("Failed to apply settings after navigation", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// Rescan asks both loops for an immediate tick.
func (c *Controller) Rescan() {
	if !c.flags.IsEnabled(c.base, featureflags.RescanPoke) {
		return
	}
	c.feed.Poke()
	c.jobs.Poke()
}

// Reveal is the user clicking a hidden item.
func (c *Controller) Reveal(ctx context.Context, id string) (bool, error) {
	var (
		revealed bool
		found    bool
	)
	err := c.executor.Do(ctx, func(ctx context.Context) {
		mode := c.mode()
		for _, surface := range domain.Surfaces() {
			for _, item := range c.deps.Document.Items(surface) {
				if item.ID != id {
					continue
				}
				found = true
				revealed = c.machine.Reveal(item, mode)
				return
			}
		}
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, &coreerrors.NotFoundError{Resource: "item", ID: id}
	}
	if revealed {
		c.logger.Info("Item revealed", map[string]interface{}{"item": id})
	}
	return revealed, nil
}

// Items returns copies of the current items of a surface.
func (c *Controller) Items(ctx context.Context, surface domain.Surface) ([]domain.Item, error) {
	var out []domain.Item
	err := c.executor.Do(ctx, func(ctx context.Context) {
		for _, item := range c.deps.Document.Items(surface) {
			out = append(out, *item)
		}
	})
	return out, err
}

// Close stops every loop and background task.
func (c *Controller) Close() {
	c.feed.Stop()
	c.jobs.Stop()
	c.stopMisc()
	c.cancel()
}

func (c *Controller) mode() domain.VisualMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.Mode()
}

// clearSurface force-resets every item of a surface and removes its marks.
func (c *Controller) clearSurface(surface domain.Surface) {
	for _, item := range c.deps.Document.Items(surface) {
		c.machine.Clear(item)
	}
}
