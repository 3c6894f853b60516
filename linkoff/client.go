// ABOUTME: Main client for the LinkOff library running the filter engine over a page
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package linkoff

import (
	"context"
	"io"
	"strings"
	"sync"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/engine"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/core/settings"
	"linkoff-engine/core/workers"
	"linkoff-engine/infrastructure/document/feeddoc"
	"linkoff-engine/infrastructure/document/htmldoc"
	"linkoff-engine/pkg/clock"
	"linkoff-engine/pkg/featureflags"
)

// Client is the main entry point for the LinkOff library
type Client struct {
	ctrl    *engine.Controller
	doc     *htmldoc.Document
	loader  *settings.Loader
	runLoop *workers.RunLoop
	config  Config

	mu     sync.Mutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// Store persists settings
	Store interfaces.SettingsStore

	// HTTPClient downloads pages and feeds
	HTTPClient interfaces.HTTPClient

	// Logger configuration
	Logger interfaces.Logger

	// Engine timings and reset policies
	Engine engine.Config

	// Flags gates optional engine behaviour; nil uses the defaults
	Flags featureflags.Manager

	// Clock drives every timer
	Clock clock.Clock

	// RunLoop, when set, serialises engine work on one goroutine
	RunLoop *workers.RunLoopConfig

	// Initial page
	PageURL  string
	PageHTML string

	closers []func() error
}

// NewClient creates a new LinkOff client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	doc, err := htmldoc.Parse(config.PageURL, config.PageHTML)
	if err != nil {
		return nil, NewError(ErrorTypeParsing, "failed to parse initial page").WithCause(err)
	}

	deps := interfaces.Dependencies{
		Store:      config.Store,
		Document:   doc,
		Toggler:    doc,
		Clicker:    doc,
		Appearance: doc,
		Notifier:   doc,
		Logger:     config.Logger,
	}

	opts := []engine.Option{
		engine.WithConfig(config.Engine),
		engine.WithClock(config.Clock),
	}
	if config.Flags != nil {
		opts = append(opts, engine.WithFlags(config.Flags))
	}

	client := &Client{
		doc:    doc,
		loader: settings.NewLoader(config.Store, config.Logger),
		config: config,
	}
	if config.RunLoop != nil {
		client.runLoop = workers.NewRunLoop(*config.RunLoop)
		if err := client.runLoop.Start(); err != nil {
			return nil, NewError(ErrorTypeInternal, "failed to start run loop").WithCause(err)
		}
		opts = append(opts, engine.WithExecutor(client.runLoop))
	}

	ctrl, err := engine.New(deps, opts...)
	if err != nil {
		client.stopRunLoop()
		return nil, fromCore(err, "failed to create engine")
	}
	client.ctrl = ctrl
	return client, nil
}

// Close stops the engine and releases the store
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.ctrl.Close()
	c.stopRunLoop()

	var firstErr error
	for _, closeFn := range c.config.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run applies the stored settings and then follows settings changes and
// page navigation until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	return fromCore(c.ctrl.Run(ctx), "engine stopped")
}

// Refresh applies the stored settings once.
func (c *Client) Refresh(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	return fromCore(c.ctrl.Refresh(ctx), "failed to apply settings")
}

// Settings returns the stored settings merged over the defaults
func (c *Client) Settings(ctx context.Context) (domain.Snapshot, error) {
	if err := c.check(); err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := c.loader.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fromCore(err, "failed to load settings")
	}
	return snap, nil
}

// UpdateSettings writes values and applies the result
func (c *Client) UpdateSettings(ctx context.Context, values map[string]any) (domain.Snapshot, error) {
	if err := c.check(); err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := c.ctrl.UpdateSettings(ctx, values)
	if err != nil {
		return domain.Snapshot{}, fromCore(err, "failed to update settings")
	}
	return snap, nil
}

// Items returns the items of a surface and their decisions
func (c *Client) Items(ctx context.Context, surface domain.Surface) ([]Item, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	items, err := c.ctrl.Items(ctx, surface)
	if err != nil {
		return nil, fromCore(err, "failed to list items")
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = domainItemToPublic(surface, item)
	}
	return out, nil
}

// Reveal shows a hidden item until the rules change
func (c *Client) Reveal(ctx context.Context, id string) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	revealed, err := c.ctrl.Reveal(ctx, id)
	if err != nil {
		return false, fromCore(err, "failed to reveal item")
	}
	return revealed, nil
}

// Tick runs one scan of every active surface loop
func (c *Client) Tick(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	for _, surface := range domain.Surfaces() {
		if _, err := c.ctrl.Loop(surface).Tick(ctx); err != nil {
			return fromCore(err, "scan failed")
		}
	}
	return nil
}

// Navigate changes the page address without replacing its content
func (c *Client) Navigate(ctx context.Context, url string) error {
	if url == "" {
		return NewError(ErrorTypeValidation, "URL is required")
	}
	if err := c.check(); err != nil {
		return err
	}
	c.doc.SetURL(url)
	return c.reapply(ctx)
}

// LoadDocument replaces the page with markup served at url
func (c *Client) LoadDocument(ctx context.Context, url string, markup io.Reader) error {
	if url == "" {
		return NewError(ErrorTypeValidation, "URL is required")
	}
	if err := c.check(); err != nil {
		return err
	}
	if err := c.doc.Load(url, markup); err != nil {
		return NewError(ErrorTypeParsing, "failed to parse page").WithCause(err)
	}
	return c.reapply(ctx)
}

// LoadFeed replaces the page with the entries of the RSS, Atom or JSON
// feed at url
func (c *Client) LoadFeed(ctx context.Context, url string) error {
	if url == "" {
		return NewError(ErrorTypeValidation, "URL is required")
	}
	if err := c.check(); err != nil {
		return err
	}
	if err := feeddoc.FetchInto(ctx, c.config.HTTPClient, c.doc, url, c.config.Clock.Now()); err != nil {
		return NewError(ErrorTypeNetwork, "failed to load feed").WithCause(err).WithContext("url", url)
	}
	return c.reapply(ctx)
}

// LoadFeedData replaces the page with the entries of a feed read from r
func (c *Client) LoadFeedData(ctx context.Context, url string, r io.Reader) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := feeddoc.Load(c.doc, url, r, c.config.Clock.Now()); err != nil {
		return NewError(ErrorTypeParsing, "failed to parse feed").WithCause(err)
	}
	return c.reapply(ctx)
}

// UnfollowAll unfollows everyone listed on the follows page
func (c *Client) UnfollowAll(ctx context.Context) (int, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	n, err := c.ctrl.UnfollowAll(ctx)
	if err != nil {
		return n, fromCore(err, "unfollow failed")
	}
	return n, nil
}

// Report collects every item of every surface
func (c *Client) Report(ctx context.Context) (*Report, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	report := &Report{URL: c.doc.URL(), Mode: domain.ModeHide.String()}
	if snap, ok := c.ctrl.Snapshot(); ok {
		report.Mode = snap.Mode().String()
	}
	for _, surface := range domain.Surfaces() {
		items, err := c.Items(ctx, surface)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			switch item.State {
			case domain.Hidden.String():
				report.Hidden++
			case domain.Shown.String():
				report.Shown++
			default:
				report.Pending++
			}
		}
		report.Items = append(report.Items, items...)
	}
	return report, nil
}

// Notifications returns the advisories shown so far
func (c *Client) Notifications() []string {
	return c.doc.Notifications()
}

// Render writes the page with every presentation change applied
func (c *Client) Render(w io.Writer) error {
	return c.doc.Render(w)
}

// HTML returns the rendered page
func (c *Client) HTML() string {
	var b strings.Builder
	if err := c.doc.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// URL returns the current page address
func (c *Client) URL() string {
	return c.doc.URL()
}

// reapply re-runs every settings handler against the current page.
func (c *Client) reapply(ctx context.Context) error {
	return fromCore(c.ctrl.Reload(ctx), "failed to apply settings")
}

func (c *Client) check() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

func (c *Client) stopRunLoop() {
	if c.runLoop != nil {
		_ = c.runLoop.Stop()
	}
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Store == nil {
		return NewError(ErrorTypeConfiguration, "settings store is required")
	}
	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}
	if config.Clock == nil {
		return NewError(ErrorTypeConfiguration, "clock is required")
	}
	return nil
}
