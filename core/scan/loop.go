// ABOUTME: Scan loop that periodically classifies the items of one surface
// ABOUTME: One live run per loop; ticks are serialised through an executor

package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"linkoff-engine/core/classifier"
	"linkoff-engine/core/domain"
	"linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
	"linkoff-engine/core/state"
	"linkoff-engine/core/workers"
	"linkoff-engine/pkg/clock"
)

// Advisory is shown when too little content has loaded to filter.
const Advisory = "Scroll down to start blocking posts (LinkedIn needs at least 10 loaded to load new ones).\n\n" +
	"To disable this alert, toggle it under misc in LinkOff settings"

// Subset selects which items a tick evaluates.
type Subset int

const (
	// SubsetPristine evaluates only items not yet classified.
	SubsetPristine Subset = iota
	// SubsetAll re-evaluates every item each tick.
	SubsetAll
)

// Config holds per-surface loop settings.
type Config struct {
	Surface        domain.Surface
	Period         time.Duration
	ResyncEvery    int  // reset non-override items every N ticks; 0 disables
	Guard          bool // skip ticks with too few items in hide mode
	GuardThreshold int
	Subset         Subset

	// Manual loops never spawn a timer; ticks happen only via Tick.
	Manual bool

	// PokeInterval is the minimum spacing of on-demand rescans.
	PokeInterval time.Duration
}

// DefaultFeedConfig returns the feed loop settings.
func DefaultFeedConfig() Config {
	return Config{
		Surface:        domain.SurfaceFeed,
		Period:         350 * time.Millisecond,
		ResyncEvery:    10,
		Guard:          true,
		GuardThreshold: 5,
		Subset:         SubsetPristine,
		PokeInterval:   100 * time.Millisecond,
	}
}

// DefaultJobsConfig returns the jobs loop settings.
func DefaultJobsConfig() Config {
	return Config{
		Surface:      domain.SurfaceJobs,
		Period:       350 * time.Millisecond,
		ResyncEvery:  10,
		Subset:       SubsetAll,
		PokeInterval: 100 * time.Millisecond,
	}
}

// Pass is what a run applies: the rule list and the visual mode.
type Pass struct {
	Rules domain.RuleList
	Mode  domain.VisualMode

	// SuppressAdvisory mirrors disable-postcount-prompt.
	SuppressAdvisory bool
}

// Stats summarises one tick.
type Stats struct {
	Run         int
	Found       int
	Matched     int
	Transitions int
	Reset       int
	Skipped     bool
}

// Loop is the scan scheduler of one surface.
type Loop struct {
	cfg        Config
	doc        interfaces.DocumentView
	classifier *classifier.Classifier
	machine    *state.Machine
	executor   workers.Executor
	clock      clock.Clock
	notifier   interfaces.Notifier
	logger     interfaces.Logger
	limiter    *rate.Limiter
	pokes      chan struct{}

	mu         sync.Mutex
	pass       Pass
	active     bool
	generation int
	cancel     context.CancelFunc
	runs       int
	advised    bool
}

// Deps are the collaborators of a Loop.
type Deps struct {
	Document   interfaces.DocumentView
	Classifier *classifier.Classifier
	Machine    *state.Machine
	Executor   workers.Executor
	Clock      clock.Clock
	Notifier   interfaces.Notifier
	Logger     interfaces.Logger
}

// NewLoop creates a stopped loop.
func NewLoop(cfg Config, deps Deps) *Loop {
	if cfg.Period <= 0 {
		cfg.Period = DefaultFeedConfig().Period
	}
	if deps.Executor == nil {
		deps.Executor = workers.NewInline()
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Notifier == nil {
		deps.Notifier = interfaces.NopNotifier{}
	}
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if deps.Machine == nil {
		deps.Machine = state.New(deps.Document)
	}
	if deps.Classifier == nil {
		mode := classifier.CaseSensitive
		if cfg.Surface == domain.SurfaceJobs {
			mode = classifier.CaseInsensitive
		}
		deps.Classifier = classifier.New(mode, deps.Logger)
	}

	limit := rate.Inf
	if cfg.PokeInterval > 0 {
		limit = rate.Every(cfg.PokeInterval)
	}

	return &Loop{
		cfg:        cfg,
		doc:        deps.Document,
		classifier: deps.Classifier,
		machine:    deps.Machine,
		executor:   deps.Executor,
		clock:      deps.Clock,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
		limiter:    rate.NewLimiter(limit, 1),
		pokes:      make(chan struct{}, 1),
	}
}

// Surface returns the surface this loop scans.
func (l *Loop) Surface() domain.Surface {
	return l.cfg.Surface
}

// Start cancels any previous run and begins applying pass. An empty rule
// list leaves the loop stopped and returns ErrNoRules.
func (l *Loop) Start(ctx context.Context, pass Pass) error {
	if len(pass.Rules) == 0 {
		l.Stop()
		return errors.ErrNoRules
	}

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.generation++
	gen := l.generation
	l.pass = Pass{
		Rules:            append(domain.RuleList(nil), pass.Rules...),
		Mode:             pass.Mode,
		SuppressAdvisory: pass.SuppressAdvisory,
	}
	l.active = true
	l.mu.Unlock()

	l.logger.Info("Scan loop started", map[string]interface{}{
		"surface":  string(l.cfg.Surface),
		"keywords": pass.Rules.Strings(),
		"mode":     pass.Mode.String(),
	})

	if !l.cfg.Manual {
		go l.run(runCtx, gen)
	}
	return nil
}

// Stop cancels the live run. It does not wait for an in-flight tick, so
// it is safe to call from inside a task on the same executor.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.active {
		l.logger.Debug("Scan loop stopped", map[string]interface{}{
			"surface": string(l.cfg.Surface),
		})
	}
	l.active = false
	l.generation++
}

// Active reports whether a run is live.
func (l *Loop) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Pass returns the pass of the live or last run.
func (l *Loop) Pass() Pass {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pass
}

// Runs returns how many ticks have executed.
func (l *Loop) Runs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runs
}

// Poke requests an extra tick as soon as the rate limit allows.
func (l *Loop) Poke() {
	select {
	case l.pokes <- struct{}{}:
	default:
	}
}

// Tick runs one tick now through the executor. It does nothing while the
// loop is stopped.
func (l *Loop) Tick(ctx context.Context) (Stats, error) {
	l.mu.Lock()
	gen := l.generation
	l.mu.Unlock()

	var stats Stats
	err := l.executor.Do(ctx, func(ctx context.Context) {
		stats = l.tick(ctx, gen)
	})
	return stats, err
}

func (l *Loop) run(ctx context.Context, gen int) {
	ticker := l.clock.NewTicker(l.cfg.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-l.pokes:
			if !l.limiter.AllowN(l.clock.Now(), 1) {
				continue
			}
		}
		err := l.executor.Do(ctx, func(ctx context.Context) {
			l.tick(ctx, gen)
		})
		if err != nil && ctx.Err() == nil {
			l.logger.Warn("Scan tick not executed", map[string]interface{}{
				"surface": string(l.cfg.Surface),
				"error":   err.Error(),
			})
		}
	}
}

// tick is the body of one scan. A stale generation or a cancelled
// context makes it a no-op.
func (l *Loop) tick(ctx context.Context, gen int) (stats Stats) {
	l.mu.Lock()
	if !l.active || gen != l.generation || ctx.Err() != nil {
		l.mu.Unlock()
		return Stats{Skipped: true}
	}
	pass := l.pass
	run := l.runs
	l.runs++
	l.mu.Unlock()

	stats.Run = run
	defer func() {
		if r := recover(); r != nil {
			stats.Skipped = true
			l.logger.Error("Scan tick failed", map[string]interface{}{
				"surface": string(l.cfg.Surface),
				"run":     run,
				"panic":   fmt.Sprint(r),
			})
		}
	}()

	if l.cfg.ResyncEvery > 0 && run%l.cfg.ResyncEvery == 0 {
		for _, item := range l.doc.Items(l.cfg.Surface) {
			if l.machine.Reset(item, false) {
				stats.Reset++
			}
		}
	}

	relevant := l.relevant()
	stats.Found = len(relevant)

	l.logger.Debug("Scanning items", map[string]interface{}{
		"surface": string(l.cfg.Surface),
		"run":     run,
		"found":   stats.Found,
	})

	if l.cfg.Guard && pass.Mode == domain.ModeHide && len(relevant) <= l.cfg.GuardThreshold {
		stats.Skipped = true
		l.advise(pass)
		return stats
	}

	for _, item := range relevant {
		res := l.classifier.Classify(item, pass.Rules)
		tr := l.machine.Apply(item, res, pass.Mode)
		if tr.Changed {
			stats.Transitions++
		}
		if res.Matched && tr.To == domain.Hidden {
			stats.Matched++
			l.logger.Info("Blocked item", map[string]interface{}{
				"surface": string(l.cfg.Surface),
				"item":    item.ID,
				"keyword": res.Rule.String(),
			})
		}
	}

	if stats.Matched > 0 {
		l.logger.Debug("Tick matched items", map[string]interface{}{
			"surface": string(l.cfg.Surface),
			"run":     run,
			"matched": stats.Matched,
		})
	}
	return stats
}

func (l *Loop) relevant() []*domain.Item {
	items := l.doc.Items(l.cfg.Surface)
	if l.cfg.Subset == SubsetAll {
		return items
	}
	out := items[:0:0]
	for _, item := range items {
		if item.State == domain.Pristine {
			out = append(out, item)
		}
	}
	return out
}

func (l *Loop) advise(pass Pass) {
	if pass.SuppressAdvisory {
		return
	}
	l.mu.Lock()
	if l.advised {
		l.mu.Unlock()
		return
	}
	l.advised = true
	l.mu.Unlock()

	l.logger.Info("Too few items loaded to filter", map[string]interface{}{
		"surface":   string(l.cfg.Surface),
		"threshold": l.cfg.GuardThreshold,
	})
	l.notifier.Notify(Advisory)
}
