package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/workers"
)

// fakePage implements every page-facing interface the controller uses.
type fakePage struct {
	mu sync.Mutex

	url       string
	items     map[domain.Surface][]*domain.Item
	presented map[string]domain.VisibilityState
	setCalls  int

	classHidden     map[string]bool
	classMode       map[string]domain.VisualMode
	indexHidden     map[string]bool
	ancestorHidden  map[string]bool
	hasContainer    bool
	containerHidden bool

	clickable map[string]int
	clicks    map[string]int
	batches   []int // unfollow buttons revealed by each scroll
	scrolls   int

	dark, wide []bool
	notes      []string
}

func newFakePage(url string) *fakePage {
	return &fakePage{
		url:            url,
		items:          make(map[domain.Surface][]*domain.Item),
		presented:      make(map[string]domain.VisibilityState),
		classHidden:    make(map[string]bool),
		classMode:      make(map[string]domain.VisualMode),
		indexHidden:    make(map[string]bool),
		ancestorHidden: make(map[string]bool),
		hasContainer:   true,
		clickable:      make(map[string]int),
		clicks:         make(map[string]int),
	}
}

func (p *fakePage) setURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

func (p *fakePage) add(surface domain.Surface, items ...*domain.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[surface] = append(p.items[surface], items...)
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *fakePage) Items(surface domain.Surface) []*domain.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.Item(nil), p.items[surface]...)
}

func (p *fakePage) SetState(item *domain.Item, _ domain.VisualMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presented[item.ID] = item.State
	p.setCalls++
}

func (p *fakePage) SetHiddenByClass(class string, hidden bool, mode domain.VisualMode) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.classHidden[class] = hidden
	p.classMode[class] = mode
	return 1
}

func (p *fakePage) SetHiddenByClassIndex(class string, index int, hidden bool, _ domain.VisualMode) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexHidden[class] = hidden
	return true
}

func (p *fakePage) SetAncestorHiddenByChildClass(child, _ string, hidden bool, _ domain.VisualMode) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ancestorHidden[child] = hidden
	return 1
}

func (p *fakePage) SetContainerHidden(class string, hidden bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasContainer {
		return false
	}
	p.containerHidden = hidden
	return true
}

func (p *fakePage) Click(_ context.Context, selector string, limit int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.clickable[selector]
	if limit > 0 && n > limit {
		n = limit
	}
	p.clickable[selector] -= n
	p.clicks[selector] += n
	return n, nil
}

func (p *fakePage) Count(selector string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clickable[selector]
}

func (p *fakePage) ScrollToBottom(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolls++
	if len(p.batches) > 0 {
		p.clickable[UnfollowButtonSelector] += p.batches[0]
		p.batches = p.batches[1:]
	}
	return nil
}

func (p *fakePage) SetDarkMode(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dark = append(p.dark, enabled)
}

func (p *fakePage) SetWideMode(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wide = append(p.wide, enabled)
}

func (p *fakePage) Notify(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, msg)
}

func (p *fakePage) isClassHidden(class string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.classHidden[class]
}

func (p *fakePage) isContainerHidden() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.containerHidden
}

func (p *fakePage) darkCalls() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.dark...)
}

func (p *fakePage) notifications() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notes...)
}

// fakeStore is a settings store with func-field overrides.
type fakeStore struct {
	mu        sync.Mutex
	values    map[string]any
	listeners []func(map[string]any)

	getFunc func(ctx context.Context, keys []string) (map[string]any, error)
	setFunc func(ctx context.Context, values map[string]any) error
}

func newFakeStore(values map[string]any) *fakeStore {
	if values == nil {
		values = make(map[string]any)
	}
	return &fakeStore{values: values}
}

func (s *fakeStore) Get(ctx context.Context, keys []string) (map[string]any, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, keys)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any)
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *fakeStore) Set(ctx context.Context, values map[string]any) error {
	if s.setFunc != nil {
		return s.setFunc(ctx, values)
	}
	s.mu.Lock()
	for k, v := range values {
		s.values[k] = v
	}
	listeners := append(([]func(map[string]any))(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(values)
	}
	return nil
}

func (s *fakeStore) OnChanged(fn func(map[string]any)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners[idx] = func(map[string]any) {}
	}
}

func (s *fakeStore) listenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func feedPost(id, markup, text string) *domain.Item {
	return &domain.Item{ID: id, Markup: markup, Text: text}
}

func hasPrefix(notes []string, prefix string) bool {
	for _, n := range notes {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

// heldExecutor runs tasks inline until hold is called, then parks them
// until the test releases them in a chosen order.
type heldExecutor struct {
	mu     sync.Mutex
	held   bool
	parked []heldTask
	queued chan struct{}
}

type heldTask struct {
	ctx  context.Context
	task workers.Task
	done chan struct{}
}

func newHeldExecutor() *heldExecutor {
	return &heldExecutor{queued: make(chan struct{}, 16)}
}

func (e *heldExecutor) Do(ctx context.Context, task workers.Task) error {
	e.mu.Lock()
	if !e.held {
		e.mu.Unlock()
		task(ctx)
		return nil
	}
	t := heldTask{ctx: ctx, task: task, done: make(chan struct{})}
	e.parked = append(e.parked, t)
	e.mu.Unlock()

	e.queued <- struct{}{}
	<-t.done
	return nil
}

func (e *heldExecutor) hold() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.held = true
}

func (e *heldExecutor) waitQueued(t *testing.T) {
	t.Helper()
	select {
	case <-e.queued:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not queued")
	}
}

// releaseNewestFirst runs the parked tasks in reverse submission order
// and stops holding new ones.
func (e *heldExecutor) releaseNewestFirst() {
	e.mu.Lock()
	parked := e.parked
	e.parked = nil
	e.held = false
	e.mu.Unlock()

	for i := len(parked) - 1; i >= 0; i-- {
		parked[i].task(parked[i].ctx)
		close(parked[i].done)
	}
}
