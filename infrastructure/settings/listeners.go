// ABOUTME: Change listener registry shared by the settings store backends
// ABOUTME: Computes which keys actually changed and fans the change out

package settings

import "sync"

// Listeners holds change callbacks registered through OnChanged.
type Listeners struct {
	mu   sync.Mutex
	next int
	byID map[int]func(map[string]any)
}

// Add registers fn and returns a function removing it.
func (l *Listeners) Add(fn func(map[string]any)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.byID == nil {
		l.byID = make(map[int]func(map[string]any))
	}
	id := l.next
	l.next++
	l.byID[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.byID, id)
	}
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}

// Notify calls every listener with changes. Empty changes are dropped.
func (l *Listeners) Notify(changes map[string]any) {
	if len(changes) == 0 {
		return
	}
	l.mu.Lock()
	fns := make([]func(map[string]any), 0, len(l.byID))
	for _, fn := range l.byID {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(copyValues(changes))
	}
}

// Diff returns the entries of next whose value differs from current.
func Diff(current, next map[string]any) map[string]any {
	changes := make(map[string]any)
	for k, v := range next {
		if old, ok := current[k]; ok && old == v {
			continue
		}
		changes[k] = v
	}
	return changes
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
