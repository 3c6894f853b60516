// ABOUTME: Settings diff gate telling each handler whether its input changed
// ABOUTME: The visual mode and master switch force every handler to reconsider

package settings

import (
	"sort"

	"linkoff-engine/core/domain"
)

// forceKeys invalidate every handler when they change.
var forceKeys = []string{domain.KeyGentleMode, domain.KeyMainToggle}

// Gate is the per-key difference between two snapshots.
type Gate struct {
	prev    domain.Snapshot
	next    domain.Snapshot
	changed map[string]bool
	forced  bool
}

// Diff compares prev and next. An empty prev snapshot makes every present
// key count as changed.
func Diff(prev, next domain.Snapshot) Gate {
	g := Gate{prev: prev, next: next, changed: make(map[string]bool)}
	keys := make(map[string]struct{})
	for _, k := range prev.Keys() {
		keys[k] = struct{}{}
	}
	for _, k := range next.Keys() {
		keys[k] = struct{}{}
	}
	for k := range keys {
		ov, oldOK := prev.Value(k)
		nv, newOK := next.Value(k)
		if oldOK != newOK || ov != nv {
			g.changed[k] = true
		}
	}
	for _, k := range forceKeys {
		if g.changed[k] {
			g.forced = true
		}
	}
	return g
}

// Changed reports whether key changed or a force key changed.
func (g Gate) Changed(key string) bool {
	return g.forced || g.changed[key]
}

// Toggled reports whether key needs reconsidering and its new value
// equals want. Handlers use Toggled(key, true) to hide and
// Toggled(key, false) to restore.
func (g Gate) Toggled(key string, want any) bool {
	if !g.Changed(key) {
		return false
	}
	v, ok := g.next.Value(key)
	if !ok {
		return false
	}
	return v == want
}

// Forced reports whether a force key changed.
func (g Gate) Forced() bool {
	return g.forced
}

// Unchanged reports whether no key changed at all.
func (g Gate) Unchanged() bool {
	return len(g.changed) == 0
}

// ChangedKeys returns the keys whose own value changed, sorted.
func (g Gate) ChangedKeys() []string {
	out := make([]string, 0, len(g.changed))
	for k := range g.changed {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Old returns the previous snapshot.
func (g Gate) Old() domain.Snapshot { return g.prev }

// New returns the incoming snapshot.
func (g Gate) New() domain.Snapshot { return g.next }
