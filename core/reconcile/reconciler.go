// ABOUTME: Rule-change reconciler deciding when a new rule list forces a reset
// ABOUTME: Keeps the current and previous lists for one surface

package reconcile

import (
	"fmt"
	"strings"
	"sync"

	"linkoff-engine/core/domain"
)

// Policy chooses which rule changes force a reset.
type Policy int

const (
	// ResetOnShrink resets only when a previously active rule disappeared.
	ResetOnShrink Policy = iota
	// ResetOnAnyChange resets whenever the list differs at all.
	ResetOnAnyChange
)

func (p Policy) String() string {
	if p == ResetOnAnyChange {
		return "any"
	}
	return "shrink"
}

// ParsePolicy accepts "shrink" or "any".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shrink", "":
		return ResetOnShrink, nil
	case "any":
		return ResetOnAnyChange, nil
	}
	return ResetOnShrink, fmt.Errorf("unknown reconcile policy %q", s)
}

// Decision reports what an update found.
type Decision struct {
	Reset   bool
	Shrunk  bool
	Changed bool
}

// Reconciler tracks the active rule list of one surface.
type Reconciler struct {
	policy Policy

	mu       sync.Mutex
	current  domain.RuleList
	previous domain.RuleList
}

// New creates a reconciler with an empty current list.
func New(policy Policy) *Reconciler {
	return &Reconciler{policy: policy}
}

// Update installs next as the current list and decides whether items
// must be force-reset.
func (r *Reconciler) Update(next domain.RuleList) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Decision{
		Shrunk:  Shrunk(r.current, next),
		Changed: !r.current.Equal(next),
	}
	switch r.policy {
	case ResetOnAnyChange:
		d.Reset = d.Changed
	default:
		d.Reset = d.Shrunk
	}

	r.previous = r.current
	r.current = append(domain.RuleList(nil), next...)
	return d
}

// Current returns a copy of the active list.
func (r *Reconciler) Current() domain.RuleList {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(domain.RuleList(nil), r.current...)
}

// Previous returns a copy of the list replaced by the last update.
func (r *Reconciler) Previous() domain.RuleList {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(domain.RuleList(nil), r.previous...)
}

// Policy returns the configured policy.
func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Shrunk reports whether any rule of old is missing from next.
func Shrunk(old, next domain.RuleList) bool {
	for _, rule := range old {
		if !next.Contains(rule) {
			return true
		}
	}
	return false
}
