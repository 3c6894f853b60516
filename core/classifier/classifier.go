// ABOUTME: Classifier deciding whether an item matches a compiled rule list
// ABOUTME: First match wins; pattern rules are compiled lazily and cached

package classifier

import (
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"linkoff-engine/core/domain"
	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/core/interfaces"
)

// DefaultPatternTimeout bounds a single pattern evaluation.
const DefaultPatternTimeout = 50 * time.Millisecond

// Mode selects case handling.
type Mode int

const (
	// CaseSensitive is used for the feed.
	CaseSensitive Mode = iota
	// CaseInsensitive is used for jobs.
	CaseInsensitive
)

// Result is the outcome of classifying one item.
type Result struct {
	Matched bool
	Index   int // index of the matching rule, -1 when unmatched
	Rule    domain.Rule
}

// NoMatch is the unmatched result.
var NoMatch = Result{Index: -1}

// Classifier matches items against rules. It is safe for concurrent use.
type Classifier struct {
	mode    Mode
	timeout time.Duration
	logger  interfaces.Logger

	mu       sync.Mutex
	patterns map[string]*regexp2.Regexp
	broken   map[string]bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithPatternTimeout overrides DefaultPatternTimeout.
func WithPatternTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a classifier.
func New(mode Mode, logger interfaces.Logger, opts ...Option) *Classifier {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	c := &Classifier{
		mode:     mode,
		timeout:  DefaultPatternTimeout,
		logger:   logger,
		patterns: make(map[string]*regexp2.Regexp),
		broken:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the case handling mode.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// Classify evaluates rules in order and stops at the first match.
// Content rules search the markup and text rules the rendered text.
// A failing pattern rule never matches and does not abort the pass.
func (c *Classifier) Classify(item *domain.Item, rules domain.RuleList) Result {
	if item == nil || len(rules) == 0 {
		return NoMatch
	}

	markup, text := item.Markup, item.Text
	if c.mode == CaseInsensitive {
		markup, text = strings.ToLower(markup), strings.ToLower(text)
	}

	for i, rule := range rules {
		if c.matches(rule, markup, text) {
			return Result{Matched: true, Index: i, Rule: rule}
		}
	}
	return NoMatch
}

func (c *Classifier) matches(rule domain.Rule, markup, text string) bool {
	switch rule.Kind {
	case domain.TextRule:
		return strings.Contains(text, c.fold(rule.Value))
	case domain.PatternRule:
		ok, err := c.matchPattern(rule.Value, text)
		if err != nil {
			c.reportOnce(rule.Value, err)
			return false
		}
		return ok
	default:
		return strings.Contains(markup, c.fold(rule.Value))
	}
}

func (c *Classifier) fold(s string) string {
	if c.mode == CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

func (c *Classifier) matchPattern(expr, text string) (bool, error) {
	re, err := c.compile(expr)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(text)
	if err != nil {
		return false, &coreerrors.PatternError{Pattern: expr, Err: err}
	}
	return ok, nil
}

func (c *Classifier) compile(expr string) (*regexp2.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.patterns[expr]; ok {
		return re, nil
	}

	var opts regexp2.RegexOptions = regexp2.None
	if c.mode == CaseInsensitive {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, &coreerrors.PatternError{Pattern: expr, Err: err}
	}
	re.MatchTimeout = c.timeout
	c.patterns[expr] = re
	return re, nil
}

func (c *Classifier) reportOnce(expr string, err error) {
	c.mu.Lock()
	seen := c.broken[expr]
	c.broken[expr] = true
	c.mu.Unlock()

	if seen {
		return
	}
	c.logger.Warn("Skipping pattern rule", map[string]interface{}{
		"pattern": expr,
		"error":   err.Error(),
	})
}
