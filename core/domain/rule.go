// ABOUTME: Rule domain model, a tagged union of content, text and pattern rules
// ABOUTME: Rule lists compare by value so rule changes can be reconciled

package domain

import "strings"

// Rule prefixes in the keyword wire form.
const (
	TextPrefix    = "text::"
	PatternPrefix = "re::"
)

// RuleKind selects what part of an item a rule inspects.
type RuleKind int

const (
	// ContentRule matches a substring of the item's raw markup.
	ContentRule RuleKind = iota
	// TextRule matches a substring of the item's rendered text.
	TextRule
	// PatternRule matches a regular expression against the rendered text.
	PatternRule
)

func (k RuleKind) String() string {
	switch k {
	case TextRule:
		return "text"
	case PatternRule:
		return "pattern"
	default:
		return "content"
	}
}

// Rule is one filter criterion.
type Rule struct {
	Kind  RuleKind
	Value string
}

// Content builds a markup rule.
func Content(v string) Rule { return Rule{Kind: ContentRule, Value: v} }

// Text builds a rendered-text rule.
func Text(v string) Rule { return Rule{Kind: TextRule, Value: v} }

// Pattern builds a regular expression rule.
func Pattern(v string) Rule { return Rule{Kind: PatternRule, Value: v} }

// ParseRule reads the keyword wire form. Keywords carrying the text:: or
// re:: prefix become text or pattern rules, anything else is content.
func ParseRule(s string) Rule {
	switch {
	case strings.HasPrefix(s, TextPrefix):
		return Text(strings.TrimPrefix(s, TextPrefix))
	case strings.HasPrefix(s, PatternPrefix):
		return Pattern(strings.TrimPrefix(s, PatternPrefix))
	default:
		return Content(s)
	}
}

// String renders the rule in its keyword wire form.
func (r Rule) String() string {
	switch r.Kind {
	case TextRule:
		return TextPrefix + r.Value
	case PatternRule:
		return PatternPrefix + r.Value
	default:
		return r.Value
	}
}

// RuleList is an ordered rule sequence. Order is significant for reporting.
type RuleList []Rule

// Equal reports element-wise equality.
func (l RuleList) Equal(other RuleList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Contains reports whether r appears in the list.
func (l RuleList) Contains(r Rule) bool {
	for _, x := range l {
		if x == r {
			return true
		}
	}
	return false
}

// Strings renders every rule in wire form.
func (l RuleList) Strings() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.String()
	}
	return out
}
