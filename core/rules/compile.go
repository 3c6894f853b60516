// ABOUTME: Rule compiler turning a settings snapshot into ordered rule lists
// ABOUTME: Pure functions: the same snapshot always yields the same list

package rules

import (
	"strconv"
	"strings"

	"linkoff-engine/core/domain"
)

// Compiler builds feed and jobs rule lists.
type Compiler struct {
	// Patterns enables re:: keywords. When false they are plain content.
	Patterns bool
}

// NewCompiler returns a compiler with pattern keywords enabled.
func NewCompiler() *Compiler {
	return &Compiler{Patterns: true}
}

// CompileFeed compiles the feed rules with pattern keywords enabled.
func CompileFeed(snap domain.Snapshot) domain.RuleList {
	return NewCompiler().Feed(snap)
}

// CompileJobs compiles the jobs rules.
func CompileJobs(snap domain.Snapshot) domain.RuleList {
	return NewCompiler().Jobs(snap)
}

// Feed compiles user keywords, then age keywords, then one block per
// enabled toggle.
func (c *Compiler) Feed(snap domain.Snapshot) domain.RuleList {
	var list domain.RuleList
	for _, kw := range SplitKeywords(snap.String(domain.KeyFeedKeywords)) {
		list = append(list, c.parseKeyword(kw))
	}
	list = append(list, AgeKeywords(snap.AgeBucket())...)
	for _, t := range feedToggles {
		if snap.Bool(t.key) {
			list = append(list, t.rules...)
		}
	}
	return list
}

// Jobs compiles job keywords plus the promoted marker. Job rules are
// always content rules; they are matched without regard to case.
func (c *Compiler) Jobs(snap domain.Snapshot) domain.RuleList {
	var list domain.RuleList
	for _, kw := range SplitKeywords(snap.String(domain.KeyJobKeywords)) {
		list = append(list, domain.Content(kw))
	}
	if snap.Bool(domain.KeyHidePromotedJobs) {
		list = append(list, domain.Content(MarkerPromotedJob))
	}
	return list
}

func (c *Compiler) parseKeyword(kw string) domain.Rule {
	r := domain.ParseRule(kw)
	if r.Kind == domain.PatternRule && !c.Patterns {
		return domain.Content(kw)
	}
	return r
}

// SplitKeywords splits a comma separated keyword setting. Entries are
// neither trimmed nor case folded, and "" yields no keywords.
func SplitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// AgeKeywords expands an age bucket into text rules matching relative
// timestamps at or below its granularity. For each unit, coarsest first,
// the numbered forms 2..max come before the bare form.
func AgeKeywords(bucket domain.AgeBucket) domain.RuleList {
	rank := bucket.Rank()
	if rank == 0 {
		return nil
	}
	units := domain.AgeUnits()
	var list domain.RuleList
	for i := rank - 1; i >= 0; i-- {
		u := units[i]
		for n := 2; n <= u.Max(); n++ {
			list = append(list, domain.Text(strconv.Itoa(n)+u.Suffix()))
		}
		list = append(list, domain.Text(u.Suffix()))
	}
	return list
}
