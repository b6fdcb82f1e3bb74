package aff

import (
	"regexp"
	"strings"
)

// RepRule is one REP table entry: a compiled pattern and its replacement.
// An underscore in either side of the source line stands for a space.
type RepRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRepRule compiles a REP source pair. The pattern side may carry ^ and $
// anchors; the replacement side uses _ for a space.
func NewRepRule(pattern, replacement string) (RepRule, error) {
	re, err := regexp.Compile(strings.ReplaceAll(pattern, "_", " "))
	if err != nil {
		return RepRule{}, err
	}
	return RepRule{
		Pattern:     re,
		Replacement: strings.ReplaceAll(replacement, "_", " "),
	}, nil
}

// ConvPair is a single OCONV rewrite.
type ConvPair struct {
	From string
	To   string
}

// ConvTable applies OCONV rewrites: at every position the longest matching
// pattern wins, unmatched runes pass through.
type ConvTable struct {
	pairs []ConvPair
}

// NewConvTable builds a conversion table, longest patterns first.
func NewConvTable(pairs []ConvPair) *ConvTable {
	sorted := make([]ConvPair, len(pairs))
	copy(sorted, pairs)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && len(sorted[j].From) > len(sorted[j-1].From); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return &ConvTable{pairs: sorted}
}

// Match rewrites s through the table.
func (t *ConvTable) Match(s string) string {
	if t == nil || len(t.pairs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		matched := false
		for _, p := range t.pairs {
			if strings.HasPrefix(s[i:], p.From) {
				b.WriteString(p.To)
				i += len(p.From)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// AffixRule is one PFX or SFX rule line: strip the Strip, attach the Add,
// applicable only to stems matching Condition.
type AffixRule struct {
	Flag         rune
	CrossProduct bool
	Strip        string
	Add          string
	Condition    *regexp.Regexp
}

// NewSuffixRule compiles a SFX rule; the condition anchors at the stem end.
func NewSuffixRule(flag rune, cross bool, strip, add, cond string) (AffixRule, error) {
	return newAffixRule(flag, cross, strip, add, cond, false)
}

// NewPrefixRule compiles a PFX rule; the condition anchors at the stem start.
func NewPrefixRule(flag rune, cross bool, strip, add, cond string) (AffixRule, error) {
	return newAffixRule(flag, cross, strip, add, cond, true)
}

func newAffixRule(flag rune, cross bool, strip, add, cond string, prefix bool) (AffixRule, error) {
	if strip == "0" {
		strip = ""
	}
	if add == "0" {
		add = ""
	}
	var re *regexp.Regexp
	if cond != "" && cond != "." {
		var err error
		if prefix {
			re, err = regexp.Compile("^(?:" + cond + ")")
		} else {
			re, err = regexp.Compile("(?:" + cond + ")$")
		}
		if err != nil {
			return AffixRule{}, err
		}
	}
	return AffixRule{
		Flag:         flag,
		CrossProduct: cross,
		Strip:        strip,
		Add:          add,
		Condition:    re,
	}, nil
}

// Matches reports whether the rule condition holds for stem.
func (r AffixRule) Matches(stem string) bool {
	return r.Condition == nil || r.Condition.MatchString(stem)
}
