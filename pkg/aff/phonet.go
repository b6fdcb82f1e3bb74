package aff

import (
	"sort"
	"strings"
	"unicode"
)

// PhoneRule is one parsed PHONE table rule. The search side is a literal
// run of letters, optionally followed by a (class) of alternatives, plus
// the usual modifiers: ^ start-only, $ end-only, - keep the last matched
// rune for the next rule, digits for priority.
type PhoneRule struct {
	Letters     string
	Class       string
	Start       bool
	End         bool
	FollowUp    bool
	Priority    int
	Replacement string
}

func (r PhoneRule) matchLen() int {
	n := len([]rune(r.Letters))
	if r.Class != "" {
		n++
	}
	return n
}

// match reports whether the rule applies to word at rune offset pos.
func (r PhoneRule) match(word []rune, pos int) bool {
	if r.Start && pos != 0 {
		return false
	}
	lit := []rune(r.Letters)
	if pos+len(lit) > len(word) {
		return false
	}
	for i, c := range lit {
		if word[pos+i] != c {
			return false
		}
	}
	end := pos + len(lit)
	if r.Class != "" {
		if end >= len(word) || !strings.ContainsRune(r.Class, word[end]) {
			return false
		}
		end++
	}
	if r.End && end != len(word) {
		return false
	}
	return true
}

// PhoneTable holds the affix file's phonetic replacement rules, indexed by
// the first rune of each search pattern.
type PhoneTable struct {
	rules map[rune][]PhoneRule
}

// NewPhoneTable parses PHONE source pairs into a table. Malformed rules are
// skipped silently: an empty table simply transforms every word to itself.
func NewPhoneTable(pairs [][2]string) *PhoneTable {
	t := &PhoneTable{rules: make(map[rune][]PhoneRule)}
	for _, p := range pairs {
		rule, ok := parsePhoneRule(p[0], p[1])
		if !ok {
			continue
		}
		first := []rune(rule.Letters)[0]
		t.rules[first] = append(t.rules[first], rule)
	}
	// longest, then highest-priority match wins
	for first := range t.rules {
		rs := t.rules[first]
		sort.SliceStable(rs, func(i, j int) bool {
			if rs[i].matchLen() != rs[j].matchLen() {
				return rs[i].matchLen() > rs[j].matchLen()
			}
			return rs[i].Priority > rs[j].Priority
		})
	}
	return t
}

func parsePhoneRule(search, replacement string) (PhoneRule, bool) {
	rule := PhoneRule{Replacement: replacement}
	if replacement == "_" {
		rule.Replacement = ""
	}
	rest := search
	if i := strings.IndexByte(rest, '('); i >= 0 {
		j := strings.IndexByte(rest, ')')
		if j < i {
			return PhoneRule{}, false
		}
		rule.Class = rest[i+1 : j]
		rest = rest[:i] + rest[j+1:]
	}
	var letters []rune
	for _, c := range rest {
		switch {
		case c == '^':
			rule.Start = true
		case c == '$':
			rule.End = true
		case c == '-':
			rule.FollowUp = true
		case c == '<': // "treat as follow-up" variant, same effect here
			rule.FollowUp = true
		case unicode.IsDigit(c):
			rule.Priority = rule.Priority*10 + int(c-'0')
		default:
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return PhoneRule{}, false
	}
	rule.Letters = string(letters)
	return rule, true
}

// Transform computes the phonetic form of word. Matching runs over the
// uppercased input; runes no rule covers are copied through unchanged.
func (t *PhoneTable) Transform(word string) string {
	if t == nil {
		return word
	}
	runes := []rune(strings.ToUpper(word))
	var b strings.Builder
	b.Grow(len(runes))
	for pos := 0; pos < len(runes); {
		var applied *PhoneRule
		for i := range t.rules[runes[pos]] {
			if t.rules[runes[pos]][i].match(runes, pos) {
				applied = &t.rules[runes[pos]][i]
				break
			}
		}
		if applied == nil {
			b.WriteRune(runes[pos])
			pos++
			continue
		}
		b.WriteString(applied.Replacement)
		advance := applied.matchLen()
		if applied.FollowUp && advance > 1 {
			advance--
		}
		pos += advance
	}
	return b.String()
}
