// Package lookup answers "is this word correct" against a parsed affix
// file and dictionary, covering plain stems, affixed forms and flat
// compounds.
package lookup

import (
	"strings"
	"unicode/utf8"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
)

// Opts selects which word forms qualify during a correctness check.
type Opts struct {
	// Caps retries the casing variants of the word on a miss.
	Caps bool
	// AllowNoSuggest accepts entries flagged NOSUGGEST.
	AllowNoSuggest bool
	// AffixForms accepts stems and stem+affix surface forms.
	AffixForms bool
	// CompoundForms accepts concatenations of compound-flagged stems.
	CompoundForms bool
}

// Lookup is the spell-check oracle.
type Lookup struct {
	aff *aff.Aff
	dic *dic.Dic
}

// New builds a Lookup over the given affix file and dictionary.
func New(a *aff.Aff, d *dic.Dic) *Lookup {
	return &Lookup{aff: a, dic: d}
}

// Check is the plain spell check: every form qualifies, and dashed words
// fall back to checking their pieces, the default break behavior.
func (l *Lookup) Check(word string) bool {
	all := Opts{
		Caps:           true,
		AllowNoSuggest: true,
		AffixForms:     true,
		CompoundForms:  true,
	}
	if l.Correct(word, all) {
		return true
	}
	if !strings.Contains(word, "-") {
		return false
	}
	for _, part := range strings.Split(word, "-") {
		if part == "" || !l.Correct(part, all) {
			return false
		}
	}
	return true
}

// Correct reports whether word is valid under opts.
func (l *Lookup) Correct(word string, opts Opts) bool {
	if word == "" {
		return false
	}
	if l.IsForbidden(word) {
		return false
	}
	if l.correctForms(word, opts) {
		return true
	}
	if opts.Caps {
		_, variants := l.aff.Casing.Corrections(word)
		for _, variant := range variants[1:] {
			if !l.IsForbidden(variant) && l.correctForms(variant, opts) {
				return true
			}
		}
	}
	return false
}

// IsForbidden reports whether the stored form of text carries the
// FORBIDDENWORD flag.
func (l *Lookup) IsForbidden(text string) bool {
	return l.dic.HasFlag(text, l.aff.ForbiddenWord)
}

func (l *Lookup) correctForms(word string, opts Opts) bool {
	if opts.AffixForms && l.affixForms(word, opts.AllowNoSuggest) {
		return true
	}
	if opts.CompoundForms && l.compoundForms(word) {
		return true
	}
	return false
}

// affixForms checks the bare stem and every strip/add decomposition the
// affix rules allow.
func (l *Lookup) affixForms(word string, allowNoSuggest bool) bool {
	for _, w := range l.dic.Homonyms(word) {
		if l.stemUsable(w, allowNoSuggest) {
			return true
		}
	}
	// suffix alone
	for _, rules := range l.aff.Sfx {
		for _, rule := range rules {
			if stem, ok := undoSuffix(word, rule); ok {
				if l.stemWithFlag(stem, rule.Flag, allowNoSuggest) {
					return true
				}
				// prefix + suffix, both rules allowing crossproduct
				if rule.CrossProduct && l.prefixOnStem(stem, rule.Flag, allowNoSuggest) {
					return true
				}
			}
		}
	}
	// prefix alone
	for _, rules := range l.aff.Pfx {
		for _, rule := range rules {
			if stem, ok := undoPrefix(word, rule); ok && l.stemWithFlag(stem, rule.Flag, allowNoSuggest) {
				return true
			}
		}
	}
	return false
}

// prefixOnStem strips one crossproduct prefix from the suffix-stripped
// stem and requires the dictionary entry to carry both affix flags.
func (l *Lookup) prefixOnStem(stem string, sfxFlag rune, allowNoSuggest bool) bool {
	for _, rules := range l.aff.Pfx {
		for _, rule := range rules {
			if !rule.CrossProduct {
				continue
			}
			if root, ok := undoPrefix(stem, rule); ok {
				for _, w := range l.dic.Homonyms(root) {
					if w.HasFlag(rule.Flag) && w.HasFlag(sfxFlag) && l.stemUsable(w, allowNoSuggest) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (l *Lookup) stemWithFlag(stem string, flag rune, allowNoSuggest bool) bool {
	for _, w := range l.dic.Homonyms(stem) {
		if w.HasFlag(flag) && l.stemUsable(w, allowNoSuggest) {
			return true
		}
	}
	return false
}

// stemUsable applies the exclusion flags shared by all affix-form paths.
func (l *Lookup) stemUsable(w *dic.Word, allowNoSuggest bool) bool {
	if w.HasFlag(l.aff.ForbiddenWord) {
		return false
	}
	if w.HasFlag(l.aff.OnlyInCompound) {
		return false
	}
	if !allowNoSuggest && w.HasFlag(l.aff.NoSuggest) {
		return false
	}
	return true
}

// undoSuffix recovers the stem that rule would turn into word, or reports
// that word cannot end with this suffix.
func undoSuffix(word string, rule aff.AffixRule) (string, bool) {
	if rule.Add == "" || !strings.HasSuffix(word, rule.Add) {
		return "", false
	}
	stem := word[:len(word)-len(rule.Add)] + rule.Strip
	if stem == "" || !rule.Matches(stem) {
		return "", false
	}
	return stem, true
}

func undoPrefix(word string, rule aff.AffixRule) (string, bool) {
	if rule.Add == "" || !strings.HasPrefix(word, rule.Add) {
		return "", false
	}
	stem := rule.Strip + word[len(rule.Add):]
	if stem == "" || !rule.Matches(stem) {
		return "", false
	}
	return stem, true
}

// compoundForms splits word into two or more compound-flagged parts. Only
// the flat COMPOUNDFLAG model applies here.
func (l *Lookup) compoundForms(word string) bool {
	if l.aff.CompoundFlag == 0 {
		return false
	}
	return l.compoundSplit(word, 0)
}

func (l *Lookup) compoundSplit(rest string, depth int) bool {
	if depth > 8 {
		return false
	}
	min := l.aff.CompoundMin
	if min < 1 {
		min = 1
	}
	runes := []rune(rest)
	for cut := min; cut <= len(runes)-min; cut++ {
		head := string(runes[:cut])
		if !l.compoundPart(head) {
			continue
		}
		tail := string(runes[cut:])
		if l.compoundPart(tail) {
			return true
		}
		if utf8.RuneCountInString(tail) >= 2*min && l.compoundSplit(tail, depth+1) {
			return true
		}
	}
	return false
}

func (l *Lookup) compoundPart(part string) bool {
	for _, w := range l.dic.Homonyms(part) {
		if w.HasFlag(l.aff.CompoundFlag) && !w.HasFlag(l.aff.ForbiddenWord) {
			return true
		}
	}
	return false
}
