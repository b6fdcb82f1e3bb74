package aff

import (
	"strings"
	"unicode"
)

// CapType classifies the capitalization shape of a word.
type CapType int

const (
	// CapNo means the word carries no uppercase letters.
	CapNo CapType = iota
	// CapInit means only the first letter is uppercase.
	CapInit
	// CapAll means every cased letter is uppercase.
	CapAll
	// CapHuh means the word mixes case irregularly.
	CapHuh
	// CapHuhInit is CapHuh with an uppercase first letter.
	CapHuhInit
)

func (c CapType) String() string {
	switch c {
	case CapNo:
		return "no"
	case CapInit:
		return "init"
	case CapAll:
		return "all"
	case CapHuh:
		return "huh"
	case CapHuhInit:
		return "huhinit"
	}
	return "unknown"
}

// Casing converts words between capitalization shapes and enumerates the
// recapitalizations worth re-checking for a given input.
type Casing struct{}

// Lower returns the all-lowercase form of word.
func (Casing) Lower(word string) string {
	return strings.ToLower(word)
}

// Upper returns the all-uppercase form of word.
func (Casing) Upper(word string) string {
	return strings.ToUpper(word)
}

// LowerFirst lowercases only the first letter of word.
func (c Casing) LowerFirst(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	return string(unicode.ToLower(r[0])) + string(r[1:])
}

// Capitalize returns the title-case candidates for word. The base
// implementation has exactly one; language-specific casings may add more.
func (c Casing) Capitalize(word string) []string {
	r := []rune(word)
	if len(r) == 0 {
		return []string{word}
	}
	return []string{string(unicode.ToUpper(r[0])) + c.Lower(string(r[1:]))}
}

// Guess classifies the capitalization of word.
func (c Casing) Guess(word string) CapType {
	if word == c.Lower(word) {
		return CapNo
	}
	if word == c.Upper(word) {
		return CapAll
	}
	r := []rune(word)
	firstUpper := unicode.IsUpper(r[0])
	rest := string(r[1:])
	if firstUpper && rest == c.Lower(rest) {
		return CapInit
	}
	if firstUpper {
		return CapHuhInit
	}
	return CapHuh
}

// Corrections returns the capitalization class of word together with the
// list of variants to re-check, the original always first.
func (c Casing) Corrections(word string) (CapType, []string) {
	captype := c.Guess(word)
	var variants []string
	switch captype {
	case CapNo:
		variants = []string{word}
	case CapInit:
		variants = []string{word, c.Lower(word)}
	case CapHuhInit:
		variants = []string{word, c.LowerFirst(word), c.Lower(word), c.Upper(word)}
	case CapHuh:
		variants = []string{word, c.Lower(word), c.Upper(word)}
	case CapAll:
		variants = append([]string{word, c.Lower(word)}, c.Capitalize(word)...)
	}
	return captype, dedupeStrings(variants)
}

// Coerce rewrites text to match the capitalization class captype.
func (c Casing) Coerce(text string, captype CapType) string {
	switch captype {
	case CapInit, CapHuhInit:
		r := []rune(text)
		if len(r) == 0 {
			return text
		}
		return string(unicode.ToUpper(r[0])) + string(r[1:])
	case CapAll:
		return c.Upper(text)
	}
	return text
}

// dedupeStrings drops later duplicates, keeping first-seen order.
func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
