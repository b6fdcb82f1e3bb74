// Package aff models the affix file of a Hunspell dictionary: special
// flags, suggestion tables (REP, MAP, KEY, TRY, PHONE), prefix and suffix
// rules, output conversion, and the casing helpers built on top of them.
package aff

import "strings"

// Default numeric knobs used when the affix file stays silent.
const (
	DefaultMaxCpdSugs   = 3
	DefaultMaxNgramSugs = 4
	DefaultMaxDiff      = -1
	DefaultCompoundMin  = 3
)

// Aff is the parsed affix file.
type Aff struct {
	// Special flags. Zero means the flag is not set.
	ForbiddenWord  rune
	NoSuggest      rune
	OnlyInCompound rune
	KeepCase       rune
	ForceUCase     rune
	CompoundFlag   rune

	// Option switches.
	CheckSharps bool
	NoSplitSugs bool
	OnlyMaxDiff bool

	// Suggestion tables.
	Rep   []RepRule
	Map   []string
	Key   []string
	Try   string
	Phone *PhoneTable

	// Affix rules, grouped by flag.
	Pfx map[rune][]AffixRule
	Sfx map[rune][]AffixRule

	// Output conversion, applied to suggestions before emission.
	OConv *ConvTable

	// Numeric knobs.
	MaxCpdSugs   int
	MaxNgramSugs int
	MaxDiff      int
	CompoundMin  int

	Casing     Casing
	FlagParser FlagParser

	// parse-time scratch
	phonePairs   [][2]string
	oconvPairs   []ConvPair
	crossProduct map[rune]bool
}

// New returns an Aff with every knob at its default.
func New() *Aff {
	return &Aff{
		Pfx:          make(map[rune][]AffixRule),
		Sfx:          make(map[rune][]AffixRule),
		MaxCpdSugs:   DefaultMaxCpdSugs,
		MaxNgramSugs: DefaultMaxNgramSugs,
		MaxDiff:      DefaultMaxDiff,
		CompoundMin:  DefaultCompoundMin,
		crossProduct: make(map[rune]bool),
	}
}

// IsSharps reports whether text falls under the German sharp-s special
// case: CHECKSHARPS is active and the text contains ß.
func (a *Aff) IsSharps(text string) bool {
	return a.CheckSharps && strings.Contains(text, "ß")
}

// SuffixesFor returns the suffix rules registered under flag.
func (a *Aff) SuffixesFor(flag rune) []AffixRule {
	return a.Sfx[flag]
}

// PrefixesFor returns the prefix rules registered under flag.
func (a *Aff) PrefixesFor(flag rune) []AffixRule {
	return a.Pfx[flag]
}
