// Package suggest produces ordered correction candidates for misspelled
// words: a lazy pipeline of edit permutations, compound retries, dashed
// word recursion, and n-gram plus phonetic similarity fallbacks, all
// validated against the dictionary before emission.
package suggest

import "strings"

// Kind names the generator a candidate came from.
type Kind string

// Candidate kinds, in rough pipeline order.
const (
	KindUppercase      Kind = "uppercase"
	KindReplChars      Kind = "replchars"
	KindMapChars       Kind = "mapchars"
	KindSwapChar       Kind = "swapchar"
	KindLongSwapChar   Kind = "longswapchar"
	KindBadCharKey     Kind = "badcharkey"
	KindExtraChar      Kind = "extrachar"
	KindForgotChar     Kind = "forgotchar"
	KindMoveChar       Kind = "movechar"
	KindBadChar        Kind = "badchar"
	KindDoubleTwoChars Kind = "doubletwochars"
	KindSpaceWord      Kind = "spaceword"
	KindTwoWords       Kind = "twowords"
	KindDashes         Kind = "dashes"
	KindCase           Kind = "case"
	KindForceUCase     Kind = "forceucase"
	KindNgram          Kind = "ngram"
	KindPhonet         Kind = "phonet"
)

// Suggestion is one candidate correction.
type Suggestion struct {
	Text string
	Kind Kind
}

// WithText returns a copy carrying text but the same kind.
func (s Suggestion) WithText(text string) Suggestion {
	return Suggestion{Text: text, Kind: s.Kind}
}

// MultiWordSuggestion is a candidate made of several words that may join
// with spaces and, when AllowDash is set, with dashes.
type MultiWordSuggestion struct {
	Words     []string
	Kind      Kind
	AllowDash bool
}

// Stringify joins the words with sep into a plain Suggestion.
func (s MultiWordSuggestion) Stringify(sep string) Suggestion {
	return Suggestion{Text: strings.Join(s.Words, sep), Kind: s.Kind}
}
