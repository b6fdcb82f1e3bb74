package suggest

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// ngramOpts tune the n-gram similarity primitive the way Hunspell's
// NGRAM_* option bits do.
type ngramOpts struct {
	// longerWorse subtracts for the second string being much longer.
	longerWorse bool
	// anyMismatch subtracts for any length difference.
	anyMismatch bool
	// weighted also punishes missing k-grams, extra at word edges.
	weighted bool
	// lowering lowercases the second string before comparing.
	lowering bool
}

// ngramScore sums k-gram overlap of s1 against s2 for k = 1..n.
func ngramScore(n int, s1, s2 string, opts ngramOpts) int {
	if opts.lowering {
		s2 = strings.ToLower(s2)
	}
	r1 := []rune(s1)
	r2 := []rune(s2)
	l1 := len(r1)
	l2 := len(r2)
	if l2 == 0 {
		return 0
	}

	nscore := 0
	for k := 1; k <= n; k++ {
		ns := 0
		for i := 0; i+k <= l1; i++ {
			if containsRunes(r2, r1[i:i+k]) {
				ns++
			} else if opts.weighted {
				ns--
				if i == 0 || i+k == l1 {
					ns--
				}
			}
		}
		nscore += ns
		if ns < 2 && !opts.weighted {
			break
		}
	}

	penalty := 0
	if opts.longerWorse {
		penalty = (l2 - l1) - 2
	}
	if opts.anyMismatch {
		penalty = abs(l2-l1) - 2
	}
	if penalty > 0 {
		nscore -= penalty
	}
	return nscore
}

func containsRunes(haystack, needle []rune) bool {
	return strings.Contains(string(haystack), string(needle))
}

// leftCommonSubstring measures the shared prefix; the first character may
// match case-insensitively.
func leftCommonSubstring(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}
	if r1[0] != r2[0] && r1[0] != []rune(strings.ToLower(string(r2[0])))[0] {
		return 0
	}
	n := 1
	for n < len(r1) && n < len(r2) && r1[n] == r2[n] {
		n++
	}
	return n
}

// lcsLen is the longest-common-subsequence length.
func lcsLen(s1, s2 string) int {
	return edlib.LCS(s1, s2)
}

// commonCharacterPositions counts positions holding the same character
// and reports whether the two strings differ by exactly one swap.
func commonCharacterPositions(s1, s2 string) (int, bool) {
	r1 := []rune(s1)
	r2 := []rune(strings.ToLower(s2))
	num := 0
	diff := 0
	var diffPos [2]int
	limit := len(r1)
	if len(r2) < limit {
		limit = len(r2)
	}
	for i := 0; i < limit; i++ {
		if r1[i] == r2[i] {
			num++
			continue
		}
		if diff < 2 {
			diffPos[diff] = i
		}
		diff++
	}
	isSwap := diff == 2 && len(r1) == len(r2) &&
		r1[diffPos[0]] == r2[diffPos[1]] && r1[diffPos[1]] == r2[diffPos[0]]
	return num, isSwap
}

// detectThreshold computes the minimum meaningful rough score by scoring
// the word against mangled copies of itself: every fourth character
// starting at offsets 1..3 replaced with '*'.
func detectThreshold(word string) int {
	r := []rune(word)
	thresh := 0
	for start := 1; start <= 3; start++ {
		mangled := make([]rune, len(r))
		copy(mangled, r)
		for i := start; i < len(mangled); i += 4 {
			mangled[i] = '*'
		}
		thresh += ngramScore(len(r), word, string(mangled), ngramOpts{anyMismatch: true})
	}
	return thresh/3 - 1
}

// rootScore rates a dictionary stem as a fuzzy-match root.
func rootScore(misspelling, stem string) int {
	return ngramScore(3, misspelling, stem, ngramOpts{longerWorse: true, lowering: true}) +
		leftCommonSubstring(misspelling, strings.ToLower(stem))
}

// roughScore rates an expanded surface form before the detailed pass.
func roughScore(misspelling, form string) int {
	return ngramScore(len([]rune(misspelling)), misspelling, form, ngramOpts{anyMismatch: true, lowering: true}) +
		leftCommonSubstring(misspelling, strings.ToLower(form))
}

// finalScore is the shared orthographic tail of the detailed scores.
func finalScore(misspelling, guess string) int {
	return 2*lcsLen(misspelling, guess) -
		abs(len([]rune(misspelling))-len([]rune(guess))) +
		leftCommonSubstring(misspelling, guess)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
