package suggest

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/typefield/suggest/pkg/aff"
)

// maxCharDistance bounds how far apart two characters may sit for the
// long-swap and move generators.
const maxCharDistance = 4

// replCandidate is one REP rewrite: Text always, Pair set when the
// replacement introduced a space and the halves should also be tried as
// separate words.
type replCandidate struct {
	Text string
	Pair []string
}

// replchars applies every REP table rewrite at every match position.
func replchars(word string, table []aff.RepRule) iter.Seq[replCandidate] {
	return func(yield func(replCandidate) bool) {
		if len(word) < 2 || len(table) == 0 {
			return
		}
		for _, rule := range table {
			for _, loc := range rule.Pattern.FindAllStringIndex(word, -1) {
				text := word[:loc[0]] + rule.Replacement + word[loc[1]:]
				if !yield(replCandidate{Text: text}) {
					return
				}
				if strings.Contains(text, " ") {
					pair := strings.SplitN(text, " ", 2)
					if !yield(replCandidate{Text: text, Pair: pair}) {
						return
					}
				}
			}
		}
	}
}

// mapchars substitutes characters through their MAP equivalence classes,
// recursively, so several positions may change at once.
func mapchars(word string, classes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(word) < 2 || len(classes) == 0 {
			return
		}
		options := make([][]string, len(classes))
		for i, class := range classes {
			options[i] = mapClassOptions(class)
		}
		mapcharsFrom(word, 0, options, yield)
	}
}

func mapcharsFrom(word string, start int, options [][]string, yield func(string) bool) bool {
	if start >= len(word) {
		return true
	}
	for _, class := range options {
		for _, option := range class {
			pos := strings.Index(word[start:], option)
			if pos < 0 {
				continue
			}
			pos += start
			for _, other := range class {
				if other == option {
					continue
				}
				replaced := word[:pos] + other + word[pos+len(option):]
				if !yield(replaced) {
					return false
				}
				if !mapcharsFrom(replaced, pos+len(other), options, yield) {
					return false
				}
			}
		}
	}
	return true
}

// mapClassOptions splits a MAP class like "aàá" or "ß(ss)" into options.
func mapClassOptions(class string) []string {
	var opts []string
	for i := 0; i < len(class); {
		if class[i] == '(' {
			if j := strings.IndexByte(class[i:], ')'); j > 0 {
				opts = append(opts, class[i+1:i+j])
				i += j + 1
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(class[i:])
		opts = append(opts, class[i:i+size])
		i += size
	}
	return opts
}

// swapchar swaps each adjacent pair; for four- and five-letter words it
// also tries the both-ends double swap the way Hunspell does.
func swapchar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for i := 0; i < len(r)-1; i++ {
			c := make([]rune, len(r))
			copy(c, r)
			c[i], c[i+1] = c[i+1], c[i]
			if !yield(string(c)) {
				return
			}
		}
		if len(r) == 4 || len(r) == 5 {
			c := make([]rune, len(r))
			copy(c, r)
			c[0], c[1] = r[1], r[0]
			c[len(r)-2], c[len(r)-1] = r[len(r)-1], r[len(r)-2]
			if !yield(string(c)) {
				return
			}
			if len(r) == 5 {
				// second form keeps the tail swap and untangles the head
				c[0], c[1], c[2] = r[0], r[2], r[1]
				if !yield(string(c)) {
					return
				}
			}
		}
	}
}

// longswapchar swaps non-adjacent pairs up to maxCharDistance apart.
func longswapchar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		for first := 0; first < len(r); first++ {
			limit := first + maxCharDistance
			if limit > len(r)-1 {
				limit = len(r) - 1
			}
			for second := first + 2; second <= limit; second++ {
				c := make([]rune, len(r))
				copy(c, r)
				c[first], c[second] = c[second], c[first]
				if !yield(string(c)) {
					return
				}
			}
		}
	}
}

// badcharkey replaces each character with its keyboard neighbors from the
// KEY table, trying the upcased character first.
func badcharkey(word string, layout []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		for i, c := range r {
			before, after := string(r[:i]), string(r[i+1:])
			if up := unicode.ToUpper(c); up != c {
				if !yield(before + string(up) + after) {
					return
				}
			}
			for _, row := range layout {
				rowRunes := []rune(row)
				for pos, rc := range rowRunes {
					if rc != c {
						continue
					}
					if pos > 0 {
						if !yield(before + string(rowRunes[pos-1]) + after) {
							return
						}
					}
					if pos+1 < len(rowRunes) {
						if !yield(before + string(rowRunes[pos+1]) + after) {
							return
						}
					}
				}
			}
		}
	}
}

// extrachar deletes one character at each position.
func extrachar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for i := range r {
			if !yield(string(r[:i]) + string(r[i+1:])) {
				return
			}
		}
	}
}

// forgotchar inserts each TRY character at each position.
func forgotchar(word, try string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if try == "" {
			return
		}
		r := []rune(word)
		for i := 0; i <= len(r); i++ {
			for _, c := range try {
				if !yield(string(r[:i]) + string(c) + string(r[i:])) {
					return
				}
			}
		}
	}
}

// movechar shifts one character at least two positions forward, then at
// least two positions backward.
func movechar(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 2 {
			return
		}
		for from := 0; from < len(r); from++ {
			limit := from + 1 + maxCharDistance
			if limit > len(r) {
				limit = len(r)
			}
			for to := from + 3; to <= limit; to++ {
				c := string(r[:from]) + string(r[from+1:to]) + string(r[from]) + string(r[to:])
				if !yield(c) {
					return
				}
			}
		}
		for from := len(r) - 1; from >= 0; from-- {
			low := from - 1 - maxCharDistance
			if low < 0 {
				low = 0
			}
			for to := from - 2; to >= low; to-- {
				c := string(r[:to]) + string(r[from]) + string(r[to:from]) + string(r[from+1:])
				if !yield(c) {
					return
				}
			}
		}
	}
}

// badchar replaces each character with each TRY character.
func badchar(word, try string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if try == "" {
			return
		}
		r := []rune(word)
		for i := range r {
			for _, c := range try {
				if c == r[i] {
					continue
				}
				if !yield(string(r[:i]) + string(c) + string(r[i+1:])) {
					return
				}
			}
		}
	}
}

// doubletwochars collapses a tripled pair pattern, the "vacacation" typo.
func doubletwochars(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		if len(r) < 5 {
			return
		}
		state := 0
		for i := 2; i < len(r); i++ {
			if r[i] != r[i-2] {
				state = 0
				continue
			}
			state++
			if state == 3 {
				if !yield(string(r[:i-1]) + string(r[i+1:])) {
					return
				}
				state = 0
			}
		}
	}
}

// twowords yields every split of word into two non-empty halves.
func twowords(word string) iter.Seq[[2]string] {
	return func(yield func([2]string) bool) {
		r := []rune(word)
		for i := 1; i < len(r); i++ {
			if !yield([2]string{string(r[:i]), string(r[i:])}) {
				return
			}
		}
	}
}
