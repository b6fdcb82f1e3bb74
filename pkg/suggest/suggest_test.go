package suggest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
	"github.com/typefield/suggest/pkg/lookup"
)

const baseAff = `
SET UTF-8
TRY esianrtolcdugmphbyfvkwz
KEY qwertyuiop|asdfghjkl|zxcvbnm
FORBIDDENWORD *
NOSUGGEST !
REP 2
REP alot a_lot
REP ie ei
`

const baseDic = `12
the
a
lot
a lot
receive
co
operate
ice cream
ice
cream
damn/!
leftword/*
`

func newSuggester(t *testing.T, affSrc, dicSrc string) *Suggester {
	t.Helper()
	a, err := aff.Parse(strings.NewReader(affSrc))
	if err != nil {
		t.Fatalf("aff.Parse failed: %v", err)
	}
	d, err := dic.Load(strings.NewReader(dicSrc), a.FlagParser)
	if err != nil {
		t.Fatalf("dic.Load failed: %v", err)
	}
	return New(a, d, lookup.New(a, d))
}

func allSuggestions(s *Suggester, word string) []Suggestion {
	var out []Suggestion
	for sug := range s.Suggestions(word) {
		out = append(out, sug)
		if len(out) > 50 {
			break
		}
	}
	return out
}

func TestSwappedChars(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "hte")
	if len(got) == 0 {
		t.Fatal("no suggestions for hte")
	}
	if got[0].Text != "the" || got[0].Kind != KindSwapChar {
		t.Errorf("first suggestion = %+v, want the/swapchar", got[0])
	}
	// nothing else in this dictionary resembles hte
	if len(got) != 1 {
		t.Errorf("suggestions = %v", got)
	}
}

func TestRecapitalization(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "THe")
	if len(got) < 2 {
		t.Fatalf("suggestions = %v", got)
	}
	// the edit hit is re-cased to match the original shape
	if got[0].Text != "The" || got[0].Kind != KindBadChar {
		t.Errorf("first suggestion = %+v, want The/badchar", got[0])
	}
	// the all-lowercase variant is itself correct
	if got[1].Text != "the" || got[1].Kind != KindCase {
		t.Errorf("second suggestion = %+v, want the/case", got[1])
	}
}

func TestReplTableSplit(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "alot")
	// the good edit ends the stream only once its round is exhausted
	want := []Suggestion{
		{Text: "a lot", Kind: KindReplChars},
		{Text: "lot", Kind: KindExtraChar},
		{Text: "a-lot", Kind: KindTwoWords},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
}

func TestReplTableStopsEarly(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "recieve")
	if len(got) == 0 || got[0].Text != "receive" || got[0].Kind != KindReplChars {
		t.Fatalf("suggestions = %v, want receive/replchars first", got)
	}
	// a rep hit is a good edit: the similarity fallback never runs
	for _, sug := range got {
		if sug.Kind == KindNgram || sug.Kind == KindPhonet {
			t.Errorf("fallback ran after a good edit: %+v", sug)
		}
	}
}

func TestDashRecursion(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "co-oparate")
	found := false
	for _, sug := range got {
		if sug.Text == "co-operate" {
			found = true
			if sug.Kind != KindDashes {
				t.Errorf("co-operate kind = %v, want dashes", sug.Kind)
			}
		}
	}
	if !found {
		t.Errorf("co-operate not suggested: %v", got)
	}
}

func TestDashRecursionSkippedAfterDashedHit(t *testing.T) {
	// with the dashed entry present the edit round finds it directly, so
	// the recursion must not fire
	s := newSuggester(t, baseAff, baseDic+"co-operate\n")

	got := allSuggestions(s, "co-oparate")
	foundEdit := false
	for _, sug := range got {
		if sug.Kind == KindDashes {
			t.Errorf("dash recursion ran: %+v", sug)
		}
		if sug.Text == "co-operate" {
			foundEdit = true
		}
	}
	if !foundEdit {
		t.Errorf("co-operate not found by the edit round: %v", got)
	}
}

func TestSpacewordTerminatesStream(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	got := allSuggestions(s, "icecream")
	if len(got) == 0 {
		t.Fatal("no suggestions for icecream")
	}
	last := got[len(got)-1]
	if last.Text != "ice cream" || last.Kind != KindSpaceWord {
		t.Errorf("last suggestion = %+v, want ice cream/spaceword", last)
	}
}

func TestForbiddenNeverSuggested(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	for _, word := range []string{"leftwird", "leftword", "lefword"} {
		for _, sug := range allSuggestions(s, word) {
			if sug.Text == "leftword" {
				t.Errorf("forbidden word suggested for %q", word)
			}
		}
	}
}

func TestNoSuggestNeverSuggested(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	for _, sug := range allSuggestions(s, "damm") {
		if sug.Text == "damn" {
			t.Error("nosuggest word suggested")
		}
	}
}

func TestDeterminism(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	for _, word := range []string{"hte", "THe", "co-oparate", "acadmicaly"} {
		first := allSuggestions(s, word)
		second := allSuggestions(s, word)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("non-deterministic output for %q: %v vs %v", word, first, second)
		}
	}
}

func TestNoDuplicates(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	for _, word := range []string{"hte", "THe", "co-oparate", "icecream"} {
		seen := make(map[string]bool)
		for _, sug := range allSuggestions(s, word) {
			if seen[sug.Text] {
				t.Errorf("duplicate %q for input %q", sug.Text, word)
			}
			seen[sug.Text] = true
		}
	}
}

const ngramAff = `
SET UTF-8
TRY ly
FORBIDDENWORD *
MAXNGRAMSUGS 4
`

const ngramDic = `5
academically
academic
academy
acadia
arcade
`

func TestNgramFallback(t *testing.T) {
	s := newSuggester(t, ngramAff, ngramDic)

	got := allSuggestions(s, "acadmicaly")
	var ngrams []Suggestion
	for _, sug := range got {
		if sug.Kind == KindNgram {
			ngrams = append(ngrams, sug)
		}
	}
	if len(ngrams) == 0 {
		t.Fatalf("no ngram suggestions: %v", got)
	}
	if len(ngrams) > 4 {
		t.Errorf("ngram cap exceeded: %v", ngrams)
	}
	if ngrams[0].Text != "academically" {
		t.Errorf("first ngram = %+v, want academically", ngrams[0])
	}

	// inclusion dedup: no candidate may contain an earlier one
	for i, sug := range got {
		for _, prev := range got[:i] {
			if strings.Contains(strings.ToLower(sug.Text), strings.ToLower(prev.Text)) {
				t.Errorf("%q contains earlier suggestion %q", sug.Text, prev.Text)
			}
		}
	}
}

func TestFallbackDisabled(t *testing.T) {
	s := newSuggester(t, `
SET UTF-8
MAXNGRAMSUGS 0
`, ngramDic)

	if got := allSuggestions(s, "acadmicaly"); got != nil {
		t.Errorf("suggestions with fallback disabled = %v", got)
	}
}

func TestForceUppercase(t *testing.T) {
	s := newSuggester(t, `
SET UTF-8
TRY abc
FORCEUCASE U
`, "1\nParis\n")

	got := allSuggestions(s, "paris")
	want := []Suggestion{{Text: "Paris", Kind: KindForceUCase}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
}

func TestKeepCase(t *testing.T) {
	s := newSuggester(t, `
SET UTF-8
TRY abc
KEEPCASE =
`, "1\niPod/=\n")

	got := allSuggestions(s, "IPodd")
	if len(got) == 0 {
		t.Fatal("no suggestions for IPodd")
	}
	// without KEEPCASE the HUHINIT coercion would produce "IPod"
	if got[0].Text != "iPod" {
		t.Errorf("first suggestion = %+v, want iPod untouched", got[0])
	}
}

func TestOutputConversion(t *testing.T) {
	s := newSuggester(t, `
SET UTF-8
TRY abcdnot'
OCONV 1
OCONV ' ’
`, "1\ndon't\n")

	got := allSuggestions(s, "dont")
	if len(got) == 0 {
		t.Fatal("no suggestions for dont")
	}
	if got[0].Text != "don’t" {
		t.Errorf("first suggestion = %q, want don’t", got[0].Text)
	}
}

func TestFixSplitCase(t *testing.T) {
	// testCases pair the original word with a coerced split suggestion
	testCases := []struct {
		word string
		text string
		want string
	}{
		// the second word gets its original casing back, whole tail included
		{"ABXYZ", "ab xyz", "ab XYZ"},
		// first character after the space already matches: untouched
		{"FOobar", "Fo obar", "Fo obar"},
		// mismatch is not a casing difference: untouched
		{"ABQYZ", "ab xyz", "ab xyz"},
		// no space: untouched
		{"ABXYZ", "abxyz", "abxyz"},
		// space beyond the original word: untouched
		{"ab", "ab c", "ab c"},
	}
	for _, tc := range testCases {
		if got := fixSplitCase(tc.word, tc.text); got != tc.want {
			t.Errorf("fixSplitCase(%q, %q) = %q, want %q", tc.word, tc.text, got, tc.want)
		}
	}
}

func TestSuggestLimit(t *testing.T) {
	s := newSuggester(t, baseAff, baseDic)

	if got := s.Suggest("THe", 1); len(got) != 1 || got[0] != "The" {
		t.Errorf("Suggest(THe, 1) = %v", got)
	}
}
