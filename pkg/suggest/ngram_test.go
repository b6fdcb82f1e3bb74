package suggest

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
)

func entry(stem string, flags ...rune) *dic.Word {
	w := &dic.Word{Stem: stem}
	if len(flags) > 0 {
		w.Flags = mapset.NewThreadUnsafeSet(flags...)
	}
	return w
}

func drainScorer(s *NgramScorer, limit int) []string {
	var out []string
	for text := range s.Finish() {
		out = append(out, text)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func TestNgramScorerRanksClosestFirst(t *testing.T) {
	known := mapset.NewThreadUnsafeSet[string]()
	s := NewNgramScorer("recieve", nil, nil, known, aff.DefaultMaxDiff, false, false)

	for _, w := range []*dic.Word{
		entry("perceive"),
		entry("receive"),
		entry("deceive"),
		entry("cat"),
	} {
		s.Step(w)
	}

	got := drainScorer(s, 4)
	if len(got) == 0 || got[0] != "receive" {
		t.Errorf("Finish() = %v, want receive first", got)
	}
}

func TestNgramScorerSkipsKnownRoots(t *testing.T) {
	known := mapset.NewThreadUnsafeSet("receive")
	s := NewNgramScorer("recieve", nil, nil, known, aff.DefaultMaxDiff, false, false)

	s.Step(entry("receive"))
	s.Step(entry("deceive"))

	for _, text := range drainScorer(s, 4) {
		if text == "receive" {
			t.Error("known root came back out")
		}
	}
}

func TestNgramScorerLengthWindow(t *testing.T) {
	known := mapset.NewThreadUnsafeSet[string]()
	s := NewNgramScorer("cat", nil, nil, known, aff.DefaultMaxDiff, false, false)

	// more than four runes apart: never a candidate
	s.Step(entry("catastrophic"))
	if got := drainScorer(s, 4); len(got) != 0 {
		t.Errorf("Finish() = %v, want empty", got)
	}
}

func TestNgramScorerExpandsAffixForms(t *testing.T) {
	plural, err := aff.NewSuffixRule('S', true, "", "s", "[^s]")
	if err != nil {
		t.Fatalf("NewSuffixRule failed: %v", err)
	}
	sfx := map[rune][]aff.AffixRule{'S': {plural}}

	known := mapset.NewThreadUnsafeSet[string]()
	s := NewNgramScorer("hounds", nil, sfx, known, aff.DefaultMaxDiff, false, false)

	s.Step(entry("hound", 'S'))
	s.Step(entry("found", 'S'))

	got := drainScorer(s, 4)
	if len(got) == 0 || got[0] != "hounds" {
		t.Errorf("Finish() = %v, want hounds first", got)
	}
}

func TestNgramScorerUsesAltSpellings(t *testing.T) {
	known := mapset.NewThreadUnsafeSet[string]()
	s := NewNgramScorer("collor", nil, nil, known, aff.DefaultMaxDiff, false, false)

	w := entry("colour")
	w.AltSpellings = []string{"color"}
	s.Step(w)

	got := drainScorer(s, 4)
	// the alt spelling earns the score, the real stem is suggested
	if len(got) == 0 || got[0] != "colour" {
		t.Errorf("Finish() = %v, want colour first", got)
	}
}

func TestPhonetScorer(t *testing.T) {
	table := aff.NewPhoneTable([][2]string{{"PH", "F"}})

	s := NewPhonetScorer("fone", table)
	for _, w := range []*dic.Word{
		entry("phone"),
		entry("tone"),
	} {
		s.Step(w)
	}

	var got []string
	for text := range s.Finish() {
		got = append(got, text)
	}
	if len(got) != 2 || got[0] != "phone" {
		t.Errorf("Finish() = %v, want phone first", got)
	}
}

func TestPhonetScorerPrefilter(t *testing.T) {
	table := aff.NewPhoneTable([][2]string{{"PH", "F"}})

	s := NewPhonetScorer("fone", table)
	// orthographically unrelated words never reach the phonetic pass
	s.Step(entry("grab"))

	var got []string
	for text := range s.Finish() {
		got = append(got, text)
	}
	if len(got) != 0 {
		t.Errorf("Finish() = %v, want empty", got)
	}
}
