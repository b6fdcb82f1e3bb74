package lookup

import (
	"strings"
	"testing"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
)

const testAff = `
SET UTF-8
FORBIDDENWORD *
NOSUGGEST !
ONLYINCOMPOUND %
COMPOUNDFLAG X
COMPOUNDMIN 3

PFX A Y 1
PFX A 0 re .

SFX S Y 2
SFX S 0 s [^sy]
SFX S y ies y
`

const testDic = `9
cat/SX
dog/X
fly/S
run/AS
damn/!
leftword/*
mid/%X
well
known
`

func newLookup(t *testing.T) *Lookup {
	t.Helper()
	a, err := aff.Parse(strings.NewReader(testAff))
	if err != nil {
		t.Fatalf("aff.Parse failed: %v", err)
	}
	d, err := dic.Load(strings.NewReader(testDic), a.FlagParser)
	if err != nil {
		t.Fatalf("dic.Load failed: %v", err)
	}
	return New(a, d)
}

func TestAffixForms(t *testing.T) {
	lk := newLookup(t)
	affix := Opts{AffixForms: true}

	// testCases pair words with the expected verdict for plain affix lookup
	testCases := []struct {
		word string
		want bool
	}{
		{"cat", true},
		{"cats", true},  // suffix 0/s
		{"flies", true}, // suffix y/ies
		{"flys", false}, // [^sy] condition blocks it
		{"run", true},
		{"rerun", true},  // prefix re
		{"reruns", true}, // crossproduct prefix+suffix
		{"catz", false},
		{"", false},
	}
	for _, tc := range testCases {
		if got := lk.Correct(tc.word, affix); got != tc.want {
			t.Errorf("Correct(%q, affix) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestExclusionFlags(t *testing.T) {
	lk := newLookup(t)

	if lk.Correct("leftword", Opts{AffixForms: true}) {
		t.Error("forbidden word accepted")
	}
	if !lk.IsForbidden("leftword") {
		t.Error("IsForbidden(leftword) = false")
	}
	if lk.IsForbidden("cat") {
		t.Error("IsForbidden(cat) = true")
	}

	// nosuggest entries only qualify when explicitly allowed
	if lk.Correct("damn", Opts{AffixForms: true}) {
		t.Error("nosuggest word accepted without AllowNoSuggest")
	}
	if !lk.Correct("damn", Opts{AffixForms: true, AllowNoSuggest: true}) {
		t.Error("nosuggest word rejected with AllowNoSuggest")
	}

	// onlyincompound entries never stand alone
	if lk.Correct("mid", Opts{AffixForms: true}) {
		t.Error("onlyincompound word accepted standalone")
	}
}

func TestCompoundForms(t *testing.T) {
	lk := newLookup(t)
	compound := Opts{CompoundForms: true}

	testCases := []struct {
		word string
		want bool
	}{
		{"catdog", true},
		{"dogcat", true},
		{"catdogcat", true}, // three parts
		{"catrun", false},   // run carries no compound flag
		{"cat", false},      // a single part is not a compound
		{"catdo", false},
	}
	for _, tc := range testCases {
		if got := lk.Correct(tc.word, compound); got != tc.want {
			t.Errorf("Correct(%q, compound) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestCapsRetry(t *testing.T) {
	lk := newLookup(t)

	if lk.Correct("Cat", Opts{AffixForms: true}) {
		t.Error("Cat accepted without Caps")
	}
	if !lk.Correct("Cat", Opts{AffixForms: true, Caps: true}) {
		t.Error("Cat rejected with Caps")
	}
	if !lk.Correct("CAT", Opts{AffixForms: true, Caps: true}) {
		t.Error("CAT rejected with Caps")
	}
}

func TestCheckBreaksOnDashes(t *testing.T) {
	lk := newLookup(t)

	if !lk.Check("well-known") {
		t.Error("well-known rejected")
	}
	if lk.Check("well-unknown") {
		t.Error("well-unknown accepted")
	}
	if lk.Check("-well") {
		t.Error("leading dash accepted")
	}
}
