package dic

import (
	"reflect"
	"strings"
	"testing"

	"github.com/typefield/suggest/pkg/aff"
)

const sampleDic = `6
hello
world/S
Paris/=
colour ph:color
a lot
ice cream/N
`

func loadSample(t *testing.T) *Dic {
	t.Helper()
	d, err := Load(strings.NewReader(sampleDic), aff.FlagParser{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return d
}

func TestLoad(t *testing.T) {
	d := loadSample(t)

	if d.Len() != 6 {
		t.Fatalf("Len = %d, want 6", d.Len())
	}

	// entries keep file order for the scan consumers
	var stems []string
	for _, w := range d.Words() {
		stems = append(stems, w.Stem)
	}
	want := []string{"hello", "world", "Paris", "colour", "a lot", "ice cream"}
	if !reflect.DeepEqual(stems, want) {
		t.Errorf("stems = %v, want %v", stems, want)
	}
}

func TestHomonymsAndFlags(t *testing.T) {
	d := loadSample(t)

	if got := d.Homonyms("world"); len(got) != 1 || got[0].Stem != "world" {
		t.Errorf("Homonyms(world) = %v", got)
	}
	if d.Homonyms("missing") != nil {
		t.Error("Homonyms(missing) should be nil")
	}
	if !d.HasFlag("world", 'S') {
		t.Error("world should carry S")
	}
	if d.HasFlag("world", 'X') {
		t.Error("world should not carry X")
	}
	if d.HasFlag("hello", 'S') {
		t.Error("hello carries no flags")
	}
	// a zero flag never matches, even against flagless entries
	if d.HasFlag("hello", 0) {
		t.Error("zero flag matched")
	}
}

func TestSpacedEntries(t *testing.T) {
	d := loadSample(t)

	// entries may contain spaces; data tags are recognized by shape
	if got := d.Homonyms("a lot"); len(got) != 1 {
		t.Fatalf("Homonyms(a lot) = %v", got)
	}
	if !d.HasFlag("ice cream", 'N') {
		t.Error("ice cream should carry N")
	}
}

func TestAltSpellings(t *testing.T) {
	d := loadSample(t)

	got := d.Homonyms("colour")
	if len(got) != 1 {
		t.Fatalf("Homonyms(colour) = %v", got)
	}
	if !reflect.DeepEqual(got[0].AltSpellings, []string{"color"}) {
		t.Errorf("AltSpellings = %v", got[0].AltSpellings)
	}
}

func TestSplitStem(t *testing.T) {
	testCases := []struct {
		line string
		stem string
		flag string
	}{
		{"word/AB", "word", "AB"},
		{"word", "word", ""},
		{`an\/or`, "an/or", ""},
		{`an\/or/F`, "an/or", "F"},
	}
	for _, tc := range testCases {
		stem, flags := splitStem(tc.line)
		if stem != tc.stem || flags != tc.flag {
			t.Errorf("splitStem(%q) = %q/%q, want %q/%q", tc.line, stem, flags, tc.stem, tc.flag)
		}
	}
}
