package aff

import (
	"reflect"
	"testing"
)

func TestCasingGuess(t *testing.T) {
	var c Casing

	// testCases cover every capitalization class
	testCases := []struct {
		word string
		want CapType
	}{
		{"hello", CapNo},
		{"hello-world", CapNo},
		{"Hello", CapInit},
		{"HELLO", CapAll},
		{"heLLo", CapHuh},
		{"HeLLo", CapHuhInit},
		{"THe", CapHuhInit},
		{"hTe", CapHuh},
		{"", CapNo},
	}

	for _, tc := range testCases {
		if got := c.Guess(tc.word); got != tc.want {
			t.Errorf("Guess(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestCasingCorrections(t *testing.T) {
	var c Casing

	testCases := []struct {
		word     string
		captype  CapType
		variants []string
	}{
		{"paris", CapNo, []string{"paris"}},
		{"Paris", CapInit, []string{"Paris", "paris"}},
		{"THe", CapHuhInit, []string{"THe", "tHe", "the", "THE"}},
		{"hTe", CapHuh, []string{"hTe", "hte", "HTE"}},
		{"NASA", CapAll, []string{"NASA", "nasa", "Nasa"}},
	}

	for _, tc := range testCases {
		captype, variants := c.Corrections(tc.word)
		if captype != tc.captype {
			t.Errorf("Corrections(%q) captype = %v, want %v", tc.word, captype, tc.captype)
		}
		if !reflect.DeepEqual(variants, tc.variants) {
			t.Errorf("Corrections(%q) variants = %v, want %v", tc.word, variants, tc.variants)
		}
	}
}

func TestCasingCoerce(t *testing.T) {
	var c Casing

	testCases := []struct {
		text    string
		captype CapType
		want    string
	}{
		{"the", CapNo, "the"},
		{"the", CapInit, "The"},
		{"the", CapHuhInit, "The"},
		{"the", CapAll, "THE"},
		{"the", CapHuh, "the"},
		{"", CapInit, ""},
	}

	for _, tc := range testCases {
		if got := c.Coerce(tc.text, tc.captype); got != tc.want {
			t.Errorf("Coerce(%q, %v) = %q, want %q", tc.text, tc.captype, got, tc.want)
		}
	}
}

func TestCasingCapitalize(t *testing.T) {
	var c Casing

	got := c.Capitalize("hELLO")
	want := []string{"Hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Capitalize(hELLO) = %v, want %v", got, want)
	}
}
