// Package dic stores the word list of a Hunspell dictionary and answers
// stem and flag queries for the checker and the suggestion engine.
package dic

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Word is a single dictionary entry.
type Word struct {
	Stem string
	// Flags attached to the stem; nil when the entry carries none.
	Flags mapset.Set[rune]
	// AltSpellings are ph: data tags, misspellings commonly seen for this
	// stem. The similarity scorers match against them too.
	AltSpellings []string
}

// HasFlag reports whether the entry carries flag. A zero flag never
// matches.
func (w *Word) HasFlag(flag rune) bool {
	if flag == 0 || w.Flags == nil {
		return false
	}
	return w.Flags.Contains(flag)
}

// Dic is the in-memory dictionary: a patricia-trie index for stem lookups
// plus the entry list in file order.
type Dic struct {
	index *patricia.Trie
	words []*Word
}

// New returns an empty dictionary.
func New() *Dic {
	return &Dic{index: patricia.NewTrie()}
}

// Add appends an entry, keeping file order for iteration.
func (d *Dic) Add(w *Word) {
	d.words = append(d.words, w)
	key := patricia.Prefix(w.Stem)
	if item := d.index.Get(key); item != nil {
		d.index.Set(key, append(item.([]*Word), w))
		return
	}
	d.index.Insert(key, []*Word{w})
}

// Homonyms returns every entry stored under stem.
func (d *Dic) Homonyms(stem string) []*Word {
	item := d.index.Get(patricia.Prefix(stem))
	if item == nil {
		return nil
	}
	return item.([]*Word)
}

// HasFlag reports whether any entry stored under text carries flag.
func (d *Dic) HasFlag(text string, flag rune) bool {
	if flag == 0 {
		return false
	}
	for _, w := range d.Homonyms(text) {
		if w.HasFlag(flag) {
			return true
		}
	}
	return false
}

// Words returns all entries in file order. The slice is shared; callers
// must not mutate it.
func (d *Dic) Words() []*Word {
	return d.words
}

// Len reports the entry count.
func (d *Dic) Len() int {
	return len(d.words)
}
