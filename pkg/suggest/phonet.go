package suggest

import (
	"iter"
	"strings"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
)

// PhonetScorer accumulates candidates that sound like the misspelling
// under the affix file's PHONE replacement table.
type PhonetScorer struct {
	misspelling string
	misLen      int
	misPhonetic string
	table       *aff.PhoneTable

	roots *boundedHeap
	seq   int
}

// NewPhonetScorer builds a scorer over the PHONE table.
func NewPhonetScorer(word string, table *aff.PhoneTable) *PhonetScorer {
	misspelling := strings.ToLower(word)
	return &PhonetScorer{
		misspelling: misspelling,
		misLen:      len([]rune(misspelling)),
		misPhonetic: table.Transform(misspelling),
		table:       table,
		roots:       newBoundedHeap(maxRoots),
	}
}

// Step offers one dictionary entry. Entries orthographically far from the
// misspelling are not even transformed.
func (p *PhonetScorer) Step(w *dic.Word) {
	if abs(len([]rune(w.Stem))-p.misLen) > 3 {
		return
	}
	nscore := ngramScore(3, p.misspelling, w.Stem, ngramOpts{longerWorse: true, lowering: true})
	for _, alt := range w.AltSpellings {
		if s := ngramScore(3, p.misspelling, alt, ngramOpts{longerWorse: true, lowering: true}); s > nscore {
			nscore = s
		}
	}
	if nscore <= 2 {
		return
	}
	score := 2 * ngramScore(3, p.misPhonetic, p.table.Transform(w.Stem), ngramOpts{longerWorse: true})
	p.roots.add(scored{score: score, seq: p.seq, word: w})
	p.seq++
}

// Finish rescores the kept roots with the orthographic tail and yields
// stems best-first.
func (p *PhonetScorer) Finish() iter.Seq[string] {
	return func(yield func(string) bool) {
		guesses := p.roots.descending()
		for i := range guesses {
			guesses[i].score += finalScore(p.misspelling, strings.ToLower(guesses[i].word.Stem))
		}
		// stable: scan order breaks remaining ties
		for i := 1; i < len(guesses); i++ {
			for j := i; j > 0 && guesses[j].score > guesses[j-1].score; j-- {
				guesses[j], guesses[j-1] = guesses[j-1], guesses[j]
			}
		}
		for _, g := range guesses {
			if !yield(g.word.Stem) {
				return
			}
		}
	}
}
