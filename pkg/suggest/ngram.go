package suggest

import (
	"container/heap"
	"iter"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
)

const (
	// maxRoots bounds the stem candidates kept during the dictionary scan.
	maxRoots = 100
	// maxGuesses bounds the expanded surface forms kept for rescoring.
	maxGuesses = 200
)

// scored is one heap entry. seq preserves scan order so equal scores
// resolve deterministically.
type scored struct {
	score int
	seq   int
	word  *dic.Word
	// compared is the string that earned the score; real is what gets
	// suggested (they differ for ph: alternative spellings).
	compared string
	real     string
}

// boundedHeap keeps the top-k entries by score, earliest seq winning ties.
type boundedHeap struct {
	entries []scored
	cap     int
}

func newBoundedHeap(cap int) *boundedHeap {
	return &boundedHeap{cap: cap}
}

func (h *boundedHeap) Len() int { return len(h.entries) }
func (h *boundedHeap) Less(i, j int) bool {
	if h.entries[i].score != h.entries[j].score {
		return h.entries[i].score < h.entries[j].score
	}
	return h.entries[i].seq > h.entries[j].seq
}
func (h *boundedHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *boundedHeap) Push(x any)    { h.entries = append(h.entries, x.(scored)) }
func (h *boundedHeap) Pop() any {
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last
}

func (h *boundedHeap) add(e scored) {
	if len(h.entries) < h.cap {
		heap.Push(h, e)
		return
	}
	if e.score > h.entries[0].score {
		h.entries[0] = e
		heap.Fix(h, 0)
	}
}

// descending returns the kept entries, best first, scan order on ties.
func (h *boundedHeap) descending() []scored {
	out := make([]scored, len(h.entries))
	copy(out, h.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// NgramScorer accumulates n-gram similarity candidates over a dictionary
// scan: feed every candidate root through Step, then drain Finish.
type NgramScorer struct {
	misspelling string
	misLen      int
	pfx         map[rune][]aff.AffixRule
	sfx         map[rune][]aff.AffixRule
	known       mapset.Set[string]
	maxDiff     int
	onlyMaxDiff bool
	hasPhonetic bool

	roots *boundedHeap
	seq   int
}

// NewNgramScorer builds a scorer for the lowercased misspelling. known
// holds lowercased texts already suggested; their roots are not offered
// again.
func NewNgramScorer(misspelling string, pfx, sfx map[rune][]aff.AffixRule, known mapset.Set[string], maxDiff int, onlyMaxDiff, hasPhonetic bool) *NgramScorer {
	return &NgramScorer{
		misspelling: misspelling,
		misLen:      len([]rune(misspelling)),
		pfx:         pfx,
		sfx:         sfx,
		known:       known,
		maxDiff:     maxDiff,
		onlyMaxDiff: onlyMaxDiff,
		hasPhonetic: hasPhonetic,
		roots:       newBoundedHeap(maxRoots),
	}
}

// Step offers one dictionary entry to the root heap.
func (n *NgramScorer) Step(w *dic.Word) {
	if abs(len([]rune(w.Stem))-n.misLen) > 4 {
		return
	}
	if n.known.Contains(strings.ToLower(w.Stem)) {
		return
	}
	score := rootScore(n.misspelling, w.Stem)
	for _, alt := range w.AltSpellings {
		if s := rootScore(n.misspelling, alt); s > score {
			score = s
		}
	}
	n.roots.add(scored{score: score, seq: n.seq, word: w})
	n.seq++
}

// Finish expands the kept roots through the affix rules, rescores the
// surface forms and yields suggestions best-first.
func (n *NgramScorer) Finish() iter.Seq[string] {
	return func(yield func(string) bool) {
		threshold := detectThreshold(n.misspelling)

		guesses := newBoundedHeap(maxGuesses)
		gseq := 0
		for _, root := range n.roots.descending() {
			for _, alt := range root.word.AltSpellings {
				if sc := roughScore(n.misspelling, alt); sc > threshold {
					guesses.add(scored{score: sc, seq: gseq, compared: alt, real: root.word.Stem})
					gseq++
				}
			}
			for _, form := range n.forms(root.word) {
				if sc := roughScore(n.misspelling, form); sc > threshold {
					guesses.add(scored{score: sc, seq: gseq, compared: form, real: form})
					gseq++
				}
			}
		}

		fact := 1.0
		if n.maxDiff >= 0 {
			fact = (10.0 - float64(n.maxDiff)) / 5.0
		}
		rescored := guesses.descending()
		for i := range rescored {
			rescored[i].score = n.detailScore(rescored[i].compared, fact)
		}
		sort.SliceStable(rescored, func(i, j int) bool {
			return rescored[i].score > rescored[j].score
		})

		// After a very good guess only other very good ones pass; a
		// questionable guess survives only as the sole, best answer and
		// never under ONLYMAXDIFF.
		same := false
		yielded := 0
		for _, g := range rescored {
			if same && g.score <= 1000 {
				continue
			}
			if g.score > 1000 {
				same = true
			} else if g.score < -100 {
				same = true
				if yielded > 0 || n.onlyMaxDiff {
					continue
				}
			}
			if !yield(g.real) {
				return
			}
			yielded++
		}
	}
}

// detailScore is the heavy second-pass rating of one surface form.
func (n *NgramScorer) detailScore(compared string, fact float64) int {
	gl := strings.ToLower(compared)
	glLen := len([]rune(gl))

	lcs := lcsLen(n.misspelling, gl)
	score := 2*lcs - abs(n.misLen-glLen) + leftCommonSubstring(n.misspelling, gl)
	if n.misLen == glLen && n.misLen == lcs {
		// the same word in different casing
		score += 2000
	}

	num, isSwap := commonCharacterPositions(n.misspelling, gl)
	if num > 0 {
		score++
	}
	if isSwap {
		score += 10
	}

	score += ngramScore(4, n.misspelling, gl, ngramOpts{anyMismatch: true})

	re := ngramScore(2, n.misspelling, gl, ngramOpts{anyMismatch: true, weighted: true}) +
		ngramScore(2, gl, n.misspelling, ngramOpts{anyMismatch: true, weighted: true})
	score += re

	limit := float64(n.misLen+glLen) * fact
	if n.hasPhonetic {
		limit = float64(glLen) * fact
	}
	if float64(re) < limit {
		score -= 1000
	}
	return score
}

// forms expands a dictionary entry into the surface forms resembling the
// misspelling: the bare stem, suffixed, prefixed, and crossproduct forms.
func (n *NgramScorer) forms(w *dic.Word) []string {
	res := []string{w.Stem}
	if w.Flags == nil {
		return res
	}

	flags := w.Flags.ToSlice()
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	var sfxApplicable, pfxApplicable []aff.AffixRule
	for _, flag := range flags {
		for _, rule := range n.sfx[flag] {
			if rule.Add != "" && rule.Matches(w.Stem) && strings.HasSuffix(n.misspelling, rule.Add) {
				sfxApplicable = append(sfxApplicable, rule)
			}
		}
		for _, rule := range n.pfx[flag] {
			if rule.Add != "" && rule.Matches(w.Stem) && strings.HasPrefix(n.misspelling, rule.Add) {
				pfxApplicable = append(pfxApplicable, rule)
			}
		}
	}

	for _, sfx := range sfxApplicable {
		res = append(res, strings.TrimSuffix(w.Stem, sfx.Strip)+sfx.Add)
	}
	for _, pfx := range pfxApplicable {
		if !pfx.CrossProduct {
			continue
		}
		for _, sfx := range sfxApplicable {
			if !sfx.CrossProduct {
				continue
			}
			root := strings.TrimSuffix(strings.TrimPrefix(w.Stem, pfx.Strip), sfx.Strip)
			res = append(res, pfx.Add+root+sfx.Add)
		}
	}
	for _, pfx := range pfxApplicable {
		res = append(res, pfx.Add+strings.TrimPrefix(w.Stem, pfx.Strip))
	}
	return res
}
