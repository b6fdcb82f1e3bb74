package suggest

import (
	"iter"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/typefield/suggest/pkg/aff"
	"github.com/typefield/suggest/pkg/dic"
	"github.com/typefield/suggest/pkg/lookup"
)

const (
	// maxSuggestions caps one edit round of one casing variant.
	maxSuggestions = 15
	// maxPhonetSuggestions caps the phonetic fallback.
	maxPhonetSuggestions = 2
)

// goodEdits are the kinds strong enough that once one is emitted, no
// further casing variants or fallbacks are worth exploring.
var goodEdits = mapset.NewThreadUnsafeSet(KindReplChars, KindMapChars)

// noCompoundEdits are the kinds that make the compound retry pointless.
var noCompoundEdits = mapset.NewThreadUnsafeSet(KindUppercase, KindReplChars, KindMapChars)

// candidate is one raw permutation before dictionary filtering.
type candidate struct {
	sug   Suggestion
	multi *MultiWordSuggestion
}

// Suggester produces correction candidates for misspelled words.
type Suggester struct {
	aff    *aff.Aff
	dic    *dic.Dic
	lookup *lookup.Lookup

	// ngramWords is the similarity-scan subset of the dictionary: every
	// entry not flagged forbidden, nosuggest or onlyincompound. Computed
	// once, in file order.
	ngramWords []*dic.Word

	// dashes gates dash-joined splits. Hunspell derives it from TRY
	// containing '-' or 'a'; dumb, but the behavior to match.
	dashes bool
}

// New builds a Suggester over a parsed affix file, dictionary and lookup.
func New(a *aff.Aff, d *dic.Dic, l *lookup.Lookup) *Suggester {
	bad := mapset.NewThreadUnsafeSet[rune]()
	for _, flag := range []rune{a.ForbiddenWord, a.NoSuggest, a.OnlyInCompound} {
		if flag != 0 {
			bad.Add(flag)
		}
	}
	s := &Suggester{
		aff:    a,
		dic:    d,
		lookup: l,
		dashes: strings.ContainsRune(a.Try, '-') || strings.ContainsRune(a.Try, 'a'),
	}
	for _, w := range d.Words() {
		if w.Flags == nil || w.Flags.Intersect(bad).Cardinality() == 0 {
			s.ngramWords = append(s.ngramWords, w)
		}
	}
	log.Debugf("suggester ready: %d of %d words eligible for similarity scan", len(s.ngramWords), d.Len())
	return s
}

// Suggestions returns the lazy candidate stream for word. Pull until
// satisfied; breaking out drops all pipeline state. Every call starts
// fresh, nothing is shared between calls.
func (s *Suggester) Suggestions(word string) iter.Seq[Suggestion] {
	return func(yield func(Suggestion) bool) {
		handled := mapset.NewThreadUnsafeSet[string]()
		s.run(word, handled, yield)
	}
}

// Suggest collects up to limit plain-text suggestions.
func (s *Suggester) Suggest(word string, limit int) []string {
	var out []string
	for sug := range s.Suggestions(word) {
		out = append(out, sug.Text)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// run drives the whole pipeline. Returns false only when the consumer
// stopped pulling.
func (s *Suggester) run(word string, handled mapset.Set[string], yield func(Suggestion) bool) bool {
	captype, variants := s.aff.Casing.Corrections(word)

	if s.aff.ForceUCase != 0 && captype == aff.CapNo {
		for _, capitalized := range s.aff.Casing.Capitalize(word) {
			if !s.correct(capitalized) {
				continue
			}
			if out, ok := s.emit(handled, Suggestion{Text: capitalized, Kind: KindForceUCase}); ok {
				return yield(out)
			}
			return true
		}
	}

	goodEditsFound := false
	for idx, variant := range variants {
		if idx > 0 && s.correct(variant) {
			if out, ok := s.emit(handled, Suggestion{Text: variant, Kind: KindCase}); ok {
				if !yield(out) {
					return false
				}
			}
		}

		noCompound := false
		for sug := range s.edits(variant, maxSuggestions, false, word, captype, handled) {
			if !yield(sug) {
				return false
			}
			if goodEdits.Contains(sug.Kind) {
				goodEditsFound = true
			}
			if noCompoundEdits.Contains(sug.Kind) {
				noCompound = true
			}
			if sug.Kind == KindSpaceWord {
				return true
			}
		}

		if !noCompound {
			for sug := range s.edits(word, s.aff.MaxCpdSugs, true, word, captype, handled) {
				if !yield(sug) {
					return false
				}
				if goodEdits.Contains(sug.Kind) {
					goodEditsFound = true
				}
			}
		}

		if goodEditsFound {
			return true
		}
	}

	if !s.dashRecursion(word, handled, yield) {
		return false
	}

	return s.similarityFallback(word, captype, handled, yield)
}

// dashRecursion re-suggests each misspelled chunk of a dashed word and
// re-joins the results.
func (s *Suggester) dashRecursion(word string, handled mapset.Set[string], yield func(Suggestion) bool) bool {
	if !strings.Contains(word, "-") {
		return true
	}
	for _, h := range handled.ToSlice() {
		if strings.Contains(h, "-") {
			// a dashed suggestion already made it out
			return true
		}
	}
	chunks := strings.Split(word, "-")
	for i, chunk := range chunks {
		if s.correct(chunk) {
			continue
		}
		for sug := range s.Suggestions(chunk) {
			parts := make([]string, len(chunks))
			copy(parts, chunks)
			parts[i] = sug.Text
			joined := strings.Join(parts, "-")
			if !s.lookup.Check(joined) {
				continue
			}
			if out, ok := s.emit(handled, Suggestion{Text: joined, Kind: KindDashes}); ok {
				if !yield(out) {
					return false
				}
			}
		}
	}
	return true
}

// similarityFallback runs the n-gram and phonetic scans once the edit
// rounds came up short.
func (s *Suggester) similarityFallback(word string, captype aff.CapType, handled mapset.Set[string], yield func(Suggestion) bool) bool {
	var (
		ng *NgramScorer
		ph *PhonetScorer
	)
	if s.aff.MaxNgramSugs > 0 {
		known := mapset.NewThreadUnsafeSet[string]()
		for _, h := range handled.ToSlice() {
			known.Add(strings.ToLower(h))
		}
		ng = NewNgramScorer(strings.ToLower(word), s.aff.Pfx, s.aff.Sfx, known,
			s.aff.MaxDiff, s.aff.OnlyMaxDiff, s.aff.Phone != nil)
	}
	if s.aff.Phone != nil {
		ph = NewPhonetScorer(word, s.aff.Phone)
	}
	if ng == nil && ph == nil {
		return true
	}

	// one shared pass over the scan subset feeds both scorers
	for _, w := range s.ngramWords {
		if ng != nil {
			ng.Step(w)
		}
		if ph != nil {
			ph.Step(w)
		}
	}

	if ng != nil {
		taken := 0
		for text := range ng.Finish() {
			if taken >= s.aff.MaxNgramSugs {
				break
			}
			taken++
			if out, ok := s.handle(word, captype, handled, Suggestion{Text: text, Kind: KindNgram}, true); ok {
				if !yield(out) {
					return false
				}
			}
		}
	}
	if ph != nil {
		taken := 0
		for text := range ph.Finish() {
			if taken >= maxPhonetSuggestions {
				break
			}
			taken++
			if out, ok := s.handle(word, captype, handled, Suggestion{Text: text, Kind: KindPhonet}, false); ok {
				if !yield(out) {
					return false
				}
			}
		}
	}
	return true
}

// edits yields up to limit validated, normalized candidates for word.
func (s *Suggester) edits(word string, limit int, compounds bool, origWord string, captype aff.CapType, handled mapset.Set[string]) iter.Seq[Suggestion] {
	return func(yield func(Suggestion) bool) {
		if limit <= 0 {
			return
		}
		count := 0
		for c := range s.permutations(word) {
			for _, sug := range s.filterCandidate(c, compounds) {
				out, ok := s.handle(origWord, captype, handled, sug, false)
				if !ok {
					continue
				}
				if !yield(out) {
					return
				}
				count++
				if count >= limit {
					return
				}
			}
		}
	}
}

// permutations yields every raw edit candidate for word, generator by
// generator, in the fixed round order.
func (s *Suggester) permutations(word string) iter.Seq[candidate] {
	return func(yield func(candidate) bool) {
		if !yield(candidate{sug: Suggestion{Text: s.aff.Casing.Upper(word), Kind: KindUppercase}}) {
			return
		}
		for rc := range replchars(word, s.aff.Rep) {
			if rc.Pair != nil {
				m := MultiWordSuggestion{Words: rc.Pair, Kind: KindReplChars}
				if !yield(candidate{multi: &m}) {
					return
				}
				continue
			}
			if !yield(candidate{sug: Suggestion{Text: rc.Text, Kind: KindReplChars}}) {
				return
			}
		}
		for pair := range twowords(word) {
			if !yield(candidate{sug: Suggestion{Text: pair[0] + " " + pair[1], Kind: KindSpaceWord}}) {
				return
			}
			if s.dashes {
				if !yield(candidate{sug: Suggestion{Text: pair[0] + "-" + pair[1], Kind: KindSpaceWord}}) {
					return
				}
			}
		}
		for text := range mapchars(word, s.aff.Map) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindMapChars}}) {
				return
			}
		}
		for text := range swapchar(word) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindSwapChar}}) {
				return
			}
		}
		for text := range longswapchar(word) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindLongSwapChar}}) {
				return
			}
		}
		for text := range badcharkey(word, s.aff.Key) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindBadCharKey}}) {
				return
			}
		}
		for text := range extrachar(word) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindExtraChar}}) {
				return
			}
		}
		for text := range forgotchar(word, s.aff.Try) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindForgotChar}}) {
				return
			}
		}
		for text := range movechar(word) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindMoveChar}}) {
				return
			}
		}
		for text := range badchar(word, s.aff.Try) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindBadChar}}) {
				return
			}
		}
		for text := range doubletwochars(word) {
			if !yield(candidate{sug: Suggestion{Text: text, Kind: KindDoubleTwoChars}}) {
				return
			}
		}
		if !s.aff.NoSplitSugs {
			for pair := range twowords(word) {
				m := MultiWordSuggestion{Words: pair[:], Kind: KindTwoWords, AllowDash: s.dashes}
				if !yield(candidate{multi: &m}) {
					return
				}
			}
		}
	}
}

// filterCandidate validates one raw candidate against the dictionary and
// returns its accepted renditions.
func (s *Suggester) filterCandidate(c candidate, compounds bool) []Suggestion {
	opts := lookup.Opts{
		AffixForms:    !compounds,
		CompoundForms: compounds,
	}
	if c.multi != nil {
		for _, w := range c.multi.Words {
			if !s.lookup.Correct(w, opts) {
				return nil
			}
		}
		out := []Suggestion{c.multi.Stringify(" ")}
		if c.multi.AllowDash {
			out = append(out, c.multi.Stringify("-"))
		}
		return out
	}
	if s.lookup.Correct(c.sug.Text, opts) {
		return []Suggestion{c.sug}
	}
	return nil
}

// handle normalizes an accepted candidate and deduplicates it against the
// stream so far. The returned flag reports whether it survived.
func (s *Suggester) handle(word string, captype aff.CapType, handled mapset.Set[string], sug Suggestion, checkInclusion bool) (Suggestion, bool) {
	text := sug.Text

	if !s.dic.HasFlag(text, s.aff.KeepCase) || s.aff.IsSharps(text) {
		coerced := s.aff.Casing.Coerce(text, captype)
		if coerced != text && s.lookup.IsForbidden(coerced) {
			coerced = text
		}
		text = coerced
		if captype == aff.CapHuh || captype == aff.CapHuhInit {
			text = fixSplitCase(word, text)
		}
	}

	if s.lookup.IsForbidden(text) {
		return Suggestion{}, false
	}
	if s.aff.OConv != nil {
		text = s.aff.OConv.Match(text)
	}
	if handled.Contains(text) {
		return Suggestion{}, false
	}
	if checkInclusion {
		lower := strings.ToLower(text)
		for _, h := range handled.ToSlice() {
			if strings.Contains(lower, strings.ToLower(h)) {
				return Suggestion{}, false
			}
		}
	}
	handled.Add(text)
	return sug.WithText(text), true
}

// fixSplitCase restores the original casing of the second word of a split
// suggestion: the coercion above only fixed the first letter. The first
// character after the space takes the original's character and the rest of
// the original is copied over the tail; the split text holds one inserted
// space, so the original aligns one position back. Only the first space is
// considered.
func fixSplitCase(word, text string) string {
	tr := []rune(text)
	p := -1
	for i, r := range tr {
		if r == ' ' {
			p = i
			break
		}
	}
	if p < 0 || p+1 >= len(tr) {
		return text
	}
	wr := []rune(word)
	if p >= len(wr) {
		return text
	}
	if tr[p+1] != wr[p] && unicode.ToUpper(tr[p+1]) == wr[p] {
		tr[p+1] = wr[p]
		return string(tr[:p+2]) + string(wr[p+1:])
	}
	return text
}

// emit releases a suggestion built outside the edit pipeline (case
// variants, forced capitalizations, dash joins), keeping the dedup and
// forbidden-word guarantees intact.
func (s *Suggester) emit(handled mapset.Set[string], sug Suggestion) (Suggestion, bool) {
	if s.lookup.IsForbidden(sug.Text) {
		return Suggestion{}, false
	}
	text := sug.Text
	if s.aff.OConv != nil {
		text = s.aff.OConv.Match(text)
	}
	if handled.Contains(text) {
		return Suggestion{}, false
	}
	handled.Add(text)
	return sug.WithText(text), true
}

// correct is the validity oracle for casing variants and dash chunks.
func (s *Suggester) correct(word string) bool {
	return s.lookup.Correct(word, lookup.Opts{
		AffixForms:    true,
		CompoundForms: true,
	})
}
