// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/typefield/suggest/pkg/lookup"
	"github.com/typefield/suggest/pkg/suggest"
)

// InputHandler processes words from stdin, checking each one and printing
// its ranked correction candidates.
type InputHandler struct {
	suggester    *suggest.Suggester
	lookup       *lookup.Lookup
	suggestLimit int
	maxWordLen   int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(suggester *suggest.Suggester, lk *lookup.Lookup, limit, maxWordLen int) *InputHandler {
	return &InputHandler{
		suggester:    suggester,
		lookup:       lk,
		suggestLimit: limit,
		maxWordLen:   maxWordLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed word to HandleWord for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("suggest CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to see the suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		word, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		h.HandleWord(word)
	}
}

// HandleWord checks a single word and prints its candidates.
func (h *InputHandler) HandleWord(word string) {
	if h.maxWordLen > 0 && len(word) > h.maxWordLen {
		log.Errorf("Word too long: %s", word)
		return
	}

	if h.lookup.Check(word) {
		log.Printf("%s: correct", word)
		return
	}

	start := time.Now()
	var candidates []suggest.Suggestion
	for sug := range h.suggester.Suggestions(word) {
		candidates = append(candidates, sug)
		if h.suggestLimit > 0 && len(candidates) >= h.suggestLimit {
			break
		}
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if len(candidates) == 0 {
		log.Warnf("No suggestions found for word: '%s'", word)
		return
	}

	log.Printf("Found %d suggestions for '%s':", len(candidates), word)
	for i, sug := range candidates {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", sug.Text)
		log.Printf("%2d. %-40s (%s)", i+1, clWord, sug.Kind)
	}
}
