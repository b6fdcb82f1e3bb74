package dic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/edsrzf/mmap-go"

	"github.com/typefield/suggest/pkg/aff"
)

// Load parses dictionary lines from r. The first line may be the customary
// entry-count header; it is validated against the actual count but never
// trusted.
func Load(r io.Reader, flags aff.FlagParser) (*Dic, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	declared := -1
	first := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if first {
			first = false
			if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				declared = n
				continue
			}
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := parseLine(line, flags)
		if err != nil {
			log.Warnf("dic: line %d: %v", lineNo, err)
			continue
		}
		d.Add(w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dic: reading: %w", err)
	}
	if declared >= 0 && declared != d.Len() {
		log.Debugf("dic: header declares %d entries, parsed %d", declared, d.Len())
	}
	return d, nil
}

// LoadFile memory-maps a .dic file and parses it. Word lists run to
// megabytes; mapping avoids a second in-memory copy during the scan.
func LoadFile(path string, flags aff.FlagParser) (*Dic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dic: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("dic: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return New(), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		log.Warnf("dic: mmap %s failed (%v), falling back to buffered read", path, err)
		return Load(f, flags)
	}
	defer m.Unmap()

	return Load(bytes.NewReader(m), flags)
}

// parseLine splits "stem/FLAGS tag:value…" into an entry. A backslash
// escapes a literal slash inside the stem.
func parseLine(line string, flags aff.FlagParser) (*Word, error) {
	word := strings.TrimSpace(line)
	if word == "" {
		return nil, fmt.Errorf("empty entry")
	}

	// data tags look like "xx:value"; entries themselves may contain
	// spaces ("a lot"), so the cut happens at the first tag-shaped token
	word, tags := splitTags(word)
	var alts []string
	for _, tag := range strings.Fields(tags) {
		if v, ok := strings.CutPrefix(tag, "ph:"); ok && v != "" {
			alts = append(alts, v)
		}
	}

	stem, flagPart := splitStem(word)
	w := &Word{Stem: stem, AltSpellings: alts}
	if flagPart != "" {
		fs := flags.ParseFlags(flagPart)
		if len(fs) > 0 {
			w.Flags = mapset.NewThreadUnsafeSet(fs...)
		}
	}
	return w, nil
}

// splitTags cuts the line at the first "xx:" shaped token.
func splitTags(line string) (word, tags string) {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			continue
		}
		rest := strings.TrimLeft(line[i:], " \t")
		if isTagToken(rest) {
			return strings.TrimRight(line[:i], " \t"), rest
		}
	}
	return line, ""
}

func isTagToken(s string) bool {
	if len(s) < 3 {
		return false
	}
	return isASCIILetter(s[0]) && isASCIILetter(s[1]) && s[2] == ':'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func splitStem(word string) (stem, flagPart string) {
	for i := 0; i < len(word); i++ {
		if word[i] == '\\' && i+1 < len(word) && word[i+1] == '/' {
			i++
			continue
		}
		if word[i] == '/' {
			return strings.ReplaceAll(word[:i], `\/`, "/"), word[i+1:]
		}
	}
	return strings.ReplaceAll(word, `\/`, "/"), ""
}
