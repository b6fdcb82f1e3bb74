package aff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// FlagMode selects how flag strings on affix and dictionary lines are
// decoded into individual flags.
type FlagMode int

const (
	// FlagChar is the default: every rune is one flag.
	FlagChar FlagMode = iota
	// FlagLong packs ASCII pairs into one flag.
	FlagLong
	// FlagNum decodes comma-separated decimal flags.
	FlagNum
)

// FlagParser decodes flag strings according to the FLAG directive.
type FlagParser struct {
	Mode FlagMode
}

// ParseFlags splits s into individual flags.
func (p FlagParser) ParseFlags(s string) []rune {
	switch p.Mode {
	case FlagLong:
		var flags []rune
		r := []rune(s)
		for i := 0; i+1 < len(r); i += 2 {
			flags = append(flags, r[i]<<8|r[i+1])
		}
		return flags
	case FlagNum:
		var flags []rune
		for _, part := range strings.Split(s, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			flags = append(flags, rune(n))
		}
		return flags
	default:
		return []rune(s)
	}
}

// ParseFlag decodes a single flag, returning 0 when s is empty.
func (p FlagParser) ParseFlag(s string) rune {
	flags := p.ParseFlags(s)
	if len(flags) == 0 {
		return 0
	}
	return flags[0]
}

// Parse reads an affix file.
func Parse(r io.Reader) (*Aff, error) {
	a := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		directive := fields[0]
		args := fields[1:]

		switch directive {
		case "SET":
			// only UTF-8 dictionaries are handled; other encodings must be
			// converted before loading
			if len(args) > 0 && !strings.EqualFold(args[0], "UTF-8") {
				log.Warnf("aff: unsupported encoding %q, expecting UTF-8", args[0])
			}
		case "FLAG":
			if len(args) > 0 {
				switch args[0] {
				case "long":
					a.FlagParser.Mode = FlagLong
				case "num":
					a.FlagParser.Mode = FlagNum
				default:
					a.FlagParser.Mode = FlagChar
				}
			}
		case "TRY":
			if len(args) > 0 {
				a.Try = args[0]
			}
		case "KEY":
			if len(args) > 0 {
				a.Key = strings.Split(args[0], "|")
			}
		case "FORBIDDENWORD":
			a.ForbiddenWord = a.FlagParser.ParseFlag(argOr(args, 0))
		case "NOSUGGEST":
			a.NoSuggest = a.FlagParser.ParseFlag(argOr(args, 0))
		case "ONLYINCOMPOUND":
			a.OnlyInCompound = a.FlagParser.ParseFlag(argOr(args, 0))
		case "KEEPCASE":
			a.KeepCase = a.FlagParser.ParseFlag(argOr(args, 0))
		case "FORCEUCASE":
			a.ForceUCase = a.FlagParser.ParseFlag(argOr(args, 0))
		case "COMPOUNDFLAG":
			a.CompoundFlag = a.FlagParser.ParseFlag(argOr(args, 0))
		case "COMPOUNDMIN":
			a.CompoundMin = atoiOr(argOr(args, 0), a.CompoundMin)
		case "CHECKSHARPS":
			a.CheckSharps = true
		case "NOSPLITSUGS":
			a.NoSplitSugs = true
		case "ONLYMAXDIFF":
			a.OnlyMaxDiff = true
		case "MAXCPDSUGS":
			a.MaxCpdSugs = atoiOr(argOr(args, 0), a.MaxCpdSugs)
		case "MAXNGRAMSUGS":
			a.MaxNgramSugs = atoiOr(argOr(args, 0), a.MaxNgramSugs)
		case "MAXDIFF":
			a.MaxDiff = atoiOr(argOr(args, 0), a.MaxDiff)
		case "REP":
			if isTableHeader(args) {
				continue
			}
			if len(args) < 2 {
				log.Warnf("aff: line %d: REP wants two fields", lineNo)
				continue
			}
			rule, err := NewRepRule(args[0], args[1])
			if err != nil {
				return nil, fmt.Errorf("aff: line %d: REP pattern %q: %w", lineNo, args[0], err)
			}
			a.Rep = append(a.Rep, rule)
		case "MAP":
			if isTableHeader(args) {
				continue
			}
			if len(args) > 0 {
				a.Map = append(a.Map, args[0])
			}
		case "PHONE":
			if isTableHeader(args) {
				continue
			}
			if len(args) >= 2 {
				a.phonePairs = append(a.phonePairs, [2]string{args[0], args[1]})
			}
		case "OCONV":
			if isTableHeader(args) {
				continue
			}
			if len(args) >= 2 {
				a.oconvPairs = append(a.oconvPairs, ConvPair{From: args[0], To: args[1]})
			}
		case "PFX", "SFX":
			if err := parseAffixLine(a, directive, args, lineNo); err != nil {
				return nil, err
			}
		default:
			// anything else belongs to checker features out of reach here
			log.Debugf("aff: line %d: ignoring directive %s", lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("aff: reading: %w", err)
	}

	if len(a.phonePairs) > 0 {
		a.Phone = NewPhoneTable(a.phonePairs)
		a.phonePairs = nil
	}
	if len(a.oconvPairs) > 0 {
		a.OConv = NewConvTable(a.oconvPairs)
		a.oconvPairs = nil
	}
	return a, nil
}

// ParseFile reads an affix file from disk.
func ParseFile(path string) (*Aff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("aff: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// affix group headers carry crossproduct and a count; rule lines carry
// strip, add and condition
func parseAffixLine(a *Aff, directive string, args []string, lineNo int) error {
	if len(args) < 3 {
		log.Warnf("aff: line %d: short %s line", lineNo, directive)
		return nil
	}
	flag := a.FlagParser.ParseFlag(args[0])
	if args[1] == "Y" || args[1] == "N" {
		// group header: remember crossproduct for the rule lines below
		a.crossProduct[flag] = args[1] == "Y"
		return nil
	}
	cross := a.crossProduct[flag]
	strip, add := args[1], args[2]
	cond := "."
	if len(args) > 3 {
		cond = args[3]
	}
	// affixes may carry continuation flags after a slash; they belong to
	// checker features not modeled here
	if i := strings.IndexByte(add, '/'); i >= 0 {
		add = add[:i]
	}
	var (
		rule AffixRule
		err  error
	)
	if directive == "PFX" {
		rule, err = NewPrefixRule(flag, cross, strip, add, cond)
	} else {
		rule, err = NewSuffixRule(flag, cross, strip, add, cond)
	}
	if err != nil {
		return fmt.Errorf("aff: line %d: %s condition %q: %w", lineNo, directive, cond, err)
	}
	if directive == "PFX" {
		a.Pfx[flag] = append(a.Pfx[flag], rule)
	} else {
		a.Sfx[flag] = append(a.Sfx[flag], rule)
	}
	return nil
}

// isTableHeader reports whether args is the "<count>" line opening a table.
func isTableHeader(args []string) bool {
	if len(args) != 1 {
		return false
	}
	_, err := strconv.Atoi(args[0])
	return err == nil
}

func argOr(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
