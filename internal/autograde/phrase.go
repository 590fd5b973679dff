package autograde

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// PhraseOptions are the per-phrase matching flags.
type PhraseOptions struct {
	FullWordOnly     bool
	CaseSensitive    bool
	IgnoreLineBreaks bool
}

// Connector tokens, recognized in this order so that the padded forms
// win over the bare ones. OR and comma split alternatives; AND and ANY
// join fragments across any run of characters.
var (
	orTokens  = []string{" OR ", " OR", "OR ", ", ", " ,", ","}
	gapTokens = []string{" AND ", " AND", "AND ", " ANY ", " ANY", "ANY "}
)

const (
	orMark  = "\x00"
	gapMark = "\x01"
)

// Match is the first occurrence of a phrase in a text. Offsets are
// byte offsets into the searched string.
type Match struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Text   string `json:"text"`   // matched span
	Phrase string `json:"phrase"` // subphrase to display for this match
}

type phraseAlt struct {
	source string // original subphrase text, trimmed
	re     *regexp.Regexp
	gapRe  *regexp.Regexp // cross-line-break variant, nil unless needed
	hasGap bool
}

// CompiledPhrase is a phrase pattern ready for matching.
type CompiledPhrase struct {
	pattern string
	opts    PhraseOptions
	alts    []phraseAlt
	hasGap  bool
}

// CompilePhrase translates the human-readable phrase grammar (OR/AND/ANY
// connectors, ? and * wildcards, everything else literal) into
// matchable patterns.
func CompilePhrase(pattern string, opts PhraseOptions) (*CompiledPhrase, error) {
	cp := &CompiledPhrase{pattern: pattern, opts: opts}
	if strings.TrimSpace(pattern) == "" {
		return cp, nil
	}

	marked := pattern
	for _, t := range orTokens {
		marked = strings.ReplaceAll(marked, t, orMark)
	}
	for _, alt := range strings.Split(marked, orMark) {
		src := strings.TrimSpace(alt)
		if src == "" {
			continue
		}
		a, err := compileAlt(src, opts)
		if err != nil {
			return nil, err
		}
		cp.alts = append(cp.alts, a)
		if a.hasGap {
			cp.hasGap = true
		}
	}
	return cp, nil
}

func compileAlt(src string, opts PhraseOptions) (phraseAlt, error) {
	marked := src
	for _, t := range gapTokens {
		marked = strings.ReplaceAll(marked, t, gapMark)
	}
	hasGap := strings.Contains(marked, gapMark)

	build := func(crossBreaks bool) (*regexp.Regexp, error) {
		any := `[^\n]`
		if crossBreaks {
			any = `(?s:.)`
		}
		var b strings.Builder
		if !opts.CaseSensitive {
			b.WriteString(`(?i)`)
		}
		if opts.FullWordOnly {
			b.WriteString(`\b(?:`)
		}
		for _, r := range marked {
			switch r {
			case '\x01': // gap marker
				b.WriteString(any + `*?`)
			case '?':
				b.WriteString(any)
			case '*':
				b.WriteString(any + `*?`)
			default:
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
		if opts.FullWordOnly {
			b.WriteString(`)\b`)
		}
		return regexp.Compile(b.String())
	}

	re, err := build(opts.IgnoreLineBreaks)
	if err != nil {
		return phraseAlt{}, err
	}
	a := phraseAlt{source: src, re: re, hasGap: hasGap}
	if hasGap && !opts.IgnoreLineBreaks {
		if a.gapRe, err = build(true); err != nil {
			return phraseAlt{}, err
		}
	}
	return a, nil
}

// Find returns the first (leftmost) match across all alternatives.
func (cp *CompiledPhrase) Find(text string) (Match, bool) {
	if text == "" || len(cp.alts) == 0 {
		return Match{}, false
	}
	best := -1
	var bestLoc []int
	for i, a := range cp.alts {
		loc := a.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < bestLoc[0] {
			best, bestLoc = i, loc
		}
	}
	if best == -1 {
		return Match{}, false
	}
	m := Match{
		Start:  bestLoc[0],
		Length: bestLoc[1] - bestLoc[0],
		Text:   text[bestLoc[0]:bestLoc[1]],
	}
	// With alternation, a wildcard alternative can match a span shorter
	// than the subphrase it came from; show the subphrase text then so
	// the user sees what was configured, not a truncated fragment.
	m.Phrase = m.Text
	if len(cp.alts) > 1 && utf8.RuneCountInString(m.Text) < utf8.RuneCountInString(cp.alts[best].source) {
		m.Phrase = cp.alts[best].source
	}
	return m, true
}

// Blocked reports whether an AND/ANY join failed only because the gap
// would have to cross a line break. Diagnostic only; never a match.
func (cp *CompiledPhrase) Blocked(text string) bool {
	if text == "" || !cp.hasGap || cp.opts.IgnoreLineBreaks {
		return false
	}
	for _, a := range cp.alts {
		if a.gapRe == nil {
			continue
		}
		if a.re.FindStringIndex(text) == nil && a.gapRe.FindStringIndex(text) != nil {
			return true
		}
	}
	return false
}

// Pattern returns the source pattern the phrase was compiled from.
func (cp *CompiledPhrase) Pattern() string { return cp.pattern }

// HasGap reports whether the pattern uses an AND/ANY connector.
func (cp *CompiledPhrase) HasGap() bool { return cp.hasGap }
