package autograde

import (
	"sort"
	"strings"
)

// ErrorMatch is one retained common-error hit.
type ErrorMatch struct {
	Concept string `json:"concept"`
	EntryID string `json:"entry_id,omitempty"`
	Start   int    `json:"start"`
	Length  int    `json:"length"`
	Text    string `json:"text"`
}

// Detection is the outcome of scanning a text against a glossary of
// error terms.
type Detection struct {
	Matches   []ErrorMatch // retained, in text order
	Annotated string
	Count     int // distinct retained concepts
}

// DetectErrors matches every glossary concept and alias against the
// text, keeps only the longest non-redundant matches, and annotates
// the retained spans with display references. Terms whose pattern does
// not compile are skipped rather than failing the grading call.
func DetectErrors(terms []ErrorTerm, text string, defaults PhraseOptions) Detection {
	det := Detection{Annotated: text}
	if text == "" || len(terms) == 0 {
		return det
	}

	var found []ErrorMatch
	for _, term := range terms {
		opts := defaults
		if term.FullWordOnly != nil {
			opts.FullWordOnly = *term.FullWordOnly
		}
		if term.CaseSensitive != nil {
			opts.CaseSensitive = *term.CaseSensitive
		}
		for _, pat := range append([]string{term.Concept}, term.Aliases...) {
			cp, err := CompilePhrase(pat, opts)
			if err != nil {
				continue
			}
			m, ok := cp.Find(text)
			if !ok {
				continue
			}
			found = append(found, ErrorMatch{
				Concept: term.Concept,
				EntryID: term.EntryID,
				Start:   m.Start,
				Length:  m.Length,
				Text:    m.Text,
			})
		}
	}
	if len(found) == 0 {
		return det
	}

	// Longest first; ties resolve leftmost so retention is stable.
	sort.SliceStable(found, func(i, j int) bool {
		if len(found[i].Text) != len(found[j].Text) {
			return len(found[i].Text) > len(found[j].Text)
		}
		return found[i].Start < found[j].Start
	})

	var retained []ErrorMatch
	concepts := map[string]struct{}{}
	for _, cand := range found {
		if _, dup := concepts[cand.Concept]; dup {
			continue
		}
		if redundant(cand, retained) {
			continue
		}
		concepts[cand.Concept] = struct{}{}
		retained = append(retained, cand)
	}

	sort.Slice(retained, func(i, j int) bool { return retained[i].Start < retained[j].Start })
	det.Matches = retained
	det.Count = len(retained)

	// Replace from the highest offset down so earlier spans keep their
	// positions while we splice.
	annotated := text
	for i := len(retained) - 1; i >= 0; i-- {
		m := retained[i]
		annotated = annotated[:m.Start] + ErrorReference(m) + annotated[m.Start+m.Length:]
	}
	det.Annotated = annotated
	return det
}

// redundant reports whether a candidate duplicates a longer retained
// match: its text is contained in the retained text, or its span
// overlaps the retained span.
func redundant(cand ErrorMatch, retained []ErrorMatch) bool {
	candText := strings.ToLower(cand.Text)
	for _, r := range retained {
		if strings.Contains(strings.ToLower(r.Text), candText) {
			return true
		}
		if cand.Start < r.Start+r.Length && r.Start < cand.Start+cand.Length {
			return true
		}
	}
	return false
}

// ErrorReference renders the displayable reference a matched span is
// replaced with in the annotated text.
func ErrorReference(m ErrorMatch) string {
	if m.EntryID != "" {
		return "[" + m.Text + "](glossary://" + m.EntryID + ")"
	}
	return "[" + m.Text + "]"
}
