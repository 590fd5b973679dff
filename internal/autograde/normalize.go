package autograde

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Compiled once at load; no lazy init.
var (
	reBreakTag  = regexp.MustCompile(`(?i)<\s*(?:br\s*/?|/p|/div|/li|/h[1-6]|/tr)\s*>`)
	reTag       = regexp.MustCompile(`<[^>]*>`)
	reHoriz     = regexp.MustCompile(`[ \t\x{00A0}]+`)
	reBreakRuns = regexp.MustCompile(`[ ]*\n[ \n]*`)
)

// Normalize reduces a markup response to canonical plain text: tags
// stripped per format, entities decoded, horizontal whitespace
// collapsed to single spaces, line-break runs collapsed to one "\n",
// ends trimmed. Idempotent.
func Normalize(text string, format TextFormat) string {
	if format == FormatHTML {
		text = reBreakTag.ReplaceAllString(text, "\n")
		text = reTag.ReplaceAllString(text, "")
		text = html.UnescapeString(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = reHoriz.ReplaceAllString(text, " ")
	text = reBreakRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// StripTags removes markup without touching whitespace.
func StripTags(text string) string {
	return strings.TrimSpace(html.UnescapeString(reTag.ReplaceAllString(text, "")))
}

// IsSimilar reports whether two texts differ by no more than
// thresholdPercent. Short inputs (combined length up to 255 runes) are
// compared by normalized edit distance; longer ones by a common-
// subsequence match ratio. Used to reject responses that are trivial
// copies of a question template or sample.
func IsSimilar(a, b string, thresholdPercent float64) bool {
	a = StripTags(a)
	b = StripTags(b)
	if a == b {
		return true
	}
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return true
	}
	max := la
	if lb > max {
		max = lb
	}
	var dissimilar float64
	if la+lb <= 255 {
		dissimilar = float64(levenshtein(a, b)) / float64(max) * 100
	} else {
		dissimilar = float64(max-lcsLength(a, b)) / float64(max) * 100
	}
	dissimilar = math.Round(dissimilar*100) / 100
	return dissimilar <= thresholdPercent
}

// levenshtein computes edit distance (insertion, deletion, substitution cost 1).
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	row := make([]int, m+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= n; i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= m; j++ {
			sub := diag
			if ar[i-1] != br[j-1] {
				sub++
			}
			diag = row[j]
			row[j] = min(row[j]+1, row[j-1]+1, sub)
		}
	}
	return row[m]
}

// lcsLength computes the length of the longest common subsequence,
// rolling two rows to keep memory linear in the shorter string.
func lcsLength(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(br) > len(ar) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return 0
	}
	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for i := 1; i <= len(ar); i++ {
		for j := 1; j <= len(br); j++ {
			if ar[i-1] == br[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}
