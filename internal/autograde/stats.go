package autograde

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Word tokens are maximal runs of letters/digits with apostrophes
// allowed between them. The live word counter on the client must use
// this exact rule, or the displayed count drifts from the graded one.
var reWord = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// ComputeStats derives the full metric record for a normalized text.
// fileCount and errorCount are computed elsewhere and carried through.
func ComputeStats(text string, fileCount, errorCount int) Stats {
	s := Stats{
		Chars:        utf8.RuneCountInString(text),
		Files:        fileCount,
		CommonErrors: errorCount,
	}

	words := reWord.FindAllString(text, -1)
	s.Words = len(words)

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := seen[lw]; ok {
			continue
		}
		seen[lw] = struct{}{}
		s.UniqueWords++
		if CountSyllables(lw) > 2 {
			s.LongWords++
		}
	}

	s.Sentences = len(splitSentences(text))
	s.Paragraphs = countParagraphs(text)

	if s.Words > 0 {
		s.LexicalDensity = int(math.Round(100 * float64(s.UniqueWords) / float64(s.Words)))
	}
	if s.Sentences > 0 {
		s.CharsPerSentence = round1(float64(s.Chars) / float64(s.Sentences))
		s.WordsPerSentence = round1(float64(s.Words) / float64(s.Sentences))
		s.LongWordsPerSentence = round1(float64(s.LongWords) / float64(s.Sentences))
	}
	if s.WordsPerSentence > 0 {
		s.FogIndex = round1(0.4 * (s.WordsPerSentence + s.LongWordsPerSentence))
	}
	if s.Paragraphs > 0 {
		s.SentencesPerParagraph = round1(float64(s.Sentences) / float64(s.Paragraphs))
	}
	return s
}

// CountItems returns the single statistic a response is graded on.
func CountItems(text string, t ItemType, fileCount int) int {
	switch t {
	case ItemChars:
		return utf8.RuneCountInString(text)
	case ItemWords:
		return len(reWord.FindAllString(text, -1))
	case ItemSentences:
		return len(splitSentences(text))
	case ItemParagraphs:
		return countParagraphs(text)
	case ItemFiles:
		return fileCount
	default:
		return 0
	}
}

// Count of the ItemType field out of an already-computed Stats record.
func (s Stats) Count(t ItemType) int {
	switch t {
	case ItemChars:
		return s.Chars
	case ItemWords:
		return s.Words
	case ItemSentences:
		return s.Sentences
	case ItemParagraphs:
		return s.Paragraphs
	case ItemFiles:
		return s.Files
	default:
		return 0
	}
}

// splitSentences splits on runs of [.!?] unless the run is followed
// immediately by a digit, so decimal numbers don't end a sentence.
// Empty segments are dropped.
func splitSentences(text string) []string {
	var segs []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			segs = append(segs, s)
		}
		cur.Reset()
	}
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != '.' && r != '!' && r != '?' {
			cur.WriteRune(r)
			continue
		}
		j := i
		for j < len(rs) && (rs[j] == '.' || rs[j] == '!' || rs[j] == '?') {
			j++
		}
		if j < len(rs) && unicode.IsDigit(rs[j]) {
			// decimal point, keep it in the segment
			for ; i < j; i++ {
				cur.WriteRune(rs[i])
			}
			i--
			continue
		}
		flush()
		i = j - 1
	}
	flush()
	return segs
}

func countParagraphs(text string) int {
	n := 0
	for _, p := range strings.Split(text, "\n") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// CountSyllables approximates the syllable count of a single word:
// adjacent vowel pairs count once, remaining vowels once each, and a
// trailing silent E is discounted. Not exact, but stable.
func CountSyllables(word string) int {
	w := strings.ToUpper(word)
	rs := []rune(w)
	if len(rs) < 2 {
		return 1
	}
	n := 0
	for i := 0; i < len(rs); i++ {
		if !isVowel(rs[i]) {
			continue
		}
		if i+1 < len(rs) && isVowel(rs[i+1]) {
			i++ // digraph counts once
		}
		n++
	}
	if rs[len(rs)-1] == 'E' && n > 1 {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
