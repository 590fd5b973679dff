package autograde

// TextFormat declares the markup of an incoming response so the
// normalizer knows what to strip.
type TextFormat int

const (
	FormatPlain TextFormat = iota
	FormatHTML
	FormatMarkdown
)

// ItemType selects which statistic is the countable unit a response is
// graded on.
type ItemType int

const (
	ItemNone ItemType = iota
	ItemChars
	ItemWords
	ItemSentences
	ItemParagraphs
	ItemFiles
)

func (t ItemType) String() string {
	switch t {
	case ItemChars:
		return "chars"
	case ItemWords:
		return "words"
	case ItemSentences:
		return "sentences"
	case ItemParagraphs:
		return "paragraphs"
	case ItemFiles:
		return "files"
	default:
		return "none"
	}
}

// ParseItemType maps the wire name back to an ItemType. Unknown names
// come back as ItemNone.
func ParseItemType(s string) ItemType {
	switch s {
	case "chars":
		return ItemChars
	case "words":
		return ItemWords
	case "sentences":
		return ItemSentences
	case "paragraphs":
		return ItemParagraphs
	case "files":
		return ItemFiles
	default:
		return ItemNone
	}
}

// Response is the immutable input of one grading attempt.
type Response struct {
	RawText         string `json:"raw_text"`
	AttachmentCount int    `json:"attachment_count"`
}

// Stats is the value record of countable and derived text metrics.
// Derived fields are 0 whenever their denominator is 0.
type Stats struct {
	Chars      int `json:"chars"`
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
	Paragraphs int `json:"paragraphs"`
	Files      int `json:"files"`

	UniqueWords int `json:"unique_words"`
	LongWords   int `json:"long_words"`

	LexicalDensity        int     `json:"lexical_density"` // percent
	CharsPerSentence      float64 `json:"chars_per_sentence"`
	WordsPerSentence      float64 `json:"words_per_sentence"`
	LongWordsPerSentence  float64 `json:"long_words_per_sentence"`
	SentencesPerParagraph float64 `json:"sentences_per_paragraph"`
	FogIndex              float64 `json:"fog_index"`

	CommonErrors int `json:"common_errors"`
}

// GradeBand maps an item-count threshold to a percent of the maximum
// grade. A question owns an ordered set, unique and ascending by
// threshold; percents are assumed non-decreasing (caller-validated).
type GradeBand struct {
	Threshold int `json:"threshold"`
	Percent   int `json:"percent"`
}

// TargetPhrase is a configured pattern whose presence adds a percent
// bonus to the raw score.
type TargetPhrase struct {
	Pattern          string `json:"pattern"`
	Percent          int    `json:"percent"`
	FullWordOnly     bool   `json:"full_word_only"`
	CaseSensitive    bool   `json:"case_sensitive"`
	IgnoreLineBreaks bool   `json:"ignore_line_breaks"`
}

// ErrorTerm is one glossary concept plus its aliases. FullWordOnly and
// CaseSensitive are overrides; nil means inherit the question default.
type ErrorTerm struct {
	Concept       string   `json:"concept"`
	Aliases       []string `json:"aliases,omitempty"`
	EntryID       string   `json:"entry_id,omitempty"`
	FullWordOnly  *bool    `json:"full_word_only,omitempty"`
	CaseSensitive *bool    `json:"case_sensitive,omitempty"`
}

// QuestionConfig is the per-question grading configuration, supplied
// fully materialized by the caller.
type QuestionConfig struct {
	ItemType         ItemType       `json:"item_type"`
	ItemCount        int            `json:"item_count"`
	AddPartialCredit bool           `json:"add_partial_credit"`
	ErrorPercent     int            `json:"error_percent"` // penalty per common error
	ErrorFullWord    bool           `json:"error_full_word"`
	ErrorCaseMatch   bool           `json:"error_case_match"`
	IgnoreLineBreaks bool           `json:"ignore_line_breaks"`
	ResponseFormat   TextFormat     `json:"response_format"`
	TemplateText     string         `json:"template_text,omitempty"`
	SampleText       string         `json:"sample_text,omitempty"`
	Bands            []GradeBand    `json:"bands,omitempty"`
	Phrases          []TargetPhrase `json:"phrases,omitempty"`
}

// PhraseAward records one matched target phrase and the percent it
// contributed.
type PhraseAward struct {
	Phrase  string `json:"phrase"`
	Percent int    `json:"percent"`
}

// ErrorRef links one retained common-error concept to its annotated
// display reference.
type ErrorRef struct {
	Concept string `json:"concept"`
	Link    string `json:"link"`
}

// Note is one explanation-trail entry: a template key plus named
// substitution values. Rendering is the caller's responsibility.
type Note struct {
	Key  string         `json:"key"`
	Args map[string]any `json:"args,omitempty"`
}

// BandResult is the outcome of walking the grade bands for a count.
type BandResult struct {
	CompleteCount   int `json:"complete_count"`
	CompletePercent int `json:"complete_percent"`
	PartialCount    int `json:"partial_count"`
	PartialPercent  int `json:"partial_percent"`
}

// GradingResult is the immutable outcome of one grading call.
type GradingResult struct {
	RawFraction  float64 `json:"raw_fraction"`
	AutoFraction float64 `json:"auto_fraction"` // clamped to [0,1]
	RawPercent   int     `json:"raw_percent"`
	AutoPercent  int     `json:"auto_percent"`

	MatchedPhrases   []PhraseAward `json:"matched_phrases,omitempty"`
	UnmatchedPhrases []string      `json:"unmatched_phrases,omitempty"`
	MatchedErrors    []ErrorRef    `json:"matched_errors,omitempty"`
	AnnotatedText    string        `json:"annotated_text,omitempty"`

	Bands BandResult `json:"bands"`
	Stats Stats      `json:"stats"`

	Explanation []Note   `json:"explanation"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}
