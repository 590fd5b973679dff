package autograde

import (
	"fmt"
	"math"
)

// Explanation trail template keys. The rendering collaborator owns the
// strings; the engine supplies only keys and substitution values.
const (
	NoteCompleteBand   = "completeband"
	NotePartialBand    = "partialband"
	NoteFirstItems     = "firstitems"
	NoteRemainingItems = "remainingitems"
	NoteTargetPhrase   = "targetphrase"
	NoteCommonError    = "commonerror"
	NoteNotEnoughItems = "notenoughitems"
)

// DefaultSimilarityThreshold is the dissimilarity percentage under
// which a response counts as a copy of the template or sample text.
const DefaultSimilarityThreshold = 10

// Engine grades essay responses. It is stateless and safe for
// concurrent use; every call works only on its inputs.
type Engine struct {
	similarityThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSimilarityThreshold overrides the template/sample copy threshold.
func WithSimilarityThreshold(pct float64) Option {
	return func(e *Engine) { e.similarityThreshold = pct }
}

// NewEngine builds an engine with default settings.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{similarityThreshold: DefaultSimilarityThreshold}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Grade runs the full autograding pipeline for one response and
// returns the result record. It never fails on response content: an
// empty or template-copied response grades to zero with a
// "not enough items" explanation, not an error.
func (e *Engine) Grade(resp Response, cfg QuestionConfig, terms []ErrorTerm) GradingResult {
	text := Normalize(resp.RawText, cfg.ResponseFormat)
	text = e.discardTrivialCopy(text, cfg)

	defaults := PhraseOptions{
		FullWordOnly:     cfg.ErrorFullWord,
		CaseSensitive:    cfg.ErrorCaseMatch,
		IgnoreLineBreaks: cfg.IgnoreLineBreaks,
	}
	det := DetectErrors(terms, text, defaults)
	stats := ComputeStats(text, resp.AttachmentCount, det.Count)
	count := stats.Count(cfg.ItemType)

	res := GradingResult{
		Stats:         stats,
		AnnotatedText: det.Annotated,
	}

	raw := 0.0
	if len(cfg.Bands) > 0 {
		res.Bands = EvaluateBands(cfg.Bands, count, cfg.AddPartialCredit)
		raw += float64(res.Bands.CompletePercent+res.Bands.PartialPercent) / 100
		if count > 0 {
			res.Explanation = append(res.Explanation, Note{
				Key: NoteCompleteBand,
				Args: map[string]any{
					"count":    res.Bands.CompleteCount,
					"percent":  res.Bands.CompletePercent,
					"itemtype": cfg.ItemType.String(),
				},
			})
			if cfg.AddPartialCredit && res.Bands.PartialPercent != 0 {
				res.Explanation = append(res.Explanation, Note{
					Key: NotePartialBand,
					Args: map[string]any{
						"count":    res.Bands.PartialCount,
						"percent":  res.Bands.PartialPercent,
						"itemtype": cfg.ItemType.String(),
					},
				})
			}
		}
	} else if cfg.ItemCount > 0 && count > 0 {
		// No bands: linear fraction against the expected item count.
		fraction := float64(count) / float64(cfg.ItemCount)
		raw += fraction
		res.Explanation = append(res.Explanation, Note{
			Key: NoteFirstItems,
			Args: map[string]any{
				"count":    count,
				"total":    cfg.ItemCount,
				"percent":  int(math.Round(fraction * 100)),
				"itemtype": cfg.ItemType.String(),
			},
		})
		if remaining := cfg.ItemCount - count; remaining > 0 {
			res.Explanation = append(res.Explanation, Note{
				Key: NoteRemainingItems,
				Args: map[string]any{
					"count":    remaining,
					"itemtype": cfg.ItemType.String(),
				},
			})
		}
	}

	raw += e.matchPhrases(text, cfg, &res)

	for _, m := range det.Matches {
		res.MatchedErrors = append(res.MatchedErrors, ErrorRef{Concept: m.Concept, Link: ErrorReference(m)})
		res.Explanation = append(res.Explanation, Note{
			Key: NoteCommonError,
			Args: map[string]any{
				"concept": m.Concept,
				"percent": -cfg.ErrorPercent,
			},
		})
	}
	raw -= float64(det.Count*cfg.ErrorPercent) / 100

	if len(res.Explanation) == 0 {
		res.Explanation = append(res.Explanation, Note{
			Key:  NoteNotEnoughItems,
			Args: map[string]any{"itemtype": cfg.ItemType.String()},
		})
	}

	res.RawFraction = raw
	res.AutoFraction = clamp01(raw)
	res.RawPercent = int(math.Round(res.RawFraction * 100))
	res.AutoPercent = int(math.Round(res.AutoFraction * 100))
	return res
}

// discardTrivialCopy blanks the gradable text when it is no more than
// a lightly edited copy of the question's template or sample text.
func (e *Engine) discardTrivialCopy(text string, cfg QuestionConfig) string {
	if text == "" {
		return text
	}
	for _, ref := range []string{cfg.TemplateText, cfg.SampleText} {
		if ref == "" {
			continue
		}
		if IsSimilar(text, Normalize(ref, cfg.ResponseFormat), e.similarityThreshold) {
			return ""
		}
	}
	return text
}

// matchPhrases runs every configured target phrase against the text,
// in configured order, and returns the summed bonus fraction.
func (e *Engine) matchPhrases(text string, cfg QuestionConfig, res *GradingResult) float64 {
	bonus := 0.0
	for _, p := range cfg.Phrases {
		cp, err := CompilePhrase(p.Pattern, PhraseOptions{
			FullWordOnly:     p.FullWordOnly,
			CaseSensitive:    p.CaseSensitive,
			IgnoreLineBreaks: p.IgnoreLineBreaks,
		})
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("phrase %q: %v", p.Pattern, err))
			continue
		}
		m, ok := cp.Find(text)
		if !ok {
			res.UnmatchedPhrases = append(res.UnmatchedPhrases, p.Pattern)
			if cp.Blocked(text) {
				res.Diagnostics = append(res.Diagnostics,
					fmt.Sprintf("phrase %q: a line break blocked a potential AND/ANY match", p.Pattern))
			}
			continue
		}
		bonus += float64(p.Percent) / 100
		res.MatchedPhrases = append(res.MatchedPhrases, PhraseAward{Phrase: m.Phrase, Percent: p.Percent})
		res.Explanation = append(res.Explanation, Note{
			Key: NoteTargetPhrase,
			Args: map[string]any{
				"phrase":  m.Phrase,
				"percent": p.Percent,
			},
		})
	}
	return bonus
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
