package glossary

import (
	"context"

	"github.com/openedu/essaygrade/internal/autograde"
)

// Entry is one common-error concept in a glossary. FullWord and
// CaseSensitive are overrides; nil inherits the question defaults.
type Entry struct {
	ID            string   `json:"id" yaml:"id"`
	Concept       string   `json:"concept" yaml:"concept"`
	Aliases       []string `json:"aliases,omitempty" yaml:"aliases"`
	FullWord      *bool    `json:"full_word,omitempty" yaml:"full_word"`
	CaseSensitive *bool    `json:"case_sensitive,omitempty" yaml:"case_sensitive"`
}

type Glossary struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Terms materializes the glossary as the read-only error-term snapshot
// a grading call consumes.
func (g Glossary) Terms() []autograde.ErrorTerm {
	terms := make([]autograde.ErrorTerm, 0, len(g.Entries))
	for _, e := range g.Entries {
		terms = append(terms, autograde.ErrorTerm{
			Concept:       e.Concept,
			Aliases:       e.Aliases,
			EntryID:       e.ID,
			FullWordOnly:  e.FullWord,
			CaseSensitive: e.CaseSensitive,
		})
	}
	return terms
}

// Store is the glossary collaborator the grading service reads from.
type Store interface {
	PutGlossary(ctx context.Context, g Glossary) error
	GetGlossary(ctx context.Context, id string) (Glossary, error)
	ListGlossaries(ctx context.Context) ([]Glossary, error)

	// Terms resolves a glossary id to its error terms. An id that does
	// not resolve yields zero terms, not an error: a broken glossary
	// reference must never fail a grading call.
	Terms(ctx context.Context, id string) ([]autograde.ErrorTerm, error)
}
