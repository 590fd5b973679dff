package glossary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openedu/essaygrade/internal/autograde"
)

var ErrNotFound = errors.New("glossary not found")

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutGlossary(ctx context.Context, g Glossary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO glossaries (id,name,created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name`,
		g.ID, g.Name, time.Now().Unix())
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM glossary_entries WHERE glossary_id=$1`, g.ID); err != nil {
		return err
	}
	for i, e := range g.Entries {
		aliases, err := json.Marshal(e.Aliases)
		if err != nil {
			return err
		}
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("%s/%d", g.ID, i)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO glossary_entries
			(id,glossary_id,concept,aliases_json,full_word,case_sensitive,position)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			id, g.ID, e.Concept, string(aliases), e.FullWord, e.CaseSensitive, i)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) GetGlossary(ctx context.Context, id string) (Glossary, error) {
	var g Glossary
	err := s.db.QueryRowContext(ctx, `SELECT id,name FROM glossaries WHERE id=$1`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Glossary{}, ErrNotFound
		}
		return Glossary{}, err
	}
	g.Entries, err = s.entries(ctx, id)
	return g, err
}

func (s *SQLStore) ListGlossaries(ctx context.Context) ([]Glossary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name FROM glossaries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Glossary
	for rows.Next() {
		var g Glossary
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Terms fails soft on an unknown glossary id: zero terms, no error.
func (s *SQLStore) Terms(ctx context.Context, id string) ([]autograde.ErrorTerm, error) {
	g, err := s.GetGlossary(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g.Terms(), nil
}

func (s *SQLStore) entries(ctx context.Context, glossaryID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,concept,aliases_json,full_word,case_sensitive
		FROM glossary_entries WHERE glossary_id=$1 ORDER BY position`, glossaryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var aliases string
		var fullWord, caseSensitive sql.NullBool
		if err := rows.Scan(&e.ID, &e.Concept, &aliases, &fullWord, &caseSensitive); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aliases), &e.Aliases); err != nil {
			return nil, err
		}
		if fullWord.Valid {
			e.FullWord = &fullWord.Bool
		}
		if caseSensitive.Valid {
			e.CaseSensitive = &caseSensitive.Bool
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
