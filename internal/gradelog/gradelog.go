package gradelog

import (
	"context"
	"database/sql"
	"time"
)

// Record is one audited grading outcome. The full result is kept as
// JSON so the breakdown can be replayed later without regrading.
type Record struct {
	Seq         int64
	QuestionRef string
	UserID      string
	AutoPercent int
	ResultJSON  string
	CreatedAt   int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grade_log (question_ref, user_id, auto_percent, result_json, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		rec.QuestionRef, rec.UserID, rec.AutoPercent, rec.ResultJSON, time.Now().Unix())
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, question_ref, user_id, auto_percent, result_json, created_at
		 FROM grade_log ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Seq, &rec.QuestionRef, &rec.UserID, &rec.AutoPercent, &rec.ResultJSON, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
