package http

import (
	"encoding/json"
	"log"
	"net/http"

	authmw "github.com/openedu/essaygrade/internal/auth/middleware"
	"github.com/openedu/essaygrade/internal/autograde"
	"github.com/openedu/essaygrade/internal/glossary"
	"github.com/openedu/essaygrade/internal/gradelog"
)

type gradeReq struct {
	QuestionRef string                   `json:"question_ref,omitempty"`
	Response    autograde.Response       `json:"response"`
	Config      autograde.QuestionConfig `json:"config"`
	GlossaryID  string                   `json:"glossary_id,omitempty"`
}

// POST /grade — audit is optional; nil disables the grade log.
func GradeHandler(engine *autograde.Engine, store glossary.Store, audit *gradelog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}

		var terms []autograde.ErrorTerm
		if req.GlossaryID != "" {
			var err error
			terms, err = store.Terms(r.Context(), req.GlossaryID)
			if err != nil {
				// fail soft: grade with zero error terms rather than
				// refusing the call
				log.Printf("glossary %s: %v", req.GlossaryID, err)
				terms = nil
			}
		}

		res := engine.Grade(req.Response, req.Config, terms)

		if audit != nil {
			buf, _ := json.Marshal(res)
			rec := gradelog.Record{
				QuestionRef: req.QuestionRef,
				UserID:      authmw.SubjectFromContext(r.Context()),
				AutoPercent: res.AutoPercent,
				ResultJSON:  string(buf),
			}
			if err := audit.Append(r.Context(), rec); err != nil {
				log.Printf("grade_log append: %v", err)
			}
		}

		_ = json.NewEncoder(w).Encode(res)
	}
}

type countReq struct {
	Text     string `json:"text"`
	ItemType string `json:"item_type"`
	Format   int    `json:"format,omitempty"`
	Files    int    `json:"files,omitempty"`
}

// POST /count — the live-counter endpoint. It must use the exact
// tokenization rule the grader uses, or the count a student watches
// while typing drifts from the count they are graded on.
func CountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req countReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		t := autograde.ParseItemType(req.ItemType)
		text := autograde.Normalize(req.Text, autograde.TextFormat(req.Format))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"item_type": t.String(),
			"count":     autograde.CountItems(text, t, req.Files),
		})
	}
}

// GET /grades/recent — recent audited outcomes, teacher view.
func RecentGradesHandler(audit *gradelog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := audit.Recent(r.Context(), 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(recs)
	}
}
