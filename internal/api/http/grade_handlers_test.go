package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/openedu/essaygrade/internal/autograde"
	"github.com/openedu/essaygrade/internal/glossary"
)

func TestGradeHandler(t *testing.T) {
	store := glossary.NewMemoryStore()
	_ = store.PutGlossary(context.Background(), glossary.Glossary{
		ID:      "spelling",
		Entries: []glossary.Entry{{Concept: "alot"}},
	})
	h := GradeHandler(autograde.NewEngine(), store, nil)

	body, _ := json.Marshal(gradeReq{
		QuestionRef: "q1",
		Response:    autograde.Response{RawText: "I liked this alot, in conclusion it was great stuff."},
		Config: autograde.QuestionConfig{
			ItemType:     autograde.ItemWords,
			ItemCount:    10,
			ErrorPercent: 5,
			Phrases:      []autograde.TargetPhrase{{Pattern: "in conclusion", Percent: 20}},
		},
		GlossaryID: "spelling",
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("POST", "/grade", bytes.NewReader(body)))

	if rr.Code != 200 {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var res autograde.GradingResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.MatchedPhrases) != 1 {
		t.Fatalf("matched phrases: %+v", res.MatchedPhrases)
	}
	if len(res.MatchedErrors) != 1 || res.MatchedErrors[0].Concept != "alot" {
		t.Fatalf("matched errors: %+v", res.MatchedErrors)
	}
	if res.AutoFraction < 0 || res.AutoFraction > 1 {
		t.Fatalf("auto fraction out of range: %v", res.AutoFraction)
	}
}

func TestGradeHandlerUnknownGlossary(t *testing.T) {
	h := GradeHandler(autograde.NewEngine(), glossary.NewMemoryStore(), nil)
	body, _ := json.Marshal(gradeReq{
		Response:   autograde.Response{RawText: "ten words would be needed for the full grade here"},
		Config:     autograde.QuestionConfig{ItemType: autograde.ItemWords, ItemCount: 10},
		GlossaryID: "missing",
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("POST", "/grade", bytes.NewReader(body)))
	if rr.Code != 200 {
		t.Fatalf("unknown glossary must not fail the call: %d %s", rr.Code, rr.Body.String())
	}
	var res autograde.GradingResult
	_ = json.Unmarshal(rr.Body.Bytes(), &res)
	if res.AutoPercent != 100 {
		t.Fatalf("auto percent = %d, want 100", res.AutoPercent)
	}
}

func TestGradeHandlerBadJSON(t *testing.T) {
	h := GradeHandler(autograde.NewEngine(), glossary.NewMemoryStore(), nil)
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("POST", "/grade", bytes.NewReader([]byte("{not json"))))
	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCountHandler(t *testing.T) {
	h := CountHandler()
	body, _ := json.Marshal(countReq{Text: "one two three. four five.", ItemType: "words"})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("POST", "/count", bytes.NewReader(body)))
	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	var res struct {
		Count    int    `json:"count"`
		ItemType string `json:"item_type"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 5 || res.ItemType != "words" {
		t.Fatalf("got %+v, want 5 words", res)
	}
}

func TestCountMatchesGradedCount(t *testing.T) {
	// The live counter and the grader must agree on tokenization.
	text := "Don't miss edge-cases: 3.14 isn't two words.\nNew paragraph!"
	for _, it := range []autograde.ItemType{autograde.ItemWords, autograde.ItemSentences, autograde.ItemParagraphs} {
		norm := autograde.Normalize(text, autograde.FormatPlain)
		fromCounter := autograde.CountItems(norm, it, 0)
		stats := autograde.ComputeStats(norm, 0, 0)
		if fromCounter != stats.Count(it) {
			t.Fatalf("%s: counter %d != stats %d", it, fromCounter, stats.Count(it))
		}
	}
}
