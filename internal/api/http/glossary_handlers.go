package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openedu/essaygrade/internal/glossary"
)

// PUT /glossaries/{glossaryID}
func PutGlossaryHandler(store glossary.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "glossaryID"))
		if id == "" {
			http.Error(w, "glossaryID required", http.StatusBadRequest)
			return
		}
		var g glossary.Glossary
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		g.ID = id
		if g.Name == "" {
			g.Name = id
		}
		if err := store.PutGlossary(r.Context(), g); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(g)
	}
}

// GET /glossaries/{glossaryID}
func GetGlossaryHandler(store glossary.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "glossaryID")
		g, err := store.GetGlossary(r.Context(), id)
		if err != nil {
			if errors.Is(err, glossary.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(g)
	}
}

// GET /glossaries
func ListGlossariesHandler(store glossary.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, err := store.ListGlossaries(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if gs == nil {
			gs = []glossary.Glossary{}
		}
		_ = json.NewEncoder(w).Encode(gs)
	}
}
