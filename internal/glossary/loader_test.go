package glossary

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `name: Common spelling errors
entries:
  - concept: a lot
    aliases: [alot]
  - concept: definitely
    aliases: [definately, definatly]
    full_word: true
  - concept: LaTeX
    case_sensitive: true
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spelling.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if g.ID != "spelling" {
		t.Fatalf("id = %q, want file-derived id", g.ID)
	}
	if g.Name != "Common spelling errors" {
		t.Fatalf("name = %q", g.Name)
	}
	if len(g.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(g.Entries))
	}
	if g.Entries[1].FullWord == nil || !*g.Entries[1].FullWord {
		t.Fatalf("full_word override not parsed: %+v", g.Entries[1])
	}
	if g.Entries[0].FullWord != nil {
		t.Fatalf("absent override must stay nil: %+v", g.Entries[0])
	}
}

func TestSeedAndTerms(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "spelling.yml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewMemoryStore()
	n, err := Seed(context.Background(), store, dir)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 1 {
		t.Fatalf("seeded = %d, want 1 (non-yaml files skipped)", n)
	}

	terms, err := store.Terms(context.Background(), "spelling")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("terms = %d, want 3", len(terms))
	}
	if terms[0].Concept != "a lot" || len(terms[0].Aliases) != 1 {
		t.Fatalf("term mapping wrong: %+v", terms[0])
	}
}

func TestTermsFailSoft(t *testing.T) {
	store := NewMemoryStore()
	terms, err := store.Terms(context.Background(), "no-such-glossary")
	if err != nil {
		t.Fatalf("unknown glossary must not error, got %v", err)
	}
	if terms != nil {
		t.Fatalf("unknown glossary must yield zero terms, got %+v", terms)
	}
}
