package glossary

import (
	"context"
	"sort"
	"sync"

	"github.com/openedu/essaygrade/internal/autograde"
)

// MemoryStore keeps glossaries in process memory. Handy for tests and
// single-shot CLI runs; the gateway uses the SQL store.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Glossary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]Glossary{}}
}

func (s *MemoryStore) PutGlossary(_ context.Context, g Glossary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[g.ID] = g
	return nil
}

func (s *MemoryStore) GetGlossary(_ context.Context, id string) (Glossary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.m[id]
	if !ok {
		return Glossary{}, ErrNotFound
	}
	return g, nil
}

func (s *MemoryStore) ListGlossaries(_ context.Context) ([]Glossary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Glossary, 0, len(s.m))
	for _, g := range s.m {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Terms(ctx context.Context, id string) ([]autograde.ErrorTerm, error) {
	g, err := s.GetGlossary(ctx, id)
	if err != nil {
		return nil, nil // fail soft: unknown glossary means zero terms
	}
	return g.Terms(), nil
}
