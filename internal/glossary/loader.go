package glossary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile parses one YAML glossary file. A file without an explicit
// id gets the file name (sans extension) as its id.
func LoadFile(path string) (Glossary, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Glossary{}, err
	}
	var g Glossary
	if err := yaml.Unmarshal(buf, &g); err != nil {
		return Glossary{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if g.ID == "" {
		base := filepath.Base(path)
		g.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if g.Name == "" {
		g.Name = g.ID
	}
	return g, nil
}

// LoadDir parses every .yaml/.yml file in a directory.
func LoadDir(dir string) ([]Glossary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Glossary
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		g, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Seed imports a directory of glossary files into the store.
func Seed(ctx context.Context, store Store, dir string) (int, error) {
	gs, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, g := range gs {
		if err := store.PutGlossary(ctx, g); err != nil {
			return 0, fmt.Errorf("seed glossary %s: %w", g.ID, err)
		}
	}
	return len(gs), nil
}
