package exercise

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pack is a loaded content pack.
type Pack struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// LoadFile loads and validates a single content-pack file. A malformed
// file is reported as an error, never a panic; individual question shape
// problems name the offending question.
func LoadFile(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}

	if err := validatePackJSON(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var pack Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", filepath.Base(path), err)
	}

	seen := make(map[string]bool, len(pack.Questions))
	for i := range pack.Questions {
		q := &pack.Questions[i]
		if err := q.CheckShape(); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%s: duplicate question id %q", filepath.Base(path), q.ID)
		}
		seen[q.ID] = true
	}

	if pack.Name == "" {
		pack.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &pack, nil
}

// LoadDir loads every .json content pack under dir, sorted by filename.
func LoadDir(dir string) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	packs := make([]*Pack, 0, len(names))
	for _, name := range names {
		pack, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}
