package resolve

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

//go:embed synonyms.yaml
var synonymsYAML []byte

// SynonymTable maps a normalized canonical category key to its alternate
// normalized keys. Immutable once loaded.
type SynonymTable struct {
	canonical map[string][]string
	// reverse maps every alternate back to its canonical key for O(1)
	// lookups from either direction.
	reverse map[string]string
}

// LoadSynonyms parses a YAML synonym mapping and normalizes every key.
func LoadSynonyms(raw []byte) (SynonymTable, error) {
	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return SynonymTable{}, fmt.Errorf("parse synonym table: %w", err)
	}

	table := SynonymTable{
		canonical: make(map[string][]string, len(parsed)),
		reverse:   make(map[string]string),
	}
	for key, alts := range parsed {
		canon := awards.NormalizeName(key)
		if canon == "" {
			continue
		}
		normAlts := make([]string, 0, len(alts))
		for _, alt := range alts {
			norm := awards.NormalizeName(alt)
			if norm == "" || norm == canon {
				continue
			}
			normAlts = append(normAlts, norm)
			table.reverse[norm] = canon
		}
		table.canonical[canon] = normAlts
	}
	return table, nil
}

// DefaultSynonyms loads the table shipped with the binary.
func DefaultSynonyms() (SynonymTable, error) {
	return LoadSynonyms(synonymsYAML)
}

// Canonical resolves a normalized label to its canonical key. A label that
// is itself canonical resolves to itself.
func (t SynonymTable) Canonical(normLabel string) (string, bool) {
	if _, ok := t.canonical[normLabel]; ok {
		return normLabel, true
	}
	canon, ok := t.reverse[normLabel]
	return canon, ok
}

// Matches reports whether two normalized labels name the same category
// through the table.
func (t SynonymTable) Matches(a, b string) bool {
	if a == b {
		return true
	}
	ca, okA := t.Canonical(a)
	cb, okB := t.Canonical(b)
	return okA && okB && ca == cb
}
