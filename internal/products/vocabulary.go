package products

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/foods.yaml
var foodsYAML []byte

type vocabularyFile struct {
	Locales map[string][]string `yaml:"locales"`
}

// Vocabulary is the curated multi-locale food term set, consumed read-only
// by the validator.
type Vocabulary struct {
	terms   map[string]struct{}
	ordered []string
}

// LoadVocabulary parses the embedded vocabulary data.
func LoadVocabulary() (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(foodsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse food vocabulary: %w", err)
	}

	terms := make(map[string]struct{})
	for _, list := range file.Locales {
		for _, t := range list {
			terms[NormalizeName(t)] = struct{}{}
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("food vocabulary is empty")
	}

	ordered := make([]string, 0, len(terms))
	for t := range terms {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	return &Vocabulary{terms: terms, ordered: ordered}, nil
}

// Contains reports whether the normalized term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.terms[term]
	return ok
}

// Terms returns the vocabulary in sorted order. The fixed order keeps fuzzy
// matching deterministic.
func (v *Vocabulary) Terms() []string { return v.ordered }

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.ordered) }
