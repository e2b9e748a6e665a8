// Package products converts raw recognized receipt lines into structured,
// vocabulary-validated product records. The validator is closed-world:
// anything not recognizable as plausible food vocabulary is rejected.
package products

import "fmt"

// Unit labels for product quantities.
const (
	UnitPiece    = "piece"
	UnitKilogram = "kg"
	UnitLiter    = "l"
)

// MatchTier records which vocabulary tier accepted a product name.
type MatchTier string

const (
	TierExact     MatchTier = "exact"
	TierWord      MatchTier = "word"
	TierSubstring MatchTier = "substring"
	TierFuzzy     MatchTier = "fuzzy"
)

// Candidate is a parsed receipt line before validation. Created by a
// grammar match, mutated only by the cleaning step, then either validated
// or discarded.
type Candidate struct {
	RawLine  string
	Name     string
	Quantity float64
	Unit     string
	Price    float64
	HasPrice bool
	// UnitExplicit marks units captured syntactically by a grammar, which
	// suppresses category-based unit inference.
	UnitExplicit bool
}

// Validated is a candidate that passed food-vocabulary validation.
// Immutable once created.
type Validated struct {
	Name     string
	Quantity float64
	Unit     string
	Price    float64
	HasPrice bool
	Tier     MatchTier
	RawLine  string
}

// Key returns the composite deduplication key (normalized name, price,
// unit).
func (v Validated) Key() string {
	return fmt.Sprintf("%s|%.2f|%s", v.Name, v.Price, v.Unit)
}
