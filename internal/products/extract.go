package products

import "strings"

// Extractor runs the per-line pipeline: noise rejection, grammar matching
// (vendor chain first when a store signature is present), name cleaning,
// vocabulary validation, unit inference, and deduplication.
type Extractor struct {
	validator *Validator
}

// NewExtractor creates an extractor over the given validator.
func NewExtractor(v *Validator) *Extractor {
	return &Extractor{validator: v}
}

// ExtractProducts converts recognized text lines into validated products.
// Lines that fail any step are dropped silently; the output is simply
// smaller than the input. Records sharing (normalized name, price, unit)
// collapse into one, which also merges duplicates from overlapping document
// segments.
func (e *Extractor) ExtractProducts(lines []string) []Validated {
	vendor, _ := DetectVendor(strings.Join(lines, "\n"))

	seen := make(map[string]struct{})
	var out []Validated
	for _, line := range lines {
		for _, cand := range e.parseLine(line, vendor) {
			v, ok := e.finish(cand)
			if !ok {
				continue
			}
			if _, dup := seen[v.Key()]; dup {
				continue
			}
			seen[v.Key()] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// parseLine prunes noise and walks the grammar chains until one matches.
func (e *Extractor) parseLine(line string, vendor *Vendor) []Candidate {
	line = strings.TrimSpace(line)
	if IsNoise(line) {
		return nil
	}
	if vendor != nil {
		for _, g := range vendor.Grammars() {
			if cands, ok := g.TryMatch(line); ok {
				return cands
			}
		}
	}
	for _, g := range genericGrammars {
		if cands, ok := g.TryMatch(line); ok {
			return cands
		}
	}
	return nil
}

// finish cleans and validates one candidate.
func (e *Extractor) finish(c Candidate) (Validated, bool) {
	name := CleanName(c.Name)
	if len([]rune(name)) < 2 {
		return Validated{}, false
	}

	tier, ok := e.validator.Match(NormalizeName(name))
	if !ok {
		return Validated{}, false
	}

	unit := c.Unit
	if !c.UnitExplicit {
		unit = InferUnit(name)
	}
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}

	return Validated{
		Name:     name,
		Quantity: qty,
		Unit:     unit,
		Price:    c.Price,
		HasPrice: c.HasPrice,
		Tier:     tier,
		RawLine:  c.RawLine,
	}, true
}
