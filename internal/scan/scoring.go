package scan

import (
	"regexp"
	"strings"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/ocr"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/products"
)

// Weights are the document-mode scoring heuristics. They were tuned
// empirically on real receipts; treat them as a starting point, not an
// invariant, and adjust via configuration.
type Weights struct {
	// Per plausible product line; the sparse weight applies up to
	// DenseLineCount lines, the dense weight beyond that, plus a one-time
	// bonus for long receipts.
	ProductLineSparse int
	ProductLineDense  int
	DenseLineCount    int
	DenseBonus        int

	// Text volume: one point per TextLengthDivisor runes, capped.
	TextLengthCap     int
	TextLengthDivisor int

	KeywordHit int // per known food/brand term in the text
	PriceToken int // per price-shaped token with a currency marker
	VendorHit  int // per recognized store-name token

	// Bonus when price tokens are present and the price-token/product-line
	// ratio stays at or below DensityHigh. Only an upper bound is checked
	// so that adding a product line can never cost the bonus.
	DensityBonus int
	DensityHigh  float64
}

// DefaultWeights returns the scoring defaults.
func DefaultWeights() Weights {
	return Weights{
		ProductLineSparse: 12,
		ProductLineDense:  8,
		DenseLineCount:    20,
		DenseBonus:        10,
		TextLengthCap:     80,
		TextLengthDivisor: 12,
		KeywordHit:        6,
		PriceToken:        4,
		VendorHit:         15,
		DensityBonus:      20,
		DensityHigh:       1.5,
	}
}

// brandTerms are retail food brands that signal a genuine receipt even when
// the product nouns themselves came out garbled.
var brandTerms = []string{
	"arla", "scan", "felix", "findus", "zeta", "garant", "eldorado",
	"änglamark", "anglamark", "lantmännen", "lantmannen", "skånemejerier",
	"skanemejerier", "valio", "oatly", "alpro", "santa maria", "abba",
	"kronfågel", "kronfagel", "pågen", "pagen", "polarbröd", "polarbrod",
}

var scorePriceToken = regexp.MustCompile(`(?i)\d+[.,]\d{2}\s*(?:kr|:-|sek)`)

// scorer ranks OCR results from competing enhancement variants.
type scorer struct {
	w     Weights
	vocab *products.Vocabulary
}

func newScorer(w Weights, vocab *products.Vocabulary) *scorer {
	return &scorer{w: w, vocab: vocab}
}

// score judges one OCR result: how much of it looks like a real receipt.
// Higher is better; the orchestrator keeps the highest-scoring variant.
func (s *scorer) score(res ocr.Result) int {
	text := res.Text
	if strings.TrimSpace(text) == "" {
		return 0
	}

	lines := res.Lines()
	productLines := s.countProductLines(lines)
	priceTokens := len(scorePriceToken.FindAllString(text, -1))

	total := 0

	// Product lines, with a lower per-line weight once the count is
	// large so long receipts do not drown out every other signal.
	if productLines <= s.w.DenseLineCount {
		total += productLines * s.w.ProductLineSparse
	} else {
		total += s.w.DenseLineCount * s.w.ProductLineSparse
		total += (productLines - s.w.DenseLineCount) * s.w.ProductLineDense
		total += s.w.DenseBonus
	}

	// Recognized text volume.
	lengthScore := len([]rune(text)) / s.w.TextLengthDivisor
	if lengthScore > s.w.TextLengthCap {
		lengthScore = s.w.TextLengthCap
	}
	total += lengthScore

	total += s.countKeywords(text) * s.w.KeywordHit
	total += priceTokens * s.w.PriceToken
	total += s.countVendors(text) * s.w.VendorHit

	if productLines > 0 && priceTokens > 0 {
		ratio := float64(priceTokens) / float64(productLines)
		if ratio <= s.w.DensityHigh {
			total += s.w.DensityBonus
		}
	}

	return total
}

// countProductLines counts lines that survive noise rejection and match
// some grammar with a usable name. Full vocabulary validation is not run
// here; scoring only needs plausibility.
func (s *scorer) countProductLines(lines []string) int {
	n := 0
	for _, line := range lines {
		if products.IsNoise(line) {
			continue
		}
		for _, g := range products.GenericGrammars() {
			cands, ok := g.TryMatch(line)
			if !ok {
				continue
			}
			for _, c := range cands {
				if len([]rune(products.CleanName(c.Name))) >= 2 {
					n++
					break
				}
			}
			break
		}
	}
	return n
}

func (s *scorer) countKeywords(text string) int {
	n := 0
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = products.NormalizeName(tok)
		if tok == "" {
			continue
		}
		if s.vocab.Contains(tok) {
			n++
			continue
		}
		for _, b := range brandTerms {
			if tok == b {
				n++
				break
			}
		}
	}
	return n
}

func (s *scorer) countVendors(text string) int {
	n := 0
	for _, name := range products.VendorNames() {
		if strings.Contains(strings.ToLower(text), strings.ToLower(name)) {
			n++
		}
	}
	return n
}
