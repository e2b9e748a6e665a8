package products

import "strings"

// MatchConfig consolidates the similarity thresholds used by the validator
// so they are tunable and testable in one place instead of magic numbers
// per call site.
type MatchConfig struct {
	// FuzzySimilarity is the edit-distance-normalized similarity a name
	// must reach against some vocabulary term.
	FuzzySimilarity float64
	// PhoneticSimilarity is the lower bar that applies when the phonetic
	// keys of name and term already agree.
	PhoneticSimilarity float64
	// MinSubstringLen restricts substring matching to terms at least this
	// long, avoiding false positives from short fragments.
	MinSubstringLen int
	// MinNameLen is the minimum cleaned-name length considered at all.
	MinNameLen int
}

// DefaultMatchConfig returns the validation thresholds.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		FuzzySimilarity:    0.7,
		PhoneticSimilarity: 0.55,
		MinSubstringLen:    4,
		MinNameLen:         2,
	}
}

// Validator tests cleaned product names against the food vocabulary using
// ordered tiers: exact, whole-word, substring, fuzzy. The first matching
// tier wins. Names failing every tier are rejected.
type Validator struct {
	vocab *Vocabulary
	cfg   MatchConfig
}

// NewValidator creates a validator over the given vocabulary.
func NewValidator(vocab *Vocabulary, cfg MatchConfig) *Validator {
	if cfg.FuzzySimilarity <= 0 {
		cfg = DefaultMatchConfig()
	}
	return &Validator{vocab: vocab, cfg: cfg}
}

// Match classifies a normalized name. Returns the tier that accepted it, or
// false when no tier did.
func (v *Validator) Match(name string) (MatchTier, bool) {
	if len([]rune(name)) < v.cfg.MinNameLen {
		return "", false
	}

	if v.vocab.Contains(name) {
		return TierExact, true
	}

	tokens := strings.Fields(name)
	for _, t := range tokens {
		if v.vocab.Contains(t) {
			return TierWord, true
		}
	}

	if v.substringMatch(name) {
		return TierSubstring, true
	}

	if v.fuzzyMatch(name, tokens) {
		return TierFuzzy, true
	}

	return "", false
}

func (v *Validator) substringMatch(name string) bool {
	nameLong := len([]rune(name)) >= v.cfg.MinSubstringLen
	for _, term := range v.vocab.Terms() {
		if len([]rune(term)) < v.cfg.MinSubstringLen {
			continue
		}
		if strings.Contains(name, term) {
			return true
		}
		if nameLong && strings.Contains(term, name) {
			return true
		}
	}
	return false
}

// fuzzyMatch tolerates OCR letter substitutions: a name is accepted when it
// is close enough to a vocabulary term by normalized edit distance, with a
// lower bar when the consonant-cluster phonetic keys already agree.
func (v *Validator) fuzzyMatch(name string, tokens []string) bool {
	probes := tokens
	if len(tokens) > 1 {
		probes = append([]string{name}, tokens...)
	}

	for _, term := range v.vocab.Terms() {
		termKey := phoneticKey(term)
		for _, p := range probes {
			if len([]rune(p)) < v.cfg.MinNameLen+1 {
				continue
			}
			sim := similarity(p, term)
			if sim >= v.cfg.FuzzySimilarity {
				return true
			}
			if sim >= v.cfg.PhoneticSimilarity && phoneticKey(p) == termKey {
				return true
			}
		}
	}
	return false
}

// similarity is 1 - lev/maxlen over runes, in [0,1].
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = minInt(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// phoneticKey builds a crude consonant-cluster key: vowels are dropped,
// similar-sounding consonants merged, repeated consonants collapsed. OCR
// substitutions that trade one vowel for another or swap c/k style pairs
// map to the same key.
func phoneticKey(s string) string {
	var b strings.Builder
	var last rune
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'y', 'å', 'ä', 'ö', 'é', 'è', 'ê', 'ü':
			continue
		case 'c', 'q':
			r = 'k'
		case 'z':
			r = 's'
		case 'w':
			r = 'v'
		case ' ', '-':
			continue
		}
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}
