package products

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	leadingSymbols = regexp.MustCompile(`^[\s*#>+·•]+`)
	priceToken     = regexp.MustCompile(`(?i)\d+[.,]\d{2}\s*(?:kr|:-|sek)?`)
	quantityToken  = regexp.MustCompile(`(?i)\b\d+\s*(?:st|stk|pack|frp|kg|hg|g|l|cl|ml|p)\b`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// fillerWords are tokens that appear inside product names on receipts but
// carry no product identity (grade markers, price words).
var fillerWords = map[string]struct{}{
	"klass": {}, "kl": {}, "ca": {}, "cirka": {}, "pris": {}, "ord": {}, "jfr": {},
}

// CleanName strips price/quantity/unit tokens and leading symbols from a
// captured name, keeps letters and internal hyphens only, collapses
// whitespace and lowercases. Idempotent: cleaning a cleaned name is a
// no-op.
func CleanName(s string) string {
	s = norm.NFC.String(s)
	s = leadingSymbols.ReplaceAllString(s, "")
	s = priceToken.ReplaceAllString(s, " ")
	s = quantityToken.ReplaceAllString(s, " ")

	var b strings.Builder
	for _, r := range s {
		switch {
		case isLetter(r):
			b.WriteRune(r)
		case r == '-' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	cleaned := spaceRun.ReplaceAllString(b.String(), " ")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, t := range tokens {
		t = strings.Trim(t, "-")
		if len([]rune(t)) < 2 {
			continue
		}
		if _, filler := fillerWords[t]; filler {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

// NormalizeName prepares a name for vocabulary matching: NFC-normalized,
// lowercase, whitespace collapsed. Diacritics are preserved since the
// vocabulary carries them.
func NormalizeName(s string) string {
	s = norm.NFC.String(strings.ToLower(s))
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
		r == 'å' || r == 'ä' || r == 'ö' || r == 'Å' || r == 'Ä' || r == 'Ö' ||
		r == 'é' || r == 'É' || r == 'ü' || r == 'Ü' || r == 'è' || r == 'ê'
}
