package products

import "regexp"

// noisePatterns is the denylist pruning non-product lines before any
// parsing: receipt headers/footers, payment tokens, loyalty programs,
// organization/phone/address lines, timestamps, separators, and known
// non-food retail merchandise.
var noisePatterns = []*regexp.Regexp{
	// Headers, footers, totals
	regexp.MustCompile(`(?i)\b(kvitto|kassakvitto|tack|välkommen|valkommen|åter|ater\s*välkommen|öppettider|oppettider|receipt|welcome)\b`),
	regexp.MustCompile(`(?i)\b(summa|totalt?|total|subtotal|att\s*betala|betala|erhållet|erhallet|växel|vaxel|moms|vat|netto|brutto|rounding|öresavrundning|oresavrundning)\b`),
	// Payment methods
	regexp.MustCompile(`(?i)\b(kontokort|bankkort|kort|kontant|cash|swish|mobilepay|klarna|visa|mastercard|maestro|debit|credit|chip|kortköp|kortkop|ref\s*nr|term(?:inal)?)\b`),
	// Loyalty and bonus programs
	regexp.MustCompile(`(?i)\b(bonus|medlem(?:skap)?|poäng|poang|stammis|kundkort|club|coop\s*medlem|förmån|forman)\b`),
	// Organization, phone, address
	regexp.MustCompile(`(?i)\b(org\.?\s*nr|orgnr|tel(?:efon)?|www\.|\.se|\.com|gata[n]?|vägen|vagen|torget|box)\b`),
	regexp.MustCompile(`^\+?\d[\d\s-]{7,}$`),
	// Date/time stamps
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\b`),
	// Pure separators and decorations
	regexp.MustCompile(`^[\s\-=_*.·:#]+$`),
	// Receipt bureaucracy
	regexp.MustCompile(`(?i)\b(kassör|kassor|kassa|butik(?:snr)?|kvittonr|löpnr|lopnr|artiklar|antal\s*varor)\b`),
	// Known non-food retail merchandise
	regexp.MustCompile(`(?i)\b(påse|pase|kasse|bärkasse|barkasse|plastpåse|plastpase|papperskasse)\b`),
	regexp.MustCompile(`(?i)\b(diskmedel|tvättmedel|tvattmedel|rengöring|rengoring|sköljmedel|skoljmedel|städ|stad(?:ning)?)\b`),
	regexp.MustCompile(`(?i)\b(schampo|balsam|tandkräm|tandkram|tandborste|deo(?:dorant)?|tvål|tval|hudkräm|hudkram|smink)\b`),
	regexp.MustCompile(`(?i)\b(batteri(?:er)?|glödlampa|glodlampa|ljus(?:stake)?|tidning(?:ar)?|magasin|blommor|krukväxt|krukvaxt)\b`),
	regexp.MustCompile(`(?i)\b(blöjor|blojor|servetter|hushållspapper|hushallspapper|toalettpapper|folie|plastfolie|bakplåtspapper|bakplatspapper)\b`),
	regexp.MustCompile(`(?i)\b(pant\s*retur|returpant|självscanning|sjalvscanning|rabatt|kampanj|extrapris|prisnedsatt)\b`),
}

// IsNoise reports whether a recognized line matches the denylist and should
// be discarded before parsing. Runs first so most non-product lines are
// pruned cheaply.
func IsNoise(line string) bool {
	if line == "" {
		return true
	}
	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
