package dates

import "strings"

// glyphRepairs maps glyphs Tesseract commonly confuses with digits back to
// their digit equivalents. Applied before structural parsing.
var glyphRepairs = map[rune]rune{
	'O': '0', 'Q': '0', 'o': '0', 'Ø': '0', 'ø': '0', 'D': '0',
	'I': '1', 'l': '1', '|': '1', '!': '1', 'i': '1',
	'Z': '2', 'z': '2',
	'A': '4',
	'S': '5', '$': '5', 's': '5',
	'G': '6', 'b': '6',
	'T': '7',
	'B': '8', 'β': '8',
	'g': '9', 'q': '9',
}

// digitGlyphs lists, per digit, the confusable glyphs an engine may emit in
// its place. Kept in sync with glyphRepairs; used by tests to verify the
// repair round-trip.
var digitGlyphs = map[rune][]rune{
	'0': {'O', 'Q', 'o', 'Ø'},
	'1': {'I', 'l', '|', '!'},
	'2': {'Z', 'z'},
	'5': {'S', '$'},
	'6': {'G', 'b'},
	'8': {'B', 'β'},
}

// RepairGlyphs replaces commonly confused OCR glyphs with their digit
// equivalents. Letters that never stand in for digits pass through
// unchanged.
func RepairGlyphs(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := glyphRepairs[r]; ok {
			return d
		}
		return r
	}, s)
}

// ConfusableForms renders a digit string through every glyph substitution
// of one digit at a time, producing the misreads an engine could plausibly
// emit for it.
func ConfusableForms(digits string) []string {
	var forms []string
	for i, r := range digits {
		glyphs, ok := digitGlyphs[r]
		if !ok {
			continue
		}
		for _, g := range glyphs {
			forms = append(forms, digits[:i]+string(g)+digits[i+1:])
		}
	}
	return forms
}

// stripNoise removes whitespace and punctuation noise from a candidate,
// leaving digits and recognized separators.
func stripNoise(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '-' || r == '/' || r == '.' || r == ':' || r == '_' || r == '|' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitsOnly strips everything but digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
