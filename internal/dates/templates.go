package dates

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// templateKind tells the resolver which structural parser a matched
// candidate should be dispatched to.
type templateKind int

const (
	kindDelimited3 templateKind = iota // three separator-delimited parts
	kindDelimited2                     // two separator-delimited parts
	kindMonthName                      // optional day, month name, year
	kindLabeled                        // explicit label followed by a date token
	kindCompact                        // bare digit run, length 4..8
	kindGlyphRun                       // digit-lookalike run needing repair
	kindJulianLot                      // L-prefixed batch/lot Julian code
)

// template pairs a pattern with the role of its captures.
type template struct {
	name string
	kind templateKind
	re   *regexp.Regexp
}

const sep = `[-/._:|]`

// tokenTemplates are matched against whole space-delimited tokens, in
// order; the first template that consumes a token wins. Anchoring to whole
// tokens keeps the battery from harvesting fragments of one date shape as
// another ("2025-10-31" must not also yield a bare "2025").
var tokenTemplates = []template{
	{"iso_full", kindDelimited3, regexp.MustCompile(`^(\d{4})` + sep + `(\d{1,2})` + sep + `(\d{1,2})$`)},
	{"dmy_full", kindDelimited3, regexp.MustCompile(`^(\d{1,2})` + sep + `(\d{1,2})` + sep + `(\d{2,4})$`)},
	{"two_part", kindDelimited2, regexp.MustCompile(`^(\d{1,2})` + sep + `(\d{2,4})$`)},
	{"julian_lot", kindJulianLot, regexp.MustCompile(`^[Ll](\d{5})$`)},
	{"compact", kindCompact, regexp.MustCompile(`^(\d{4,8})$`)},
	{"glyph_run", kindGlyphRun, regexp.MustCompile(`^([0-9OQoØIl|!SsZzGbBβ$]{4,8})$`)},
}

// textTemplates span multiple tokens and are matched over the whole
// normalized text. Every match contributes a candidate.
var textTemplates = []template{
	{"month_name", kindMonthName, monthNameRe()},
	{"labeled", kindLabeled, labeledRe()},
}

// dateLabels are the explicit markers that precede a printed date. The list
// spans Swedish, English, German, French and Spanish usage plus the
// abbreviations common on Nordic packaging.
var dateLabels = []string{
	`b[äa]st\s*f[öo]re`,
	`best\s*before`,
	`use\s*by`,
	`sista\s*f[öo]rbr\w*`,
	`utg[åa]ng\w*`,
	`exp(?:iry|ires)?`,
	`mhd`,
	`bbd`,
	`tillverkad`,
	`mindestens\s+haltbar(?:\s+bis)?`,
	`[åa]\s*consommer\s*avant`,
	`consumir\s*antes`,
}

func labeledRe() *regexp.Regexp {
	pattern := `(?i)(?:` + strings.Join(dateLabels, `|`) +
		`)\s*:?\s*([0-9OQoØIl|!SsZzGbBβ$][0-9OQoØIl|!SsZzGbBβ$\-/._:|]{2,11})`
	return regexp.MustCompile(pattern)
}

// monthNames maps localized month spellings (Swedish, English, German,
// French, Spanish) to month numbers. Lookup is by prefix after letter-glyph
// normalization, so the OCR-damaged "0kt0ber" and the abbreviated "okt."
// both resolve to October.
var monthNames = map[string]time.Month{
	"jan": time.January, "januari": time.January, "january": time.January,
	"januar": time.January, "janvier": time.January, "enero": time.January,
	"ene": time.January,
	"feb": time.February, "februari": time.February, "february": time.February,
	"februar": time.February, "fevrier": time.February, "febrero": time.February,
	"fev": time.February,
	"mar": time.March, "mars": time.March, "march": time.March,
	"marz": time.March, "maerz": time.March, "marzo": time.March,
	"apr": time.April, "april": time.April, "avril": time.April,
	"abril": time.April, "abr": time.April, "avr": time.April,
	"maj": time.May, "may": time.May, "mai": time.May, "mayo": time.May,
	"jun": time.June, "juni": time.June, "june": time.June,
	"juin": time.June, "junio": time.June,
	"jul": time.July, "juli": time.July, "july": time.July,
	"juillet": time.July, "julio": time.July,
	"aug": time.August, "augusti": time.August, "august": time.August,
	"aout": time.August, "agosto": time.August, "ago": time.August,
	"sep": time.September, "september": time.September, "septembre": time.September,
	"septiembre": time.September, "sept": time.September,
	"okt": time.October, "oktober": time.October, "oct": time.October,
	"october": time.October, "octobre": time.October, "octubre": time.October,
	"nov": time.November, "november": time.November, "novembre": time.November,
	"noviembre": time.November,
	"dec":       time.December, "december": time.December, "dez": time.December,
	"dezember": time.December, "decembre": time.December, "diciembre": time.December,
	"dic": time.December,
}

func monthNameRe() *regexp.Regexp {
	// Build the alternation from the table keys, longest first so the
	// regex engine prefers full spellings over abbreviations.
	keys := make([]string, 0, len(monthNames))
	for k := range monthNames {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile(`(?i)\b(?:(\d{1,2})\s+)?(` + strings.Join(keys, `|`) + `)[a-zåäöéû]*\.?\s+(\d{2,4})\b`)
}

// lookupMonth resolves a possibly OCR-damaged month token. Digit glyphs are
// mapped back to the letters they were misread from before the prefix
// lookup.
func lookupMonth(token string) (time.Month, bool) {
	t := strings.ToLower(token)
	t = strings.NewReplacer("0", "o", "1", "i", "5", "s", "é", "e", "û", "u", "ä", "a", "å", "a", "ö", "o").Replace(t)
	for l := len(t); l >= 3; l-- {
		if m, ok := monthNames[t[:l]]; ok {
			return m, true
		}
	}
	return 0, false
}

// harvest applies the template battery over normalized text: whole-text
// templates first, then the token battery over each space-delimited token.
func harvest(norm string) []candidate {
	var out []candidate
	for _, t := range textTemplates {
		for _, loc := range t.re.FindAllStringSubmatchIndex(norm, -1) {
			out = append(out, candidateAt(norm, t, loc))
		}
	}

	offset := 0
	for _, tok := range strings.Fields(norm) {
		pos := strings.Index(norm[offset:], tok) + offset
		offset = pos + len(tok)
		for _, t := range tokenTemplates {
			m := t.re.FindStringSubmatch(tok)
			if m == nil {
				continue
			}
			out = append(out, candidate{
				raw:      tok,
				template: t.name,
				pos:      pos,
				groups:   m[1:],
			})
			break
		}
	}
	return out
}

func candidateAt(norm string, t template, loc []int) candidate {
	groups := make([]string, 0, len(loc)/2-1)
	for g := 1; g < len(loc)/2; g++ {
		if loc[2*g] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, norm[loc[2*g]:loc[2*g+1]])
	}
	return candidate{
		raw:      norm[loc[0]:loc[1]],
		template: t.name,
		pos:      loc[0],
		groups:   groups,
	}
}

// kindOf returns the template kind for a harvested candidate.
func kindOf(name string) templateKind {
	for _, t := range tokenTemplates {
		if t.name == name {
			return t.kind
		}
	}
	for _, t := range textTemplates {
		if t.name == name {
			return t.kind
		}
	}
	return kindCompact
}
