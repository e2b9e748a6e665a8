package products

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind tags a line grammar variant.
type Kind int

const (
	KindPricedLine Kind = iota
	KindWeightedLine
	KindQuantityLine
	KindSymbolPrefixed
	KindCommaList
	KindBareName
)

// Grammar is one line-parsing pattern. Grammars are tried in order until one
// matches; adding or reordering grammars is a data change, not a code
// change. A comma-list grammar may yield several candidates from one line.
type Grammar struct {
	Name string
	Kind Kind
	re   *regexp.Regexp
}

// TryMatch attempts to parse a line with this grammar.
func (g Grammar) TryMatch(line string) ([]Candidate, bool) {
	switch g.Kind {
	case KindCommaList:
		return matchCommaList(line)
	default:
	}

	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	c := Candidate{RawLine: line, Quantity: 1, Unit: UnitPiece}
	switch g.Kind {
	case KindPricedLine:
		c.Name = m[1]
		c.Price = parsePrice(m[2], m[3])
		c.HasPrice = true
	case KindQuantityLine:
		c.Name = m[1]
		if q, err := strconv.ParseFloat(m[2], 64); err == nil && q > 0 {
			c.Quantity = q
		}
		c.Price = parsePrice(m[3], m[4])
		c.HasPrice = true
		c.UnitExplicit = true
	case KindWeightedLine:
		c.Name = m[1]
		weight := parsePrice(m[2], m[3])
		perKilo := parsePrice(m[4], m[5])
		c.Quantity = weight
		c.Unit = UnitKilogram
		c.Price = weight * perKilo
		c.HasPrice = true
		c.UnitExplicit = true
	case KindSymbolPrefixed, KindBareName:
		c.Name = m[1]
	}

	return []Candidate{c}, true
}

func matchCommaList(line string) ([]Candidate, bool) {
	if !strings.Contains(line, ",") || strings.ContainsAny(line, "0123456789") {
		return nil, false
	}
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return nil, false
	}
	var out []Candidate
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Candidate{RawLine: line, Name: p, Quantity: 1, Unit: UnitPiece})
	}
	return out, len(out) > 0
}

func parsePrice(whole, cents string) float64 {
	w, _ := strconv.Atoi(whole)
	c, _ := strconv.Atoi(cents)
	return float64(w) + float64(c)/100
}

const (
	priceTail = `(\d{1,4})[.,](\d{2})\s*(?:kr|:-|sek)?\s*$`
	namePart  = `^(.+?)`
)

// genericGrammars is the vendor-independent fallback chain, most specific
// first so quantity and weight captures are not swallowed by the plain
// priced-line pattern.
var genericGrammars = []Grammar{
	{Name: "weighted", Kind: KindWeightedLine, re: regexp.MustCompile(
		namePart + `\s+(\d{1,2})[.,](\d{1,3})\s*kg\s*[x*]\s*(\d{1,4})[.,](\d{2})(?:\s*/?\s*kg)?\s*$`)},
	{Name: "quantity_priced", Kind: KindQuantityLine, re: regexp.MustCompile(
		namePart + `\s+(\d{1,3})\s*(?:st|stk|pack|frp|p)\b.*?` + priceTail)},
	{Name: "priced", Kind: KindPricedLine, re: regexp.MustCompile(
		namePart + `\s+` + priceTail)},
	{Name: "symbol_prefixed", Kind: KindSymbolPrefixed, re: regexp.MustCompile(
		`^[*#>+·•]\s*([^\d].*?)\s*$`)},
	{Name: "comma_list", Kind: KindCommaList},
	{Name: "bare_name", Kind: KindBareName, re: regexp.MustCompile(
		`^([A-Za-zÅÄÖåäöÉé][A-Za-zÅÄÖåäöÉé\s-]{1,40})\s*$`)},
}

// Vendor pairs a store-name signature with that retailer's grammar quirks.
// The vendor chain is tried before the generic chain whenever the signature
// is found anywhere in the recognized text.
type Vendor struct {
	Name      string
	signature *regexp.Regexp
	grammars  []Grammar
}

// Grammars returns the vendor's ordered grammar chain.
func (v *Vendor) Grammars() []Grammar { return v.grammars }

var vendors = []*Vendor{
	{
		Name:      "ICA",
		signature: regexp.MustCompile(`(?i)\bICA\b(?:\s+(?:NÄRA|KVANTUM|MAXI|SUPERMARKET))?`),
		grammars: []Grammar{
			// ICA prints dotted leaders between name and price.
			{Name: "ica_dotted", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s*\.{2,}\s*` + priceTail)},
			{Name: "ica_weighted", Kind: KindWeightedLine, re: regexp.MustCompile(
				namePart + `\s+(\d{1,2})[.,](\d{1,3})\s*kg\s*[x*]\s*(\d{1,4})[.,](\d{2})\s*/?\s*kg\s*$`)},
			{Name: "ica_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
			{Name: "ica_symbol", Kind: KindSymbolPrefixed, re: regexp.MustCompile(
				`^[*•]\s*([^\d].*?)\s*$`)},
		},
	},
	{
		Name:      "Coop",
		signature: regexp.MustCompile(`(?i)\b(?:COOP|KONSUM)\b`),
		grammars: []Grammar{
			{Name: "coop_weighted", Kind: KindWeightedLine, re: regexp.MustCompile(
				namePart + `\s+(\d{1,2})[.,](\d{1,3})\s*kg\s*[x*]\s*(\d{1,4})[.,](\d{2})(?:\s*/?\s*kg)?\s*$`)},
			{Name: "coop_quantity", Kind: KindQuantityLine, re: regexp.MustCompile(
				namePart + `\s+(\d{1,3})\s*st\b.*?` + priceTail)},
			{Name: "coop_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
		},
	},
	{
		Name:      "Willys",
		signature: regexp.MustCompile(`(?i)\bWILLYS?\b`),
		grammars: []Grammar{
			{Name: "willys_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
			{Name: "willys_quantity", Kind: KindQuantityLine, re: regexp.MustCompile(
				namePart + `\s+(\d{1,3})\s*(?:st|frp)\b.*?` + priceTail)},
		},
	},
	{
		Name:      "Hemköp",
		signature: regexp.MustCompile(`(?i)\bHEMK[ÖO]P\b`),
		grammars: []Grammar{
			{Name: "hemkop_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
		},
	},
	{
		Name:      "Lidl",
		signature: regexp.MustCompile(`(?i)\bLIDL\b`),
		grammars: []Grammar{
			// Lidl suffixes a tax-class letter after the price.
			{Name: "lidl_tax_class", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+(\d{1,4})[.,](\d{2})\s*[AB]\s*$`)},
			{Name: "lidl_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
		},
	},
	{
		Name:      "City Gross",
		signature: regexp.MustCompile(`(?i)\bCITY\s*GROSS\b`),
		grammars: []Grammar{
			{Name: "citygross_priced", Kind: KindPricedLine, re: regexp.MustCompile(
				namePart + `\s+` + priceTail)},
		},
	},
}

// GenericGrammars returns the vendor-independent grammar chain.
func GenericGrammars() []Grammar { return genericGrammars }

// VendorNames lists the known store names.
func VendorNames() []string {
	names := make([]string, 0, len(vendors))
	for _, v := range vendors {
		names = append(names, v.Name)
	}
	return names
}

// DetectVendor scans the full recognized text for a store-name signature.
func DetectVendor(text string) (*Vendor, bool) {
	for _, v := range vendors {
		if v.signature.MatchString(text) {
			return v, true
		}
	}
	return nil, false
}
