package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// resolve dispatches a harvested candidate to the structural parser matching
// its template. Candidates that fail every applicable parser are discarded,
// never defaulted.
func (e *Engine) resolve(c candidate) (Date, bool) {
	switch kindOf(c.template) {
	case kindDelimited3:
		return e.parseDelimited3(c.groups[0], c.groups[1], c.groups[2])
	case kindDelimited2:
		return e.parseDelimited2(c.groups[0], c.groups[1])
	case kindMonthName:
		return e.parseMonthName(c.groups[0], c.groups[1], c.groups[2])
	case kindLabeled:
		return e.parseLabeledToken(c.groups[0])
	case kindJulianLot:
		return e.parseJulian(c.groups[0])
	case kindGlyphRun:
		return e.parseCompact(digitsOnly(RepairGlyphs(c.groups[0])))
	default:
		return e.parseCompact(c.groups[0])
	}
}

// parseDelimited3 handles three-part separator-delimited forms. A four-digit
// leading part is year-first (ISO order); anything else is taken day-first,
// the dominant convention on European packaging.
func (e *Engine) parseDelimited3(p1, p2, p3 string) (Date, bool) {
	a, errA := strconv.Atoi(p1)
	b, errB := strconv.Atoi(p2)
	c, errC := strconv.Atoi(p3)
	if errA != nil || errB != nil || errC != nil {
		return Date{}, false
	}

	if len(p1) == 4 {
		return e.makeDate(a, b, c)
	}
	year := c
	if len(p3) == 2 {
		year = e.cfg.CenturyPivot + c
	}
	if d, ok := e.makeDate(year, b, a); ok {
		return d, true
	}
	// Month-first fallback for engines that emit US ordering.
	return e.makeDate(year, a, b)
}

// parseDelimited2 handles two-part forms. Month-year wins when the second
// part is year-shaped ("07/2027", "07/27") and resolves to the last calendar
// day of that month; otherwise the parts are read day-month with the year
// inferred from the clock.
func (e *Engine) parseDelimited2(p1, p2 string) (Date, bool) {
	a, errA := strconv.Atoi(p1)
	b, errB := strconv.Atoi(p2)
	if errA != nil || errB != nil {
		return Date{}, false
	}

	if len(p2) == 4 {
		if d, ok := e.lastDayOfMonth(b, a); ok {
			return d, true
		}
		return Date{}, false
	}

	// Two-digit second part: try month/year first, then day/month.
	if d, ok := e.lastDayOfMonth(e.cfg.CenturyPivot+b, a); ok {
		return d, true
	}
	return e.dayMonthCurrentYear(a, b)
}

func (e *Engine) parseMonthName(dayStr, monthToken, yearStr string) (Date, bool) {
	m, ok := lookupMonth(monthToken)
	if !ok {
		return Date{}, false
	}
	y, err := strconv.Atoi(yearStr)
	if err != nil {
		return Date{}, false
	}
	if len(yearStr) == 2 {
		y = e.cfg.CenturyPivot + y
	}
	if !e.yearPlausible(y) {
		return Date{}, false
	}
	if dayStr == "" {
		return e.lastDayOfMonth(y, int(m))
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return Date{}, false
	}
	return e.makeDate(y, int(m), day)
}

// parseLabeledToken parses the date-shaped token captured after an explicit
// label ("best before", "bäst före", ...). The token is glyph-repaired and
// then routed through the delimited or compact parsers.
func (e *Engine) parseLabeledToken(token string) (Date, bool) {
	cleaned := stripNoise(RepairGlyphs(strings.TrimSpace(token)))
	if cleaned == "" {
		return Date{}, false
	}
	if parts := splitSeparated(cleaned); len(parts) == 3 {
		return e.parseDelimited3(parts[0], parts[1], parts[2])
	} else if len(parts) == 2 {
		return e.parseDelimited2(parts[0], parts[1])
	}
	return e.parseCompact(digitsOnly(cleaned))
}

var sepSplit = regexp.MustCompile(`[-/._:|]+`)

func splitSeparated(s string) []string {
	parts := sepSplit.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCompact disambiguates bare digit runs by length.
func (e *Engine) parseCompact(digits string) (Date, bool) {
	switch len(digits) {
	case 4:
		return e.parseCompact4(digits)
	case 5:
		return e.parseJulian(digits)
	case 6:
		return e.parseCompact6(digits)
	case 7:
		return e.parseJulian7(digits)
	case 8:
		return e.parseCompact8(digits)
	default:
		return Date{}, false
	}
}

// parseCompact4 tries year-only, then MMYY, then YYMM, then DDMM with the
// current year. Year-only resolves to Dec 31 of that year.
func (e *Engine) parseCompact4(digits string) (Date, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Date{}, false
	}
	if e.yearPlausible(n) {
		return Date{Year: n, Month: time.December, Day: 31}, true
	}

	a, _ := strconv.Atoi(digits[:2])
	b, _ := strconv.Atoi(digits[2:])
	if d, ok := e.lastDayOfMonth(e.cfg.CenturyPivot+b, a); ok { // MMYY
		return d, true
	}
	if d, ok := e.lastDayOfMonth(e.cfg.CenturyPivot+a, b); ok { // YYMM
		return d, true
	}
	return e.dayMonthCurrentYear(a, b) // DDMM
}

// parseCompact6 tries YYMMDD then DDMMYY.
func (e *Engine) parseCompact6(digits string) (Date, bool) {
	a, _ := strconv.Atoi(digits[:2])
	b, _ := strconv.Atoi(digits[2:4])
	c, _ := strconv.Atoi(digits[4:])

	if d, ok := e.makeDate(e.cfg.CenturyPivot+a, b, c); ok { // YYMMDD
		return d, true
	}
	return e.makeDate(e.cfg.CenturyPivot+c, b, a) // DDMMYY
}

// parseCompact8 tries DDMMYYYY, then YYYYMMDD, then MMDDYYYY. The first
// layout whose day, month and year are all internally consistent wins.
func (e *Engine) parseCompact8(digits string) (Date, bool) {
	d1, _ := strconv.Atoi(digits[:2])
	m1, _ := strconv.Atoi(digits[2:4])
	y1, _ := strconv.Atoi(digits[4:])
	if d, ok := e.makeDate(y1, m1, d1); ok { // DDMMYYYY
		return d, true
	}

	y2, _ := strconv.Atoi(digits[:4])
	m2, _ := strconv.Atoi(digits[4:6])
	d2, _ := strconv.Atoi(digits[6:])
	if d, ok := e.makeDate(y2, m2, d2); ok { // YYYYMMDD
		return d, true
	}

	m3, _ := strconv.Atoi(digits[:2])
	d3, _ := strconv.Atoi(digits[2:4])
	return e.makeDate(y1, m3, d3) // MMDDYYYY
}

// parseJulian handles YYDDD codes: two-digit year plus day-of-year.
func (e *Engine) parseJulian(digits string) (Date, bool) {
	if len(digits) != 5 {
		return Date{}, false
	}
	yy, _ := strconv.Atoi(digits[:2])
	ddd, _ := strconv.Atoi(digits[2:])
	return e.julianDate(e.cfg.CenturyPivot+yy, ddd)
}

// parseJulian7 handles YYYYDDD codes.
func (e *Engine) parseJulian7(digits string) (Date, bool) {
	if len(digits) != 7 {
		return Date{}, false
	}
	y, _ := strconv.Atoi(digits[:4])
	ddd, _ := strconv.Atoi(digits[4:])
	return e.julianDate(y, ddd)
}

func (e *Engine) julianDate(year, dayOfYear int) (Date, bool) {
	if !e.yearPlausible(year) || dayOfYear < 1 || dayOfYear > 366 {
		return Date{}, false
	}
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOfYear-1)
	if t.Year() != year {
		return Date{}, false
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

// dayMonthCurrentYear resolves a day-month pair against the clock; a date
// already behind us rolls into next year, since expiry dates point forward.
func (e *Engine) dayMonthCurrentYear(day, month int) (Date, bool) {
	year := e.today().Year()
	d, ok := e.makeDate(year, month, day)
	if !ok {
		return Date{}, false
	}
	if d.Time().Before(e.today()) {
		return e.makeDate(year+1, month, day)
	}
	return d, true
}

// lastDayOfMonth resolves a month-year form to the final calendar day of
// that month.
func (e *Engine) lastDayOfMonth(year, month int) (Date, bool) {
	if month < 1 || month > 12 || !e.yearPlausible(year) {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

// makeDate validates a (year, month, day) triple, including actual month
// lengths and the plausible-year window.
func (e *Engine) makeDate(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}
	if !e.yearPlausible(year) {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, true
}

// yearPlausible bounds candidate years to the window derived from the
// clock: the current year through MaxFutureYears ahead.
func (e *Engine) yearPlausible(year int) bool {
	cur := e.today().Year()
	return year >= cur && year <= cur+e.cfg.MaxFutureYears
}
