// Package dates recovers calendar dates from noisy OCR text. The engine is
// pure and deterministic: the same input text always yields the same sorted
// date set.
package dates

import (
	"sort"
	"time"
)

// Date is a resolved calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Time().Format("2006-01-02")
}

// Time converts the date to a UTC time at midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// Config bounds the recovery engine. The plausibility window tracks the
// clock rather than being pinned to fixed years.
type Config struct {
	// MaxFutureYears bounds how far into the future a recovered date may
	// lie before it is rejected as implausible for a perishable product.
	MaxFutureYears int
	// CenturyPivot maps two-digit years into a century (pivot 2000 maps
	// "27" to 2027).
	CenturyPivot int
}

// DefaultConfig returns the recovery defaults.
func DefaultConfig() Config {
	return Config{
		MaxFutureYears: 3,
		CenturyPivot:   2000,
	}
}

// Engine extracts, repairs, disambiguates and validates date substrings.
type Engine struct {
	cfg Config
	now func() time.Time
}

// New creates a recovery engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.MaxFutureYears <= 0 {
		cfg.MaxFutureYears = 3
	}
	if cfg.CenturyPivot <= 0 {
		cfg.CenturyPivot = 2000
	}
	return &Engine{cfg: cfg, now: time.Now}
}

// WithClock overrides the engine clock. Tests pin the clock to keep the
// plausibility window deterministic.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// candidate is a transient matched substring awaiting structural parsing.
type candidate struct {
	raw      string
	template string
	pos      int
	groups   []string
}

// ExtractDates harvests date-shaped substrings from raw OCR text, repairs
// confused glyphs, disambiguates the numeric layout, filters for
// plausibility, and returns the unique surviving dates sorted ascending.
func (e *Engine) ExtractDates(text string) []Date {
	if text == "" {
		return nil
	}

	norm := normalizeText(text)
	// Harvest over both the normalized text and a glyph-repaired copy so
	// separator-delimited forms with letter-for-digit misreads (O7/2O27)
	// are still caught by the numeric templates.
	cands := harvest(norm)
	cands = append(cands, harvest(RepairGlyphs(norm))...)

	today := e.today()
	limit := today.AddDate(e.cfg.MaxFutureYears, 0, 0)

	seen := make(map[string]struct{})
	var out []Date
	for _, c := range cands {
		d, ok := e.resolve(c)
		if !ok {
			continue
		}
		t := d.Time()
		if t.Before(today) || t.After(limit) {
			continue
		}
		key := d.ISO()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Window returns the currently accepted [today, today+N years] interval.
func (e *Engine) Window() (time.Time, time.Time) {
	today := e.today()
	return today, today.AddDate(e.cfg.MaxFutureYears, 0, 0)
}

func (e *Engine) today() time.Time {
	n := e.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeText collapses non-alphanumeric noise to single spaces while
// preserving the separator characters the templates understand.
func normalizeText(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case isAlnum(r) || isSeparator(r):
			out = append(out, r)
			space = false
		default:
			if !space && len(out) > 0 {
				out = append(out, ' ')
				space = true
			}
		}
	}
	return string(out)
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' ||
		r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r == 'å' || r == 'ä' || r == 'ö' || r == 'Å' || r == 'Ä' || r == 'Ö' ||
		r == 'é' || r == 'ü' || r == 'Ø' || r == 'ø' || r == 'β' || r == '$' || r == '!'
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '/', '.', '_', ':', '|', ' ':
		return true
	}
	return false
}
