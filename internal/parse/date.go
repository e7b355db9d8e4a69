package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tempo/internal/model"
)

// Options carries everything the date parser depends on. Nothing is read
// from process state.
type Options struct {
	Today  model.Date
	Format DateFormat
	// Locale is consulted only when Format is auto.
	Locale string
}

// DateResult is the outcome of ParseDate. Date is nil when nothing matched, in
// which case CleanedText is the original input.
type DateResult struct {
	Date        *model.Date
	CleanedText string
	Matched     string
}

type dateRule struct {
	name string
	re   *regexp.Regexp
	// whole rules consume the entire input rather than a span.
	whole   bool
	resolve func(m []string, opts Options) (model.Date, bool)
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// dateRules is evaluated in order; the first rule that matches and resolves wins.
var dateRules = []dateRule{
	{
		name:    "shorthand",
		re:      regexp.MustCompile(`^([TDWM])([+-]\d+)?$`),
		whole:   true,
		resolve: resolveShorthand,
	},
	{
		name: "today",
		re:   regexp.MustCompile(`(?i)\btoday\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today, true
		},
	},
	{
		name: "tomorrow",
		re:   regexp.MustCompile(`(?i)\btomorrow\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today.AddDays(1), true
		},
	},
	{
		name: "yesterday",
		re:   regexp.MustCompile(`(?i)\byesterday\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today.AddDays(-1), true
		},
	},
	{
		name:    "weekday",
		re:      regexp.MustCompile(`(?i)\b(next\s+)?(monday|mon|tuesday|tues|tue|wednesday|wed|thursday|thurs|thur|thu|friday|fri|saturday|sat|sunday|sun)\b`),
		resolve: resolveWeekday,
	},
	{
		name:    "relative",
		re:      regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(days?|weeks?|months?)\b`),
		resolve: resolveRelative,
	},
	{
		name: "next week",
		re:   regexp.MustCompile(`(?i)\bnext\s+week\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today.AddDays(7), true
		},
	},
	{
		name: "next month",
		re:   regexp.MustCompile(`(?i)\bnext\s+month\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today.AddMonths(1), true
		},
	},
	{
		name: "end of week",
		re:   regexp.MustCompile(`(?i)\bend\s+of\s+(the\s+)?week\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			return o.Today.AddDays(daysUntilWeekday(o.Today, time.Friday, true)), true
		},
	},
	{
		name: "end of month",
		re:   regexp.MustCompile(`(?i)\bend\s+of\s+(the\s+)?month\b`),
		resolve: func(_ []string, o Options) (model.Date, bool) {
			first := model.NewDate(o.Today.Year, o.Today.Month, 1)
			return first.AddMonths(1).AddDays(-1), true
		},
	},
	{
		name:    "numeric with year",
		re:      regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`),
		whole:   true,
		resolve: resolveNumeric,
	},
	{
		name:    "numeric without year",
		re:      regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`),
		whole:   true,
		resolve: resolveNumeric,
	},
}

// ParseDate normalises free-form date text to a calendar date. It never fails:
// unrecognised input comes back with a nil Date and the text untouched.
func ParseDate(text string, opts Options) DateResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DateResult{CleanedText: text}
	}
	opts.Format = ResolveFormat(opts.Format, opts.Locale)

	for _, rule := range dateRules {
		if rule.whole {
			m := rule.re.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			d, ok := rule.resolve(m, opts)
			if !ok {
				// A whole-input shape that fails validation cannot match anything else.
				return DateResult{CleanedText: text}
			}
			return DateResult{Date: &d, CleanedText: "", Matched: m[0]}
		}

		loc := rule.re.FindStringSubmatchIndex(trimmed)
		if loc == nil {
			continue
		}
		m := submatches(trimmed, loc)
		d, ok := rule.resolve(m, opts)
		if !ok {
			continue
		}
		cleaned := collapseSpaces(trimmed[:loc[0]] + " " + trimmed[loc[1]:])
		return DateResult{Date: &d, CleanedText: cleaned, Matched: m[0]}
	}
	return DateResult{CleanedText: text}
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []string {
	out := make([]string, 0, len(dateRules))
	for _, r := range dateRules {
		out = append(out, r.name)
	}
	return out
}

func resolveShorthand(m []string, o Options) (model.Date, bool) {
	offset := 0
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return model.Date{}, false
		}
		offset = n
	}
	switch m[1] {
	case "T", "D":
		return o.Today.AddDays(offset), true
	case "W":
		return o.Today.AddDays(offset * 7), true
	case "M":
		return o.Today.AddMonths(offset), true
	}
	return model.Date{}, false
}

func resolveWeekday(m []string, o Options) (model.Date, bool) {
	target, ok := weekdayNames[strings.ToLower(m[2])]
	if !ok {
		return model.Date{}, false
	}
	days := daysUntilWeekday(o.Today, target, false)
	if strings.TrimSpace(m[1]) != "" {
		days += 7
	}
	return o.Today.AddDays(days), true
}

func resolveRelative(m []string, o Options) (model.Date, bool) {
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return model.Date{}, false
	}
	unit := strings.ToLower(m[2])
	switch {
	case strings.HasPrefix(unit, "day"):
		return o.Today.AddDays(n), true
	case strings.HasPrefix(unit, "week"):
		return o.Today.AddDays(n * 7), true
	case strings.HasPrefix(unit, "month"):
		return o.Today.AddMonths(n), true
	}
	return model.Date{}, false
}

func resolveNumeric(m []string, o Options) (model.Date, bool) {
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	day, month := first, second
	if o.Format == FormatMDY {
		day, month = second, first
	}

	year := o.Today.Year
	explicitYear := len(m) > 3 && m[3] != ""
	if explicitYear {
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}

	d, ok := validDate(year, month, day)
	if !ok {
		return model.Date{}, false
	}
	if !explicitYear && d.Before(o.Today) {
		d, ok = validDate(year+1, month, day)
		if !ok {
			return model.Date{}, false
		}
	}
	return d, true
}

// validDate builds the date and rejects it unless the calendar agrees with the
// parsed day and month exactly (no rollover of 31 April into May).
func validDate(year, month, day int) (model.Date, bool) {
	if month < 1 || month > 12 || day < 1 {
		return model.Date{}, false
	}
	d := model.NewDate(year, time.Month(month), day)
	if d.Day != day || int(d.Month) != month {
		return model.Date{}, false
	}
	return d, true
}

// daysUntilWeekday counts forward to target. With inclusive, today itself
// counts as zero days away.
func daysUntilWeekday(today model.Date, target time.Weekday, inclusive bool) int {
	days := (int(target) - int(today.Weekday()) + 7) % 7
	if days == 0 && !inclusive {
		days = 7
	}
	return days
}

func submatches(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
