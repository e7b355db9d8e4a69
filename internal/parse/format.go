package parse

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

type DateFormat string

const (
	FormatAuto DateFormat = "auto"
	FormatDMY  DateFormat = "DD/MM/YYYY"
	FormatMDY  DateFormat = "MM/DD/YYYY"
)

func (f DateFormat) IsValid() bool {
	switch f {
	case FormatAuto, FormatDMY, FormatMDY:
		return true
	default:
		return false
	}
}

// Reference date used to detect ordering: January 15, 2024.
const (
	referenceMonth = 1
	referenceDay   = 15
	referenceYear  = 2024
)

// monthFirstRegions render numeric dates month-first.
var monthFirstRegions = map[string]bool{
	"US": true, "PH": true, "FM": true, "MH": true, "PW": true, "GU": true,
	"AS": true, "MP": true, "UM": true, "VI": true, "PR": true, "BZ": true,
}

// LocaleFromEnv returns the POSIX locale in effect (LC_ALL, LC_TIME, LANG).
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// RenderReferenceDate renders the reference date numerically in the given order.
func RenderReferenceDate(f DateFormat) string {
	day, month, year := strconv.Itoa(referenceDay), strconv.Itoa(referenceMonth), strconv.Itoa(referenceYear)
	if f == FormatDMY {
		return day + "/" + month + "/" + year
	}
	return month + "/" + day + "/" + year
}

// LocaleRendering renders the reference date the way the locale would.
func LocaleRendering(locale string) string {
	if monthFirstRegions[localeRegion(locale)] {
		return RenderReferenceDate(FormatMDY)
	}
	return RenderReferenceDate(FormatDMY)
}

// FormatFromRendering inspects the first number of a rendered reference date:
// 1 means month-first, 15 means day-first.
func FormatFromRendering(rendered string) DateFormat {
	first := strings.FieldsFunc(rendered, func(r rune) bool { return r < '0' || r > '9' })
	if len(first) > 0 && first[0] == strconv.Itoa(referenceDay) {
		return FormatDMY
	}
	return FormatMDY
}

// ResolveFormat turns a stored preference into a concrete day/month order.
// Explicit preferences win; auto (or anything unrecognised) is inferred from
// the locale.
func ResolveFormat(pref DateFormat, locale string) DateFormat {
	switch pref {
	case FormatDMY, FormatMDY:
		return pref
	}
	return FormatFromRendering(LocaleRendering(locale))
}

// localeRegion extracts the region code from a POSIX or BCP 47 locale string.
// Unknown or neutral locales ("C", "POSIX", "") resolve to US, matching the
// default rendering of most runtimes.
func localeRegion(locale string) string {
	tagText := locale
	if i := strings.IndexAny(tagText, ".@"); i >= 0 {
		tagText = tagText[:i]
	}
	tagText = strings.ReplaceAll(tagText, "_", "-")
	if tagText == "" || tagText == "C" || tagText == "POSIX" {
		return "US"
	}
	tag, err := language.Parse(tagText)
	if err != nil {
		return "US"
	}
	region, _ := tag.Region()
	return region.String()
}
