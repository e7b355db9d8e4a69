package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tempo/internal/model"
)

var (
	meridiemRe = regexp.MustCompile(`(?i)\s*(a\.m\.|p\.m\.|am|pm|a|p)$`)
	colonRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	digitsRe   = regexp.MustCompile(`^\d{1,4}$`)
)

// ParseTime normalises free-form clock text ("9am", "230pm", "14:30") to
// 24-hour HH:MM. It returns "" for anything it cannot classify or that falls
// outside 00:00-23:59.
func ParseTime(input string) string {
	text := strings.TrimSpace(input)
	if text == "" {
		return ""
	}

	meridiem := ""
	if loc := meridiemRe.FindStringSubmatchIndex(text); loc != nil {
		marker := strings.ToLower(text[loc[2]:loc[3]])
		if strings.HasPrefix(marker, "p") {
			meridiem = "pm"
		} else {
			meridiem = "am"
		}
		text = strings.TrimSpace(text[:loc[0]])
	}

	var hour, minute int
	if m := colonRe.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
	} else {
		if !digitsRe.MatchString(text) {
			return ""
		}
		switch len(text) {
		case 1, 2:
			hour, _ = strconv.Atoi(text)
		case 3:
			hour, _ = strconv.Atoi(text[:1])
			minute, _ = strconv.Atoi(text[1:])
		case 4:
			hour, _ = strconv.Atoi(text[:2])
			minute, _ = strconv.Atoi(text[2:])
		default:
			return ""
		}
	}

	switch {
	case meridiem == "pm" && hour < 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ""
	}
	return model.FormatClock(hour*60 + minute)
}

// FormatTime renders minutes since midnight as HH:MM.
func FormatTime(minutes int) string {
	return model.FormatClock(minutes)
}

// ToMinutes reads a canonical HH:MM value.
func ToMinutes(hhmm string) (int, bool) {
	return model.ParseClock(hhmm)
}

// DisplayTime renders a canonical HH:MM as a 12-hour label such as "2:30 PM".
// Non-canonical input is returned unchanged.
func DisplayTime(hhmm string) string {
	minutes, ok := model.ParseClock(hhmm)
	if !ok {
		return hhmm
	}
	hour, minute := minutes/60, minutes%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
