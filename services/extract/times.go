package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// timeOfDayRe matches 12-hour ("10 am", "2:30PM") and 24-hour ("14:00") forms.
var timeOfDayRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(a\.m\.|p\.m\.|am\b|pm\b)|\b(\d{1,2}):(\d{2})\b`)

// ParseTimeOfDay resolves a time phrase to minutes from midnight. The second
// return value reports whether a time was recognized at all.
func ParseTimeOfDay(phrase string) (int, bool) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(phrase))
	if m == nil {
		return 0, false
	}

	if m[1] != "" { // 12-hour form
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, false
		}
		meridiem := strings.ToLower(strings.ReplaceAll(m[3], ".", ""))
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		return hour*60 + minute, true
	}

	// 24-hour form
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// FindTimePhrase returns the literal time phrase inside text, if any.
func FindTimePhrase(text string) (string, bool) {
	m := timeOfDayRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}
