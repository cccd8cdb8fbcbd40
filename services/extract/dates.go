package extract

import (
	"fmt"
	"strings"
	"time"
)

// ErrUnparseableDate is returned when a phrase cannot be resolved to a
// calendar date. Ambiguous input is surfaced, never silently defaulted.
type ErrUnparseableDate struct {
	Phrase string
}

func (e *ErrUnparseableDate) Error() string {
	return fmt.Sprintf("could not parse date: %q", e.Phrase)
}

// timeNow is swapped out in tests that need a fixed clock.
var timeNow = time.Now

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Explicit formats tried in order. Formats without a year get the current year
// (or next year if the date has already passed).
var dateFormats = []string{
	"2006-01-02",
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"1/2/2006",
	"1/2",
}

// ParseDatePhrase resolves a free-text date phrase ("tomorrow", "next tuesday",
// "13 oct", "2025-10-13") to a calendar date relative to now.
func ParseDatePhrase(phrase string, now time.Time) (time.Time, error) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return time.Time{}, &ErrUnparseableDate{Phrase: phrase}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	if strings.Contains(p, "next week") {
		return today.AddDate(0, 0, 7), nil
	}
	if day, ok := weekdays[strings.TrimPrefix(p, "next ")]; ok {
		ahead := int(day) - int(today.Weekday())
		if ahead <= 0 {
			ahead += 7
		}
		return today.AddDate(0, 0, ahead), nil
	}

	for _, layout := range dateFormats {
		parsed, err := time.Parse(layout, canonicalDate(p))
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			parsed = parsed.AddDate(today.Year(), 0, 0)
		}
		if parsed.Before(today) && parsed.Year() == today.Year() {
			parsed = parsed.AddDate(1, 0, 0)
		}
		return parsed, nil
	}

	return time.Time{}, &ErrUnparseableDate{Phrase: phrase}
}

// canonicalDate title-cases month names so time.Parse accepts them.
func canonicalDate(p string) string {
	words := strings.Fields(p)
	for i, w := range words {
		if len(w) >= 3 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// NormalizeDate formats a parsed date in the ISO form stored on the session.
func NormalizeDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// LongDate formats a normalized ISO date for display, e.g. "October 13, 2025".
// Falls back to the input when it is not in ISO form.
func LongDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}
