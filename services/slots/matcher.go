package slots

import (
	"fmt"
	"strconv"
	"strings"

	"meetbook/models"
	"meetbook/services/extract"
)

// MatchOutcome classifies the result of reconciling user input against the
// current slot list.
type MatchOutcome int

const (
	// MatchSelected: a slot was chosen; Slot holds a verbatim copy from the list.
	MatchSelected MatchOutcome = iota
	// MatchInvalidIndex: the message was a number outside [1, len(slots)].
	MatchInvalidIndex
	// MatchNone: neither a number nor a recognizable time; re-present the list.
	MatchNone
)

// MatchResult is the outcome of one matching attempt.
type MatchResult struct {
	Outcome MatchOutcome
	Slot    *models.Slot
	// Message is set for MatchInvalidIndex and quotes the exact valid bounds.
	Message string
}

// Match reconciles a user message against the ordered slot list. A bare
// integer is a 1-based index; otherwise the message is matched against each
// slot's displayed time. The matcher never constructs a slot that is not in
// the list.
func Match(message string, available []models.Slot) MatchResult {
	trimmed := strings.TrimSpace(message)

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 || n > len(available) {
			return MatchResult{
				Outcome: MatchInvalidIndex,
				Message: fmt.Sprintf("Sorry, slot number %d is not valid. Please choose a number between 1 and %d.", n, len(available)),
			}
		}
		chosen := available[n-1]
		return MatchResult{Outcome: MatchSelected, Slot: &chosen}
	}

	return MatchByTime(trimmed, available)
}

// MatchByTime compares a time preference against each slot label using a
// normalized time-of-day comparison (12-hour and 24-hour forms accepted,
// whitespace and case ignored). First exact match wins.
func MatchByTime(preference string, available []models.Slot) MatchResult {
	if preference == "" {
		return MatchResult{Outcome: MatchNone}
	}
	want, ok := extract.ParseTimeOfDay(preference)
	if !ok {
		return MatchResult{Outcome: MatchNone}
	}
	for _, slot := range available {
		got, ok := extract.ParseTimeOfDay(slot.Label)
		if ok && got == want {
			chosen := slot
			return MatchResult{Outcome: MatchSelected, Slot: &chosen}
		}
	}
	return MatchResult{Outcome: MatchNone}
}

// Enumerate renders the 1-based numbered slot list shown to the user.
func Enumerate(available []models.Slot) string {
	var sb strings.Builder
	for i, slot := range available {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, slot.Label)
	}
	return strings.TrimRight(sb.String(), "\n")
}
