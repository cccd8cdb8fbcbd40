package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, October 1, 2025.
var fixedNow = time.Date(2025, time.October, 1, 9, 30, 0, 0, time.UTC)

func TestParseDatePhraseRelative(t *testing.T) {
	cases := map[string]string{
		"today":        "2025-10-01",
		"Tomorrow":     "2025-10-02",
		"next week":    "2025-10-08",
		"next friday":  "2025-10-03",
		"friday":       "2025-10-03",
		"next tuesday": "2025-10-07",
	}
	for phrase, want := range cases {
		parsed, err := ParseDatePhrase(phrase, fixedNow)
		require.NoError(t, err, phrase)
		assert.Equal(t, want, NormalizeDate(parsed), phrase)
	}
}

func TestParseDatePhraseExplicit(t *testing.T) {
	cases := map[string]string{
		"2025-10-13":       "2025-10-13",
		"13 Oct":           "2025-10-13",
		"13 oct":           "2025-10-13",
		"October 13":       "2025-10-13",
		"October 13, 2025": "2025-10-13",
		"10/13/2025":       "2025-10-13",
	}
	for phrase, want := range cases {
		parsed, err := ParseDatePhrase(phrase, fixedNow)
		require.NoError(t, err, phrase)
		assert.Equal(t, want, NormalizeDate(parsed), phrase)
	}
}

func TestParseDatePhrasePastDateRollsToNextYear(t *testing.T) {
	parsed, err := ParseDatePhrase("5 Jan", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", NormalizeDate(parsed))
}

func TestParseDatePhraseUnparseable(t *testing.T) {
	for _, phrase := range []string{"", "sometime soon", "whenever", "the 45th"} {
		_, err := ParseDatePhrase(phrase, fixedNow)
		require.Error(t, err, phrase)
		var unparseable *ErrUnparseableDate
		assert.ErrorAs(t, err, &unparseable, phrase)
	}
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "October 13, 2025", LongDate("2025-10-13"))
	assert.Equal(t, "not-a-date", LongDate("not-a-date"))
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"10 am", 600, true},
		{"10AM", 600, true},
		{"2:30 pm", 870, true},
		{"2:30PM", 870, true},
		{"14:00", 840, true},
		{"12 am", 0, true},
		{"12 pm", 720, true},
		{"9 a.m.", 540, true},
		{"morning", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTimeOfDay(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.minutes, got, tc.in)
		}
	}
}

func TestFindTimePhrase(t *testing.T) {
	phrase, ok := FindTimePhrase("meet me tomorrow at 2:30 pm please")
	require.True(t, ok)
	assert.Equal(t, "2:30 pm", phrase)

	_, ok = FindTimePhrase("meet me tomorrow")
	assert.False(t, ok)
}
