package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNLU is a scripted NLUService for tests.
type fakeNLU struct {
	fields    Fields
	intent    ConfirmIntent
	err       error
	calls     int
	lastKnown Fields
}

func (f *fakeNLU) ExtractFields(ctx context.Context, text string, known Fields, history []models.Turn) (Fields, error) {
	f.calls++
	f.lastKnown = known
	return f.fields, f.err
}

func (f *fakeNLU) ClassifyConfirmation(ctx context.Context, text string) (ConfirmIntent, error) {
	f.calls++
	return f.intent, f.err
}

func withFixedClock(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = orig })
}

func TestExtractRequirementsDeterministic(t *testing.T) {
	withFixedClock(t)
	nlu := &fakeNLU{}
	ex := &DefaultExtractor{NLU: nlu}

	res, err := ex.ExtractRequirements(context.Background(), "I need a meeting tomorrow at 2:30 pm", nil)
	require.NoError(t, err)
	assert.Equal(t, "tomorrow", res.Fields.DatePhrase)
	assert.Equal(t, "2:30 pm", res.Fields.TimePhrase)
	assert.Equal(t, ConfidenceHigh, res.Confidence["date"])
	assert.Equal(t, ConfidenceHigh, res.Confidence["time"])
	assert.Equal(t, 0, nlu.calls, "NLU must not run when patterns found everything")
}

func TestExtractRequirementsNLUFillsOnlyEmptyFields(t *testing.T) {
	withFixedClock(t)
	nlu := &fakeNLU{fields: Fields{
		DatePhrase: "next friday",
		TimePhrase: "9 am",
		Purpose:    "project kickoff",
	}}
	ex := &DefaultExtractor{NLU: nlu}

	res, err := ex.ExtractRequirements(context.Background(), "something about a kickoff at 10 am", nil)
	require.NoError(t, err)
	// Deterministic time wins over the NLU suggestion.
	assert.Equal(t, "10 am", res.Fields.TimePhrase)
	assert.Equal(t, ConfidenceHigh, res.Confidence["time"])
	// Date and purpose come from the fallback.
	assert.Equal(t, "next friday", res.Fields.DatePhrase)
	assert.Equal(t, ConfidenceLow, res.Confidence["date"])
	assert.Equal(t, "project kickoff", res.Fields.Purpose)
	assert.Equal(t, 1, nlu.calls)
}

func TestExtractRequirementsNLUFailureDegrades(t *testing.T) {
	withFixedClock(t)
	ex := &DefaultExtractor{NLU: &fakeNLU{err: errors.New("quota exceeded")}}

	res, err := ex.ExtractRequirements(context.Background(), "some day that works", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Fields.DatePhrase)
	assert.Empty(t, res.Fields.TimePhrase)
}

func TestExtractContactDeterministic(t *testing.T) {
	ex := &DefaultExtractor{}

	res, err := ex.ExtractContact(context.Background(),
		"John Doe, john.doe@example.com, +1 555 123 4567", models.Contact{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", res.Fields.Name)
	assert.Equal(t, "john.doe@example.com", res.Fields.Email)
	assert.Equal(t, "+1 555 123 4567", res.Fields.Phone)
	for _, field := range []string{"name", "email", "phone"} {
		assert.Equal(t, ConfidenceHigh, res.Confidence[field], field)
	}
}

func TestExtractContactSkipsKnownFields(t *testing.T) {
	nlu := &fakeNLU{}
	ex := &DefaultExtractor{NLU: nlu}
	known := models.Contact{Name: "John Doe", Email: "john@example.com"}

	res, err := ex.ExtractContact(context.Background(), "+1 555 123 4567", known, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Fields.Name)
	assert.Empty(t, res.Fields.Email)
	assert.Equal(t, "+1 555 123 4567", res.Fields.Phone)
	assert.Equal(t, 0, nlu.calls, "nothing left for the NLU to fill")
}

func TestExtractContactNLUSeesMergedKnownFields(t *testing.T) {
	nlu := &fakeNLU{fields: Fields{Phone: "555 123 4567"}}
	ex := &DefaultExtractor{NLU: nlu}

	res, err := ex.ExtractContact(context.Background(),
		"you can reach me at jane@example.com", models.Contact{Name: "Jane Roe"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, nlu.calls)
	assert.Equal(t, "Jane Roe", nlu.lastKnown.Name)
	assert.Equal(t, "jane@example.com", nlu.lastKnown.Email)
	assert.Equal(t, "555 123 4567", res.Fields.Phone)
	assert.Equal(t, ConfidenceLow, res.Confidence["phone"])
}

func TestConfirmation(t *testing.T) {
	ex := &DefaultExtractor{}
	ctx := context.Background()

	assert.Equal(t, IntentAffirmative, ex.Confirmation(ctx, "Yes"))
	assert.Equal(t, IntentAffirmative, ex.Confirmation(ctx, "sure, go ahead!"))
	assert.Equal(t, IntentNegative, ex.Confirmation(ctx, "No thanks"))
	assert.Equal(t, IntentNegative, ex.Confirmation(ctx, "please cancel"))
	assert.Equal(t, IntentNegative, ex.Confirmation(ctx, "don't do it"))
	assert.Equal(t, IntentUnrelated, ex.Confirmation(ctx, "what's the weather like"))
}

func TestConfirmationWordBoundaries(t *testing.T) {
	ex := &DefaultExtractor{}
	// "note" and "nothing" must not trip the "no" vocabulary.
	assert.Equal(t, IntentAffirmative, ex.Confirmation(context.Background(), "yes, note the time"))
	assert.Equal(t, IntentUnrelated, ex.Confirmation(context.Background(), "nothing else"))
}

func TestConfirmationNLUTiebreak(t *testing.T) {
	ex := &DefaultExtractor{NLU: &fakeNLU{intent: IntentAffirmative}}
	assert.Equal(t, IntentAffirmative, ex.Confirmation(context.Background(), "that works for me"))

	ex = &DefaultExtractor{NLU: &fakeNLU{err: errors.New("unavailable")}}
	assert.Equal(t, IntentUnrelated, ex.Confirmation(context.Background(), "that works for me"))
}
