package extract

import (
	"context"

	"meetbook/models"
)

// Confidence indicates which pass produced a field.
type Confidence string

const (
	// ConfidenceHigh marks fields produced by deterministic pattern matching.
	ConfidenceHigh Confidence = "high"
	// ConfidenceLow marks fields produced by the NLU fallback; they go through
	// the same validation as any other source.
	ConfidenceLow Confidence = "low"
)

// Fields is a partial mapping of facts pulled out of user text. Empty string
// means "not found".
type Fields struct {
	DatePhrase string `json:"date_preference,omitempty"`
	TimePhrase string `json:"time_preference,omitempty"`
	Purpose    string `json:"meeting_purpose,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Result pairs extracted fields with a per-field confidence indicator.
type Result struct {
	Fields     Fields
	Confidence map[string]Confidence
}

// NLUService is the external extraction collaborator. Best-effort: it may
// return empty fields and must have no side effects.
type NLUService interface {
	ExtractFields(ctx context.Context, text string, known Fields, history []models.Turn) (Fields, error)
	// ClassifyConfirmation decides whether text is an affirmative answer to a
	// yes/no question. Only the boolean is consumed.
	ClassifyConfirmation(ctx context.Context, text string) (ConfirmIntent, error)
}

// ConfirmIntent is the three-way outcome of a confirmation check.
type ConfirmIntent string

const (
	IntentAffirmative ConfirmIntent = "affirmative"
	IntentNegative    ConfirmIntent = "negative"
	IntentUnrelated   ConfirmIntent = "unrelated"
)

// Extractor runs the ordered capability chain: deterministic patterns first,
// NLU only for fields the patterns left empty. Deterministic results are never
// overwritten by the fallback.
type Extractor interface {
	ExtractRequirements(ctx context.Context, text string, history []models.Turn) (Result, error)
	ExtractContact(ctx context.Context, text string, known models.Contact, history []models.Turn) (Result, error)
	Confirmation(ctx context.Context, text string) ConfirmIntent
}

// DefaultExtractor implements Extractor.
type DefaultExtractor struct {
	NLU NLUService // optional; nil disables the fallback
}
