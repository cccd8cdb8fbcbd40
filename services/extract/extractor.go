package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"meetbook/models"
	"meetbook/utils"

	"go.uber.org/zap"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Loose on purpose: the validator enforces the digit minimum.
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{4,}\d`)
)

// ExtractRequirements pulls date/time/purpose from a user message. Pattern
// matching runs first; the NLU collaborator fills only what is still empty.
func (e *DefaultExtractor) ExtractRequirements(ctx context.Context, text string, history []models.Turn) (Result, error) {
	res := Result{Confidence: map[string]Confidence{}}

	residual := text
	if phrase, ok := FindTimePhrase(text); ok {
		res.Fields.TimePhrase = phrase
		res.Confidence["time"] = ConfidenceHigh
		residual = strings.Replace(residual, phrase, "", 1)
	}

	if phrase := findDatePhrase(residual); phrase != "" {
		res.Fields.DatePhrase = phrase
		res.Confidence["date"] = ConfidenceHigh
	}

	if res.Fields.DatePhrase == "" || res.Fields.TimePhrase == "" {
		e.fillFromNLU(ctx, text, history, &res)
	}
	return res, nil
}

// ExtractContact applies, in order: email pattern, phone pattern, then treats
// the remaining text (matched spans removed) as the name candidate. The NLU
// fallback is invoked once for fields the deterministic pass left empty.
func (e *DefaultExtractor) ExtractContact(ctx context.Context, text string, known models.Contact, history []models.Turn) (Result, error) {
	res := Result{Confidence: map[string]Confidence{}}
	residual := text

	if known.Email == "" {
		if m := emailRe.FindString(text); m != "" {
			res.Fields.Email = m
			res.Confidence["email"] = ConfidenceHigh
			residual = strings.Replace(residual, m, "", 1)
		}
	}
	if known.Phone == "" {
		if m := phoneRe.FindString(residual); m != "" {
			res.Fields.Phone = strings.TrimSpace(m)
			res.Confidence["phone"] = ConfidenceHigh
			residual = strings.Replace(residual, m, "", 1)
		}
	}
	if known.Name == "" {
		if name := cleanNameCandidate(residual); name != "" {
			res.Fields.Name = name
			res.Confidence["name"] = ConfidenceHigh
		}
	}

	missingName := known.Name == "" && res.Fields.Name == ""
	missingEmail := known.Email == "" && res.Fields.Email == ""
	missingPhone := known.Phone == "" && res.Fields.Phone == ""
	if missingName || missingEmail || missingPhone {
		knownFields := Fields{
			Name:  firstNonEmpty(known.Name, res.Fields.Name),
			Email: firstNonEmpty(known.Email, res.Fields.Email),
			Phone: firstNonEmpty(known.Phone, res.Fields.Phone),
		}
		e.fillContactFromNLU(ctx, text, knownFields, history, &res)
	}
	return res, nil
}

// fillFromNLU merges NLU output for requirement fields the deterministic pass
// did not fill. Deterministic results are never overwritten.
func (e *DefaultExtractor) fillFromNLU(ctx context.Context, text string, history []models.Turn, res *Result) {
	if e.NLU == nil {
		return
	}
	known := res.Fields
	nlu, err := e.NLU.ExtractFields(ctx, text, known, history)
	if err != nil {
		utils.GetLogger().Warn("NLU extraction failed", zap.Error(err))
		return
	}
	if res.Fields.DatePhrase == "" && nlu.DatePhrase != "" {
		res.Fields.DatePhrase = nlu.DatePhrase
		res.Confidence["date"] = ConfidenceLow
	}
	if res.Fields.TimePhrase == "" && nlu.TimePhrase != "" {
		res.Fields.TimePhrase = nlu.TimePhrase
		res.Confidence["time"] = ConfidenceLow
	}
	if res.Fields.Purpose == "" && nlu.Purpose != "" {
		res.Fields.Purpose = nlu.Purpose
		res.Confidence["purpose"] = ConfidenceLow
	}
}

func (e *DefaultExtractor) fillContactFromNLU(ctx context.Context, text string, known Fields, history []models.Turn, res *Result) {
	if e.NLU == nil {
		return
	}
	nlu, err := e.NLU.ExtractFields(ctx, text, known, history)
	if err != nil {
		utils.GetLogger().Warn("NLU contact extraction failed", zap.Error(err))
		return
	}
	if known.Name == "" && res.Fields.Name == "" && nlu.Name != "" {
		res.Fields.Name = nlu.Name
		res.Confidence["name"] = ConfidenceLow
	}
	if known.Email == "" && res.Fields.Email == "" && nlu.Email != "" {
		res.Fields.Email = nlu.Email
		res.Confidence["email"] = ConfidenceLow
	}
	if known.Phone == "" && res.Fields.Phone == "" && nlu.Phone != "" {
		res.Fields.Phone = nlu.Phone
		res.Confidence["phone"] = ConfidenceLow
	}
}

var affirmativeWords = []string{"yes", "confirm", "proceed", "book it", "sure", "ok", "okay", "yep", "yeah", "go ahead"}
var negativeWords = []string{"no", "cancel", "nope", "stop", "don't", "nevermind", "never mind", "decline"}

// Confirmation classifies a reply to a yes/no question. Rule-based vocabularies
// decide first; the NLU collaborator breaks ties and only its boolean verdict
// is consumed.
func (e *DefaultExtractor) Confirmation(ctx context.Context, text string) ConfirmIntent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, w := range negativeWords {
		if containsWord(lower, w) {
			return IntentNegative
		}
	}
	for _, w := range affirmativeWords {
		if containsWord(lower, w) {
			return IntentAffirmative
		}
	}
	if e.NLU != nil {
		if intent, err := e.NLU.ClassifyConfirmation(ctx, text); err == nil {
			return intent
		}
	}
	return IntentUnrelated
}

// containsWord matches vocabulary entries on word boundaries so "note" never
// counts as "no". Multi-word entries match as substrings.
func containsWord(lower, w string) bool {
	if strings.ContainsAny(w, " '") {
		return strings.Contains(lower, w)
	}
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if tok == w {
			return true
		}
	}
	return false
}

// findDatePhrase returns the span of text that parses as a date, or "".
// It tries the whole residual text first, then shrinking word windows, so
// "meeting on 13 oct please" still yields "13 oct".
func findDatePhrase(text string) string {
	cleaned := strings.TrimSpace(strings.Trim(text, " ,.!?"))
	if cleaned == "" {
		return ""
	}
	words := strings.Fields(cleaned)
	maxWindow := 3
	if len(words) < maxWindow {
		maxWindow = len(words)
	}
	for window := maxWindow; window >= 1; window-- {
		for i := 0; i+window <= len(words); i++ {
			candidate := strings.Join(words[i:i+window], " ")
			candidate = strings.Trim(candidate, ",.!?")
			if _, err := ParseDatePhrase(candidate, timeNow()); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// cleanNameCandidate strips separators left behind after removing the matched
// email/phone spans.
func cleanNameCandidate(residual string) string {
	s := regexp.MustCompile(`[,;]+`).ReplaceAllString(residual, " ")
	s = regexp.MustCompile(`\s+`).ReplaceAllString(s, " ")
	s = strings.Trim(s, " .")
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
