package contact

import (
	"regexp"
	"strings"

	"meetbook/models"
)

var (
	emailRe      = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneShapeRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	digitRe      = regexp.MustCompile(`\d`)
)

// FieldError names one failing contact field with a human-readable reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validate checks the contact fields and returns every failure at once, so the
// controller can aggregate them into a single re-prompt. Empty fields are
// reported as missing.
func Validate(c models.Contact) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "name", Reason: "name is missing"})
	case len(name) < 2:
		errs = append(errs, FieldError{Field: "name", Reason: "name should be at least 2 characters"})
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Reason: "email is missing"})
	case !emailRe.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Reason: "email format is invalid"})
	}

	phone := strings.TrimSpace(c.Phone)
	switch {
	case phone == "":
		errs = append(errs, FieldError{Field: "phone", Reason: "phone number is missing"})
	case !phoneShapeRe.MatchString(phone) || len(digitRe.FindAllString(phone, -1)) < 7:
		errs = append(errs, FieldError{Field: "phone", Reason: "phone number needs at least 7 digits"})
	}

	return errs
}

// Reasons flattens field errors into their human-readable reasons.
func Reasons(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Reason)
	}
	return out
}
