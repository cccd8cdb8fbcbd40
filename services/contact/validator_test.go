package contact

import (
	"testing"

	"meetbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateComplete(t *testing.T) {
	errs := Validate(models.Contact{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1 555 123 4567",
	})
	assert.Empty(t, errs)
}

func TestValidateAllMissing(t *testing.T) {
	errs := Validate(models.Contact{})
	require.Len(t, errs, 3)
	assert.Equal(t, []string{
		"name is missing",
		"email is missing",
		"phone number is missing",
	}, Reasons(errs))
}

func TestValidateShortName(t *testing.T) {
	errs := Validate(models.Contact{
		Name:  "J",
		Email: "john@example.com",
		Phone: "+1 555 123 4567",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "name should be at least 2 characters", errs[0].Reason)
}

func TestValidateBadEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "missing@tld", "@example.com", "a b@example.com"} {
		errs := Validate(models.Contact{Name: "John Doe", Email: email, Phone: "+1 555 123 4567"})
		require.Len(t, errs, 1, email)
		assert.Equal(t, "email format is invalid", errs[0].Reason, email)
	}
}

func TestValidateBadPhone(t *testing.T) {
	for _, phone := range []string{"12345", "call me maybe", "123-456"} {
		errs := Validate(models.Contact{Name: "John Doe", Email: "john@example.com", Phone: phone})
		require.Len(t, errs, 1, phone)
		assert.Equal(t, "phone number needs at least 7 digits", errs[0].Reason, phone)
	}
}

func TestValidateAggregatesAllFailures(t *testing.T) {
	errs := Validate(models.Contact{Name: "J", Email: "nope", Phone: "123"})
	assert.Len(t, errs, 3)
}
