package bookingapi

import (
	"context"
	"testing"

	"meetbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommitter struct {
	name   string
	result *models.BookingResult
	err    error
	calls  int
}

func (f *fakeCommitter) Name() string { return f.name }

func (f *fakeCommitter) Commit(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	f.calls++
	return f.result, f.err
}

var testRequest = models.BookingRequest{
	Date: "2025-10-13",
	Slot: models.Slot{StartTime: "2025-10-13T10:00:00", Label: "10:00 AM"},
	Contact: models.Contact{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1 555 123 4567",
	},
}

func TestBookPrimarySucceeds(t *testing.T) {
	primary := &fakeCommitter{name: "api", result: &models.BookingResult{Success: true, BookingID: "bk-1", Backend: "api"}}
	fallback := &fakeCommitter{name: "browser"}
	ex := NewExecutor(primary, fallback)

	result := ex.Book(context.Background(), testRequest)
	require.True(t, result.Success)
	assert.Equal(t, "bk-1", result.BookingID)
	assert.Equal(t, "api", result.Backend)
	assert.Equal(t, 0, fallback.calls, "fallback must not run when primary succeeds")
}

func TestBookFallsBackOnce(t *testing.T) {
	primary := &fakeCommitter{name: "api", err: newBackendError("status", "API returned status 503", true)}
	fallback := &fakeCommitter{name: "browser", result: &models.BookingResult{Success: true, BookingID: "bk-2", Backend: "browser"}}
	ex := NewExecutor(primary, fallback)

	result := ex.Book(context.Background(), testRequest)
	require.True(t, result.Success)
	assert.Equal(t, "browser", result.Backend)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestBookBothBackendsFail(t *testing.T) {
	primary := &fakeCommitter{name: "api", err: newBackendError("status", "API returned status 503", true)}
	fallback := &fakeCommitter{name: "browser", err: newBackendError("status", "API returned status 409", true)}
	ex := NewExecutor(primary, fallback)

	result := ex.Book(context.Background(), testRequest)
	require.False(t, result.Success)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, "This time slot may no longer be available. Please choose a different time", result.Error)
}

func TestBookNoFallbackConfigured(t *testing.T) {
	primary := &fakeCommitter{name: "api", err: newBackendError("transport", "connection refused", true)}
	ex := NewExecutor(primary, nil)

	result := ex.Book(context.Background(), testRequest)
	require.False(t, result.Success)
	assert.Equal(t, "Unable to connect to the booking system. Please check your internet connection", result.Error)
}

func TestFriendlyReason(t *testing.T) {
	cases := map[string]string{
		"API returned status 400": "The booking information couldn't be processed. Please check your details and try again",
		"API returned status 401": "Access to the booking system was denied",
		"API returned status 404": "The booking service or time slot was not found",
		"API returned status 503": "The booking system is temporarily unavailable. Please try again in a few moments",
		"request timeout":         "The booking request took too long. Please try again",
	}
	for msg, want := range cases {
		assert.Equal(t, want, friendlyReason(newBackendError("status", msg, false)), msg)
	}
	assert.Equal(t,
		"An unexpected error occurred. Please try again or contact support if the issue persists",
		friendlyReason(nil))
}
