package bookingapi

import (
	"context"
	"fmt"

	"meetbook/models"
)

// Committer is the booking backend's commit capability. Two interchangeable
// implementations exist: the direct transactional API and the UI-automation
// fallback.
type Committer interface {
	Name() string
	Commit(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
}

// BackendError describes a failed backend call. Transient errors are eligible
// for the fallback path.
type BackendError struct {
	Code      string
	Message   string
	Transient bool
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBackendError(code, msg string, transient bool) *BackendError {
	return &BackendError{Code: code, Message: msg, Transient: transient}
}
