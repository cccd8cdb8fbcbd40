package bookingapi

import (
	"context"
	"errors"
	"strings"

	"meetbook/models"
	"meetbook/utils"

	"go.uber.org/zap"
)

// Executor commits a confirmed booking: primary backend first, then at most
// one automatic fallback. The controller guarantees it is never invoked twice
// for the same confirmed slot without an intervening reset.
type Executor struct {
	Primary  Committer
	Fallback Committer // optional
}

func NewExecutor(primary, fallback Committer) *Executor {
	return &Executor{Primary: primary, Fallback: fallback}
}

// Book attempts the commit. A failed result (rather than an error) is returned
// when both paths are exhausted, carrying a user-presentable reason.
func (e *Executor) Book(ctx context.Context, req models.BookingRequest) *models.BookingResult {
	logger := utils.GetLogger()

	result, err := e.Primary.Commit(ctx, req)
	if err == nil && result.Success {
		return result
	}
	primaryErr := err
	logger.Warn("Primary booking backend failed",
		zap.String("backend", e.Primary.Name()), zap.Error(primaryErr))

	if e.Fallback != nil {
		result, err = e.Fallback.Commit(ctx, req)
		if err == nil && result.Success {
			logger.Info("Booking committed by fallback backend",
				zap.String("backend", e.Fallback.Name()))
			return result
		}
		logger.Error("Fallback booking backend failed",
			zap.String("backend", e.Fallback.Name()), zap.Error(err))
	}

	reason := friendlyReason(primaryErr)
	if err != nil {
		reason = friendlyReason(err)
	}
	return &models.BookingResult{Success: false, Error: reason}
}

// friendlyReason converts backend failures into the message shown to the user.
func friendlyReason(err error) string {
	if err == nil {
		return "An unexpected error occurred. Please try again or contact support if the issue persists"
	}

	var be *BackendError
	if errors.As(err, &be) {
		lower := strings.ToLower(be.Message)
		switch {
		case strings.Contains(lower, "status 400"):
			return "The booking information couldn't be processed. Please check your details and try again"
		case strings.Contains(lower, "status 401"), strings.Contains(lower, "status 403"):
			return "Access to the booking system was denied"
		case strings.Contains(lower, "status 404"):
			return "The booking service or time slot was not found"
		case strings.Contains(lower, "status 409"):
			return "This time slot may no longer be available. Please choose a different time"
		case strings.Contains(lower, "status 5"):
			return "The booking system is temporarily unavailable. Please try again in a few moments"
		case strings.Contains(lower, "timeout"), strings.Contains(lower, "deadline"):
			return "The booking request took too long. Please try again"
		case strings.Contains(lower, "connection"), strings.Contains(lower, "network"):
			return "Unable to connect to the booking system. Please check your internet connection"
		}
	}
	return "An unexpected error occurred. Please try again or contact support if the issue persists"
}
