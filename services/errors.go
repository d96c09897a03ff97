package services

import (
	"errors"
	"fmt"

	"hotelease/models"
)

var (
	ErrUserNotFound       = errors.New("user_not_found")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrResetTokenInvalid  = errors.New("reset_token_invalid")

	ErrHotelNotFound = errors.New("hotel_not_found")

	ErrBookingNotFound         = errors.New("booking_not_found")
	ErrHotelNotAvailable       = errors.New("hotel_not_available")
	ErrBookingNotCancellable   = errors.New("booking_not_cancellable")
	ErrBookingAlreadyCancelled = errors.New("booking_already_cancelled")
	ErrForbidden               = errors.New("forbidden")

	ErrPaymentNotFound       = errors.New("payment_not_found")
	ErrBookingNotPayable     = errors.New("booking_not_payable")
	ErrPaymentRequiresAction = errors.New("payment_requires_action")
	ErrPaymentProcessing     = errors.New("payment_processing")
	ErrPaymentNotCompleted   = errors.New("payment_not_completed")
	ErrBookingNotRefundable  = errors.New("booking_not_refundable")

	ErrReviewNotFound       = errors.New("review_not_found")
	ErrInvalidRating        = errors.New("invalid_rating")
	ErrNotificationNotFound = errors.New("notification_not_found")

	ErrEmployeeNotFound = errors.New("employee_not_found")
)

// ValidationError carries the draft's field-level errors. It is resolved
// at the API edge and never stored.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// PaymentDeclinedError carries the processor's decline message verbatim so
// the user sees exactly what the processor said.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	if e.Message == "" {
		return "payment_declined"
	}
	return e.Message
}
