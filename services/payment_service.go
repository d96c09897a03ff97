package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelease/models"
	"hotelease/payments"
	"hotelease/pricing"

	"gorm.io/gorm"
)

type PaymentService struct {
	DB       *gorm.DB
	Provider payments.Provider
	Currency string
}

func NewPaymentService(db *gorm.DB, provider payments.Provider, currency string) *PaymentService {
	return &PaymentService{DB: db, Provider: provider, Currency: currency}
}

func (s *PaymentService) loadBooking(id, userID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrForbidden
	}
	return &booking, nil
}

// CreateIntent returns the payment intent for a booking, creating it on
// first call. At most one intent exists per booking: re-requests return
// the stored client secret, and the idempotency key sent to the processor
// is derived from the booking reference so even a racing duplicate call
// cannot produce a second charge.
func (s *PaymentService) CreateIntent(ctx context.Context, bookingID, userID uint, isAdmin bool) (*models.Payment, error) {
	booking, err := s.loadBooking(bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending || booking.PaymentStatus != models.PaymentPending {
		return nil, ErrBookingNotPayable
	}

	var existing models.Payment
	err = s.DB.Where("booking_id = ?", booking.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}

	key := "booking-" + booking.ReferenceCode
	intent, err := s.Provider.CreateIntent(ctx, pricing.MinorUnits(booking.TotalAmount), s.Currency, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	payment := models.Payment{
		BookingID:      booking.ID,
		IntentID:       intent.ID,
		ClientSecret:   intent.ClientSecret,
		IdempotencyKey: key,
		AmountMinor:    intent.AmountMinor,
		Currency:       s.Currency,
		Status:         string(intent.Status),
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		// Unique index on booking_id: a concurrent request won the race,
		// return its row.
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			if rErr := s.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; rErr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	return &payment, nil
}

// Confirm finalizes a booking after the processor reports on its intent.
// It is resumable: confirming an already-confirmed booking returns it
// unchanged without touching the processor, and every non-success outcome
// leaves the booking pending so the user can retry.
func (s *PaymentService) Confirm(ctx context.Context, bookingID, userID uint, intentID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.loadBooking(bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingConfirmed {
		return booking, nil
	}
	if booking.Status == models.BookingCancelled {
		return nil, ErrBookingNotPayable
	}

	var payment models.Payment
	if err := s.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if intentID != "" && payment.IntentID != intentID {
		return nil, ErrPaymentNotFound
	}

	intent, err := s.Provider.RetrieveIntent(ctx, payment.IntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	switch intent.Status {
	case payments.StatusSucceeded:
		// fall through to confirmation below
	case payments.StatusRequiresAction:
		return nil, ErrPaymentRequiresAction
	case payments.StatusProcessing:
		return nil, ErrPaymentProcessing
	case payments.StatusFailed:
		if err := s.DB.Model(&payment).Update("status", string(intent.Status)).Error; err != nil {
			return nil, fmt.Errorf("failed to record payment failure: %w", err)
		}
		return nil, &PaymentDeclinedError{Message: intent.FailureMessage}
	default:
		return nil, ErrPaymentNotCompleted
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(booking).Updates(map[string]any{
			"status":         models.BookingConfirmed,
			"payment_status": models.PaymentPaid,
			"confirmed_at":   now,
		}).Error; err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}
		if err := tx.Model(&payment).Update("status", string(payments.StatusSucceeded)).Error; err != nil {
			return fmt.Errorf("failed to mark payment succeeded: %w", err)
		}

		note := models.Notification{
			UserID:  booking.UserID,
			Type:    "booking_confirmed",
			Title:   "Booking confirmed",
			Message: fmt.Sprintf("Your booking %s is confirmed. Enjoy your stay!", booking.ReferenceCode),
		}
		if err := tx.Create(&note).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingConfirmed
	booking.PaymentStatus = models.PaymentPaid
	booking.ConfirmedAt = &now
	return booking, nil
}

// Refund is the admin-initiated refund: full when amountMinor <= 0,
// partial otherwise. The booking ends cancelled with payment refunded.
func (s *PaymentService) Refund(ctx context.Context, bookingID uint, amountMinor int64, reason string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if booking.PaymentStatus != models.PaymentPaid {
		return nil, ErrBookingNotRefundable
	}

	var payment models.Payment
	if err := s.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	if amountMinor <= 0 || amountMinor > payment.AmountMinor {
		amountMinor = payment.AmountMinor
	}

	// A recorded refund id means the money already moved in a prior
	// attempt; skip the processor and finish the bookkeeping.
	if payment.RefundID == "" {
		refundID, err := s.Provider.Refund(ctx, payment.IntentID, amountMinor)
		if err != nil {
			return nil, fmt.Errorf("failed to refund payment: %w", err)
		}
		// Persist immediately so a failure in the status transaction
		// below cannot trigger a second refund on retry.
		if err := s.DB.Model(&payment).Updates(map[string]any{
			"status":         "refunded",
			"refund_id":      refundID,
			"refunded_minor": amountMinor,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to record refund: %w", err)
		}
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking).Updates(map[string]any{
			"status":              models.BookingCancelled,
			"payment_status":      models.PaymentRefunded,
			"cancelled_at":        now,
			"cancellation_reason": strings.TrimSpace(reason),
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		note := models.Notification{
			UserID:  booking.UserID,
			Type:    "booking_refunded",
			Title:   "Booking refunded",
			Message: fmt.Sprintf("Your booking %s was refunded.", booking.ReferenceCode),
		}
		if err := tx.Create(&note).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingCancelled
	booking.PaymentStatus = models.PaymentRefunded
	booking.CancelledAt = &now
	return &booking, nil
}
