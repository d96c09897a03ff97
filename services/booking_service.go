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

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingService struct {
	DB       *gorm.DB
	Pricing  pricing.Calculator
	Provider payments.Provider
}

func NewBookingService(db *gorm.DB, calc pricing.Calculator, provider payments.Provider) *BookingService {
	return &BookingService{DB: db, Pricing: calc, Provider: provider}
}

func newReferenceCode() string {
	return "HE-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Create validates the draft, prices it server-side and inserts the
// booking behind an atomic availability check: the hotel row is locked for
// the duration of the transaction and the insert only happens if the
// requested rooms fit alongside every overlapping non-cancelled booking.
func (s *BookingService) Create(userID uint, draft models.BookingDraft) (*models.Booking, error) {
	if errs := draft.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := tx
		// Row lock only matters on Postgres; SQLite (tests) serializes
		// writers on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var hotel models.Hotel
		if err := q.First(&hotel, draft.HotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHotelNotFound
			}
			return fmt.Errorf("failed to load hotel: %w", err)
		}
		if hotel.Status != models.HotelActive {
			return ErrHotelNotFound
		}

		var booked int64
		err := tx.Model(&models.Booking{}).
			Select("COALESCE(SUM(rooms), 0)").
			Where("hotel_id = ? AND status <> ?", hotel.ID, models.BookingCancelled).
			Where("check_in < ? AND check_out > ?", draft.CheckOut, draft.CheckIn).
			Scan(&booked).Error
		if err != nil {
			return fmt.Errorf("failed to count booked rooms: %w", err)
		}
		if booked+int64(draft.Rooms) > int64(hotel.TotalRooms) {
			return ErrHotelNotAvailable
		}

		quote := s.Pricing.Quote(hotel.PricePerNight*float64(draft.Rooms), draft.CheckIn, draft.CheckOut)

		booking = models.Booking{
			UserID:        userID,
			HotelID:       hotel.ID,
			ReferenceCode: newReferenceCode(),
			CheckIn:       draft.CheckIn,
			CheckOut:      draft.CheckOut,
			Guests:        draft.Guests,
			Rooms:         draft.Rooms,
			Nights:        quote.Nights,
			Subtotal:      quote.Subtotal,
			Discount:      quote.Discount,
			TotalAmount:   quote.Total,
			Status:        models.BookingPending,
			PaymentStatus: models.PaymentPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings lists the caller's bookings, newest first, optionally
// filtered by status.
func (s *BookingService) MyBookings(userID uint, status string, page, limit int) ([]models.Booking, int64, error) {
	page, limit = normalizePage(page, limit)

	q := s.DB.Model(&models.Booking{}).Where("user_id = ?", userID)
	if status = strings.TrimSpace(status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	if err := q.Preload("Hotel").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// GetByID loads a booking visible to the caller: its owner or an admin.
func (s *BookingService) GetByID(id, userID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Hotel").First(&booking, id).Error; err != nil {
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

// Cancel cancels a booking before check-in. Paid bookings are refunded
// through the processor first; if the refund call fails the booking is
// left untouched so the user can retry.
func (s *BookingService) Cancel(ctx context.Context, id, userID uint, isAdmin bool, reason string) (*models.Booking, error) {
	booking, err := s.GetByID(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return nil, ErrBookingAlreadyCancelled
	}
	if !isAdmin && !time.Now().Before(booking.CheckIn) {
		return nil, ErrBookingNotCancellable
	}

	var payment models.Payment
	refund := booking.PaymentStatus == models.PaymentPaid
	if refund {
		if err := s.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err != nil {
			return nil, fmt.Errorf("failed to load payment for refund: %w", err)
		}
		// A recorded refund id means a prior attempt already moved the
		// money; skip the processor and finish the cancellation.
		if payment.RefundID == "" {
			refundID, err := s.Provider.Refund(ctx, payment.IntentID, 0)
			if err != nil {
				return nil, fmt.Errorf("failed to refund payment: %w", err)
			}
			// Persist immediately: if the status transaction below fails,
			// a retry must not refund the intent a second time.
			if err := s.DB.Model(&payment).Updates(map[string]any{
				"status":         "refunded",
				"refund_id":      refundID,
				"refunded_minor": payment.AmountMinor,
			}).Error; err != nil {
				return nil, fmt.Errorf("failed to record refund: %w", err)
			}
		}
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":              models.BookingCancelled,
			"cancelled_at":        now,
			"cancellation_reason": strings.TrimSpace(reason),
		}
		if refund {
			updates["payment_status"] = models.PaymentRefunded
		}
		if err := tx.Model(booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		note := models.Notification{
			UserID:  booking.UserID,
			Type:    "booking_cancelled",
			Title:   "Booking cancelled",
			Message: fmt.Sprintf("Your booking %s was cancelled.", booking.ReferenceCode),
		}
		if refund {
			note.Type = "booking_refunded"
			note.Message = fmt.Sprintf("Your booking %s was cancelled and refunded.", booking.ReferenceCode)
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
	booking.CancelledAt = &now
	booking.CancellationReason = strings.TrimSpace(reason)
	if refund {
		booking.PaymentStatus = models.PaymentRefunded
	}
	return booking, nil
}
