package services

import (
	"context"
	"testing"

	"hotelease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingPricesServerSide(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	svc := newBookingService(db, &fakeProvider{})

	booking, err := svc.Create(user.ID, models.BookingDraft{
		HotelID:  hotel.ID,
		CheckIn:  testDate("2025-01-01"),
		CheckOut: testDate("2025-01-05"),
		Guests:   2,
		Rooms:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, booking.Nights)
	assert.Equal(t, float64(4000), booking.Subtotal)
	assert.Equal(t, float64(200), booking.Discount)
	assert.Equal(t, float64(3800), booking.TotalAmount)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.NotEmpty(t, booking.ReferenceCode)
}

func TestCreateBookingInvalidDraftNeverPersists(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	svc := newBookingService(db, &fakeProvider{})

	_, err := svc.Create(user.ID, models.BookingDraft{
		HotelID:  hotel.ID,
		CheckIn:  testDate("2025-01-05"),
		CheckOut: testDate("2025-01-01"),
		Guests:   2,
		Rooms:    1,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Fields)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBookingRejectsOverbooking(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 2)
	svc := newBookingService(db, &fakeProvider{})

	_, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2025-01-01"), CheckOut: testDate("2025-01-05"),
		Guests: 2, Rooms: 2,
	})
	require.NoError(t, err)

	// Overlapping stay: no rooms left.
	_, err = svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2025-01-03"), CheckOut: testDate("2025-01-06"),
		Guests: 1, Rooms: 1,
	})
	assert.ErrorIs(t, err, ErrHotelNotAvailable)

	// Back-to-back stay starting on the check-out day is fine.
	_, err = svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2025-01-05"), CheckOut: testDate("2025-01-07"),
		Guests: 1, Rooms: 2,
	})
	assert.NoError(t, err)
}

func TestCreateBookingIgnoresCancelledRooms(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 1)
	svc := newBookingService(db, &fakeProvider{})

	first, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-05"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), first.ID, user.ID, false, "change of plans")
	require.NoError(t, err)

	// The cancelled booking releases its room.
	_, err = svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-02"), CheckOut: testDate("2030-01-04"),
		Guests: 1, Rooms: 1,
	})
	assert.NoError(t, err)
}

func TestCreateBookingUnknownHotel(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	svc := newBookingService(db, &fakeProvider{})

	_, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: 999, CheckIn: testDate("2025-01-01"), CheckOut: testDate("2025-01-02"),
		Guests: 1, Rooms: 1,
	})
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	other := seedUser(t, db, "other@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{}
	svc := newBookingService(db, provider)

	booking, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-05"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)

	// Not the owner, not an admin.
	_, err = svc.Cancel(context.Background(), booking.ID, other.ID, false, "")
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := svc.Cancel(context.Background(), booking.ID, user.ID, false, "trip moved")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, "trip moved", cancelled.CancellationReason)
	assert.Zero(t, provider.refundCalls, "unpaid cancellation must not hit the processor")

	_, err = svc.Cancel(context.Background(), booking.ID, user.ID, false, "")
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)

	var notes int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&notes).Error)
	assert.EqualValues(t, 1, notes)
}

func TestCancelAfterCheckInRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	svc := newBookingService(db, &fakeProvider{})

	booking, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2020-01-01"), CheckOut: testDate("2020-01-05"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID, user.ID, false, "")
	assert.ErrorIs(t, err, ErrBookingNotCancellable)
}

func TestCancelPaidBookingRefunds(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: "succeeded"}
	svc := newBookingService(db, provider)
	paySvc := NewPaymentService(db, provider, "usd")

	booking, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-05"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)

	_, err = paySvc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	_, err = paySvc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), booking.ID, user.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	assert.Equal(t, 1, provider.refundCalls)

	var payment models.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	assert.Equal(t, "refunded", payment.Status)
	assert.NotEmpty(t, payment.RefundID)
}

func TestCancelResumesAfterRecordedRefund(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: "succeeded"}
	svc := newBookingService(db, provider)
	paySvc := NewPaymentService(db, provider, "usd")

	booking, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-05"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)
	_, err = paySvc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	_, err = paySvc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)

	// A prior cancel attempt refunded the intent and recorded the refund
	// id, but failed before the booking status changed.
	var payment models.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	require.NoError(t, db.Model(&payment).Updates(map[string]any{
		"status": "refunded", "refund_id": "re_prior", "refunded_minor": payment.AmountMinor,
	}).Error)

	cancelled, err := svc.Cancel(context.Background(), booking.ID, user.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	assert.Equal(t, 0, provider.refundCalls, "a recorded refund must not hit the processor again")

	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	assert.Equal(t, "re_prior", payment.RefundID)
}

func TestMyBookingsFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	svc := newBookingService(db, &fakeProvider{})

	first, err := svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-03"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, models.BookingDraft{
		HotelID: hotel.ID, CheckIn: testDate("2030-02-01"), CheckOut: testDate("2030-02-03"),
		Guests: 1, Rooms: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), first.ID, user.ID, false, "")
	require.NoError(t, err)

	all, total, err := svc.MyBookings(user.ID, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	cancelled, total, err := svc.MyBookings(user.ID, models.BookingCancelled, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)
}
