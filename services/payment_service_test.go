package services

import (
	"context"
	"testing"

	"hotelease/models"
	"hotelease/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPendingBooking(t *testing.T, svc *BookingService, userID, hotelID uint) *models.Booking {
	t.Helper()
	booking, err := svc.Create(userID, models.BookingDraft{
		HotelID: hotelID, CheckIn: testDate("2030-01-01"), CheckOut: testDate("2030-01-05"),
		Guests: 2, Rooms: 1,
	})
	require.NoError(t, err)
	return booking
}

func TestCreateIntentOncePerBooking(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)

	first, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(380000), first.AmountMinor)
	assert.NotEmpty(t, first.ClientSecret)
	assert.Equal(t, "booking-"+booking.ReferenceCode, first.IdempotencyKey)

	second, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, first.IntentID, second.IntentID)
	assert.Equal(t, first.ClientSecret, second.ClientSecret)
	assert.Equal(t, 1, provider.createCalls, "re-requesting an intent must not create a second one")
}

func TestCreateIntentOwnershipAndState(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	other := seedUser(t, db, "other@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)

	_, err := svc.CreateIntent(context.Background(), booking.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = bookingSvc.Cancel(context.Background(), booking.ID, user.ID, false, "")
	require.NoError(t, err)

	_, err = svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	assert.ErrorIs(t, err, ErrBookingNotPayable)
}

func TestConfirmSuccessIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusSucceeded}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, models.PaymentPaid, confirmed.PaymentStatus)
	require.NotNil(t, confirmed.ConfirmedAt)
	assert.Equal(t, 1, provider.retrieveCalls)

	var notes int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", user.ID, "booking_confirmed").Count(&notes).Error)
	assert.EqualValues(t, 1, notes)

	// Re-invoking the handler must not touch the processor or change state.
	again, err := svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, again.Status)
	assert.Equal(t, 1, provider.retrieveCalls, "already-confirmed bookings must skip the processor")

	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", user.ID, "booking_confirmed").Count(&notes).Error)
	assert.EqualValues(t, 1, notes, "no duplicate confirmation notification")
}

func TestConfirmDeclinedLeavesBookingPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusFailed, failMsg: "Your card was declined."}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), booking.ID, user.ID, "", false)

	var declined *PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Your card was declined.", declined.Message)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, booking.ID).Error)
	assert.Equal(t, models.BookingPending, reloaded.Status)
	assert.Equal(t, models.PaymentPending, reloaded.PaymentStatus)
}

func TestConfirmRequiresActionIsNotTerminal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusRequiresAction}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	assert.ErrorIs(t, err, ErrPaymentRequiresAction)

	// After the redirect round-trip the same call succeeds.
	provider.status = payments.StatusSucceeded
	confirmed, err := svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
}

func TestConfirmRejectsMismatchedIntent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusSucceeded}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), booking.ID, user.ID, "pi_someone_elses", false)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestConfirmWithoutIntent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusSucceeded}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)

	_, err := svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestAdminRefund(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusSucceeded}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)

	refunded, err := svc.Refund(context.Background(), booking.ID, 0, "guest complaint")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, refunded.Status)
	assert.Equal(t, models.PaymentRefunded, refunded.PaymentStatus)
	assert.Equal(t, 1, provider.refundCalls)

	var payment models.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	assert.Equal(t, payment.AmountMinor, payment.RefundedMinor)

	// A refunded booking cannot be refunded again.
	_, err = svc.Refund(context.Background(), booking.ID, 0, "")
	assert.ErrorIs(t, err, ErrBookingNotRefundable)
}

func TestAdminRefundResumesAfterRecordedRefund(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	hotel := seedHotel(t, db, 1000, 10)
	provider := &fakeProvider{status: payments.StatusSucceeded}
	bookingSvc := newBookingService(db, provider)
	svc := NewPaymentService(db, provider, "usd")

	booking := createPendingBooking(t, bookingSvc, user.ID, hotel.ID)
	_, err := svc.CreateIntent(context.Background(), booking.ID, user.ID, false)
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), booking.ID, user.ID, "", false)
	require.NoError(t, err)

	// A prior refund attempt moved the money and recorded the refund id,
	// but failed before the booking status changed.
	var payment models.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	require.NoError(t, db.Model(&payment).Updates(map[string]any{
		"status": "refunded", "refund_id": "re_prior", "refunded_minor": payment.AmountMinor,
	}).Error)

	refunded, err := svc.Refund(context.Background(), booking.ID, 0, "retry")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, refunded.Status)
	assert.Equal(t, models.PaymentRefunded, refunded.PaymentStatus)
	assert.Equal(t, 0, provider.refundCalls, "a recorded refund must not hit the processor again")
}
