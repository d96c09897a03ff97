package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotelease/models"
	"hotelease/payments"
	"hotelease/pricing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared in-memory database so the pool's connections all see
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.HotelSetting{},
		&models.Employee{},
		&models.Hotel{},
		&models.Booking{},
		&models.Payment{},
		&models.Favorite{},
		&models.Review{},
		&models.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedHotel(t *testing.T, db *gorm.DB, price float64, totalRooms int) *models.Hotel {
	t.Helper()
	hotel := models.Hotel{
		Name:          "Test Hotel",
		City:          "Pretoria",
		Country:       "South Africa",
		PricePerNight: price,
		TotalRooms:    totalRooms,
		Status:        models.HotelActive,
	}
	require.NoError(t, db.Create(&hotel).Error)
	return &hotel
}

func testDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeProvider records calls and answers with a scripted intent status.
type fakeProvider struct {
	createCalls   int
	retrieveCalls int
	refundCalls   int

	status  payments.IntentStatus
	failMsg string
}

func (f *fakeProvider) CreateIntent(_ context.Context, amountMinor int64, currency, _ string) (*payments.Intent, error) {
	f.createCalls++
	return &payments.Intent{
		ID:           fmt.Sprintf("pi_test_%d", f.createCalls),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.createCalls),
		Status:       payments.StatusPending,
		AmountMinor:  amountMinor,
		Currency:     currency,
	}, nil
}

func (f *fakeProvider) RetrieveIntent(_ context.Context, intentID string) (*payments.Intent, error) {
	f.retrieveCalls++
	return &payments.Intent{ID: intentID, Status: f.status, FailureMessage: f.failMsg}, nil
}

func (f *fakeProvider) Refund(_ context.Context, _ string, _ int64) (string, error) {
	f.refundCalls++
	return fmt.Sprintf("re_test_%d", f.refundCalls), nil
}

func newBookingService(db *gorm.DB, provider payments.Provider) *BookingService {
	return NewBookingService(db, pricing.Default(), provider)
}
