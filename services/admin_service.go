package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelease/models"

	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

type DashboardStats struct {
	Users            int64            `json:"users"`
	Hotels           int64            `json:"hotels"`
	Bookings         int64            `json:"bookings"`
	Revenue          float64          `json:"revenue"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
}

func (s *AdminService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{BookingsByStatus: map[string]int64{}}

	if err := s.DB.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.DB.Model(&models.Hotel{}).Count(&stats.Hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to count hotels: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).Count(&stats.Bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	var revenue float64
	if err := s.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", models.PaymentPaid).
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	stats.Revenue = revenue

	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := s.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group bookings: %w", err)
	}
	for _, r := range rows {
		stats.BookingsByStatus[r.Status] = r.Count
	}
	return stats, nil
}

func (s *AdminService) ListUsers(page, limit int) ([]models.User, int64, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := s.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// ListHotels is the moderation view: every status, soft-deleted excluded.
func (s *AdminService) ListHotels(status string, page, limit int) ([]models.Hotel, int64, error) {
	page, limit = normalizePage(page, limit)

	q := s.DB.Model(&models.Hotel{})
	if status = strings.TrimSpace(status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	var hotels []models.Hotel
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&hotels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, total, nil
}

type BookingFilters struct {
	Status  string
	HotelID uint
	UserID  uint
	Page    int
	Limit   int
}

func (s *AdminService) ListBookings(f BookingFilters) ([]models.Booking, int64, error) {
	page, limit := normalizePage(f.Page, f.Limit)

	q := s.DB.Model(&models.Booking{})
	if status := strings.TrimSpace(f.Status); status != "" {
		q = q.Where("status = ?", status)
	}
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	if err := q.Preload("Hotel").Preload("User").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// UpdateBookingStatus is the admin override. It still only moves bookings
// between the three defined statuses.
func (s *AdminService) UpdateBookingStatus(id uint, status, reason string) (*models.Booking, error) {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
	default:
		return nil, fmt.Errorf("invalid booking status %q", status)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	updates := map[string]any{"status": status}
	now := time.Now()
	switch status {
	case models.BookingConfirmed:
		updates["confirmed_at"] = now
	case models.BookingCancelled:
		updates["cancelled_at"] = now
		updates["cancellation_reason"] = strings.TrimSpace(reason)
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}

// ---- Employees ----

func (s *AdminService) ListEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.Order("full_name ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *AdminService) CreateEmployee(emp *models.Employee) error {
	emp.FullName = strings.TrimSpace(emp.FullName)
	emp.Email = strings.ToLower(strings.TrimSpace(emp.Email))
	if emp.FullName == "" || emp.Email == "" {
		return &ValidationError{Fields: []models.FieldError{
			{Field: "full_name", Message: "full name and email are required"},
		}}
	}
	if err := s.DB.Create(emp).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (s *AdminService) DeleteEmployee(id uint) error {
	res := s.DB.Delete(&models.Employee{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ---- Hotel settings ----

func (s *AdminService) GetSettings() (*models.HotelSetting, error) {
	var setting models.HotelSetting
	if err := s.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.HotelSetting{}, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &setting, nil
}

func (s *AdminService) UpdateSettings(input models.HotelSetting) (*models.HotelSetting, error) {
	setting, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	setting.Name = input.Name
	setting.Address = input.Address
	setting.Phone = input.Phone
	setting.Email = input.Email
	setting.Website = input.Website
	setting.Logo = input.Logo

	if err := s.DB.Save(setting).Error; err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return setting, nil
}
