package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hotelease/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

type HotelFilters struct {
	City      string
	Country   string
	Search    string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Page      int
	Limit     int
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// List returns active hotels matching the filters plus the total count for
// pagination.
func (s *HotelService) List(f HotelFilters) ([]models.Hotel, int64, error) {
	page, limit := normalizePage(f.Page, f.Limit)

	q := s.DB.Model(&models.Hotel{}).Where("status = ?", models.HotelActive)
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	if country := strings.TrimSpace(f.Country); country != "" {
		q = q.Where("LOWER(country) = LOWER(?)", country)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	var hotels []models.Hotel
	if err := q.Order("rating DESC, id ASC").Offset((page - 1) * limit).Limit(limit).Find(&hotels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, total, nil
}

func (s *HotelService) GetByID(id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

func (s *HotelService) Create(hotel *models.Hotel) error {
	hotel.Name = strings.TrimSpace(hotel.Name)
	if hotel.Name == "" {
		return &ValidationError{Fields: []models.FieldError{{Field: "name", Message: "name is required"}}}
	}
	if hotel.TotalRooms < 1 {
		hotel.TotalRooms = 10
	}
	if hotel.Status == "" {
		hotel.Status = models.HotelActive
	}
	if err := s.DB.Create(hotel).Error; err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (s *HotelService) Update(id uint, updates map[string]any) (*models.Hotel, error) {
	hotel, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	// Amenities arrive as a decoded JSON value; re-encode for the JSON column.
	if v, ok := updates["amenities"]; ok {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode amenities: %w", err)
		}
		updates["amenities"] = datatypes.JSON(encoded)
	}
	if len(updates) > 0 {
		if err := s.DB.Model(hotel).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update hotel: %w", err)
		}
	}
	return hotel, nil
}

func (s *HotelService) Delete(id uint) error {
	res := s.DB.Delete(&models.Hotel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete hotel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// AddImages appends image references to the hotel's image list.
func (s *HotelService) AddImages(id uint, images []string) (*models.Hotel, error) {
	hotel, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	var existing []string
	if len(hotel.Images) > 0 {
		if err := json.Unmarshal(hotel.Images, &existing); err != nil {
			existing = nil
		}
	}
	existing = append(existing, images...)

	encoded, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}
	if err := s.DB.Model(hotel).Update("images", encoded).Error; err != nil {
		return nil, fmt.Errorf("failed to save images: %w", err)
	}
	hotel.Images = encoded
	return hotel, nil
}
