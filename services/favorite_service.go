package services

import (
	"errors"
	"fmt"

	"hotelease/models"

	"gorm.io/gorm"
)

type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// Add puts the hotel in the user's favorite set. Adding an existing
// favorite is a no-op, so add/remove pairs always return the set to its
// prior state.
func (s *FavoriteService) Add(userID, hotelID uint) error {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHotelNotFound
		}
		return fmt.Errorf("failed to find hotel: %w", err)
	}

	fav := models.Favorite{UserID: userID, HotelID: hotelID}
	if err := s.DB.Where(&fav).FirstOrCreate(&fav).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove drops the hotel from the set; removing an absent favorite is a
// no-op.
func (s *FavoriteService) Remove(userID, hotelID uint) error {
	if err := s.DB.Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *FavoriteService) List(userID uint, page, limit int) ([]models.Favorite, int64, error) {
	page, limit = normalizePage(page, limit)

	q := s.DB.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var favorites []models.Favorite
	if err := q.Preload("Hotel").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&favorites).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, total, nil
}

func (s *FavoriteService) Check(userID, hotelID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
