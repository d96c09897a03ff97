package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelease/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

type ReviewInput struct {
	Rating    int
	Title     string
	Comment   string
	BookingID *uint
}

// Create stores a review pending admin approval; it does not affect the
// hotel rating until approved.
func (s *ReviewService) Create(userID, hotelID uint, input ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	review := models.Review{
		UserID:    userID,
		HotelID:   hotelID,
		BookingID: input.BookingID,
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// ListApproved returns the approved reviews for a hotel, newest first.
func (s *ReviewService) ListApproved(hotelID uint, page, limit int) ([]models.Review, int64, error) {
	page, limit = normalizePage(page, limit)

	q := s.DB.Model(&models.Review{}).Where("hotel_id = ? AND approved = ?", hotelID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	if err := q.Preload("User").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// Approve marks a review approved and folds it into the hotel's rating
// (average of approved reviews) inside one transaction.
func (s *ReviewService) Approve(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	if review.Approved {
		return &review, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Update("approved", true).Error; err != nil {
			return fmt.Errorf("failed to approve review: %w", err)
		}

		type agg struct {
			Avg   float64
			Count int64
		}
		var a agg
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("hotel_id = ? AND approved = ?", review.HotelID, true).
			Scan(&a).Error; err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		if err := tx.Model(&models.Hotel{}).Where("id = ?", review.HotelID).
			Updates(map[string]any{"rating": a.Avg, "review_count": a.Count}).Error; err != nil {
			return fmt.Errorf("failed to update hotel rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	review.Approved = true
	return &review, nil
}
