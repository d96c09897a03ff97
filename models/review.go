package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"column:user_id;index" json:"user_id"`
	HotelID   uint   `gorm:"column:hotel_id;index" json:"hotel_id"`
	BookingID *uint  `gorm:"column:booking_id" json:"booking_id,omitempty"`
	Rating    int    `gorm:"column:rating" json:"rating"`
	Title     string `gorm:"size:255" json:"title"`
	Comment   string `gorm:"type:text" json:"comment"`
	Approved  bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
