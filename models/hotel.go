package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HotelActive    = "active"
	HotelPending   = "pending"
	HotelSuspended = "suspended"
)

type Hotel struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:255;index" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Address       string  `gorm:"size:255" json:"address"`
	City          string  `gorm:"size:100;index" json:"city"`
	Country       string  `gorm:"size:100;index" json:"country"`
	PricePerNight float64 `gorm:"column:price_per_night" json:"price_per_night"`
	Rating        float64 `gorm:"default:0" json:"rating"`
	ReviewCount   int     `gorm:"column:review_count;default:0" json:"review_count"`

	// TotalRooms is the inventory the availability check books against.
	TotalRooms int    `gorm:"column:total_rooms;default:10" json:"total_rooms"`
	Status     string `gorm:"size:20;default:'active';index" json:"status"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Images    datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
