package models

import "time"

// Favorite is a set membership, not a list: the composite unique index
// makes a double-add collapse into one row.
type Favorite struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"column:user_id;uniqueIndex:idx_user_hotel" json:"user_id"`
	HotelID uint `gorm:"column:hotel_id;uniqueIndex:idx_user_hotel" json:"hotel_id"`

	CreatedAt time.Time `json:"created_at"`

	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`
}
