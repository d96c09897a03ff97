package models

import "time"

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"column:user_id;index" json:"user_id"`
	Type    string `gorm:"size:50" json:"type"`
	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Read    bool   `gorm:"default:false;index" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
