package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is a staff record managed from the admin dashboard. It is not a
// login account; admins are Users with the admin role.
type Employee struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"full_name"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone    string `gorm:"size:50" json:"phone"`
	Position string `gorm:"size:100" json:"position"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
