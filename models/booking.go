package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"index;column:user_id" json:"user_id"`
	HotelID uint `gorm:"index;column:hotel_id" json:"hotel_id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`
	Guests   int       `gorm:"column:guests;default:1" json:"guests"`
	Rooms    int       `gorm:"column:rooms;default:1" json:"rooms"`

	Nights      int     `gorm:"column:nights" json:"nights"`
	Subtotal    float64 `gorm:"column:subtotal" json:"subtotal"`
	Discount    float64 `gorm:"column:discount" json:"discount"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`

	Status        string `gorm:"column:status;size:20;default:'pending';index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:20;default:'pending'" json:"payment_status"`

	CancellationReason string     `gorm:"column:cancellation_reason;size:255" json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID;references:ID" json:"hotel,omitempty"`
}
