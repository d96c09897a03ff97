package models

import "time"

// Payment holds the processor handle for a booking. The unique index on
// BookingID is what makes intent creation idempotent per booking.
type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex;not null;column:booking_id" json:"booking_id"`

	IntentID       string  `gorm:"column:intent_id;size:200;index" json:"intent_id"`
	ClientSecret   string  `gorm:"column:client_secret;size:255" json:"-"`
	IdempotencyKey string  `gorm:"column:idempotency_key;size:128" json:"-"`
	AmountMinor    int64   `gorm:"column:amount_minor" json:"amount_minor"`
	Currency       string  `gorm:"size:10" json:"currency"`
	Status         string  `gorm:"size:50;default:'pending'" json:"status"`
	RefundID       string  `gorm:"column:refund_id;size:200" json:"refund_id,omitempty"`
	RefundedMinor  int64   `gorm:"column:refunded_minor" json:"refunded_minor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
