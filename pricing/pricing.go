// Package pricing derives booking quotes from a nightly rate and a date
// range. Calculations are pure so they are safe to rerun on every edit.
package pricing

import (
	"math"
	"time"
)

// Calculator holds the pricing rule. The discount is a flat amount applied
// once the stay is longer than DiscountNights.
type Calculator struct {
	Currency       string
	DiscountNights int
	DiscountAmount float64
}

// Quote is the derived price breakdown for one room.
type Quote struct {
	Nights   int     `json:"nights"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Default matches the rule the booking pages apply: stays over three
// nights get a flat 200 off.
func Default() Calculator {
	return Calculator{Currency: "usd", DiscountNights: 3, DiscountAmount: 200}
}

// Nights counts billable nights between the dates, rounding partial days
// up and never going negative. A missing date means zero nights.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// Quote computes the price breakdown for the given nightly rate and dates.
func (c Calculator) Quote(nightlyRate float64, checkIn, checkOut time.Time) Quote {
	nights := Nights(checkIn, checkOut)
	if nights == 0 {
		return Quote{}
	}

	subtotal := float64(nights) * nightlyRate
	var discount float64
	if nights > c.DiscountNights {
		discount = c.DiscountAmount
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	return Quote{Nights: nights, Subtotal: subtotal, Discount: discount, Total: total}
}

// MinorUnits converts an amount to integer minor units (cents) for the
// payment processor.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
