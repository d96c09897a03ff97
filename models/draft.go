package models

import "time"

// FieldError is a single field-level validation failure. Drafts that fail
// validation are resolved at the edge and never reach the data layer.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BookingDraft is the typed, unsaved reservation-in-progress. It carries
// exactly what the client edits; nights and money are always derived from
// it, never stored on it.
type BookingDraft struct {
	HotelID  uint      `json:"hotel_id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Guests   int       `json:"guests"`
	Rooms    int       `json:"rooms"`
}

// Validate is pure: it inspects the draft and returns every field error at
// once. An empty slice means the draft is submittable.
func (d BookingDraft) Validate() []FieldError {
	var errs []FieldError

	if d.HotelID == 0 {
		errs = append(errs, FieldError{Field: "hotel_id", Message: "hotel is required"})
	}
	if d.CheckIn.IsZero() {
		errs = append(errs, FieldError{Field: "check_in", Message: "check-in date is required"})
	}
	if d.CheckOut.IsZero() {
		errs = append(errs, FieldError{Field: "check_out", Message: "check-out date is required"})
	}
	if !d.CheckIn.IsZero() && !d.CheckOut.IsZero() && !d.CheckOut.After(d.CheckIn) {
		errs = append(errs, FieldError{Field: "check_out", Message: "check-out must be after check-in"})
	}
	if d.Guests < 1 {
		errs = append(errs, FieldError{Field: "guests", Message: "at least one guest is required"})
	}
	if d.Rooms < 1 {
		errs = append(errs, FieldError{Field: "rooms", Message: "at least one room is required"})
	}

	return errs
}

// Reset clears the draft back to its zero state.
func (d *BookingDraft) Reset() {
	*d = BookingDraft{}
}
