package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotelease/services"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels to HTTP statuses so every
// controller answers the same way for the same failure.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation failed",
			"fields":  vErr.Fields,
		})
		return
	}

	var declined *services.PaymentDeclinedError
	if errors.As(err, &declined) {
		utils.JSONError(c, http.StatusPaymentRequired, declined.Error())
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrHotelNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrResetTokenInvalid),
		errors.Is(err, services.ErrInvalidRating):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrHotelNotAvailable),
		errors.Is(err, services.ErrBookingAlreadyCancelled),
		errors.Is(err, services.ErrBookingNotCancellable),
		errors.Is(err, services.ErrBookingNotPayable),
		errors.Is(err, services.ErrBookingNotRefundable),
		errors.Is(err, services.ErrPaymentNotCompleted):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

// parseDate accepts the date-only form the booking pages send, falling
// back to RFC 3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryFloat(c *gin.Context, name string) float64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// paginated is the standard list envelope.
func paginated(items any, total int64, page, limit int) gin.H {
	return gin.H{"items": items, "total": total, "page": page, "limit": limit}
}
