package controllers

import (
	"net/http"

	"hotelease/middleware"
	"hotelease/models"
	"hotelease/services"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Payments *services.PaymentService
}

func NewBookingController(bookings *services.BookingService, payments *services.PaymentService) *BookingController {
	return &BookingController{Bookings: bookings, Payments: payments}
}

type createBookingPayload struct {
	HotelID  uint   `json:"hotelId" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
	Guests   int    `json:"guests" binding:"required"`
	Rooms    int    `json:"rooms" binding:"required"`
}

type cancelPayload struct {
	Reason string `json:"reason"`
}

type paymentIntentPayload struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

type confirmPaymentPayload struct {
	PaymentIntentID string `json:"paymentIntentId"`
	BookingID       uint   `json:"bookingId" binding:"required"`
}

// CreateBooking turns the client's draft into a pending booking. The draft
// is validated before anything touches the data layer.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}

	draft := models.BookingDraft{
		HotelID:  payload.HotelID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   payload.Guests,
		Rooms:    payload.Rooms,
	}

	booking, err := bc.Bookings.Create(userID, draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	bookings, total, err := bc.Bookings.MyBookings(userID, c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(bookings, total, page, limit))
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	booking, err := bc.Bookings.GetByID(id, userID, middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload cancelPayload
	_ = c.ShouldBindJSON(&payload) // reason is optional

	booking, err := bc.Bookings.Cancel(c.Request.Context(), id, userID, middleware.IsAdmin(c), payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CreatePaymentIntent returns the booking's client secret. Calling it
// again returns the same intent; it never opens a second charge.
func (bc *BookingController) CreatePaymentIntent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload paymentIntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingId required")
		return
	}

	payment, err := bc.Payments.CreateIntent(c.Request.Context(), payload.BookingID, userID, middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"clientSecret":    payment.ClientSecret,
		"paymentIntentId": payment.IntentID,
		"amount":          payment.AmountMinor,
		"currency":        payment.Currency,
	})
}

// ConfirmPayment is the resumable confirmation handler: safe to call again
// after a redirect round-trip or an interrupted session.
func (bc *BookingController) ConfirmPayment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload confirmPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingId required")
		return
	}

	booking, err := bc.Payments.Confirm(c.Request.Context(), payload.BookingID, userID, payload.PaymentIntentID, middleware.IsAdmin(c))
	if err != nil {
		// Asynchronous outcomes are not failures: the intent is still in
		// flight and the client should re-invoke after the processor
		// settles.
		switch err {
		case services.ErrPaymentRequiresAction, services.ErrPaymentProcessing:
			c.JSON(http.StatusAccepted, gin.H{"success": true, "data": gin.H{"payment_status": err.Error()}})
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
