package controllers

import (
	"net/http"
	"strconv"

	"hotelease/models"
	"hotelease/pricing"
	"hotelease/services"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin    *services.AdminService
	Reviews  *services.ReviewService
	Payments *services.PaymentService
}

func NewAdminController(admin *services.AdminService, reviews *services.ReviewService, payments *services.PaymentService) *AdminController {
	return &AdminController{Admin: admin, Reviews: reviews, Payments: payments}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.Admin.Dashboard()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ac *AdminController) GetUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	users, total, err := ac.Admin.ListUsers(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(users, total, page, limit))
}

func (ac *AdminController) GetHotels(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	hotels, total, err := ac.Admin.ListHotels(c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(hotels, total, page, limit))
}

func (ac *AdminController) GetBookings(c *gin.Context) {
	var hotelID, userID uint
	if raw := c.Query("hotel_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			hotelID = uint(n)
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID = uint(n)
		}
	}

	filters := services.BookingFilters{
		Status:  c.Query("status"),
		HotelID: hotelID,
		UserID:  userID,
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 20),
	}

	bookings, total, err := ac.Admin.ListBookings(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(bookings, total, filters.Page, filters.Limit))
}

type bookingStatusPayload struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
}

func (ac *AdminController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload bookingStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status required")
		return
	}

	booking, err := ac.Admin.UpdateBookingStatus(id, payload.Status, payload.CancellationReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ac *AdminController) ApproveReview(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	review, err := ac.Reviews.Approve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, review)
}

type refundPayload struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// ProcessRefund refunds a paid booking, fully when no amount is given.
func (ac *AdminController) ProcessRefund(c *gin.Context) {
	bookingID, ok := parseUintParam(c, "bookingId")
	if !ok {
		return
	}

	var payload refundPayload
	_ = c.ShouldBindJSON(&payload) // both fields optional

	var amountMinor int64
	if payload.Amount > 0 {
		amountMinor = pricing.MinorUnits(payload.Amount)
	}

	booking, err := ac.Payments.Refund(c.Request.Context(), bookingID, amountMinor, payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ---- Employees ----

func (ac *AdminController) GetEmployees(c *gin.Context) {
	employees, err := ac.Admin.ListEmployees()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, employees)
}

func (ac *AdminController) CreateEmployee(c *gin.Context) {
	var emp models.Employee
	if err := c.ShouldBindJSON(&emp); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := ac.Admin.CreateEmployee(&emp); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, emp)
}

func (ac *AdminController) DeleteEmployee(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ac.Admin.DeleteEmployee(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "employee deleted"})
}

// ---- Settings ----

func (ac *AdminController) GetSettings(c *gin.Context) {
	setting, err := ac.Admin.GetSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

func (ac *AdminController) UpdateSettings(c *gin.Context) {
	var payload models.HotelSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	setting, err := ac.Admin.UpdateSettings(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
