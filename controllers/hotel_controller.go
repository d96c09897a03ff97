package controllers

import (
	"net/http"

	"hotelease/models"
	"hotelease/services"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	Hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{Hotels: hotels}
}

// GetHotels is the public catalog listing with filters and pagination.
func (hc *HotelController) GetHotels(c *gin.Context) {
	filters := services.HotelFilters{
		City:      c.Query("city"),
		Country:   c.Query("country"),
		Search:    c.Query("search"),
		MinPrice:  queryFloat(c, "min_price"),
		MaxPrice:  queryFloat(c, "max_price"),
		MinRating: queryFloat(c, "min_rating"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
	}

	hotels, total, err := hc.Hotels.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(hotels, total, filters.Page, filters.Limit))
}

func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	hotel, err := hc.Hotels.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (hc *HotelController) CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	if err := hc.Hotels.Create(&hotel); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	// Only whitelisted columns pass through to the data layer.
	allowed := map[string]bool{
		"name": true, "description": true, "address": true, "city": true,
		"country": true, "price_per_night": true, "total_rooms": true,
		"status": true, "amenities": true,
	}
	filtered := map[string]any{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}

	hotel, err := hc.Hotels.Update(id, filtered)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := hc.Hotels.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "hotel deleted"})
}

type addImagesPayload struct {
	Images []string `json:"images" binding:"required"`
}

func (hc *HotelController) AddImages(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload addImagesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "images required")
		return
	}

	hotel, err := hc.Hotels.AddImages(id, payload.Images)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}
