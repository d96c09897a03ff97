package controllers

import (
	"net/http"

	"hotelease/middleware"
	"hotelease/services"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
)

// UserController covers the signed-in user's surface beyond bookings:
// favorites, reviews and notifications.
type UserController struct {
	Favorites     *services.FavoriteService
	Reviews       *services.ReviewService
	Notifications *services.NotificationService
}

func NewUserController(fav *services.FavoriteService, rev *services.ReviewService, not *services.NotificationService) *UserController {
	return &UserController{Favorites: fav, Reviews: rev, Notifications: not}
}

type favoritePayload struct {
	HotelID uint `json:"hotelId" binding:"required"`
}

type reviewPayload struct {
	Rating    int    `json:"rating" binding:"required"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	BookingID *uint  `json:"booking_id"`
}

func (uc *UserController) AddFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload favoritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotelId required")
		return
	}

	if err := uc.Favorites.Add(userID, payload.HotelID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"favorited": true})
}

func (uc *UserController) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	hotelID, ok := parseUintParam(c, "hotelId")
	if !ok {
		return
	}

	if err := uc.Favorites.Remove(userID, hotelID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"favorited": false})
}

func (uc *UserController) GetFavorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	favorites, total, err := uc.Favorites.List(userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(favorites, total, page, limit))
}

func (uc *UserController) CheckFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	hotelID, ok := parseUintParam(c, "hotelId")
	if !ok {
		return
	}

	favorited, err := uc.Favorites.Check(userID, hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"favorited": favorited})
}

func (uc *UserController) CreateReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	hotelID, ok := parseUintParam(c, "hotelId")
	if !ok {
		return
	}

	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "rating required")
		return
	}

	review, err := uc.Reviews.Create(userID, hotelID, services.ReviewInput{
		Rating:    payload.Rating,
		Title:     payload.Title,
		Comment:   payload.Comment,
		BookingID: payload.BookingID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

func (uc *UserController) GetHotelReviews(c *gin.Context) {
	hotelID, ok := parseUintParam(c, "hotelId")
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	reviews, total, err := uc.Reviews.ListApproved(hotelID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(reviews, total, page, limit))
}

func (uc *UserController) GetNotifications(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	unreadOnly := c.Query("unreadOnly") == "true"

	notifications, total, err := uc.Notifications.List(userID, unreadOnly, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, paginated(notifications, total, page, limit))
}

func (uc *UserController) MarkNotificationRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	note, err := uc.Notifications.MarkRead(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, note)
}
