package admin

import (
	"errors"
	"net/http"
	"strconv"

	"eventtix/internal/modules/booking"
	"eventtix/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:id/status", h.UpdateUserStatus)
	rg.PUT("/bookings/:id/status", h.UpdateBookingStatus)
	rg.GET("/analytics", h.Analytics)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count": len(users),
		"users": users,
	})
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid user ID")
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status payload")
		return
	}

	user, err := h.service.UpdateUserStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		h.writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid status payload")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), c.GetInt64("user_id"), bookingID, req.Status)
	if err != nil {
		h.writeAdminError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Analytics(c *gin.Context) {
	summary, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute analytics")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) writeAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid admin request")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, booking.ErrAlreadyCancelled):
		response.Error(c, http.StatusBadRequest, "ALREADY_CANCELLED", "Booking is already cancelled")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process admin request")
	}
}
