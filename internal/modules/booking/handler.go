package booking

import (
	"errors"
	"net/http"
	"strconv"

	"eventtix/internal/domain"
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
	rg.POST("/bookings", h.BookSeats)
	rg.GET("/bookings/my-bookings", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
}

func (h *Handler) BookSeats(c *gin.Context) {
	var req BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking request")
		return
	}
	req.UserID = c.GetInt64("user_id")

	confirmation, err := h.service.BookSeats(c.Request.Context(), req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, confirmation)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking ID")
		return
	}

	summary, err := h.service.CancelBooking(
		c.Request.Context(),
		c.GetInt64("user_id"),
		c.GetString("role"),
		bookingID,
	)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	bookings, err := h.service.GetUserBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking ID")
		return
	}

	details, err := h.service.GetBookingByID(
		c.Request.Context(),
		bookingID,
		c.GetInt64("user_id"),
		c.GetString("role"),
	)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

func (h *Handler) ListBookings(c *gin.Context) {
	req := ListBookingsRequest{
		Status: c.Query("status"),
	}
	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	req.EventID, _ = strconv.ParseInt(c.Query("event_id"), 10, 64)
	req.UserID, _ = strconv.ParseInt(c.Query("user_id"), 10, 64)

	page, err := h.service.ListBookings(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}

	response.Success(c, http.StatusOK, page)
}

// writeBookingError maps service errors to HTTP responses. Seat-level
// failures name the offending seat so the client can deselect and retry
// without re-fetching the seat map.
func (h *Handler) writeBookingError(c *gin.Context, err error) {
	var seatErr *domain.SeatError
	var details any
	if errors.As(err, &seatErr) {
		details = gin.H{"seat_number": seatErr.SeatNumber}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking request")
	case errors.Is(err, ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this booking")
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusBadRequest, "ALREADY_CANCELLED", "Booking is already cancelled")
	case errors.Is(err, domain.ErrCapacityExceeded):
		response.ErrorWithDetails(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", err.Error(), details)
	case errors.Is(err, domain.ErrSeatOutOfRange):
		response.ErrorWithDetails(c, http.StatusBadRequest, "SEAT_OUT_OF_RANGE", err.Error(), details)
	case errors.Is(err, domain.ErrSeatNotFound):
		response.ErrorWithDetails(c, http.StatusBadRequest, "SEAT_NOT_FOUND", err.Error(), details)
	case errors.Is(err, domain.ErrSeatAlreadyBooked):
		response.ErrorWithDetails(c, http.StatusBadRequest, "SEAT_ALREADY_BOOKED", err.Error(), details)
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Seats changed concurrently, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
