package event

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.CreateEvent)
	rg.PUT("/events/:id", h.UpdateEvent)
	rg.PUT("/events/:id/seat-limit", h.UpdateSeatLimit)
	rg.DELETE("/events/:id", h.DeleteEvent)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event payload")
		return
	}

	resp, err := h.service.CreateEvent(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) ListEvents(c *gin.Context) {
	req := ListEventsRequest{
		Date:     c.Query("date"),
		Category: c.Query("category"),
		Venue:    c.Query("venue"),
		Search:   c.Query("search"),
		PriceMin: c.Query("price_min"),
		PriceMax: c.Query("price_max"),
	}

	events, err := h.service.ListEvents(c.Request.Context(), req)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event ID")
		return
	}

	resp, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event payload")
		return
	}

	resp, err := h.service.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) UpdateSeatLimit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event ID")
		return
	}

	var req UpdateSeatLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid seat limit payload")
		return
	}

	resp, err := h.service.UpdateSeatLimit(c.Request.Context(), id, req.TotalSeats)
	if err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event ID")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		h.writeEventError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid event request")
	case errors.Is(err, ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case errors.Is(err, ErrSeatsBooked):
		response.Error(c, http.StatusBadRequest, "SEATS_BOOKED", "Cannot remove seats that are already booked")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Event changed concurrently, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process event request")
	}
}
