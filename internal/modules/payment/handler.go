package payment

import (
	"errors"
	"net/http"

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
	rg.POST("/payments/orders", h.CreateOrder)
	rg.POST("/payments/verify", h.VerifyPayment)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order payload")
		return
	}

	resp, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid verification payload")
		return
	}

	resp, err := h.service.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payment request")
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment order not found")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment request")
	}
}
