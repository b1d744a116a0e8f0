package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventtix/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	orders          OrderRepository
	keyID           string
	keySecret       string
	defaultCurrency string
}

func NewService(orders OrderRepository, keyID, keySecret, defaultCurrency string) *Service {
	return &Service{
		orders:          orders,
		keyID:           keyID,
		keySecret:       keySecret,
		defaultCurrency: defaultCurrency,
	}
}

// CreateOrder registers a gateway order the client pays against out-of-band.
// The order ID is what the gateway later signs together with the payment ID.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	order := &domain.PaymentOrder{
		OrderID:  "order_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:   req.Amount,
		Currency: currency,
		Status:   domain.PaymentOrderCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return &OrderResponse{
		OrderID:   order.OrderID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    string(order.Status),
		KeyID:     s.keyID,
		CreatedAt: order.CreatedAt,
	}, nil
}

// VerifyPayment checks the gateway callback signature: HMAC-SHA256 over
// "<order_id>|<payment_id>" with the shared key secret, hex encoded. A failed
// check marks the order failed; a repeated successful check is a no-op.
func (s *Service) VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	order, err := s.orders.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	expected := s.sign(req.OrderID, req.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		if err := s.orders.MarkFailed(ctx, order.OrderID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidSignature
	}

	if _, err := s.orders.MarkVerified(ctx, order.OrderID, req.PaymentID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return &VerifyResponse{
		OrderID:   order.OrderID,
		PaymentID: req.PaymentID,
		Status:    string(domain.PaymentOrderVerified),
		Verified:  true,
	}, nil
}

func (s *Service) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}
