package payment

import (
	"context"
	"time"

	"eventtix/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, p *domain.PaymentOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error)
	MarkVerified(ctx context.Context, orderID, paymentID string, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, orderID string) error
}
