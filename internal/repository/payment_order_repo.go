package repository

import (
	"context"
	"time"

	"eventtix/internal/domain"

	"gorm.io/gorm"
)

type PaymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db}
}

type paymentOrderModel struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	OrderID    string     `gorm:"column:order_id;uniqueIndex"`
	Amount     int64      `gorm:"column:amount"`
	Currency   string     `gorm:"column:currency"`
	Status     string     `gorm:"column:status"`
	PaymentID  string     `gorm:"column:payment_id"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (paymentOrderModel) TableName() string { return "payment_orders" }

func toDomainPaymentOrder(m paymentOrderModel) *domain.PaymentOrder {
	return &domain.PaymentOrder{
		ID:         m.ID,
		OrderID:    m.OrderID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Status:     domain.PaymentOrderStatus(m.Status),
		PaymentID:  m.PaymentID,
		VerifiedAt: m.VerifiedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toPaymentOrderModel(p *domain.PaymentOrder) paymentOrderModel {
	return paymentOrderModel{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		PaymentID:  p.PaymentID,
		VerifiedAt: p.VerifiedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, p *domain.PaymentOrder) error {
	m := toPaymentOrderModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	*p = *toDomainPaymentOrder(m)
	return nil
}

func (r *PaymentOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	var m paymentOrderModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainPaymentOrder(m), nil
}

// MarkVerified records a successful signature check. Idempotent: returns
// false without touching the row when the order was already verified.
func (r *PaymentOrderRepository) MarkVerified(ctx context.Context, orderID, paymentID string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&paymentOrderModel{}).
		Where("order_id = ? AND status <> ?", orderID, domain.PaymentOrderVerified).
		Updates(map[string]any{
			"status":      string(domain.PaymentOrderVerified),
			"payment_id":  paymentID,
			"verified_at": at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PaymentOrderRepository) MarkFailed(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Model(&paymentOrderModel{}).
		Where("order_id = ?", orderID).
		Update("status", string(domain.PaymentOrderFailed)).Error
}
