package payment

import "time"

type CreateOrderRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"` // minor units
	Currency string `json:"currency"`
}

type OrderResponse struct {
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	KeyID     string    `json:"key_id"`
	CreatedAt time.Time `json:"created_at"`
}

type VerifyRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type VerifyResponse struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Verified  bool   `json:"verified"`
}
