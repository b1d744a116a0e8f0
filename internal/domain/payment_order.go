package domain

import "time"

type PaymentOrderStatus string

const (
	PaymentOrderCreated  PaymentOrderStatus = "created"
	PaymentOrderVerified PaymentOrderStatus = "verified"
	PaymentOrderFailed   PaymentOrderStatus = "failed"
)

// PaymentOrder is a gateway order created before the client pays out-of-band.
// Amount is in minor units (e.g. paise / cents).
type PaymentOrder struct {
	ID         int64              `json:"id"`
	OrderID    string             `json:"order_id"`
	Amount     int64              `json:"amount"`
	Currency   string             `json:"currency"`
	Status     PaymentOrderStatus `json:"status"`
	PaymentID  string             `json:"payment_id,omitempty"`
	VerifiedAt *time.Time         `json:"verified_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
