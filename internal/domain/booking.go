package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingFailed    BookingStatus = "failed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// BookingSeat is one seat line inside a booking, priced at booking time.
type BookingSeat struct {
	SeatNumber       int        `json:"seat_number"`
	Price            float64    `json:"price"`
	IsCancelled      bool       `json:"is_cancelled"`
	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
}

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	EventID       int64         `json:"event_id"`
	Seats         []BookingSeat `json:"seats"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentID     string        `json:"payment_id"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	BookedAt      time.Time     `json:"booked_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}

// SeatNumbers lists the seat numbers held by this booking.
func (b *Booking) SeatNumbers() []int {
	nums := make([]int, 0, len(b.Seats))
	for _, s := range b.Seats {
		nums = append(nums, s.SeatNumber)
	}
	return nums
}
