package booking

import "time"

type BookSeatsRequest struct {
	UserID      int64  `json:"-"`
	EventID     int64  `json:"event_id" binding:"required"`
	SeatNumbers []int  `json:"seat_numbers" binding:"required"`
	PaymentID   string `json:"payment_id" binding:"required"`
}

type EventSummary struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Time     string    `json:"time,omitempty"`
	Venue    string    `json:"venue"`
	Category string    `json:"category,omitempty"`
	Image    string    `json:"image,omitempty"`
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingSummary struct {
	ID            int64        `json:"id"`
	Event         EventSummary `json:"event"`
	Seats         []int        `json:"seats"`
	TotalAmount   float64      `json:"total_amount"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	BookedAt      time.Time    `json:"booked_at"`
}

// Ticket is the printable projection returned alongside a confirmation.
type Ticket struct {
	BookingID   int64     `json:"booking_id"`
	EventName   string    `json:"event_name"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Seats       []int     `json:"seats"`
	TotalAmount float64   `json:"total_amount"`
	BookingDate time.Time `json:"booking_date"`
}

type BookingConfirmation struct {
	Booking BookingSummary `json:"booking"`
	Ticket  Ticket         `json:"ticket"`
}

type SeatDetail struct {
	SeatNumber       int        `json:"seat_number"`
	Price            float64    `json:"price"`
	IsCancelled      bool       `json:"is_cancelled"`
	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
}

type BookingDetails struct {
	ID            int64        `json:"id"`
	User          *UserSummary `json:"user,omitempty"`
	Event         EventSummary `json:"event"`
	Seats         []SeatDetail `json:"seats"`
	TotalAmount   float64      `json:"total_amount"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	PaymentID     string       `json:"payment_id"`
	BookedAt      time.Time    `json:"booked_at"`
	CreatedAt     time.Time    `json:"created_at"`
}

type CancellationSummary struct {
	BookingID    int64     `json:"booking_id"`
	Status       string    `json:"status"`
	CancelledAt  time.Time `json:"cancelled_at"`
	RefundAmount float64   `json:"refund_amount"`
}

type ListBookingsRequest struct {
	Status  string
	EventID int64
	UserID  int64
	Page    int
	Limit   int
}

type BookingPage struct {
	Items           []BookingDetails `json:"data"`
	Count           int              `json:"count"`
	Total           int64            `json:"total"`
	Page            int              `json:"page"`
	Pages           int              `json:"pages"`
	HasNextPage     bool             `json:"has_next_page"`
	HasPreviousPage bool             `json:"has_previous_page"`
}
