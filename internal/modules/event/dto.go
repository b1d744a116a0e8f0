package event

import "time"

type CreateEventRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Time        string  `json:"time" binding:"required"`
	Venue       string  `json:"venue" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	TotalSeats  int     `json:"total_seats" binding:"required"`
	Image       string  `json:"image"`
}

// UpdateEventRequest uses pointers so absent fields stay untouched.
type UpdateEventRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Venue       *string  `json:"venue"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	TotalSeats  *int     `json:"total_seats"`
	Image       *string  `json:"image"`
}

type UpdateSeatLimitRequest struct {
	TotalSeats int `json:"total_seats" binding:"required"`
}

type ListEventsRequest struct {
	Date     string
	Category string
	Venue    string
	Search   string
	PriceMin string
	PriceMax string
}

type SeatView struct {
	SeatNumber int  `json:"seat_number"`
	IsBooked   bool `json:"is_booked"`
}

type EventResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Date           time.Time  `json:"date"`
	Time           string     `json:"time"`
	Venue          string     `json:"venue"`
	Category       string     `json:"category"`
	Price          float64    `json:"price"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	Seats          []SeatView `json:"seats,omitempty"`
	Image          string     `json:"image,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
