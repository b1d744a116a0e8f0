package domain

import "time"

// MaxBookableSeats is the hard platform ceiling on bookable seats per event.
// It is independent of an event's configured TotalSeats and is the single
// constant behind event creation validation, seat slot generation and
// booking-time seat validation.
const MaxBookableSeats = 40

// Seat is one addressable unit of event capacity.
type Seat struct {
	SeatNumber  int        `json:"seat_number"`
	IsBooked    bool       `json:"is_booked"`
	BookedBy    *int64     `json:"booked_by,omitempty"`
	BookingDate *time.Time `json:"booking_date,omitempty"`
}

type Event struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description,omitempty"`
	Date           time.Time `json:"date" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	Venue          string    `json:"venue" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	Price          float64   `json:"price" validate:"required,gte=0"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Seats          []Seat    `json:"seats"`
	Image          string    `json:"image,omitempty"`
	CreatedBy      int64     `json:"created_by,omitempty"`

	// Version guards concurrent seat mutations (optimistic locking).
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureSeatsInitialized materializes seat slots 1..min(TotalSeats, 40) if
// the event has none yet. Idempotent: existing slots are never regenerated.
// Reports whether the seat map changed and therefore needs persisting.
func (e *Event) EnsureSeatsInitialized() bool {
	if len(e.Seats) > 0 {
		return false
	}
	n := e.TotalSeats
	if n > MaxBookableSeats {
		n = MaxBookableSeats
	}
	seats := make([]Seat, 0, n)
	for i := 1; i <= n; i++ {
		seats = append(seats, Seat{SeatNumber: i})
	}
	e.Seats = seats
	return true
}

// ValidateSeatRequest checks every requested seat number before any mutation
// happens (all-or-nothing). The capacity ceiling is checked before any seat
// lookup so that a request for seat 45 fails with ErrCapacityExceeded even
// on a 40-seat event.
func (e *Event) ValidateSeatRequest(seatNumbers []int) error {
	for _, n := range seatNumbers {
		if n > MaxBookableSeats {
			return newSeatError(n, ErrCapacityExceeded)
		}
		if n < 1 || n > e.TotalSeats {
			return newSeatError(n, ErrSeatOutOfRange)
		}
		seat := e.seat(n)
		if seat == nil {
			return newSeatError(n, ErrSeatNotFound)
		}
		if seat.IsBooked {
			return newSeatError(n, ErrSeatAlreadyBooked)
		}
	}
	return nil
}

// MarkSeatsBooked flips the given seats to booked and decrements the
// availability counter. Callers must have run ValidateSeatRequest first.
func (e *Event) MarkSeatsBooked(seatNumbers []int, userID int64, at time.Time) {
	for _, n := range seatNumbers {
		if seat := e.seat(n); seat != nil {
			uid := userID
			ts := at
			seat.IsBooked = true
			seat.BookedBy = &uid
			seat.BookingDate = &ts
		}
	}
	e.AvailableSeats -= len(seatNumbers)
	if e.AvailableSeats < 0 {
		e.AvailableSeats = 0
	}
}

// MarkSeatsReleased is the inverse of MarkSeatsBooked. The availability
// counter is capped so it never exceeds TotalSeats.
func (e *Event) MarkSeatsReleased(seatNumbers []int) {
	for _, n := range seatNumbers {
		if seat := e.seat(n); seat != nil {
			seat.IsBooked = false
			seat.BookedBy = nil
			seat.BookingDate = nil
		}
	}
	e.AvailableSeats += len(seatNumbers)
	if e.AvailableSeats > e.TotalSeats {
		e.AvailableSeats = e.TotalSeats
	}
}

func (e *Event) seat(n int) *Seat {
	for i := range e.Seats {
		if e.Seats[i].SeatNumber == n {
			return &e.Seats[i]
		}
	}
	return nil
}
