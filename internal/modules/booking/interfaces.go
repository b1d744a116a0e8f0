package booking

import (
	"context"

	"eventtix/internal/domain"
	"eventtix/internal/repository"
)

// BookingRepository persists bookings. The *WithEvent methods write the
// booking and the event seat state in one transaction.
type BookingRepository interface {
	CreateWithEvent(ctx context.Context, b *domain.Booking, ev *domain.Event) error
	UpdateWithEvent(ctx context.Context, b *domain.Booking, ev *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, int64, error)
}

// EventRepository loads and saves event seat state (version-guarded).
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Save(ctx context.Context, ev *domain.Event) error
}

// SeatFeedPublisher pushes seat-state changes to live subscribers. Optional
// collaborator: the service tolerates nil.
type SeatFeedPublisher interface {
	PublishSeatUpdate(eventID int64, seatNumbers []int, booked bool, availableSeats int)
}
