package admin

import (
	"context"

	"eventtix/internal/domain"
	"eventtix/internal/modules/booking"
	"eventtix/internal/repository"
)

type UserRepository interface {
	ListWithBookingCounts(ctx context.Context) ([]repository.UserWithBookings, error)
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	CountConfirmed(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]domain.Booking, error)
}

// BookingCanceller routes admin cancellations through the same path as user
// cancellations, so seats are released and refunds computed instead of the
// status being flipped in place.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, requesterID int64, requesterRole string, bookingID int64) (*booking.CancellationSummary, error)
}
