package admin

import (
	"context"
	"errors"

	"eventtix/internal/domain"
	"eventtix/internal/modules/booking"

	"gorm.io/gorm"
)

const recentBookingsLimit = 5

type Service struct {
	users     UserRepository
	bookings  BookingRepository
	canceller BookingCanceller
}

func NewService(users UserRepository, bookings BookingRepository, canceller BookingCanceller) *Service {
	return &Service{
		users:     users,
		bookings:  bookings,
		canceller: canceller,
	}
}

// ListUsers returns every user with their booking count, busiest first.
func (s *Service) ListUsers(ctx context.Context) ([]UserListItem, error) {
	rows, err := s.users.ListWithBookingCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, UserListItem{
			ID:           row.User.ID,
			Name:         row.User.Name,
			Email:        row.User.Email,
			Role:         string(row.User.Role),
			Status:       string(row.User.Status),
			BookingCount: row.BookingCount,
			CreatedAt:    row.User.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) UpdateUserStatus(ctx context.Context, userID int64, status string) (*UserListItem, error) {
	st := domain.UserStatus(status)
	if st != domain.UserActive && st != domain.UserBlocked {
		return nil, ErrInvalidRequest
	}

	u, err := s.users.UpdateStatus(ctx, userID, st)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &UserListItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}, nil
}

// UpdateBookingStatus sets a booking's status. A cancellation is not a plain
// status write: it goes through the booking service so the seats are released
// back to the event.
func (s *Service) UpdateBookingStatus(ctx context.Context, adminID, bookingID int64, status string) (*domain.Booking, error) {
	st := domain.BookingStatus(status)

	if st == domain.BookingCancelled {
		_, err := s.canceller.CancelBooking(ctx, adminID, string(domain.RoleAdmin), bookingID)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		return s.bookings.GetByID(ctx, bookingID)
	}

	b, err := s.bookings.UpdateStatus(ctx, bookingID, st)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Analytics aggregates the dashboard summary over confirmed, paid bookings.
func (s *Service) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookings.CountConfirmed(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.bookings.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.bookings.Recent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if totalBookings > 0 {
		avg = totalRevenue / float64(totalBookings)
	}

	recentOut := make([]RecentBooking, 0, len(recent))
	for i := range recent {
		b := &recent[i]
		item := RecentBooking{
			ID:          b.ID,
			TotalAmount: b.TotalAmount,
			BookedAt:    b.BookedAt,
		}
		if b.User != nil {
			item.UserName = b.User.Name
		}
		if b.Event != nil {
			item.EventName = b.Event.Name
		}
		recentOut = append(recentOut, item)
	}

	return &AnalyticsSummary{
		TotalUsers:      totalUsers,
		TotalBookings:   totalBookings,
		TotalRevenue:    totalRevenue,
		AvgBookingValue: avg,
		RecentBookings:  recentOut,
	}, nil
}
