package booking

import (
	"context"
	"errors"
	"time"

	"eventtix/internal/domain"
	"eventtix/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	events   EventRepository
	feed     SeatFeedPublisher
	locks    *eventLocks
}

func NewService(bookings BookingRepository, events EventRepository, feed SeatFeedPublisher) *Service {
	return &Service{
		bookings: bookings,
		events:   events,
		feed:     feed,
		locks:    newEventLocks(),
	}
}

// BookSeats validates a seat request against the event's seat map, then
// writes the booking and the mutated seat state atomically. Validation is
// all-or-nothing: no mutation happens unless every requested seat passes.
func (s *Service) BookSeats(ctx context.Context, req BookSeatsRequest) (*BookingConfirmation, error) {
	if req.EventID == 0 || len(req.SeatNumbers) == 0 || req.PaymentID == "" {
		return nil, ErrInvalidRequest
	}
	seatNumbers := dedupe(req.SeatNumbers)

	unlock := s.locks.lock(req.EventID)
	defer unlock()

	ev, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// Events should never be configured past the platform ceiling, but the
	// orchestrator does not trust upstream admin input.
	if ev.TotalSeats > domain.MaxBookableSeats {
		return nil, domain.ErrCapacityExceeded
	}

	if ev.EnsureSeatsInitialized() {
		if err := s.events.Save(ctx, ev); err != nil {
			return nil, mapConflict(err)
		}
	}

	if err := ev.ValidateSeatRequest(seatNumbers); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seats := make([]domain.BookingSeat, 0, len(seatNumbers))
	totalAmount := 0.0
	for _, n := range seatNumbers {
		seats = append(seats, domain.BookingSeat{SeatNumber: n, Price: ev.Price})
		totalAmount += ev.Price
	}

	// Payment was already verified by the gateway boundary; the booking is
	// confirmed immediately, there is no pending reservation window.
	b := &domain.Booking{
		UserID:        req.UserID,
		EventID:       req.EventID,
		Seats:         seats,
		TotalAmount:   totalAmount,
		PaymentID:     req.PaymentID,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentCompleted,
		BookedAt:      now,
	}

	ev.MarkSeatsBooked(seatNumbers, req.UserID, now)

	if err := s.bookings.CreateWithEvent(ctx, b, ev); err != nil {
		return nil, mapConflict(err)
	}

	if s.feed != nil {
		s.feed.PublishSeatUpdate(ev.ID, seatNumbers, true, ev.AvailableSeats)
	}

	return &BookingConfirmation{
		Booking: BookingSummary{
			ID: b.ID,
			Event: EventSummary{
				ID:    ev.ID,
				Name:  ev.Name,
				Date:  ev.Date,
				Venue: ev.Venue,
			},
			Seats:         seatNumbers,
			TotalAmount:   totalAmount,
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
			BookedAt:      b.BookedAt,
		},
		Ticket: Ticket{
			BookingID:   b.ID,
			EventName:   ev.Name,
			Date:        ev.Date,
			Time:        ev.Time,
			Venue:       ev.Venue,
			Seats:       seatNumbers,
			TotalAmount: totalAmount,
			BookingDate: b.BookedAt,
		},
	}, nil
}

// CancelBooking releases every seat of the booking back to the event and
// marks the booking cancelled. Only the owner or an admin may cancel.
func (s *Service) CancelBooking(ctx context.Context, requesterID int64, requesterRole string, bookingID int64) (*CancellationSummary, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	unlock := s.locks.lock(b.EventID)
	defer unlock()

	// re-read under the event lock so two cancellations cannot both pass
	// the already-cancelled check
	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != requesterID && requesterRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	ev, err := s.events.GetByID(ctx, b.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the event was deleted out from under a live booking
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	ev.MarkSeatsReleased(b.SeatNumbers())

	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	for i := range b.Seats {
		ts := now
		b.Seats[i].IsCancelled = true
		b.Seats[i].CancellationDate = &ts
	}

	if err := s.bookings.UpdateWithEvent(ctx, b, ev); err != nil {
		return nil, mapConflict(err)
	}

	if s.feed != nil {
		s.feed.PublishSeatUpdate(ev.ID, b.SeatNumbers(), false, ev.AvailableSeats)
	}

	refund := 0.0
	if b.PaymentStatus == domain.PaymentCompleted {
		refund = b.TotalAmount
	}

	return &CancellationSummary{
		BookingID:    b.ID,
		Status:       string(domain.BookingCancelled),
		CancelledAt:  now,
		RefundAmount: refund,
	}, nil
}

// GetUserBookings returns the caller's booking history with embedded event
// summaries. An empty history is a valid, non-error outcome.
func (s *Service) GetUserBookings(ctx context.Context, userID int64) ([]BookingDetails, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingDetails(&bookings[i], false))
	}
	return out, nil
}

// GetBookingByID applies the same owner-or-admin rule as cancellation.
func (s *Service) GetBookingByID(ctx context.Context, bookingID, requesterID int64, requesterRole string) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != requesterID && requesterRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	details := toBookingDetails(b, true)
	return &details, nil
}

// ListBookings is the admin view: filterable, paginated, newest first.
func (s *Service) ListBookings(ctx context.Context, req ListBookingsRequest) (*BookingPage, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	filter := repository.BookingFilter{
		Status:  req.Status,
		EventID: req.EventID,
		UserID:  req.UserID,
	}
	bookings, total, err := s.bookings.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]BookingDetails, 0, len(bookings))
	for i := range bookings {
		items = append(items, toBookingDetails(&bookings[i], true))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &BookingPage{
		Items:           items,
		Count:           len(items),
		Total:           total,
		Page:            page,
		Pages:           pages,
		HasNextPage:     page < pages,
		HasPreviousPage: page > 1,
	}, nil
}

func toBookingDetails(b *domain.Booking, withUser bool) BookingDetails {
	d := BookingDetails{
		ID:            b.ID,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentID:     b.PaymentID,
		BookedAt:      b.BookedAt,
		CreatedAt:     b.CreatedAt,
	}
	if b.Event != nil {
		d.Event = EventSummary{
			ID:       b.Event.ID,
			Name:     b.Event.Name,
			Date:     b.Event.Date,
			Time:     b.Event.Time,
			Venue:    b.Event.Venue,
			Category: b.Event.Category,
			Image:    b.Event.Image,
		}
	}
	if withUser && b.User != nil {
		d.User = &UserSummary{
			ID:    b.User.ID,
			Name:  b.User.Name,
			Email: b.User.Email,
		}
	}
	for _, seat := range b.Seats {
		d.Seats = append(d.Seats, SeatDetail{
			SeatNumber:       seat.SeatNumber,
			Price:            seat.Price,
			IsCancelled:      seat.IsCancelled,
			CancellationDate: seat.CancellationDate,
		})
	}
	return d
}

func mapConflict(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return ErrConflict
	}
	return err
}

func dedupe(nums []int) []int {
	seen := make(map[int]struct{}, len(nums))
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
