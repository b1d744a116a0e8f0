package event

import (
	"context"
	"errors"
	"strconv"
	"time"

	"eventtix/internal/domain"
	"eventtix/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	events EventRepository
}

func NewService(events EventRepository) *Service {
	return &Service{events: events}
}

// CreateEvent validates capacity against the platform ceiling and
// materializes the seat map up front, so every event starts with a fully
// populated, all-free seat list.
func (s *Service) CreateEvent(ctx context.Context, createdBy int64, req CreateEventRequest) (*EventResponse, error) {
	if req.TotalSeats < 1 || req.TotalSeats > domain.MaxBookableSeats {
		return nil, ErrInvalidRequest
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidRequest
	}

	ev := &domain.Event{
		Name:           req.Name,
		Description:    req.Description,
		Date:           date,
		Time:           req.Time,
		Venue:          req.Venue,
		Category:       req.Category,
		Price:          req.Price,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Image:          req.Image,
		CreatedBy:      createdBy,
	}
	ev.EnsureSeatsInitialized()

	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}

	resp := toEventResponse(ev, true)
	return &resp, nil
}

func (s *Service) ListEvents(ctx context.Context, req ListEventsRequest) ([]EventResponse, error) {
	filter := repository.EventFilter{
		Category: req.Category,
		Venue:    req.Venue,
		Search:   req.Search,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		filter.Date = &date
	}
	if req.PriceMin != "" {
		v, err := strconv.ParseFloat(req.PriceMin, 64)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		filter.PriceMin = &v
	}
	if req.PriceMax != "" {
		v, err := strconv.ParseFloat(req.PriceMax, 64)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		filter.PriceMax = &v
	}

	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i], false))
	}
	return out, nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*EventResponse, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// Older rows may predate seat materialization; the view heals in memory
	// and the booking path persists on first write.
	ev.EnsureSeatsInitialized()

	resp := toEventResponse(ev, true)
	return &resp, nil
}

func (s *Service) UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*EventResponse, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		ev.Name = *req.Name
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidRequest
		}
		ev.Date = date
	}
	if req.Time != nil {
		ev.Time = *req.Time
	}
	if req.Venue != nil {
		ev.Venue = *req.Venue
	}
	if req.Category != nil {
		ev.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidRequest
		}
		ev.Price = *req.Price
	}
	if req.Image != nil {
		ev.Image = *req.Image
	}
	if req.TotalSeats != nil {
		if err := resizeSeatMap(ev, *req.TotalSeats); err != nil {
			return nil, err
		}
	}

	if err := s.events.Save(ctx, ev); err != nil {
		return nil, mapConflict(err)
	}

	resp := toEventResponse(ev, true)
	return &resp, nil
}

// UpdateSeatLimit changes an event's capacity after creation. Raising the
// limit appends fresh free slots; lowering it is refused if any of the seats
// being removed are booked.
func (s *Service) UpdateSeatLimit(ctx context.Context, id int64, totalSeats int) (*EventResponse, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err := resizeSeatMap(ev, totalSeats); err != nil {
		return nil, err
	}

	if err := s.events.Save(ctx, ev); err != nil {
		return nil, mapConflict(err)
	}

	resp := toEventResponse(ev, true)
	return &resp, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func resizeSeatMap(ev *domain.Event, totalSeats int) error {
	if totalSeats < 1 || totalSeats > domain.MaxBookableSeats {
		return ErrInvalidRequest
	}
	ev.EnsureSeatsInitialized()

	switch {
	case totalSeats > ev.TotalSeats:
		for n := ev.TotalSeats + 1; n <= totalSeats; n++ {
			ev.Seats = append(ev.Seats, domain.Seat{SeatNumber: n})
		}
		ev.AvailableSeats += totalSeats - ev.TotalSeats
	case totalSeats < ev.TotalSeats:
		kept := make([]domain.Seat, 0, totalSeats)
		removedFree := 0
		for _, seat := range ev.Seats {
			if seat.SeatNumber <= totalSeats {
				kept = append(kept, seat)
				continue
			}
			if seat.IsBooked {
				return ErrSeatsBooked
			}
			removedFree++
		}
		ev.Seats = kept
		ev.AvailableSeats -= removedFree
		if ev.AvailableSeats < 0 {
			ev.AvailableSeats = 0
		}
	}

	ev.TotalSeats = totalSeats
	if ev.AvailableSeats > ev.TotalSeats {
		ev.AvailableSeats = ev.TotalSeats
	}
	return nil
}

func toEventResponse(ev *domain.Event, withSeats bool) EventResponse {
	resp := EventResponse{
		ID:             ev.ID,
		Name:           ev.Name,
		Description:    ev.Description,
		Date:           ev.Date,
		Time:           ev.Time,
		Venue:          ev.Venue,
		Category:       ev.Category,
		Price:          ev.Price,
		TotalSeats:     ev.TotalSeats,
		AvailableSeats: ev.AvailableSeats,
		Image:          ev.Image,
		CreatedAt:      ev.CreatedAt,
		UpdatedAt:      ev.UpdatedAt,
	}
	if withSeats {
		for _, seat := range ev.Seats {
			resp.Seats = append(resp.Seats, SeatView{
				SeatNumber: seat.SeatNumber,
				IsBooked:   seat.IsBooked,
			})
		}
	}
	return resp
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

func mapConflict(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return ErrConflict
	}
	return err
}
