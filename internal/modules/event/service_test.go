package event

import (
	"context"
	"testing"
	"time"

	"eventtix/internal/domain"
	"eventtix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	if e != nil && args.Error(0) == nil {
		e.ID = 1
	}
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, f repository.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:       "Arena Rock Night",
		Date:       "2026-09-12",
		Time:       "19:30",
		Venue:      "City Arena",
		Category:   "music",
		Price:      2500,
		TotalSeats: 30,
	}
}

func TestService_CreateEvent_MaterializesSeats(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(mockRepo)
	resp, err := svc.CreateEvent(context.Background(), 1, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, 30, resp.TotalSeats)
	assert.Equal(t, 30, resp.AvailableSeats)
	require.Len(t, resp.Seats, 30)
	assert.Equal(t, 1, resp.Seats[0].SeatNumber)
	assert.Equal(t, 30, resp.Seats[29].SeatNumber)
	for _, seat := range resp.Seats {
		assert.False(t, seat.IsBooked)
	}
}

func TestService_CreateEvent_CapacityBounds(t *testing.T) {
	svc := NewService(new(MockEventRepository))

	for _, seats := range []int{0, -5, 41, 100} {
		req := validCreateRequest()
		req.TotalSeats = seats
		_, err := svc.CreateEvent(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidRequest, "total_seats=%d", seats)
	}
}

func TestService_CreateEvent_AcceptsCeiling(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCreateRequest()
	req.TotalSeats = domain.MaxBookableSeats

	svc := NewService(mockRepo)
	resp, err := svc.CreateEvent(context.Background(), 1, req)

	require.NoError(t, err)
	assert.Len(t, resp.Seats, 40)
}

func TestService_CreateEvent_BadDate(t *testing.T) {
	svc := NewService(new(MockEventRepository))

	req := validCreateRequest()
	req.Date = "next friday"
	_, err := svc.CreateEvent(context.Background(), 1, req)

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_ListEvents_Filters(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.EventFilter) bool {
		return f.Category == "music" &&
			f.Date != nil &&
			f.PriceMin != nil && *f.PriceMin == 1000 &&
			f.PriceMax != nil && *f.PriceMax == 3000
	})).Return([]domain.Event{{ID: 1, Name: "Arena Rock Night"}}, nil)

	svc := NewService(mockRepo)
	events, err := svc.ListEvents(context.Background(), ListEventsRequest{
		Date:     "2026-09-12",
		Category: "music",
		PriceMin: "1000",
		PriceMax: "3000",
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Arena Rock Night", events[0].Name)
	assert.Nil(t, events[0].Seats) // listings omit the seat map
}

func TestService_GetEvent_NotFound(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(mockRepo)
	_, err := svc.GetEvent(context.Background(), 5)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func storedEvent(totalSeats int) *domain.Event {
	ev := &domain.Event{
		ID:             1,
		Name:           "Arena Rock Night",
		Date:           time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Time:           "19:30",
		Venue:          "City Arena",
		Category:       "music",
		Price:          2500,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}
	ev.EnsureSeatsInitialized()
	return ev
}

func TestService_UpdateSeatLimit_Raise(t *testing.T) {
	mockRepo := new(MockEventRepository)
	ev := storedEvent(20)
	ev.MarkSeatsBooked([]int{1, 2}, 42, time.Now())
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(ev, nil)
	mockRepo.On("Save", mock.Anything, ev).Return(nil)

	svc := NewService(mockRepo)
	resp, err := svc.UpdateSeatLimit(context.Background(), 1, 30)

	require.NoError(t, err)
	assert.Equal(t, 30, resp.TotalSeats)
	assert.Equal(t, 28, resp.AvailableSeats) // 2 booked, 10 new free slots
	assert.Len(t, resp.Seats, 30)
}

func TestService_UpdateSeatLimit_LowerFreeSeats(t *testing.T) {
	mockRepo := new(MockEventRepository)
	ev := storedEvent(30)
	ev.MarkSeatsBooked([]int{1, 2}, 42, time.Now())
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(ev, nil)
	mockRepo.On("Save", mock.Anything, ev).Return(nil)

	svc := NewService(mockRepo)
	resp, err := svc.UpdateSeatLimit(context.Background(), 1, 20)

	require.NoError(t, err)
	assert.Equal(t, 20, resp.TotalSeats)
	assert.Equal(t, 18, resp.AvailableSeats)
	assert.Len(t, resp.Seats, 20)
}

func TestService_UpdateSeatLimit_RefusesBookedSeats(t *testing.T) {
	mockRepo := new(MockEventRepository)
	ev := storedEvent(30)
	ev.MarkSeatsBooked([]int{25}, 42, time.Now())
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(ev, nil)

	svc := NewService(mockRepo)
	_, err := svc.UpdateSeatLimit(context.Background(), 1, 20)

	assert.ErrorIs(t, err, ErrSeatsBooked)
	assert.Equal(t, 30, ev.TotalSeats)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_UpdateSeatLimit_RejectsOverCeiling(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(storedEvent(30), nil)

	svc := NewService(mockRepo)
	_, err := svc.UpdateSeatLimit(context.Background(), 1, 41)

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_UpdateEvent_Metadata(t *testing.T) {
	mockRepo := new(MockEventRepository)
	ev := storedEvent(30)
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(ev, nil)
	mockRepo.On("Save", mock.Anything, ev).Return(nil)

	name := "Arena Rock Night (Rescheduled)"
	price := 3000.0
	svc := NewService(mockRepo)
	resp, err := svc.UpdateEvent(context.Background(), 1, UpdateEventRequest{
		Name:  &name,
		Price: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)
	assert.Equal(t, 3000.0, resp.Price)
	assert.Equal(t, "City Arena", resp.Venue) // untouched
}

func TestService_UpdateEvent_VersionConflict(t *testing.T) {
	mockRepo := new(MockEventRepository)
	ev := storedEvent(30)
	mockRepo.On("GetByID", mock.Anything, int64(1)).Return(ev, nil)
	mockRepo.On("Save", mock.Anything, ev).Return(repository.ErrVersionConflict)

	name := "New Name"
	svc := NewService(mockRepo)
	_, err := svc.UpdateEvent(context.Background(), 1, UpdateEventRequest{Name: &name})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_DeleteEvent(t *testing.T) {
	mockRepo := new(MockEventRepository)
	mockRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
	mockRepo.On("Delete", mock.Anything, int64(2)).Return(gorm.ErrRecordNotFound)

	svc := NewService(mockRepo)
	assert.NoError(t, svc.DeleteEvent(context.Background(), 1))
	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), 2), ErrEventNotFound)
}
