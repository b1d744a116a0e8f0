package repository

import (
	"context"
	"encoding/json"
	"time"

	"eventtix/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	UserID        int64      `gorm:"column:user_id;index"`
	EventID       int64      `gorm:"column:event_id;index"`
	Seats         string     `gorm:"column:seats;type:text"`
	TotalAmount   float64    `gorm:"column:total_amount"`
	PaymentID     string     `gorm:"column:payment_id"`
	Status        string     `gorm:"column:status"`
	PaymentStatus string     `gorm:"column:payment_status"`
	BookedAt      time.Time  `gorm:"column:booked_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var seats []domain.BookingSeat
	if m.Seats != "" {
		_ = json.Unmarshal([]byte(m.Seats), &seats)
	}

	return &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		EventID:       m.EventID,
		Seats:         seats,
		TotalAmount:   m.TotalAmount,
		PaymentID:     m.PaymentID,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		BookedAt:      m.BookedAt,
		CancelledAt:   m.CancelledAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	seatsJSON, _ := json.Marshal(b.Seats)

	return bookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		EventID:       b.EventID,
		Seats:         string(seatsJSON),
		TotalAmount:   b.TotalAmount,
		PaymentID:     b.PaymentID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		BookedAt:      b.BookedAt,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CreateWithEvent inserts the booking and persists the mutated event seat
// state in a single transaction. The event write is version-guarded, so a
// concurrent seat mutation aborts the whole booking.
func (r *BookingRepository) CreateWithEvent(ctx context.Context, b *domain.Booking, ev *domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := saveEvent(tx, ev); err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// UpdateWithEvent saves booking mutations (cancellation) together with the
// released seat state, atomically and version-guarded like CreateWithEvent.
func (r *BookingRepository) UpdateWithEvent(ctx context.Context, b *domain.Booking, ev *domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return saveEvent(tx, ev)
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	b := toDomainBooking(m)
	if err := r.attachDetails(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toBookingsWithDetails(ctx, models)
}

// BookingFilter narrows the admin booking listing.
type BookingFilter struct {
	Status  string
	EventID int64
	UserID  int64
}

// List returns one page of bookings, newest first, plus the unpaged total.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EventID != 0 {
		q = q.Where("event_id = ?", f.EventID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []bookingModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	bookings, err := r.toBookingsWithDetails(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdateStatus performs a direct status write with no side effects. Seat
// release for cancellations goes through the booking service instead.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) CountConfirmed(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status = ? AND payment_status = ?", domain.BookingConfirmed, domain.PaymentCompleted).
		Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ? AND payment_status = ?", domain.BookingConfirmed, domain.PaymentCompleted).
		Scan(&total).Error
	return total, err
}

// Recent returns the latest confirmed bookings with user/event details.
func (r *BookingRepository) Recent(ctx context.Context, limit int) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_status = ?", domain.BookingConfirmed, domain.PaymentCompleted).
		Order("booked_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toBookingsWithDetails(ctx, models)
}

func (r *BookingRepository) toBookingsWithDetails(ctx context.Context, models []bookingModel) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0, len(models))
	ptrs := make([]*domain.Booking, 0, len(models))
	for _, m := range models {
		bookings = append(bookings, *toDomainBooking(m))
		ptrs = append(ptrs, &bookings[len(bookings)-1])
	}
	if err := r.attachDetails(ctx, ptrs); err != nil {
		return nil, err
	}
	return bookings, nil
}

// attachDetails resolves the user and event references for projection.
// Bookings and their parents are separate lookups instead of maintained
// back-reference arrays.
func (r *BookingRepository) attachDetails(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	eventIDs := make([]int64, 0, len(bookings))
	userIDs := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		eventIDs = append(eventIDs, b.EventID)
		userIDs = append(userIDs, b.UserID)
	}

	var events []eventModel
	if err := r.db.WithContext(ctx).Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
		return err
	}
	eventsByID := make(map[int64]*domain.Event, len(events))
	for _, m := range events {
		eventsByID[m.ID] = toDomainEvent(m)
	}

	var users []userModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return err
	}
	usersByID := make(map[int64]*domain.User, len(users))
	for _, m := range users {
		usersByID[m.ID] = toDomainUser(m)
	}

	for _, b := range bookings {
		b.Event = eventsByID[b.EventID]
		b.User = usersByID[b.UserID]
	}
	return nil
}
