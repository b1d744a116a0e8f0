package repository

import (
	"context"
	"encoding/json"
	"time"

	"eventtix/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description;type:text"`
	Date           time.Time `gorm:"column:date"`
	Time           string    `gorm:"column:time"`
	Venue          string    `gorm:"column:venue"`
	Category       string    `gorm:"column:category"`
	Price          float64   `gorm:"column:price"`
	TotalSeats     int       `gorm:"column:total_seats"`
	AvailableSeats int       `gorm:"column:available_seats"`
	Seats          string    `gorm:"column:seats;type:text"`
	Image          string    `gorm:"column:image"`
	CreatedBy      int64     `gorm:"column:created_by"`
	Version        int64     `gorm:"column:version"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

func toDomainEvent(m eventModel) *domain.Event {
	var seats []domain.Seat
	if m.Seats != "" {
		_ = json.Unmarshal([]byte(m.Seats), &seats)
	}

	return &domain.Event{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Date:           m.Date,
		Time:           m.Time,
		Venue:          m.Venue,
		Category:       m.Category,
		Price:          m.Price,
		TotalSeats:     m.TotalSeats,
		AvailableSeats: m.AvailableSeats,
		Seats:          seats,
		Image:          m.Image,
		CreatedBy:      m.CreatedBy,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toEventModel(e *domain.Event) eventModel {
	seatsJSON, _ := json.Marshal(e.Seats)

	return eventModel{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		Date:           e.Date,
		Time:           e.Time,
		Venue:          e.Venue,
		Category:       e.Category,
		Price:          e.Price,
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
		Seats:          string(seatsJSON),
		Image:          e.Image,
		CreatedBy:      e.CreatedBy,
		Version:        e.Version,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	m := toEventModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*e = *toDomainEvent(m)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainEvent(m), nil
}

// EventFilter narrows the public event listing.
type EventFilter struct {
	Date     *time.Time
	Category string
	Venue    string
	Search   string
	PriceMin *float64
	PriceMax *float64
}

func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventModel{})

	if f.Date != nil {
		dayStart := f.Date.Truncate(24 * time.Hour)
		q = q.Where("date >= ? AND date < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Venue != "" {
		q = q.Where("venue LIKE ?", "%"+f.Venue+"%")
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	var models []eventModel
	if err := q.Order("date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(models))
	for _, m := range models {
		events = append(events, *toDomainEvent(m))
	}
	return events, nil
}

// Save persists the full event row guarded by the version column. The
// caller's in-memory version must match the stored one; on success the
// version is bumped. Returns ErrVersionConflict when another writer won.
func (r *EventRepository) Save(ctx context.Context, e *domain.Event) error {
	return saveEvent(r.db.WithContext(ctx), e)
}

// saveEvent is shared with the booking repository so the same conditional
// update runs inside booking transactions.
func saveEvent(tx *gorm.DB, e *domain.Event) error {
	m := toEventModel(e)
	res := tx.Model(&eventModel{}).
		Where("id = ? AND version = ?", e.ID, e.Version).
		Updates(map[string]any{
			"name":            m.Name,
			"description":     m.Description,
			"date":            m.Date,
			"time":            m.Time,
			"venue":           m.Venue,
			"category":        m.Category,
			"price":           m.Price,
			"total_seats":     m.TotalSeats,
			"available_seats": m.AvailableSeats,
			"seats":           m.Seats,
			"image":           m.Image,
			"version":         e.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	e.Version++
	return nil
}

// Delete removes the event and, in the same transaction, every booking that
// references it.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&eventModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("event_id = ?", id).Delete(&bookingModel{}).Error
	})
}
