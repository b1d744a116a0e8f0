package repository

import (
	"context"
	"strings"
	"time"

	"eventtix/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		Status:       domain.UserStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	email = strings.TrimSpace(strings.ToLower(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
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

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Count(&cnt).Error
	return cnt, err
}

// UserWithBookings is the admin listing projection: a user plus how many
// bookings they hold.
type UserWithBookings struct {
	User         domain.User
	BookingCount int64
}

func (r *UserRepository) ListWithBookingCounts(ctx context.Context) ([]UserWithBookings, error) {
	var rows []struct {
		userModel
		BookingCount int64 `gorm:"column:booking_count"`
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, COUNT(bookings.id) AS booking_count").
		Joins("LEFT JOIN bookings ON bookings.user_id = users.id").
		Group("users.id").
		Order("booking_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]UserWithBookings, 0, len(rows))
	for _, row := range rows {
		out = append(out, UserWithBookings{
			User:         *toDomainUser(row.userModel),
			BookingCount: row.BookingCount,
		})
	}
	return out, nil
}
