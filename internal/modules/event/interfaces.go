package event

import (
	"context"

	"eventtix/internal/domain"
	"eventtix/internal/repository"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context, f repository.EventFilter) ([]domain.Event, error)
	Save(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error
}
