package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

type TaskStatusRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error)
	List(ctx context.Context) ([]domain.TaskStatus, error)
	Create(ctx context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error)
	Update(ctx context.Context, status *domain.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}
