package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

type LabelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Label, error)
	List(ctx context.Context) ([]domain.Label, error)
	Create(ctx context.Context, label *domain.Label) (*domain.Label, error)
	Update(ctx context.Context, label *domain.Label) error
	Delete(ctx context.Context, id int64) error
}
