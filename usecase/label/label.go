package label

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

// UseCase implements label CRUD. Labels attached to tasks cannot be deleted;
// the repository surfaces that as a conflict.
type UseCase struct {
	labels repository.LabelRepository
	logger *zap.Logger
}

func New(labels repository.LabelRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{labels: labels, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Label, error) {
	return uc.labels.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Label, error) {
	return uc.labels.List(ctx)
}

func (uc *UseCase) Create(ctx context.Context, name string) (*domain.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name should not be empty")
	}
	return uc.labels.Create(ctx, &domain.Label{Name: strings.TrimSpace(name)})
}

func (uc *UseCase) Update(ctx context.Context, id int64, name string) (*domain.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name should not be empty")
	}
	label, err := uc.labels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	label.Name = strings.TrimSpace(name)
	if err := uc.labels.Update(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.labels.Delete(ctx, id)
}
