package status

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

// UseCase implements task status CRUD. Statuses referenced by tasks cannot be
// deleted; the repository surfaces that as a conflict.
type UseCase struct {
	statuses repository.TaskStatusRepository
	logger   *zap.Logger
}

func New(statuses repository.TaskStatusRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{statuses: statuses, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	return uc.statuses.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context) ([]domain.TaskStatus, error) {
	return uc.statuses.List(ctx)
}

func (uc *UseCase) Create(ctx context.Context, name string) (*domain.TaskStatus, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name should not be empty")
	}
	return uc.statuses.Create(ctx, &domain.TaskStatus{Name: strings.TrimSpace(name)})
}

func (uc *UseCase) Update(ctx context.Context, id int64, name string) (*domain.TaskStatus, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name should not be empty")
	}
	status, err := uc.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status.Name = strings.TrimSpace(name)
	if err := uc.statuses.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.statuses.Delete(ctx, id)
}
