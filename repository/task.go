package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// TaskFilter carries the optional restrictions for task listing. A nil field
// imposes no restriction on that dimension; present fields combine with AND.
type TaskFilter struct {
	StatusID   *int64
	ExecutorID *int64
	AuthorID   *int64
	// LabelID restricts to tasks whose label set contains the label,
	// a membership test rather than a column equality.
	LabelID *int64
}

// Empty reports whether the filter imposes no restriction at all.
func (f TaskFilter) Empty() bool {
	return f.StatusID == nil && f.ExecutorID == nil && f.AuthorID == nil && f.LabelID == nil
}

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// List pushes the filter restrictions down into the query; it never
	// materializes the full collection first. Results are ordered by id.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}
