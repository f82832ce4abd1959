package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// Input carries the client-supplied task fields. The author is never part of
// the input; it always comes from the authenticated caller.
type Input struct {
	Name        string
	Description string
	StatusID    int64
	ExecutorID  *int64
	LabelIDs    []int64
}

// UseCase implements task CRUD, the per-request ownership check on deletion,
// and filtered listing.
type UseCase struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	statuses repository.TaskStatusRepository
	labels   repository.LabelRepository
	audit    usecase.AuditSink
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	statuses repository.TaskStatusRepository,
	labels repository.LabelRepository,
	audit usecase.AuditSink,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		users:    users,
		statuses: statuses,
		labels:   labels,
		audit:    audit,
		logger:   logger,
	}
}

// List returns tasks matching the filter; an empty filter returns everything.
func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Create builds a task authored by the actor. Referenced status, executor and
// label ids must resolve; a dangling reference surfaces as not-found before
// anything is written.
func (uc *UseCase) Create(ctx context.Context, actor string, input Input) (*domain.Task, error) {
	author, err := uc.users.GetByEmail(ctx, actor)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "unknown caller identity", err)
	}

	task, err := uc.build(ctx, input)
	if err != nil {
		return nil, err
	}
	task.Author = *author

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor, domain.AuditCreate, created.ID)
	return created, nil
}

// Update replaces all mutable fields. Any authenticated user may update a
// task; the author is immutable and carried over from the stored row.
func (uc *UseCase) Update(ctx context.Context, actor string, id int64, input Input) (*domain.Task, error) {
	current, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task, err := uc.build(ctx, input)
	if err != nil {
		return nil, err
	}
	task.ID = current.ID
	task.Author = current.Author

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, actor, domain.AuditUpdate, id)
	return uc.tasks.GetByID(ctx, id)
}

// Delete removes a task. Only the task author may delete it; a nonexistent id
// resolves to not-found before the ownership predicate runs, so authorization
// is never decided on a missing resource.
func (uc *UseCase) Delete(ctx context.Context, actor string, id int64) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.AuthoredBy(actor) {
		return domain.ErrForbidden
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, actor, domain.AuditDelete, id)
	return nil
}

func (uc *UseCase) build(ctx context.Context, input Input) (*domain.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "name should not be empty")
	}
	if input.StatusID == 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task status should not be empty")
	}

	status, err := uc.statuses.GetByID(ctx, input.StatusID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      *status,
	}

	if input.ExecutorID != nil {
		executor, err := uc.users.GetByID(ctx, *input.ExecutorID)
		if err != nil {
			return nil, err
		}
		task.Executor = executor
	}

	for _, labelID := range input.LabelIDs {
		label, err := uc.labels.GetByID(ctx, labelID)
		if err != nil {
			return nil, err
		}
		task.Labels = append(task.Labels, *label)
	}
	return task, nil
}

func (uc *UseCase) record(ctx context.Context, actor, action string, id int64) {
	if uc.audit == nil {
		return
	}
	uc.audit.Record(ctx, domain.AuditEvent{
		Actor:    actor,
		Action:   action,
		Entity:   "task",
		EntityID: id,
		At:       time.Now(),
	})
}
