package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	authcore "github.com/taskboard/backend/internal/auth"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

const minPasswordLength = 3

// Input carries the client-supplied fields for registration and update.
type Input struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UseCase implements user CRUD with ownership checks on mutations: a user may
// only update or delete themself.
type UseCase struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	hasher *authcore.PasswordHasher
	audit  usecase.AuditSink
	logger *zap.Logger
}

func New(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	hasher *authcore.PasswordHasher,
	audit usecase.AuditSink,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tasks:  tasks,
		hasher: hasher,
		audit:  audit,
		logger: logger,
	}
}

// Register creates a new identity. Open to unauthenticated callers.
func (uc *UseCase) Register(ctx context.Context, input Input) (*domain.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "could not hash password", err)
	}

	created, err := uc.users.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, created.Email, domain.AuditCreate, created.ID)
	return created, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

// Update replaces the profile fields and re-hashes the password. The actor
// must be the target user; a missing target resolves to not-found before the
// ownership predicate is evaluated.
func (uc *UseCase) Update(ctx context.Context, actor string, id int64, input Input) (*domain.User, error) {
	target, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !target.Owns(actor) {
		return nil, domain.ErrForbidden
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "could not hash password", err)
	}

	target.FirstName = strings.TrimSpace(input.FirstName)
	target.LastName = strings.TrimSpace(input.LastName)
	target.Email = input.Email
	target.PasswordHash = hash

	if err := uc.users.Update(ctx, target); err != nil {
		return nil, err
	}

	uc.record(ctx, actor, domain.AuditUpdate, target.ID)
	return target, nil
}

// Delete removes the identity. Deletion is restricted while the user still
// authors tasks, preserving the task author invariant.
func (uc *UseCase) Delete(ctx context.Context, actor string, id int64) error {
	target, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !target.Owns(actor) {
		return domain.ErrForbidden
	}

	authored, err := uc.tasks.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if authored > 0 {
		return domain.NewError(domain.ErrCodeConflict, "user still authors tasks")
	}

	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, actor, domain.AuditDelete, id)
	return nil
}

func (uc *UseCase) record(ctx context.Context, actor, action string, id int64) {
	if uc.audit == nil {
		return
	}
	uc.audit.Record(ctx, domain.AuditEvent{
		Actor:    actor,
		Action:   action,
		Entity:   "user",
		EntityID: id,
		At:       time.Now(),
	})
}

func validate(input Input) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "first name should not be empty")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "last name should not be empty")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.NewError(domain.ErrCodeInvalid, "email should be valid")
	}
	if len(input.Password) < minPasswordLength {
		return domain.NewError(domain.ErrCodeInvalid, "password is too short")
	}
	return nil
}
