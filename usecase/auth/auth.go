package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	authcore "github.com/taskboard/backend/internal/auth"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// UseCase verifies submitted credentials against the user store and mints
// bearer tokens. It persists nothing.
type UseCase struct {
	users  repository.UserRepository
	codec  *authcore.TokenCodec
	hasher *authcore.PasswordHasher
	audit  usecase.AuditSink
	ttl    time.Duration
	logger *zap.Logger
}

func New(
	users repository.UserRepository,
	codec *authcore.TokenCodec,
	hasher *authcore.PasswordHasher,
	audit usecase.AuditSink,
	ttl time.Duration,
	logger *zap.Logger,
) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		codec:  codec,
		hasher: hasher,
		audit:  audit,
		ttl:    ttl,
		logger: logger,
	}
}

// Login returns a token for a valid (email, password) pair. Unknown email and
// wrong password both come back as the same ErrBadCredentials so callers
// cannot probe which accounts exist.
func (uc *UseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", domain.ErrBadCredentials
		}
		return "", err
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrBadCredentials
	}

	token, err := uc.codec.Issue(user.Email, uc.ttl)
	if err != nil {
		uc.logger.Error("token issuance failed", zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "could not issue token", err)
	}

	if uc.audit != nil {
		uc.audit.Record(ctx, domain.AuditEvent{
			Actor:  user.Email,
			Action: domain.AuditLogin,
			Entity: "user",
			At:     time.Now(),
		})
	}
	return token, nil
}
