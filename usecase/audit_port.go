package usecase

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// AuditSink abstracts the audit recorder so use cases stay storage-agnostic.
// Recording is best effort; a failing sink must never fail the operation.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
