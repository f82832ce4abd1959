package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/infrastructure/audit"
)

func newRecorder(t *testing.T, queueSize int) (*AuditRecorder, *audit.Store) {
	t.Helper()
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	recorder := NewAuditRecorder(store, RecorderConfig{
		FlushInterval: time.Minute,
		QueueSize:     queueSize,
	}, nil)
	return recorder, store
}

func TestAuditRecorder_StopFlushesQueue(t *testing.T) {
	recorder, store := newRecorder(t, 16)

	recorder.Record(context.Background(), domain.AuditEvent{
		Actor: "a@x.com", Action: domain.AuditLogin, Entity: "user",
	})
	recorder.Record(context.Background(), domain.AuditEvent{
		Actor: "a@x.com", Action: domain.AuditDelete, Entity: "task", EntityID: 3,
	})

	recorder.Stop(context.Background())

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAuditRecorder_RecordSetsTimestamp(t *testing.T) {
	recorder, store := newRecorder(t, 16)

	recorder.Record(context.Background(), domain.AuditEvent{
		Actor: "a@x.com", Action: domain.AuditCreate, Entity: "task", EntityID: 1,
	})
	recorder.Stop(context.Background())

	tail, err := store.Tail(1)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.False(t, tail[0].At.IsZero())
}

func TestAuditRecorder_DropsUnderBackpressure(t *testing.T) {
	recorder, _ := newRecorder(t, 1)

	recorder.Record(context.Background(), domain.AuditEvent{Actor: "a@x.com", Action: domain.AuditLogin, Entity: "user"})
	recorder.Record(context.Background(), domain.AuditEvent{Actor: "b@x.com", Action: domain.AuditLogin, Entity: "user"})

	assert.Equal(t, int64(1), recorder.Dropped())
}
