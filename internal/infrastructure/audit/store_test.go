package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndCount(t *testing.T) {
	store := openTestStore(t)

	events := []domain.AuditEvent{
		{Actor: "a@x.com", Action: domain.AuditLogin, Entity: "user", At: time.Now()},
		{Actor: "a@x.com", Action: domain.AuditCreate, Entity: "task", EntityID: 1, At: time.Now()},
	}
	require.NoError(t, store.Append(events))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_AppendEmptyIsNoop(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append(nil))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_TailChronological(t *testing.T) {
	store := openTestStore(t)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Append([]domain.AuditEvent{
			{Actor: "a@x.com", Action: domain.AuditCreate, Entity: "task", EntityID: i, At: time.Now()},
		}))
	}

	tail, err := store.Tail(3)
	require.NoError(t, err)
	require.Len(t, tail, 3)
	assert.Equal(t, int64(3), tail[0].EntityID)
	assert.Equal(t, int64(5), tail[2].EntityID)
}
