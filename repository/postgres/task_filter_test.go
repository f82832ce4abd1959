package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskboard/backend/repository"
)

func idPtr(v int64) *int64 { return &v }

func TestBuildTaskWhere_Empty(t *testing.T) {
	where, args := buildTaskWhere(repository.TaskFilter{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildTaskWhere_SingleField(t *testing.T) {
	tests := []struct {
		name      string
		filter    repository.TaskFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "status",
			filter:    repository.TaskFilter{StatusID: idPtr(3)},
			wantWhere: " WHERE t.task_status_id = $1",
			wantArgs:  []any{int64(3)},
		},
		{
			name:      "executor",
			filter:    repository.TaskFilter{ExecutorID: idPtr(7)},
			wantWhere: " WHERE t.executor_id = $1",
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "author",
			filter:    repository.TaskFilter{AuthorID: idPtr(2)},
			wantWhere: " WHERE t.author_id = $1",
			wantArgs:  []any{int64(2)},
		},
		{
			name:      "label is a membership test",
			filter:    repository.TaskFilter{LabelID: idPtr(5)},
			wantWhere: " WHERE EXISTS (SELECT 1 FROM tasks_labels tl WHERE tl.task_id = t.id AND tl.label_id = $1)",
			wantArgs:  []any{int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildTaskWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildTaskWhere_CombinesWithAND(t *testing.T) {
	filter := repository.TaskFilter{
		StatusID:   idPtr(1),
		ExecutorID: idPtr(2),
		AuthorID:   idPtr(3),
		LabelID:    idPtr(4),
	}

	where, args := buildTaskWhere(filter)

	assert.Equal(t,
		" WHERE t.task_status_id = $1 AND t.executor_id = $2 AND t.author_id = $3"+
			" AND EXISTS (SELECT 1 FROM tasks_labels tl WHERE tl.task_id = t.id AND tl.label_id = $4)",
		where)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4)}, args)
}

func TestBuildTaskWhere_ArgPositionsFollowPresentFields(t *testing.T) {
	// Skipping executor must not leave a gap in placeholder numbering.
	filter := repository.TaskFilter{
		StatusID: idPtr(1),
		LabelID:  idPtr(9),
	}

	where, args := buildTaskWhere(filter)

	assert.Equal(t,
		" WHERE t.task_status_id = $1"+
			" AND EXISTS (SELECT 1 FROM tasks_labels tl WHERE tl.task_id = t.id AND tl.label_id = $2)",
		where)
	assert.Equal(t, []any{int64(1), int64(9)}, args)
}

func TestTaskFilterEmpty(t *testing.T) {
	assert.True(t, repository.TaskFilter{}.Empty())
	assert.False(t, repository.TaskFilter{LabelID: idPtr(1)}.Empty())
}
