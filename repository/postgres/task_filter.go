package postgres

import (
	"fmt"
	"strings"

	"github.com/taskboard/backend/repository"
)

// buildTaskWhere translates the optional filter fields into a WHERE clause
// with positional arguments. All present restrictions are ANDed; the label
// restriction is a membership test against the join table rather than a
// column equality. An empty filter yields an empty clause.
func buildTaskWhere(filter repository.TaskFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(format string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}

	if filter.StatusID != nil {
		add("t.task_status_id = $%d", *filter.StatusID)
	}
	if filter.ExecutorID != nil {
		add("t.executor_id = $%d", *filter.ExecutorID)
	}
	if filter.AuthorID != nil {
		add("t.author_id = $%d", *filter.AuthorID)
	}
	if filter.LabelID != nil {
		add("EXISTS (SELECT 1 FROM tasks_labels tl WHERE tl.task_id = t.id AND tl.label_id = $%d)", *filter.LabelID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
