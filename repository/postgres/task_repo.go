package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

// taskSelect joins the status, author and (optional) executor in one pass.
// Password hashes are intentionally not selected.
const taskSelect = `
	SELECT t.id, t.name, t.description, t.created_at,
	       s.id, s.name, s.created_at,
	       a.id, a.first_name, a.last_name, a.email, a.created_at,
	       e.id, e.first_name, e.last_name, e.email, e.created_at
	FROM tasks t
	JOIN task_statuses s ON s.id = t.task_status_id
	JOIN users a ON a.id = t.author_id
	LEFT JOIN users e ON e.id = t.executor_id`

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = taskSelect + ` WHERE t.id = $1`
	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachLabels(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	where, args := buildTaskWhere(filter)
	query := taskSelect + where + ` ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Task, len(tasks))
	for i := range tasks {
		refs[i] = &tasks[i]
	}
	if err := r.attachLabels(ctx, refs); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		const query = `
		INSERT INTO tasks (name, description, task_status_id, author_id, executor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
		`
		if err := tx.QueryRow(ctx, query,
			task.Name,
			task.Description,
			task.Status.ID,
			task.Author.ID,
			executorID(task),
		).Scan(&task.ID, &task.CreatedAt); err != nil {
			return err
		}
		return insertTaskLabels(ctx, tx, task.ID, task.LabelIDs())
	})
	if err != nil {
		return nil, classifyError(err)
	}
	return r.GetByID(ctx, task.ID)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		const query = `
		UPDATE tasks
		SET name = $2,
			description = $3,
			task_status_id = $4,
			executor_id = $5
		WHERE id = $1
		`
		tag, err := tx.Exec(ctx, query,
			task.ID,
			task.Name,
			task.Description,
			task.Status.ID,
			executorID(task),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTaskNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tasks_labels WHERE task_id = $1`, task.ID); err != nil {
			return err
		}
		return insertTaskLabels(ctx, tx, task.ID, task.LabelIDs())
	})
	return classifyError(err)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM tasks WHERE author_id = $1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, authorID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// inTx runs fn inside a single transaction so a task row and its label
// associations commit or roll back together.
func (r *taskRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertTaskLabels(ctx context.Context, tx pgx.Tx, taskID int64, labelIDs []int64) error {
	for _, labelID := range labelIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO tasks_labels (task_id, label_id) VALUES ($1, $2)`,
			taskID, labelID,
		); err != nil {
			return err
		}
	}
	return nil
}

// attachLabels loads label sets for the given tasks in a single query.
func (r *taskRepository) attachLabels(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Task, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
		ids = append(ids, task.ID)
	}

	const query = `
	SELECT tl.task_id, l.id, l.name, l.created_at
	FROM tasks_labels tl
	JOIN labels l ON l.id = tl.label_id
	WHERE tl.task_id = ANY($1)
	ORDER BY l.id
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int64
		var label domain.Label
		if err := rows.Scan(&taskID, &label.ID, &label.Name, &label.CreatedAt); err != nil {
			return err
		}
		if task, ok := byID[taskID]; ok {
			task.Labels = append(task.Labels, label)
		}
	}
	return rows.Err()
}

func executorID(task *domain.Task) any {
	if task.Executor == nil {
		return nil
	}
	return task.Executor.ID
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task domain.Task

		execID        *int64
		execFirstName *string
		execLastName  *string
		execEmail     *string
		execCreatedAt *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.CreatedAt,
		&task.Status.ID,
		&task.Status.Name,
		&task.Status.CreatedAt,
		&task.Author.ID,
		&task.Author.FirstName,
		&task.Author.LastName,
		&task.Author.Email,
		&task.Author.CreatedAt,
		&execID,
		&execFirstName,
		&execLastName,
		&execEmail,
		&execCreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if execID != nil {
		task.Executor = &domain.User{
			ID:        *execID,
			FirstName: *execFirstName,
			LastName:  *execLastName,
			Email:     *execEmail,
			CreatedAt: *execCreatedAt,
		}
	}
	return &task, nil
}
