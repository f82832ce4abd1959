package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type taskStatusRepository struct {
	pool *pgxpool.Pool
}

// NewTaskStatusRepository returns a Postgres-backed TaskStatusRepository.
func NewTaskStatusRepository(pool *pgxpool.Pool) repository.TaskStatusRepository {
	return &taskStatusRepository{pool: pool}
}

func (r *taskStatusRepository) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	const query = `SELECT id, name, created_at FROM task_statuses WHERE id = $1`

	var status domain.TaskStatus
	if err := r.pool.QueryRow(ctx, query, id).Scan(&status.ID, &status.Name, &status.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *taskStatusRepository) List(ctx context.Context) ([]domain.TaskStatus, error) {
	const query = `SELECT id, name, created_at FROM task_statuses ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.TaskStatus
	for rows.Next() {
		var status domain.TaskStatus
		if err := rows.Scan(&status.ID, &status.Name, &status.CreatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *taskStatusRepository) Create(ctx context.Context, status *domain.TaskStatus) (*domain.TaskStatus, error) {
	if status == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `INSERT INTO task_statuses (name) VALUES ($1) RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query, status.Name).Scan(&status.ID, &status.CreatedAt); err != nil {
		return nil, classifyError(err)
	}
	return status, nil
}

func (r *taskStatusRepository) Update(ctx context.Context, status *domain.TaskStatus) error {
	if status == nil {
		return domain.ErrInvalidPayload
	}

	const query = `UPDATE task_statuses SET name = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, status.ID, status.Name)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusNotFound
	}
	return nil
}

func (r *taskStatusRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM task_statuses WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatusNotFound
	}
	return nil
}
