package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type labelRepository struct {
	pool *pgxpool.Pool
}

// NewLabelRepository returns a Postgres-backed LabelRepository.
func NewLabelRepository(pool *pgxpool.Pool) repository.LabelRepository {
	return &labelRepository{pool: pool}
}

func (r *labelRepository) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	const query = `SELECT id, name, created_at FROM labels WHERE id = $1`

	var label domain.Label
	if err := r.pool.QueryRow(ctx, query, id).Scan(&label.ID, &label.Name, &label.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLabelNotFound
		}
		return nil, err
	}
	return &label, nil
}

func (r *labelRepository) List(ctx context.Context) ([]domain.Label, error) {
	const query = `SELECT id, name, created_at FROM labels ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var label domain.Label
		if err := rows.Scan(&label.ID, &label.Name, &label.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (r *labelRepository) Create(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	if label == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `INSERT INTO labels (name) VALUES ($1) RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query, label.Name).Scan(&label.ID, &label.CreatedAt); err != nil {
		return nil, classifyError(err)
	}
	return label, nil
}

func (r *labelRepository) Update(ctx context.Context, label *domain.Label) error {
	if label == nil {
		return domain.ErrInvalidPayload
	}

	const query = `UPDATE labels SET name = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, label.ID, label.Name)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLabelNotFound
	}
	return nil
}

func (r *labelRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM labels WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLabelNotFound
	}
	return nil
}
