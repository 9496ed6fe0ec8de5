package completion

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Insert(ctx context.Context, c Completion) error {
	query := `
		INSERT INTO completions (date, task_id)
		VALUES ($1, $2)
		ON CONFLICT (date, task_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, c.Date, c.TaskID)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, date time.Time, taskID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM completions WHERE date = $1 AND task_id = $2`, date, taskID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Exists(ctx context.Context, date time.Time, taskID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM completions WHERE date = $1 AND task_id = $2
		)
	`
	var ok bool
	if err := r.db.QueryRow(ctx, query, date, taskID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresRepo) ListByDate(ctx context.Context, date time.Time) ([]Completion, error) {
	rows, err := r.db.Query(ctx, `SELECT date, task_id FROM completions WHERE date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.Date, &c.TaskID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
