package task

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Insert(ctx context.Context, t *Task) error {
	query := `
		INSERT INTO tasks (id, date, task_description)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, t.ID, t.Date, t.Description)
	return err
}

func (r *PostgresRepo) FindByDate(ctx context.Context, date time.Time) ([]Task, error) {
	query := `
		SELECT id, date, task_description
		FROM tasks
		WHERE date = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Date, &t.Description); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (*Task, error) {
	query := `
		SELECT id, date, task_description
		FROM tasks
		WHERE id = $1
	`

	var t Task
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Date, &t.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *PostgresRepo) UpdateDescription(ctx context.Context, id string, description *string) error {
	query := `
		UPDATE tasks
		SET task_description = $1
		WHERE id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, description, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}

func (r *PostgresRepo) DeleteByDateAndID(ctx context.Context, date time.Time, id string) error {
	query := `
		DELETE FROM tasks
		WHERE date = $1 AND id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, date, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}

// DeleteWithCompletion removes the completion for (date, id) and the task in
// one transaction. A task stored under another date is left alone.
func (r *PostgresRepo) DeleteWithCompletion(ctx context.Context, date time.Time, id string) error {
	var taskTag pgconn.CommandTag

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM completions WHERE date = $1 AND task_id = $2`, date, id); err != nil {
			return err
		}

		var err error
		taskTag, err = tx.Exec(ctx, `DELETE FROM tasks WHERE date = $1 AND id = $2`, date, id)
		return err
	})
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(taskTag)
}
