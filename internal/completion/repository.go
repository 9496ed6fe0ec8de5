package completion

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("completion not found")

// Repository is the completions collection. Insert is idempotent: a second
// insert of the same (date, task id) pair leaves a single record.
type Repository interface {
	Insert(ctx context.Context, c Completion) error
	Delete(ctx context.Context, date time.Time, taskID string) error
	Exists(ctx context.Context, date time.Time, taskID string) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]Completion, error)
}
