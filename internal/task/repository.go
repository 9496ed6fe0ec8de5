package task

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// Repository is the narrow view of the tasks collection the planner needs.
// Update and delete report ErrNotFound when nothing matched.
type Repository interface {
	Insert(ctx context.Context, t *Task) error
	FindByDate(ctx context.Context, date time.Time) ([]Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	UpdateDescription(ctx context.Context, id string, description *string) error
	DeleteByDateAndID(ctx context.Context, date time.Time, id string) error
}

// NewID returns a random UUID as 32 lowercase hex characters.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
