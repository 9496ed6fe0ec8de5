package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/completion"
	"github.com/Nasaee/go-dayplanner/internal/dates"
	"github.com/Nasaee/go-dayplanner/internal/task"
)

// DayView is everything the list page shows for one date.
type DayView struct {
	Date        time.Time
	Tasks       []task.Task
	Completions []string
	Range       []time.Time
}

func (v DayView) IsCompleted(taskID string) bool {
	for _, id := range v.Completions {
		if id == taskID {
			return true
		}
	}
	return false
}

// Service is the business logic layer over the two collections.
// Updates and deletes that match nothing are no-ops, not errors.
type Service interface {
	Today() time.Time
	Day(ctx context.Context, date time.Time) (*DayView, error)
	AddTask(ctx context.Context, date time.Time, description *string) (*task.Task, error)
	UpdateDescription(ctx context.Context, id string, description *string) error
	Complete(ctx context.Context, date time.Time, taskID string) error
	Incomplete(ctx context.Context, date time.Time, taskID string) error
	RemoveTask(ctx context.Context, date time.Time, taskID string) error
	// TaskForEdit looks the task up by id only. A miss returns (nil, nil).
	TaskForEdit(ctx context.Context, id string) (*task.Task, error)
}

// cascadeDeleter is implemented by task stores that can drop a task and its
// completion atomically.
type cascadeDeleter interface {
	DeleteWithCompletion(ctx context.Context, date time.Time, id string) error
}

type service struct {
	tasks       task.Repository
	completions completion.Repository
	now         func() time.Time
}

func NewService(tasks task.Repository, completions completion.Repository) Service {
	return &service{
		tasks:       tasks,
		completions: completions,
		now:         time.Now,
	}
}

func (s *service) Today() time.Time {
	return dates.Midnight(s.now())
}

// ===== Read =====

func (s *service) Day(ctx context.Context, date time.Time) (*DayView, error) {
	date = dates.Midnight(date)

	tasks, err := s.tasks.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	done, err := s.completions.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	return &DayView{
		Date:        date,
		Tasks:       tasks,
		Completions: completion.TaskIDs(done),
		Range:       dates.Range(date),
	}, nil
}

func (s *service) TaskForEdit(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

// ===== Write =====

func (s *service) AddTask(ctx context.Context, date time.Time, description *string) (*task.Task, error) {
	t := &task.Task{
		ID:          task.NewID(),
		Date:        dates.Midnight(date),
		Description: description,
	}

	if err := s.tasks.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return t, nil
}

func (s *service) UpdateDescription(ctx context.Context, id string, description *string) error {
	err := s.tasks.UpdateDescription(ctx, id, description)
	if errors.Is(err, task.ErrNotFound) {
		slog.Debug("update matched no task", "task_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *service) Complete(ctx context.Context, date time.Time, taskID string) error {
	c := completion.Completion{Date: dates.Midnight(date), TaskID: taskID}
	if err := s.completions.Insert(ctx, c); err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

func (s *service) Incomplete(ctx context.Context, date time.Time, taskID string) error {
	err := s.completions.Delete(ctx, dates.Midnight(date), taskID)
	if errors.Is(err, completion.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

func (s *service) RemoveTask(ctx context.Context, date time.Time, taskID string) error {
	date = dates.Midnight(date)

	if cd, ok := s.tasks.(cascadeDeleter); ok {
		return ignoreNotFound(cd.DeleteWithCompletion(ctx, date, taskID), "delete task")
	}

	// two separate writes; a concurrent complete can slip in between
	found, err := s.completions.Exists(ctx, date, taskID)
	if err != nil {
		return fmt.Errorf("check completion: %w", err)
	}
	if found {
		if err := ignoreNotFound(s.completions.Delete(ctx, date, taskID), "delete completion"); err != nil {
			return err
		}
	}

	return ignoreNotFound(s.tasks.DeleteByDateAndID(ctx, date, taskID), "delete task")
}

func ignoreNotFound(err error, op string) error {
	if err == nil || errors.Is(err, task.ErrNotFound) || errors.Is(err, completion.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
