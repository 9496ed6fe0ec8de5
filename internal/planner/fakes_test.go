package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/completion"
	"github.com/Nasaee/go-dayplanner/internal/task"
)

var errStoreDown = errors.New("store unavailable")

// memTasks keeps insertion order, like the document store's natural order.
type memTasks struct {
	mu    sync.Mutex
	items []task.Task
	err   error
}

func (m *memTasks) Insert(_ context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, *t)
	return nil
}

func (m *memTasks) FindByDate(_ context.Context, date time.Time) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []task.Task
	for _, t := range m.items {
		if t.Date.Equal(date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) FindByID(_ context.Context, id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.items {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, task.ErrNotFound
}

func (m *memTasks) UpdateDescription(_ context.Context, id string, description *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Description = description
			return nil
		}
	}
	return task.ErrNotFound
}

func (m *memTasks) DeleteByDateAndID(_ context.Context, date time.Time, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, t := range m.items {
		if t.ID == id && t.Date.Equal(date) {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return task.ErrNotFound
}

// cascadeTasks adds the transactional delete path.
type cascadeTasks struct {
	*memTasks
	completions *memCompletions
	calls       int
}

func (c *cascadeTasks) DeleteWithCompletion(ctx context.Context, date time.Time, id string) error {
	c.calls++
	_ = c.completions.Delete(ctx, date, id)
	return c.memTasks.DeleteByDateAndID(ctx, date, id)
}

type memCompletions struct {
	mu    sync.Mutex
	items []completion.Completion
	err   error
}

func (m *memCompletions) indexOf(date time.Time, taskID string) int {
	for i, c := range m.items {
		if c.TaskID == taskID && c.Date.Equal(date) {
			return i
		}
	}
	return -1
}

func (m *memCompletions) Insert(_ context.Context, c completion.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.indexOf(c.Date, c.TaskID) >= 0 {
		return nil
	}
	m.items = append(m.items, c)
	return nil
}

func (m *memCompletions) Delete(_ context.Context, date time.Time, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	i := m.indexOf(date, taskID)
	if i < 0 {
		return completion.ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *memCompletions) Exists(_ context.Context, date time.Time, taskID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.indexOf(date, taskID) >= 0, nil
}

func (m *memCompletions) ListByDate(_ context.Context, date time.Time) ([]completion.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []completion.Completion
	for _, c := range m.items {
		if c.Date.Equal(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCompletions) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
