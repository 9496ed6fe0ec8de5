package database_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/completion"
	"github.com/Nasaee/go-dayplanner/internal/database"
	"github.com/Nasaee/go-dayplanner/internal/task"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// testcontainers panics instead of erroring when there is no Docker daemon.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dayplanner"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.MigratePostgres(ctx, pool))
	// second run is a no-op
	require.NoError(t, database.MigratePostgres(ctx, pool))

	return pool
}

func TestPostgresRepositories(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	tasks := task.NewPostgresRepository(pool)
	completions := completion.NewPostgresRepository(pool)

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	desc := "Buy milk"

	first := &task.Task{ID: task.NewID(), Date: day, Description: &desc}
	second := &task.Task{ID: task.NewID(), Date: day}
	other := &task.Task{ID: task.NewID(), Date: day.AddDate(0, 0, 1), Description: &desc}
	for _, tk := range []*task.Task{first, second, other} {
		require.NoError(t, tasks.Insert(ctx, tk))
	}

	t.Run("find by date keeps insertion order", func(t *testing.T) {
		got, err := tasks.FindByDate(ctx, day)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, "Buy milk", got[0].Text())
		assert.True(t, got[0].Date.Equal(day))
		assert.Nil(t, got[1].Description)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := tasks.FindByID(ctx, other.ID)
		require.NoError(t, err)
		assert.True(t, got.Date.Equal(day.AddDate(0, 0, 1)))

		_, err = tasks.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, task.ErrNotFound)
	})

	t.Run("update description", func(t *testing.T) {
		updated := "Buy oat milk"
		require.NoError(t, tasks.UpdateDescription(ctx, first.ID, &updated))

		got, err := tasks.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got.Text())

		assert.ErrorIs(t, tasks.UpdateDescription(ctx, "missing", &updated), task.ErrNotFound)
	})

	t.Run("completion insert is idempotent", func(t *testing.T) {
		c := completion.Completion{Date: day, TaskID: first.ID}
		require.NoError(t, completions.Insert(ctx, c))
		require.NoError(t, completions.Insert(ctx, c))

		got, err := completions.ListByDate(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, []string{first.ID}, completion.TaskIDs(got))

		ok, err := completions.Exists(ctx, day, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("completion delete", func(t *testing.T) {
		require.NoError(t, completions.Insert(ctx, completion.Completion{Date: day, TaskID: second.ID}))
		require.NoError(t, completions.Delete(ctx, day, second.ID))
		assert.ErrorIs(t, completions.Delete(ctx, day, second.ID), completion.ErrNotFound)

		ok, err := completions.Exists(ctx, day, second.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete with completion", func(t *testing.T) {
		// wrong date leaves both rows
		err := tasks.DeleteWithCompletion(ctx, day.AddDate(0, 0, 1), first.ID)
		assert.ErrorIs(t, err, task.ErrNotFound)

		require.NoError(t, tasks.DeleteWithCompletion(ctx, day, first.ID))

		_, err = tasks.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, task.ErrNotFound)

		ok, err := completions.Exists(ctx, day, first.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete by date and id", func(t *testing.T) {
		assert.ErrorIs(t, tasks.DeleteByDateAndID(ctx, day, other.ID), task.ErrNotFound)
		require.NoError(t, tasks.DeleteByDateAndID(ctx, day.AddDate(0, 0, 1), other.ID))
	})
}
