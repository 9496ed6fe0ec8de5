package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/completion"
	"github.com/Nasaee/go-dayplanner/internal/database"
	"github.com/Nasaee/go-dayplanner/internal/task"
)

const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
)

type stores struct {
	tasks       task.Repository
	completions completion.Repository
	close       func()
}

func openStores(ctx context.Context, cfg dbConfig) (*stores, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.driver {
	case driverMongo:
		client, err := database.ConnectMongo(ctx, cfg.mongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.mongoDB)

		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		return &stores{
			tasks:       task.NewMongoRepository(db),
			completions: completion.NewMongoRepository(db),
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil

	case driverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.dsn)
		if err != nil {
			return nil, err
		}

		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}

		return &stores{
			tasks:       task.NewPostgresRepository(pool),
			completions: completion.NewPostgresRepository(pool),
			close:       pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", cfg.driver, driverMongo, driverPostgres)
	}
}
