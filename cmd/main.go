package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/env"
	"github.com/Nasaee/go-dayplanner/internal/metrics"
	"github.com/Nasaee/go-dayplanner/internal/planner"
	"github.com/Nasaee/go-dayplanner/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

func main() {
	env.Init()

	ctx := context.Background()

	cfg := config{
		addr: env.GetString("API_PORT", ":8000"),
		db: dbConfig{
			driver:   env.GetString("STORE_DRIVER", driverMongo),
			dsn:      env.GetString("GOOSE_DBSTRING", "host=localhost port=5433 user=postgres password=postgres dbname=dayplanner sslmode=disable"),
			mongoURI: env.GetString("MONGO_URI", "mongodb://localhost:27017"),
			mongoDB:  env.GetString("MONGO_DB", "todo"),
		},
		rateLimit: rateLimitConfig{
			redisAddr: env.GetString("REDIS_ADDR", ""),
			password:  env.GetString("REDIS_PASSWORD", ""),
			db:        env.GetInt("REDIS_DB", 0),
			max:       env.GetInt("RATE_LIMIT_MAX", 60),
			window:    env.GetDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		frontendURL: env.GetString("FRONTEND_URL", "http://localhost:8000"),
	}

	// Logger
	var logger *slog.Logger
	if env.IsProduction() {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	st, err := openStores(ctx, cfg.db)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.db.driver, "error", err)
		os.Exit(1)
	}
	defer st.close()
	logger.Info("store connected", "driver", cfg.db.driver)

	rdb := connectRedis(ctx, cfg.rateLimit)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()
	svc := planner.NewService(st.tasks, st.completions)

	plannerHandler, err := planner.NewHandler(svc)
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	api := application{
		config:  cfg,
		planner: plannerHandler,
		metrics: m,
		limiter: ratelimit.New(rdb, cfg.rateLimit.max, cfg.rateLimit.window, m.RateLimited),
	}

	if err := api.run(ctx, api.mount()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// connectRedis returns nil when no address is configured or the server does
// not answer; the limiter then lets every request through.
func connectRedis(ctx context.Context, cfg rateLimitConfig) *redis.Client {
	if cfg.redisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.password,
		DB:       cfg.db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, rate limiting disabled", "addr", cfg.redisAddr, "error", err)
		_ = rdb.Close()
		return nil
	}

	slog.Info("redis connected", "addr", cfg.redisAddr)
	return rdb
}
