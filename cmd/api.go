package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/metrics"
	"github.com/Nasaee/go-dayplanner/internal/planner"
	"github.com/Nasaee/go-dayplanner/internal/ratelimit"
	"github.com/Nasaee/go-dayplanner/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type dbConfig struct {
	driver   string
	dsn      string
	mongoURI string
	mongoDB  string
}

type rateLimitConfig struct {
	redisAddr string
	password  string
	db        int
	max       int
	window    time.Duration
}

type config struct {
	addr        string
	db          dbConfig
	rateLimit   rateLimitConfig
	frontendURL string
}

type application struct {
	config  config
	planner *planner.Handler
	metrics *metrics.Metrics
	limiter *ratelimit.Limiter
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Get("/", app.planner.Index)
	r.Get("/add", app.planner.AddTaskForm)

	// state-changing routes share the per-client rate limit
	r.Group(func(r chi.Router) {
		r.Use(app.limiter.Middleware)

		r.Post("/add", app.planner.AddTask)
		r.Post("/update", app.planner.UpdateTask)
		r.Post("/complete", app.planner.Complete)
		r.Post("/incomplete", app.planner.Incomplete)
		r.Post("/task_action", app.planner.TaskAction)
	})

	return r
}

// run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to 10 seconds.
func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", app.config.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server...")
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		// a value means the listener failed; a closed channel means
		// ListenAndServe returned ErrServerClosed and err is nil
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
