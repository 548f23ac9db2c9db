// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"trustpanel-registration/internal/api/handler"
	"trustpanel-registration/internal/config"
	"trustpanel-registration/internal/domain/registration"
	"trustpanel-registration/internal/metrics"
	"trustpanel-registration/internal/repository"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	logger   *slog.Logger
	register *handler.RegistrationHandler
	wizard   *handler.WizardHandler
	registry *prometheus.Registry
	closers  []func()
}

func initDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return dbpool, nil
}

func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// New connects the configured backends and wires the handlers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	var (
		submitter registration.Submitter = registration.NewSimulatedSubmitter(cfg.SubmitDelay)
		closers   []func()
	)

	if cfg.SubmitMode == config.SubmitModeStore {
		db, err := initDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, db.Close)

		repo := repository.NewRegistrationRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		submitter = repo
	}

	if cfg.RedisURL != "" {
		redisClient, err := initRedis(ctx, cfg)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, err
		}
		closers = append(closers, func() { redisClient.Close() })
		submitter = registration.NewGuardedSubmitter(registration.NewSubmissionGuard(redisClient, cfg.GuardTTL), submitter)
	}

	s, err := newServer(cfg, logger, submitter, prometheus.NewRegistry())
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	s.closers = closers
	return s, nil
}

func newServer(cfg *config.Config, logger *slog.Logger, submitter registration.Submitter, reg *prometheus.Registry) (*Server, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	validate, err := registration.NewValidator(validator.New())
	if err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	m := metrics.New(reg)
	service := registration.NewService(submitter, validate, logger)

	s := &Server{
		cfg:      cfg,
		router:   r,
		logger:   logger,
		register: handler.NewRegistrationHandler(service),
		wizard: handler.NewWizardHandler(submitter, validate, handler.WizardOptions{
			LoginURL:   cfg.LoginURL,
			LoginDelay: cfg.LoginDelay,
			Logger:     logger,
			Metrics:    m,
		}),
		registry: reg,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	defer s.close()

	srv := &http.Server{
		Addr:              s.cfg.ServerPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("registration server listening", "addr", s.cfg.ServerPort, "submit_mode", s.cfg.SubmitMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func (s *Server) close() {
	for _, c := range s.closers {
		c()
	}
}

func (s *Server) setupRoutes() {
	s.router.Post("/registrations", s.register.Register)
	s.router.Post("/registrations/validate", s.register.ValidateField)
	s.router.Post("/password-strength", s.register.PasswordStrength)
	s.router.Get("/ws/registration", s.wizard.HandleConnection)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
}
