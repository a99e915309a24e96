package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/contracts"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/evaluation"
	"hrms/internal/domain/pending"
	"hrms/internal/domain/structure"
	"hrms/internal/domain/txlog"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/email"
	"hrms/internal/platform/jobs"
	"hrms/internal/transport/http/handlers/audithandler"
	"hrms/internal/transport/http/handlers/authhandler"
	"hrms/internal/transport/http/handlers/contracthandler"
	"hrms/internal/transport/http/handlers/employeehandler"
	"hrms/internal/transport/http/handlers/evaluationhandler"
	"hrms/internal/transport/http/handlers/pendinghandler"
	"hrms/internal/transport/http/handlers/structurehandler"
	"hrms/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Jobs   *jobs.Service
	Router http.Handler
}

// New wires the full application without starting anything, so tests can
// drive the router directly.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	events := txlog.New(pool)
	employeeStore := employee.NewStore(pool)
	structureStore := structure.NewStore(pool)
	evaluationSvc := evaluation.NewService(pool, events)
	pendingSvc := pending.NewService(pool, employeeStore, events, cfg.PendingUpdateRetention)
	contractSvc := contracts.NewService(pool, email.New(cfg), cfg.EmailFrom, cfg.HRNotifyEmail)
	authSvc := auth.NewService(pool, cfg.JWTSecret)
	jobsSvc := jobs.New(cfg, pendingSvc, contractSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		structurehandler.NewHandler(structureStore).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationSvc, cfg.ReportDir).RegisterRoutes(r)
		pendinghandler.NewHandler(pendingSvc).RegisterRoutes(r)
		contracthandler.NewHandler(contractSvc, cfg.ContractNoticeWindow).RegisterRoutes(r)
		audithandler.NewHandler(events).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Jobs: jobsSvc, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	ctx := context.Background()
	cfg := config.Load()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.DB.Close()

	app.Jobs.Start(ctx)

	log.Printf("HRMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
