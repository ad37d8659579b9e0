// Package main is the entry point for the student-records server.
// It reads configuration, assembles the dependency graph (stores, command
// and query handlers, HTTP controllers) and runs the server until a
// shutdown signal arrives.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campus-hub/student-records/config"
	"github.com/campus-hub/student-records/internal/application/command"
	"github.com/campus-hub/student-records/internal/application/query"
	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/infrastructure/persistence/memory"
	"github.com/campus-hub/student-records/internal/infrastructure/persistence/postgres"
	redisstore "github.com/campus-hub/student-records/internal/infrastructure/persistence/redis"
	httpserver "github.com/campus-hub/student-records/internal/interface/http"
	"github.com/campus-hub/student-records/internal/interface/http/handlers"
	"github.com/campus-hub/student-records/internal/interface/http/render"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// ── Persistence ────────────────────────────────────────────────────────
	pgCfg := postgres.DefaultConfig()
	pgCfg.URL = cfg.Database.URL
	pgCfg.MaxConns = cfg.Database.MaxConns
	pgCfg.MinConns = cfg.Database.MinConns

	conn, err := postgres.NewConnection(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready")

	users := postgres.NewUserRepository(conn)
	students := postgres.NewStudentRepository(conn)

	// ── Session store ──────────────────────────────────────────────────────
	var sessions session.Store
	var redisPinger handlers.Pinger
	if cfg.Redis.Enabled {
		store, err := redisstore.NewSessionStore(ctx, redisstore.Config{URL: cfg.Redis.URL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer store.Close()
		sessions = store
		redisPinger = store
		logger.Info("session store ready", slog.String("backend", "redis"))
	} else {
		store := memory.NewSessionStore()
		go sweep(ctx, store)
		sessions = store
		logger.Warn("session store running in-memory; sessions will not survive a restart")
	}

	// ── Application layer ──────────────────────────────────────────────────
	registerUser := command.NewRegisterUserHandler(users)
	login := command.NewLoginHandler(users, sessions)
	logout := command.NewLogoutHandler(sessions)
	createStudent := command.NewCreateStudentHandler(students)
	updateStudent := command.NewUpdateStudentHandler(students)
	deleteStudent := command.NewDeleteStudentHandler(students)
	listStudents := query.NewListStudentsHandler(students)
	getStudent := query.NewGetStudentHandler(students)

	// ── Interface layer ────────────────────────────────────────────────────
	renderer, err := render.New(cfg.HTTP.TemplateDir)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	codec := session.NewCookieCodec(cfg.Session.Secret)
	sessionManager := handlers.NewSessionManager(sessions, codec, cfg.Session.SecureCookie, logger)

	h := httpserver.Handlers{
		Auth:     handlers.NewAuthHandler(registerUser, login, logout, sessionManager, renderer, logger),
		Students: handlers.NewStudentHandler(listStudents, getStudent, createStudent, updateStudent, deleteStudent, sessionManager, renderer, logger),
		Health:   handlers.NewHealthHandler(map[string]handlers.Pinger{"postgres": conn, "sessions": redisPinger}),
		Sessions: sessionManager,
		Renderer: renderer,
	}

	srv := httpserver.New(httpserver.Config{
		Addr:         cfg.HTTP.Addr(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		StaticDir:    cfg.HTTP.StaticDir,
	}, h, logger)

	return srv.Start(ctx, cfg.App.ShutdownTimeout)
}

// sweep periodically drops expired in-memory sessions in demo mode.
func sweep(ctx context.Context, store *memory.SessionStore) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}
