package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"greenlight/internal/audit"
	"greenlight/internal/backup"
	"greenlight/internal/catalog"
	"greenlight/internal/platform/config"
	"greenlight/internal/platform/httpserver"
	"greenlight/internal/platform/logger"
	"greenlight/internal/platform/metrics"
	platformredis "greenlight/internal/platform/redis"
	"greenlight/internal/session"
	httptransport "greenlight/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()
	m := metrics.New()

	auditLog := audit.NewLog(
		audit.WithLogger(log),
		audit.WithObserver(m.AuditEntries.Inc),
	)

	store := catalog.NewStore()
	catalogSvc := catalog.NewService(store, auditLog,
		catalog.WithLogger(log),
		catalog.WithObserver(m),
	)

	archive, redisClient, err := newArchive(cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	backups := backup.NewManager(store, auditLog, archive,
		backup.WithLogger(log),
		backup.WithObserver(m),
		backup.WithDelay(cfg.BackupDelay),
	)

	tokens := session.NewTokenManager(cfg.JWTSigningKey)
	sessions := session.NewService(tokens, cfg.AdminEmail, cfg.AdminName, cfg.AdminPasswordHash, log)

	handler := httptransport.NewHandler(catalogSvc, auditLog, backups, sessions, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AuditDatabaseURL != "" {
		sink, err := audit.OpenPostgresSink(cfg.AuditDatabaseURL)
		if err != nil {
			return err
		}
		defer sink.Close()
		worker := audit.NewWorker(sink, auditLog.Outbox(), log)
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	g.Go(func() error {
		log.Info("starting greenlight back office", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newArchive selects the snapshot archive: redis when configured, otherwise
// the in-memory archive.
func newArchive(cfg config.Server, log *slog.Logger) (backup.Archive, *platformredis.Client, error) {
	if cfg.RedisURL == "" {
		return backup.NewMemoryArchive(), nil, nil
	}
	client, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("snapshot archive backed by redis")
	return backup.NewRedisArchive(client), client, nil
}
