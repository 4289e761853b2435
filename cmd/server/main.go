// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/handlers"
	"github.com/jason-s-yu/uno/internal/session"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store session.Store
		opts  []session.Option
	)
	switch cfg.GameStore {
	case config.StoreMemory:
		store = cache.NewMemoryGameStore(cfg.GameTTL)
		logger.Warn("using in-memory game store; games are lost on restart")
	default:
		rdb, err := cache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = cache.NewRedisGameStore(rdb, cfg.GameTTL)
		if cfg.PublishActions {
			opts = append(opts, session.WithPublisher(cache.NewActionQueue(rdb, cfg.QueueName, logger)))
		}
	}

	svc := session.NewService(store, logger, opts...)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handlers.NewRouter(handlers.NewGameServer(svc, logger)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":  cfg.Addr(),
		"store": cfg.GameStore,
		"ttl":   cfg.GameTTL,
	}).Info("Running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server exited: %v", err)
	}
	logger.Info("server stopped")
}
