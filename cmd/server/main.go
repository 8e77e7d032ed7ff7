package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/bookmarks/config"
	"github.com/d60-Lab/bookmarks/internal/api/handler"
	"github.com/d60-Lab/bookmarks/internal/api/router"
	"github.com/d60-Lab/bookmarks/internal/repository"
	"github.com/d60-Lab/bookmarks/internal/service"
	"github.com/d60-Lab/bookmarks/pkg/cache"
	"github.com/d60-Lab/bookmarks/pkg/database"
	"github.com/d60-Lab/bookmarks/pkg/logger"
	"github.com/d60-Lab/bookmarks/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	cfg := must(config.Load())
	mustDo(logger.Init(cfg.Server.Mode))
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		mustDo(sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}))
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := must(tracing.Init(ctx, cfg))
	defer func() { _ = shutdownTracing(context.Background()) }()

	db := must(database.InitDB(cfg))
	mustDo(database.AutoMigrate(db))

	rdb := must(cache.InitRedis(cfg))
	defer rdb.Close()

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	actionRepo := repository.NewActionRepository(db)
	imageRepo := repository.NewImageRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	actionSvc := service.NewActionService(actionRepo, cfg.Actions.DuplicateWindow)
	rankingSvc := service.NewRankingService(rdb, imageRepo, cfg.Redis.Timeout)
	recorder := service.NewViewRecorder(rankingSvc, 10000)
	stopRecorder := recorder.Start(4)
	defer func() { _ = stopRecorder(context.Background()) }()

	userSvc := service.NewUserService(userRepo, actionSvc, cfg.Auth)
	relSvc := service.NewRelationshipService(followRepo, userRepo, actionSvc)
	feedSvc := service.NewFeedService(followRepo, actionRepo, imageRepo, userRepo)
	imageSvc := service.NewImageService(imageRepo, likeRepo, actionSvc, rankingSvc, recorder)

	h := handler.New(userSvc, relSvc, feedSvc, imageSvc, rankingSvc)
	engine := router.New(cfg, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
