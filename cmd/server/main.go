package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskboard/backend/api/handler"
	authcore "github.com/taskboard/backend/internal/auth"
	"github.com/taskboard/backend/internal/config"
	auditInfra "github.com/taskboard/backend/internal/infrastructure/audit"
	"github.com/taskboard/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskboard/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskboard/backend/internal/infrastructure/redis"
	"github.com/taskboard/backend/internal/middleware"
	"github.com/taskboard/backend/internal/router"
	"github.com/taskboard/backend/internal/services"
	"github.com/taskboard/backend/internal/services/lifecycle"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/pkg/logger"
	"github.com/taskboard/backend/repository/postgres"
	redisRepo "github.com/taskboard/backend/repository/redis"
	authUC "github.com/taskboard/backend/usecase/auth"
	labelUC "github.com/taskboard/backend/usecase/label"
	statusUC "github.com/taskboard/backend/usecase/status"
	taskUC "github.com/taskboard/backend/usecase/task"
	userUC "github.com/taskboard/backend/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditStore, err := auditInfra.Open(cfg.Audit.Path)
	if err != nil {
		zapLogger.Fatal("failed to open audit store", zap.Error(err))
	}
	manager.Register("audit_store", func(ctx context.Context) error {
		return auditStore.Close()
	})

	mon := monitor.New(pool, redisClient, auditStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	recorder := services.NewAuditRecorder(auditStore, services.RecorderConfig{
		FlushInterval: cfg.Audit.FlushInterval,
		QueueSize:     cfg.Audit.QueueSize,
	}, zapLogger)
	if err := recorder.Start(); err != nil {
		zapLogger.Fatal("failed to start audit recorder", zap.Error(err))
	}
	manager.Register("audit_recorder", func(ctx context.Context) error {
		recorder.Stop(ctx)
		return nil
	})

	userRepo := redisRepo.NewUserCache(postgres.NewUserRepository(pool), redisClient, cfg.Redis.UserTTL)
	taskRepo := postgres.NewTaskRepository(pool)
	statusRepo := postgres.NewTaskStatusRepository(pool)
	labelRepo := postgres.NewLabelRepository(pool)

	tokenCodec := authcore.NewTokenCodec(cfg.Token.Secret, cfg.Token.Issuer)
	hasher := authcore.NewPasswordHasher()

	authUseCase := authUC.New(userRepo, tokenCodec, hasher, recorder, cfg.Token.TTL, zapLogger)
	userUseCase := userUC.New(userRepo, taskRepo, hasher, recorder, zapLogger)
	taskUseCase := taskUC.New(taskRepo, userRepo, statusRepo, labelRepo, recorder, zapLogger)
	statusUseCase := statusUC.New(statusRepo, zapLogger)
	labelUseCase := labelUC.New(labelRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Status: apiHandler.NewTaskStatusHandler(statusUseCase, ctxAdapter, zapLogger),
		Label:  apiHandler.NewLabelHandler(labelUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Authenticate(tokenCodec, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
